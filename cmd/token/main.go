// token emite un JWT firmado con JWT_SECRET para operar las rutas de escritura.
//
// Uso: go run ./cmd/token -sub operador -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/storetrack-api/pkg/config"
	"github.com/jhoicas/storetrack-api/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "panel", "sujeto del token")
	role := flag.String("role", "admin", "rol del operador")
	exp := flag.Int("exp", 0, "minutos de vigencia (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
