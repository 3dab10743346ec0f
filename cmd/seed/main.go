// seed carga un árbol de categorías desde YAML usando el caso de uso de categorías.
//
// Uso: go run ./cmd/seed [ruta/categories.yaml]
// Por defecto lee cmd/seed/categories.yaml. Respeta DB_DRIVER y las variables DB_*;
// con DB_DRIVER=memory solo valida el archivo.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storetrack-api/pkg/config"
	"gopkg.in/yaml.v3"
)

// categoryNode nodo del archivo YAML.
type categoryNode struct {
	Description string         `yaml:"description"`
	Children    []categoryNode `yaml:"children"`
}

type seedFile struct {
	Categories []categoryNode `yaml:"categories"`
}

func main() {
	path := "cmd/seed/categories.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir YAML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	roots, err := parseTree(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar YAML: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var uc *usecase.CategoryUseCase
	if cfg.DB.Driver == config.DriverMemory {
		store := memory.NewStore()
		uc = usecase.NewCategoryUseCase(store, store.Categories())
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
		uc = usecase.NewCategoryUseCase(postgres.NewTxRunner(pool), postgres.NewCategoryRepository(pool))
	}

	n, err := seed(ctx, uc, roots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear categorías: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Creadas %d categorías desde %s\n", n, path)
}

func parseTree(r io.Reader) ([]categoryNode, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	return f.Categories, nil
}

// seed crea los nodos en preorden (cada padre antes que sus hijos) y devuelve cuántos creó.
func seed(ctx context.Context, uc *usecase.CategoryUseCase, roots []categoryNode) (int, error) {
	type pending struct {
		node     categoryNode
		parentID *string
	}
	stack := make([]pending, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, pending{node: roots[i]})
	}
	created := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out, err := uc.Create(ctx, dto.CreateCategoryRequest{Description: p.node.Description, ParentID: p.parentID})
		if err != nil {
			return created, fmt.Errorf("%q: %w", p.node.Description, err)
		}
		created++
		id := out.ID
		for i := len(p.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{node: p.node.Children[i], parentID: &id})
		}
	}
	return created, nil
}
