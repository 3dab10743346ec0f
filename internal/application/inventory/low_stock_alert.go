package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/storetrack-api/internal/application/ports"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
	"github.com/jhoicas/storetrack-api/pkg/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LowStockAlertSubject asunto del correo de aviso.
const LowStockAlertSubject = "⚠ Low Stock Alert"

// LowStockAlertUseCase revisa los productos vigentes bajo el umbral y avisa por correo.
// Lo dispara el scheduler; un fallo se registra en el log y no se reintenta.
type LowStockAlertUseCase struct {
	productRepo repository.ProductRepository
	mailer      ports.Mailer
	recipient   string
	threshold   int
	log         *logger.Logger
}

// NewLowStockAlertUseCase construye el caso de uso.
func NewLowStockAlertUseCase(
	productRepo repository.ProductRepository,
	mailer ports.Mailer,
	recipient string,
	threshold int,
	log *logger.Logger,
) *LowStockAlertUseCase {
	return &LowStockAlertUseCase{
		productRepo: productRepo,
		mailer:      mailer,
		recipient:   recipient,
		threshold:   threshold,
		log:         log.Component("low_stock_alert"),
	}
}

// CheckAndNotify envía el aviso si hay productos en bajo stock. Devuelve cuántos productos se reportaron.
func (uc *LowStockAlertUseCase) CheckAndNotify(ctx context.Context) (int, error) {
	products, err := uc.productRepo.ListLowStock(ctx, time.Now(), uc.threshold)
	if err != nil {
		uc.log.Error().Err(err).Msg("consultar productos con bajo stock")
		return 0, err
	}
	if len(products) == 0 {
		uc.log.Info().Msg("sin productos con bajo stock")
		return 0, nil
	}
	if err := uc.mailer.Send(ctx, uc.recipient, LowStockAlertSubject, LowStockAlertBody(products)); err != nil {
		uc.log.Error().Err(err).Int("products", len(products)).Msg("enviar aviso de bajo stock")
		return 0, err
	}
	uc.log.Info().Int("products", len(products)).Msg("aviso de bajo stock enviado")
	return len(products), nil
}

// Run adapta CheckAndNotify a la firma que espera el scheduler (fire-and-forget).
func (uc *LowStockAlertUseCase) Run(ctx context.Context) {
	_, _ = uc.CheckAndNotify(ctx)
}

// LowStockAlertBody arma el cuerpo del correo: una línea "- nombre (Stock: n)" por producto.
func LowStockAlertBody(products []*entity.Product) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString("The following products are running low:\n\n")
	for i, prod := range products {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Sprintf("- %s (Stock: %d)", prod.Name, prod.Stock))
	}
	return b.String()
}
