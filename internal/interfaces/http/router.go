package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/application/order"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	OrderUC        *order.OrderUseCase
	StockHistoryUC *inventory.RegisterMovementUseCase
	ReportUC       *usecase.ReportUseCase
	DB             Pinger // nil con el driver en memoria
	JWTSecret      string
	Logger         *logger.Logger
}

// Router registra las rutas de la API. Con JWTSecret definido, las rutas de escritura
// exigen Bearer Token; las de lectura quedan públicas.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	auth := AuthMiddleware(deps.JWTSecret)

	app.Get("/health", Health(deps.DB))

	// Products
	productHandler := NewProductHandler(deps.ProductUC, log)
	products := app.Group("/products")
	products.Post("/addNewProduct", auth, productHandler.Create)
	products.Get("/allProducts", productHandler.List)
	products.Post("/searchProduct", productHandler.Search)
	products.Get("/report/lowStock", productHandler.LowStock)
	products.Put("/update/:id", auth, productHandler.Update)
	products.Patch("/:id/stock", auth, productHandler.UpdateStock)
	products.Post("/:id/expire", auth, productHandler.Expire)
	products.Get("/:id", productHandler.GetByID)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories := app.Group("/categories")
	categories.Get("/", categoryHandler.Tree)
	categories.Post("/", auth, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", auth, categoryHandler.Update)

	// Orders y líneas
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	orders := app.Group("/orders")
	orders.Post("/newOrder", auth, orderHandler.Create)
	orders.Get("/getAll", orderHandler.List)
	orders.Get("/getById/:id", orderHandler.GetByID)
	orders.Post("/search", orderHandler.Search)
	orders.Patch("/:id/updateStatus", auth, orderHandler.UpdateStatus)
	orders.Patch("/:id/cancelOrder", auth, orderHandler.Cancel)

	items := app.Group("/order-items")
	items.Post("/addItem", auth, orderHandler.AddItem)
	items.Put("/updateQuantity/:id", auth, orderHandler.UpdateItemQuantity)
	items.Delete("/removeItem/:id", auth, orderHandler.RemoveItem)
	items.Get("/order/:orderId", orderHandler.ListItems)

	// Stock history
	historyHandler := NewStockHistoryHandler(deps.StockHistoryUC, log)
	history := app.Group("/stockHistory")
	history.Post("/newHistory", auth, historyHandler.Create)
	history.Get("/getByProductId/:productId", historyHandler.ListByProduct)
	history.Post("/search", historyHandler.Search)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports := app.Group("/reports")
	reports.Get("/salesByProduct", reportHandler.SalesByProduct)
	reports.Get("/salesByProduct/pdf", reportHandler.SalesByProductPDF)
	reports.Get("/salesByDate", reportHandler.SalesByDate)
}
