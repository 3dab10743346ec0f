package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/application/order"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/storetrack-api/internal/interfaces/http"
	"github.com/jhoicas/storetrack-api/pkg/logger"
)

func newTestApp(secret string) *fiber.App {
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(store, store.Products(), store.Categories(), 100),
		CategoryUC:     usecase.NewCategoryUseCase(store, store.Categories()),
		OrderUC:        order.NewOrderUseCase(store, store.Orders(), store.OrderItems()),
		StockHistoryUC: inventory.NewRegisterMovementUseCase(store, store.StockHistory()),
		ReportUC:       usecase.NewReportUseCase(store.Reports(), pdf.NewMarotoPDFGenerator("StoreTrack")),
		JWTSecret:      secret,
		Logger:         logger.Nop(),
	})
	return app
}

// call envía la petición y decodifica el cuerpo JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func seedCatalog(t *testing.T, app *fiber.App, authHeader string, stock int) (categoryID, productID string) {
	t.Helper()
	var cat dto.CategoryResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/categories", authHeader,
		map[string]any{"description": "Bebidas"}, &cat))

	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/products/addNewProduct", authHeader,
		map[string]any{"name": "Agua", "stock": stock, "price": "2.50", "categoryId": cat.ID}, &p))
	return cat.ID, p.ID
}

func TestRouter_FlujoDeOrden(t *testing.T) {
	app := newTestApp("")
	_, productID := seedCatalog(t, app, "", 10)

	var created dto.OrderResponse
	status := call(t, app, http.MethodPost, "/orders/newOrder", "", map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 4}},
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "PENDING", created.Status)
	assert.Equal(t, 4, created.TotalItems)
	assert.Equal(t, "10", created.TotalValue.String())

	var p dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/products/"+productID, "", nil, &p))
	assert.Equal(t, 6, p.Stock)

	var items []dto.OrderItemResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/order-items/order/"+created.ID, "", nil, &items))
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Agua", items[0].Product.Name)

	var canceled dto.CancelOrderResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/orders/"+created.ID+"/cancelOrder", "", nil, &canceled))
	assert.Equal(t, "CANCELED", canceled.Order.Status)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPatch, "/orders/"+created.ID+"/cancelOrder", "", nil, &errResp))
	assert.Equal(t, "INVALID_TRANSITION", errResp.Code)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/products/"+productID, "", nil, &p))
	assert.Equal(t, 10, p.Stock)

	var hist []dto.StockHistoryResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/stockHistory/getByProductId/"+productID, "", nil, &hist))
	assert.Len(t, hist, 3, "entrada inicial, salida por la orden y entrada por la cancelación")
}

func TestRouter_ErroresDeDominio(t *testing.T) {
	app := newTestApp("")
	_, productID := seedCatalog(t, app, "", 2)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"producto inexistente", http.MethodGet, "/products/no-existe", nil, http.StatusNotFound, "NOT_FOUND"},
		{"stock insuficiente", http.MethodPost, "/orders/newOrder",
			map[string]any{"items": []map[string]any{{"productId": productID, "quantity": 3}}},
			http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"orden sin líneas", http.MethodPost, "/orders/newOrder", map[string]any{"items": []any{}},
			http.StatusBadRequest, "VALIDATION"},
		{"cuerpo inválido", http.MethodPost, "/stockHistory/newHistory", "{no es json",
			http.StatusBadRequest, "INVALID_BODY"},
		{"agrupación desconocida", http.MethodGet, "/reports/salesByDate?groupBy=week", nil,
			http.StatusBadRequest, "VALIDATION"},
		{"categoría inexistente", http.MethodGet, "/categories/no-existe", nil, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			assert.Equal(t, tt.status, call(t, app, tt.method, tt.path, "", tt.body, &errResp))
			assert.Equal(t, tt.code, errResp.Code)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}

func TestRouter_MovimientoDeStock(t *testing.T) {
	app := newTestApp("")
	_, productID := seedCatalog(t, app, "", 5)

	var out dto.CreateStockHistoryResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/stockHistory/newHistory", "",
		map[string]any{"productId": productID, "type": "OUT", "quantity": 2}, &out))
	assert.Equal(t, 3, out.UpdatedStock)
	assert.Equal(t, "OUT", out.History.Type)

	var found []dto.StockHistoryResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/stockHistory/search", "",
		map[string]any{"productId": productID, "type": "OUT"}, &found))
	assert.Len(t, found, 1)
}

func TestRouter_BusquedaYBajoStock(t *testing.T) {
	app := newTestApp("")
	seedCatalog(t, app, "", 5)

	var found []dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/products/searchProduct", "",
		map[string]any{"name": "agu", "isAvailable": "true"}, &found))
	assert.Len(t, found, 1)

	var low []dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/products/report/lowStock", "", nil, &low))
	assert.Len(t, low, 1)
}

func TestRouter_EscrituraRequiereToken(t *testing.T) {
	app := newTestApp(testJWTSecret)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/categories", "",
		map[string]any{"description": "Bebidas"}, &errResp))
	assert.Equal(t, "MISSING_TOKEN", errResp.Code)

	_, productID := seedCatalog(t, app, bearer(t, "admin"), 1)

	var p dto.ProductResponse
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/products/"+productID, "", nil, &p),
		"las lecturas son públicas")
}

func TestRouter_ReportePDF(t *testing.T) {
	app := newTestApp("")
	_, productID := seedCatalog(t, app, "", 5)
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/orders/newOrder", "", map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 1}},
	}, nil))

	req := httptest.NewRequest(http.MethodGet, "/reports/salesByProduct/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp("")
	var body map[string]string
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", "", nil, &body))
	assert.Equal(t, "ok", body["status"])
}
