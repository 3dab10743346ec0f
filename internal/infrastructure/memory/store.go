package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/application/order"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner       = (*Store)(nil)
	_ order.TxRunner           = (*Store)(nil)
	_ usecase.CategoryTxRunner = (*Store)(nil)
)

// data estado completo del almacén. Las entidades se guardan como copias propias.
type data struct {
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	orders     map[string]*entity.Order
	items      map[string]*entity.OrderItem
	itemOrder  []string // orden de inserción de las líneas
	history    []*entity.StockHistory
}

func newData() *data {
	return &data{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		orders:     make(map[string]*entity.Order),
		items:      make(map[string]*entity.OrderItem),
	}
}

func (d *data) clone() *data {
	out := newData()
	for id, p := range d.products {
		out.products[id] = copyProduct(p)
	}
	for id, c := range d.categories {
		out.categories[id] = copyCategory(c)
	}
	for id, o := range d.orders {
		cp := *o
		cp.Items = nil
		out.orders[id] = &cp
	}
	for id, it := range d.items {
		cp := *it
		out.items[id] = &cp
	}
	out.itemOrder = append([]string(nil), d.itemOrder...)
	out.history = make([]*entity.StockHistory, len(d.history))
	for i, h := range d.history {
		cp := *h
		out.history[i] = &cp
	}
	return out
}

// access abstrae de dónde leen y escriben los repositorios: el estado publicado o la copia de una transacción.
type access interface {
	read(fn func(d *data) error) error
	write(fn func(d *data) error) error
}

// Store almacén en memoria con las mismas garantías transaccionales que el adaptador PostgreSQL:
// las transacciones se serializan y trabajan sobre una copia que solo se publica si fn no falla.
type Store struct {
	txMu sync.Mutex   // serializa transacciones y escrituras
	mu   sync.RWMutex // protege el puntero data
	data *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newData()}
}

type storeAccess struct{ s *Store }

func (a storeAccess) read(fn func(d *data) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.data)
}

func (a storeAccess) write(fn func(d *data) error) error {
	a.s.txMu.Lock()
	defer a.s.txMu.Unlock()
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.data)
}

// txAccess opera sobre la copia de la transacción; el txMu del Store ya está tomado.
type txAccess struct{ d *data }

func (a txAccess) read(fn func(d *data) error) error  { return fn(a.d) }
func (a txAccess) write(fn func(d *data) error) error { return fn(a.d) }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &ProductRepo{a: storeAccess{s}} }

// Categories repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &CategoryRepo{a: storeAccess{s}} }

// Orders repositorio de órdenes.
func (s *Store) Orders() repository.OrderRepository { return &OrderRepo{a: storeAccess{s}} }

// OrderItems repositorio de líneas de orden.
func (s *Store) OrderItems() repository.OrderItemRepository { return &OrderItemRepo{a: storeAccess{s}} }

// StockHistory repositorio del historial de stock.
func (s *Store) StockHistory() repository.StockHistoryRepository {
	return &StockHistoryRepo{a: storeAccess{s}}
}

// Reports repositorio de lectura para reportes.
func (s *Store) Reports() repository.ReportRepository { return &ReportRepo{a: storeAccess{s}} }

// Run ejecuta fn con repositorios de producto e historial atados a una transacción.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return s.inTx(ctx, func(a access) error {
		return fn(&ProductRepo{a: a}, &StockHistoryRepo{a: a})
	})
}

// RunOrder ejecuta fn con todos los repositorios del flujo de órdenes atados a una transacción.
func (s *Store) RunOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
) error) error {
	return s.inTx(ctx, func(a access) error {
		return fn(&ProductRepo{a: a}, &StockHistoryRepo{a: a}, &OrderRepo{a: a}, &OrderItemRepo{a: a})
	})
}

// RunCategories ejecuta fn con el repositorio de categorías atado a una transacción.
func (s *Store) RunCategories(ctx context.Context, fn func(repo repository.CategoryRepository) error) error {
	return s.inTx(ctx, func(a access) error {
		return fn(&CategoryRepo{a: a})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(a access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	staged := s.data.clone()
	s.mu.RUnlock()

	if err := fn(txAccess{d: staged}); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = staged
	s.mu.Unlock()
	return nil
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.ThruDate != nil {
		t := *p.ThruDate
		cp.ThruDate = &t
	}
	cp.Category = nil
	return &cp
}

func copyCategory(c *entity.Category) *entity.Category {
	cp := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	cp.Children = nil
	return &cp
}

// productView copia del producto con su categoría, para devolver a los callers.
func productView(d *data, p *entity.Product) *entity.Product {
	out := copyProduct(p)
	if c, ok := d.categories[p.CategoryID]; ok {
		out.Category = copyCategory(c)
	}
	return out
}
