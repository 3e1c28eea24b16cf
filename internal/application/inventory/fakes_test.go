package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con transacciones: Run trabaja sobre una copia del estado
// y solo la publica si fn no devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	movements  map[string]entity.StockMovement
	items      map[string][]entity.StockMovementItem
	stock      map[inventory.StockKey]decimal.Decimal
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	categories map[string]entity.Category
	counters   map[string]int64
}

func newMemState() *memState {
	return &memState{
		movements:  map[string]entity.StockMovement{},
		items:      map[string][]entity.StockMovementItem{},
		stock:      map[inventory.StockKey]decimal.Decimal{},
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		categories: map[string]entity.Category{},
		counters:   map[string]int64{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.StockMovementItem(nil), v...)
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

type memDB struct {
	st *memState
	// failItemFor hace fallar la creación de líneas de ese producto.
	failItemFor string
	// locks registra, en orden, cada GetForUpdate de stock de la transacción.
	locks *[]inventory.StockKey
}

type memStore struct {
	mu sync.Mutex
	db *memDB
	// lastLocks bloqueos de stock de la última transacción, confirmada o no.
	lastLocks []inventory.StockKey
}

func newMemStore() *memStore {
	return &memStore{db: &memDB{st: newMemState()}}
}

var _ appinv.TxRunner = (*memStore)(nil)

func (s *memStore) Run(ctx context.Context, fn func(repos appinv.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memDB{st: s.db.st.clone(), failItemFor: s.db.failItemFor, locks: &[]inventory.StockKey{}}
	err := fn(reposFor(tx))
	s.lastLocks = *tx.locks
	if err != nil {
		return err
	}
	s.db.st = tx.st
	return nil
}

func reposFor(db *memDB) appinv.TxRepos {
	return appinv.TxRepos{
		Movements:  &memMovementRepo{db},
		Items:      &memItemRepo{db},
		Stock:      &memStockRepo{db},
		Products:   &memProductRepo{db},
		Warehouses: &memWarehouseRepo{db},
		Categories: &memCategoryRepo{db},
		Counters:   &memCounterRepo{db},
	}
}

// committed devuelve repositorios de solo lectura sobre el estado confirmado.
func (s *memStore) committed() appinv.TxRepos { return reposFor(s.db) }

func (s *memStore) qty(productID, warehouseID string) decimal.Decimal {
	return s.db.st.stock[inventory.StockKey{ProductID: productID, WarehouseID: warehouseID}]
}

func (s *memStore) setQty(productID, warehouseID string, q decimal.Decimal) {
	s.db.st.stock[inventory.StockKey{ProductID: productID, WarehouseID: warehouseID}] = q
}

func (s *memStore) ledgerSnapshot() map[inventory.StockKey]string {
	out := make(map[inventory.StockKey]string, len(s.db.st.stock))
	for k, v := range s.db.st.stock {
		out[k] = v.String()
	}
	return out
}

func (s *memStore) addProduct(id, reference, name string) {
	s.db.st.products[id] = entity.Product{ID: id, Reference: reference, Name: name, Active: true, LowStockThreshold: decimal.NewFromInt(2)}
}

func (s *memStore) addWarehouse(id, name string, active bool) {
	s.db.st.warehouses[id] = entity.Warehouse{ID: id, Name: name, Type: entity.WarehouseTypeDepot, Code: strings.ToUpper(id), Active: active}
}

// ── repositorios ──────────────────────────────────────────────────────────────

type memMovementRepo struct{ db *memDB }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if _, ok := r.db.st.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.db.st.movements {
		if other.Reference == m.Reference {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	cp.Items = nil
	r.db.st.movements[m.ID] = cp
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.db.st.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *memMovementRepo) Update(_ context.Context, m *entity.StockMovement) error {
	if _, ok := r.db.st.movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	cp.Items = nil
	r.db.st.movements[m.ID] = cp
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.st.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.st.movements, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.st.movements {
		m := m
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.WarehouseID != "" && m.FromWarehouseID != f.WarehouseID && m.ToWarehouseID != f.WarehouseID {
			continue
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

type memItemRepo struct{ db *memDB }

func (r *memItemRepo) Create(_ context.Context, it *entity.StockMovementItem) error {
	if r.db.failItemFor != "" && it.ProductID == r.db.failItemFor {
		return errors.New("fallo de almacenamiento simulado")
	}
	r.db.st.items[it.MovementID] = append(r.db.st.items[it.MovementID], *it)
	return nil
}

func (r *memItemRepo) ListByMovement(_ context.Context, movementID string) ([]entity.StockMovementItem, error) {
	return append([]entity.StockMovementItem(nil), r.db.st.items[movementID]...), nil
}

func (r *memItemRepo) DeleteByMovement(_ context.Context, movementID string) error {
	delete(r.db.st.items, movementID)
	return nil
}

type memStockRepo struct{ db *memDB }

func (r *memStockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	q := r.db.st.stock[inventory.StockKey{ProductID: productID, WarehouseID: warehouseID}]
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: q}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	if r.db.locks != nil {
		*r.db.locks = append(*r.db.locks, inventory.StockKey{ProductID: productID, WarehouseID: warehouseID})
	}
	return r.Get(ctx, productID, warehouseID)
}

func (r *memStockRepo) Adjust(_ context.Context, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	k := inventory.StockKey{ProductID: productID, WarehouseID: warehouseID}
	r.db.st.stock[k] = r.db.st.stock[k].Add(delta)
	return r.db.st.stock[k], nil
}

func (r *memStockRepo) levels(match func(k inventory.StockKey, q decimal.Decimal, p entity.Product) bool) []entity.StockLevel {
	var out []entity.StockLevel
	for k, q := range r.db.st.stock {
		p := r.db.st.products[k.ProductID]
		if !match(k, q, p) {
			continue
		}
		out = append(out, entity.StockLevel{
			ProductID: k.ProductID, ProductReference: p.Reference, ProductName: p.Name,
			WarehouseID: k.WarehouseID, Quantity: q, LowStockThreshold: p.LowStockThreshold,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductReference < out[j].ProductReference })
	return out
}

func (r *memStockRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]entity.StockLevel, error) {
	all := r.levels(func(k inventory.StockKey, _ decimal.Decimal, _ entity.Product) bool { return k.WarehouseID == warehouseID })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memStockRepo) ListLowStock(_ context.Context, warehouseID string) ([]entity.StockLevel, error) {
	return r.levels(func(k inventory.StockKey, q decimal.Decimal, p entity.Product) bool {
		return (warehouseID == "" || k.WarehouseID == warehouseID) && q.LessThanOrEqual(p.LowStockThreshold)
	}), nil
}

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, other := range r.db.st.products {
		if other.Reference == p.Reference {
			return domain.ErrDuplicate
		}
	}
	r.db.st.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.db.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) GetByReference(_ context.Context, reference string) (*entity.Product, error) {
	for _, p := range r.db.st.products {
		if p.Reference == reference {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.st.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	if offset >= len(out) {
		return nil, nil
	}
	if offset+limit < len(out) {
		out = out[:offset+limit]
	}
	return out[offset:], nil
}

type memWarehouseRepo struct{ db *memDB }

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.db.st.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.db.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.db.st.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) List(_ context.Context, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.db.st.warehouses {
		w := w
		out = append(out, &w)
	}
	return out, nil
}

type memCategoryRepo struct{ db *memDB }

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.db.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.db.st.categories {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

type memCounterRepo struct{ db *memDB }

func (r *memCounterRepo) Next(_ context.Context, scope, prefix string, year int) (int64, error) {
	k := fmt.Sprintf("%s|%s|%d", scope, prefix, year)
	r.db.st.counters[k]++
	return r.db.st.counters[k], nil
}

// ── caché espía ───────────────────────────────────────────────────────────────

type spyCache struct {
	values      map[inventory.StockKey]decimal.Decimal
	versions    map[inventory.StockKey]int64
	invalidated []inventory.StockKey
	hits        int
	staleSets   int
	// afterGet se ejecuta tras cada Get, para intercalar escrituras entre la lectura y el Set.
	afterGet func()
}

func newSpyCache() *spyCache {
	return &spyCache{values: map[inventory.StockKey]decimal.Decimal{}, versions: map[inventory.StockKey]int64{}}
}

func (c *spyCache) Get(_ context.Context, productID, warehouseID string) (appinv.CachedStock, error) {
	k := inventory.StockKey{ProductID: productID, WarehouseID: warehouseID}
	v, ok := c.values[k]
	if ok {
		c.hits++
	}
	out := appinv.CachedStock{Quantity: v, Hit: ok, Version: c.versions[k]}
	if c.afterGet != nil {
		c.afterGet()
	}
	return out, nil
}

func (c *spyCache) Set(_ context.Context, productID, warehouseID string, q decimal.Decimal, version int64) error {
	k := inventory.StockKey{ProductID: productID, WarehouseID: warehouseID}
	if c.versions[k] != version {
		c.staleSets++
		return nil
	}
	c.values[k] = q
	return nil
}

func (c *spyCache) Invalidate(_ context.Context, keys ...inventory.StockKey) error {
	for _, k := range keys {
		delete(c.values, k)
		c.versions[k]++
	}
	c.invalidated = append(c.invalidated, keys...)
	return nil
}
