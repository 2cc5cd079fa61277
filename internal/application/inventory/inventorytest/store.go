// Package inventorytest provee un almacenamiento en memoria con semántica transaccional
// para probar los casos de uso de inventario sin PostgreSQL.
package inventorytest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

type stockKey struct{ productID, branchID string }

// Store base de datos en memoria. Run serializa las transacciones con un mutex
// (equivalente a bloquear todas las filas) y aplica los cambios solo si fn no falla.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	branches  map[string]*entity.Branch
	documents map[string]*entity.Document
	users     map[string]*entity.User
	stocks    map[stockKey]entity.Stock
	movements []entity.Movement

	lockLog  [][]string
	failNext int
	runs     int
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		products:  map[string]*entity.Product{},
		branches:  map[string]*entity.Branch{},
		documents: map[string]*entity.Document{},
		users:     map[string]*entity.User{},
		stocks:    map[stockKey]entity.Stock{},
	}
}

// ── Seed ─────────────────────────────────────────────────────────────────────

func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Store) AddBranch(b *entity.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[b.ID] = b
}

func (s *Store) AddDocument(d *entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[d.ID] = d
}

func (s *Store) AddUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// SetStock crea o reemplaza la fila (producto, sucursal).
func (s *Store) SetStock(productID, branchID string, quantity, minimum int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := stockKey{productID, branchID}
	st, ok := s.stocks[k]
	if !ok {
		st = entity.Stock{ID: uuid.New().String(), ProductID: productID, BranchID: branchID}
	}
	st.Quantity, st.MinimumStock = quantity, minimum
	s.stocks[k] = st
}

// ── Inspección ───────────────────────────────────────────────────────────────

// Stock devuelve una copia de la fila o nil si no existe.
func (s *Store) Stock(productID, branchID string) *entity.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stocks[stockKey{productID, branchID}]
	if !ok {
		return nil
	}
	return &st
}

// StockRows cantidad de filas de stock existentes.
func (s *Store) StockRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stocks)
}

// Movements copia de los movimientos confirmados en orden de inserción.
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movement(nil), s.movements...)
}

// LockLog sucursales bloqueadas por cada transacción confirmada, en el orden de bloqueo.
func (s *Store) LockLog() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.lockLog...)
}

// Runs transacciones iniciadas (incluye reintentos y rollbacks).
func (s *Store) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// FailNextCommits hace que las próximas n transacciones ejecuten fn y luego fallen con
// domain.ErrConcurrency (simula víctima de deadlock o lock_timeout) sin confirmar nada.
func (s *Store) FailNextCommits(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++

	tx := &txState{store: s, stocks: make(map[stockKey]entity.Stock, len(s.stocks))}
	for k, v := range s.stocks {
		tx.stocks[k] = v
	}
	if err := fn(ctx, &txMovements{tx: tx}, &txStocks{tx: tx}); err != nil {
		return err
	}
	if s.failNext > 0 {
		s.failNext--
		return fmt.Errorf("simulated lock timeout: %w", domain.ErrConcurrency)
	}
	s.stocks = tx.stocks
	s.movements = append(s.movements, tx.movements...)
	s.lockLog = append(s.lockLog, tx.locked)
	return nil
}

type txState struct {
	store     *Store
	stocks    map[stockKey]entity.Stock
	movements []entity.Movement
	locked    []string
}

type txStocks struct{ tx *txState }

func (r *txStocks) GetForUpdate(_ context.Context, productID, branchID string) (*entity.Stock, error) {
	r.tx.locked = append(r.tx.locked, branchID)
	st, ok := r.tx.stocks[stockKey{productID, branchID}]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *txStocks) GetOrCreateForUpdate(_ context.Context, productID, branchID string) (*entity.Stock, error) {
	r.tx.locked = append(r.tx.locked, branchID)
	k := stockKey{productID, branchID}
	st, ok := r.tx.stocks[k]
	if !ok {
		st = entity.Stock{ID: uuid.New().String(), ProductID: productID, BranchID: branchID}
		r.tx.stocks[k] = st
	}
	return &st, nil
}

func (r *txStocks) UpdateQuantity(_ context.Context, stock *entity.Stock) error {
	k := stockKey{stock.ProductID, stock.BranchID}
	st, ok := r.tx.stocks[k]
	if !ok {
		return fmt.Errorf("update stock: fila inexistente")
	}
	st.Quantity, st.UpdatedAt = stock.Quantity, stock.UpdatedAt
	r.tx.stocks[k] = st
	return nil
}

func (r *txStocks) UpdateMinimum(_ context.Context, stock *entity.Stock) error {
	k := stockKey{stock.ProductID, stock.BranchID}
	st, ok := r.tx.stocks[k]
	if !ok {
		return fmt.Errorf("update stock minimum: fila inexistente")
	}
	st.MinimumStock = stock.MinimumStock
	r.tx.stocks[k] = st
	return nil
}

type txMovements struct{ tx *txState }

func (r *txMovements) Create(_ context.Context, m *entity.Movement) error {
	r.tx.movements = append(r.tx.movements, *m)
	return nil
}

func (r *txMovements) GetByID(context.Context, string) (*repository.MovementDetail, error) {
	return nil, fmt.Errorf("no soportado dentro de la transacción")
}

func (r *txMovements) List(context.Context, repository.MovementFilter) ([]repository.MovementDetail, error) {
	return nil, fmt.Errorf("no soportado dentro de la transacción")
}

// ── Lectores fuera de transacción ────────────────────────────────────────────

// ProductRepo lector de productos.
type ProductRepo struct{ s *Store }

func (s *Store) ProductRepo() ProductRepo { return ProductRepo{s} }

func (r ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}

// BranchRepo lector de sucursales.
type BranchRepo struct{ s *Store }

func (s *Store) BranchRepo() BranchRepo { return BranchRepo{s} }

func (r BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.branches[id], nil
}

// DocumentRepo lector de documentos.
type DocumentRepo struct{ s *Store }

func (s *Store) DocumentRepo() DocumentRepo { return DocumentRepo{s} }

func (r DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.documents[id], nil
}

// MovementRepo implementa repository.MovementRepository sobre los movimientos confirmados.
type MovementRepo struct{ s *Store }

func (s *Store) MovementRepo() MovementRepo { return MovementRepo{s} }

var _ repository.MovementRepository = MovementRepo{}

func (r MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r MovementRepo) GetByID(_ context.Context, id string) (*repository.MovementDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			d := r.s.detail(r.s.movements[i])
			return &d, nil
		}
	}
	return nil, nil
}

func (r MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]repository.MovementDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.MovementDetail
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.BusinessID != f.BusinessID ||
			(f.ProductID != "" && m.ProductID != f.ProductID) ||
			(f.MovementType != "" && m.MovementType != f.MovementType) ||
			(f.BranchID != "" && m.BranchID != f.BranchID && m.BranchFromID != f.BranchID) {
			continue
		}
		out = append(out, r.s.detail(m))
	}
	return paginate(out, f.Limit, f.Offset), nil
}

func (s *Store) detail(m entity.Movement) repository.MovementDetail {
	d := repository.MovementDetail{Movement: m}
	if p := s.products[m.ProductID]; p != nil {
		d.ProductName = p.Name
	}
	if b := s.branches[m.BranchID]; b != nil {
		d.BranchName = b.Name
	}
	if b := s.branches[m.BranchFromID]; b != nil {
		d.BranchFromName = b.Name
	}
	if doc := s.documents[m.DocumentID]; doc != nil {
		d.DocumentType, d.DocumentNumber = doc.DocumentType, doc.DocumentNumber
	}
	if u := s.users[m.UserID]; u != nil {
		d.UserName = u.Name
	}
	return d
}

// StockLevelRepo implementa repository.StockLevelRepository.
type StockLevelRepo struct{ s *Store }

func (s *Store) StockLevelRepo() StockLevelRepo { return StockLevelRepo{s} }

var _ repository.StockLevelRepository = StockLevelRepo{}

func (r StockLevelRepo) List(_ context.Context, f repository.StockFilter) ([]repository.StockDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.StockDetail
	for _, st := range r.s.stocks {
		p, b := r.s.products[st.ProductID], r.s.branches[st.BranchID]
		if p == nil || b == nil || p.BusinessID != f.BusinessID {
			continue
		}
		if (f.ProductID != "" && st.ProductID != f.ProductID) ||
			(f.BranchID != "" && st.BranchID != f.BranchID) ||
			(f.ProductName != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.ProductName))) ||
			(f.LowOnly && !st.IsLowStock()) {
			continue
		}
		out = append(out, repository.StockDetail{Stock: st, ProductName: p.Name, BranchName: b.Name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].BranchName < out[j].BranchName
	})
	return paginate(out, f.Limit, f.Offset), nil
}

func (r StockLevelRepo) CountLow(_ context.Context, businessID, branchID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, st := range r.s.stocks {
		p := r.s.products[st.ProductID]
		if p == nil || p.BusinessID != businessID || (branchID != "" && st.BranchID != branchID) {
			continue
		}
		if st.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
