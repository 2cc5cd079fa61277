package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

type memBranches struct {
	mu   sync.Mutex
	data map[string]*entity.Branch
}

func newMemBranches(bs ...*entity.Branch) *memBranches {
	m := &memBranches{data: map[string]*entity.Branch{}}
	for _, b := range bs {
		m.data[b.ID] = b
	}
	return m
}

func (m *memBranches) Create(_ context.Context, b *entity.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[b.ID] = b
	return nil
}

func (m *memBranches) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.data[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memBranches) Update(ctx context.Context, b *entity.Branch) error { return m.Create(ctx, b) }

func (m *memBranches) ListByBusiness(_ context.Context, businessID string, _, _ int) ([]*entity.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Branch
	for _, b := range m.data {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBranches) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type memCategories struct{ data map[string]*entity.Category }

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.data[c.ID] = c
	return nil
}
func (m *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return m.data[id], nil
}
func (m *memCategories) Update(ctx context.Context, c *entity.Category) error { return m.Create(ctx, c) }
func (m *memCategories) ListByBusiness(context.Context, string, int, int) ([]*entity.Category, error) {
	return nil, nil
}
func (m *memCategories) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

type memProducts struct {
	data      map[string]*entity.Product
	withStock map[string][]string // branchID -> productIDs
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.data[p.ID] = p
	return nil
}
func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := m.data[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (m *memProducts) Update(ctx context.Context, p *entity.Product) error { return m.Create(ctx, p) }
func (m *memProducts) ListByBusiness(_ context.Context, businessID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.data {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) ListByBranchStock(_ context.Context, businessID, branchID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range m.withStock[branchID] {
		if p := m.data[id]; p != nil && p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

type memDocuments struct{ data map[string]*entity.Document }

func (m *memDocuments) Create(_ context.Context, d *entity.Document) error {
	for _, e := range m.data {
		if e.BusinessID == d.BusinessID && e.DocumentType == d.DocumentType && e.DocumentNumber == d.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	m.data[d.ID] = d
	return nil
}
func (m *memDocuments) GetByID(_ context.Context, id string) (*entity.Document, error) {
	return m.data[id], nil
}
func (m *memDocuments) ListByBusiness(_ context.Context, businessID, documentType string, _, _ int) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range m.data {
		if d.BusinessID == businessID && (documentType == "" || d.DocumentType == documentType) {
			out = append(out, d)
		}
	}
	return out, nil
}
func (m *memDocuments) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

type memUsers struct{ data map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	for _, e := range m.data {
		if e.Email == u.Email || e.Username == u.Username {
			return domain.ErrEmailAlreadyExists
		}
	}
	m.data[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) { return m.data[id], nil }
func (m *memUsers) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range m.data {
		if u.Email == login || u.Username == login {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) ListByBusiness(_ context.Context, businessID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.data {
		if u.BusinessID == businessID {
			out = append(out, u)
		}
	}
	return out, nil
}
