// Package repotest provides in-memory repositories for service and handler
// tests. They follow the same contracts as the PostgreSQL implementations.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"bizportal/internal/data/entity"
	"bizportal/internal/data/repository"

	"github.com/shopspring/decimal"
)

// Store is a shared in-memory database backing every fake repository.
type Store struct {
	mu       sync.Mutex
	users    map[int64]*entity.User
	products map[int64]entity.Product
	sales    map[int64]entity.Sale
	queries  map[int64]*entity.Query
	nextID   map[string]int64

	// Err, when set, is returned by every call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    map[int64]*entity.User{},
		products: map[int64]entity.Product{},
		sales:    map[int64]entity.Sale{},
		queries:  map[int64]*entity.Query{},
		nextID:   map[string]int64{},
	}
}

// Repository bundles fakes over s in the shape services expect.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &Users{s},
		MFA:     &MFA{s},
		Product: &Products{s},
		Sale:    &Sales{s},
		Query:   &Queries{s},
		Report:  &Reports{s},
	}
}

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// AddProduct inserts a catalog row and returns its id.
func (s *Store) AddProduct(name, category, price string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("products")
	s.products[id] = entity.Product{ID: id, Name: name, Category: category, Price: decimal.RequireFromString(price)}
	return id
}

// AddQuery inserts a query as-is and returns its id.
func (s *Store) AddQuery(q entity.Query) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.id("queries")
	s.queries[q.ID] = &q
	return q.ID
}

// Query returns a copy of a stored query.
func (s *Store) Query(id int64) (entity.Query, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queries[id]
	if !ok {
		return entity.Query{}, false
	}
	return *q, true
}

// User returns a copy of a stored user.
func (s *Store) User(id int64) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return entity.User{}, false
	}
	return *u, true
}

// Sales returns all recorded sales in id order.
func (s *Store) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type Users struct{ s *Store }

func (r *Users) CreateWithRoleQuota(_ context.Context, user *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if quota := user.Role.Quota(); quota > 0 {
		n := 0
		for _, u := range s.users {
			if u.Role == user.Role {
				n++
			}
		}
		if n >= quota {
			return repository.ErrRoleQuotaExceeded
		}
	}
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	user.ID = s.id("users")
	user.CreatedAt = time.Now()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (r *Users) FindByID(_ context.Context, id int64) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *Users) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Users) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type MFA struct{ s *Store }

func (r *MFA) Issue(_ context.Context, userID int64, code string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	c := code
	u.MFACode = &c
	return nil
}

func (r *MFA) Consume(_ context.Context, userID int64, code string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	u, ok := s.users[userID]
	if !ok || u.MFACode == nil || *u.MFACode != code {
		return false, nil
	}
	u.MFACode = nil
	return true, nil
}

type Products struct{ s *Store }

func (r *Products) FindAll(_ context.Context, category string) ([]entity.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []entity.Product
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Products) Categories(_ context.Context) ([]string, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type Sales struct{ s *Store }

func (r *Sales) CreateFromProduct(_ context.Context, productID, userID int64, at time.Time) (*entity.Sale, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.products[productID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	sale := entity.Sale{ID: s.id("sales"), ProductID: productID, UserID: userID, Amount: p.Price, SaleDate: at}
	s.sales[sale.ID] = sale
	return &sale, nil
}

func (r *Sales) FindByUserID(_ context.Context, userID int64) ([]entity.SaleDetail, error) {
	return r.details(func(sale entity.Sale) bool { return sale.UserID == userID })
}

func (r *Sales) FindAll(_ context.Context) ([]entity.SaleDetail, error) {
	return r.details(func(entity.Sale) bool { return true })
}

func (r *Sales) details(keep func(entity.Sale) bool) ([]entity.SaleDetail, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []entity.SaleDetail
	for _, sale := range s.sales {
		if !keep(sale) {
			continue
		}
		p := s.products[sale.ProductID]
		out = append(out, entity.SaleDetail{Sale: sale, ProductName: p.Name, Category: p.Category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type Queries struct{ s *Store }

func (r *Queries) Create(_ context.Context, q *entity.Query) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if q.Status == "" {
		q.Status = entity.QueryStatusPending
	}
	q.ID = s.id("queries")
	stored := *q
	s.queries[q.ID] = &stored
	return nil
}

func (r *Queries) FindByStatus(_ context.Context, status entity.QueryStatus) ([]entity.Query, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []entity.Query
	for _, q := range s.queries {
		if q.Status == status {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Queries) Resolve(_ context.Context, id int64, response string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	q, ok := s.queries[id]
	if !ok {
		return repository.ErrNotFound
	}
	resp := response
	q.Status = entity.QueryStatusComplete
	q.Response = &resp
	return nil
}

type Reports struct{ s *Store }

func (r *Reports) CountQueriesByStatus(_ context.Context) ([]entity.StatusCount, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := map[string]int64{}
	for _, q := range s.queries {
		counts[string(q.Status)]++
	}
	var out []entity.StatusCount
	for status, n := range counts {
		out = append(out, entity.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *Reports) SalesByCategory(_ context.Context) ([]entity.CategoryTotal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	totals := map[string]decimal.Decimal{}
	for _, sale := range s.sales {
		c := s.products[sale.ProductID].Category
		totals[c] = totals[c].Add(sale.Amount)
	}
	var out []entity.CategoryTotal
	for c, t := range totals {
		out = append(out, entity.CategoryTotal{Category: c, Total: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *Reports) IncomeByMonth(_ context.Context) ([]entity.MonthlyTotal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	totals := map[int]decimal.Decimal{}
	for _, sale := range s.sales {
		m := int(sale.SaleDate.Month())
		totals[m] = totals[m].Add(sale.Amount)
	}
	var out []entity.MonthlyTotal
	for m, t := range totals {
		out = append(out, entity.MonthlyTotal{Month: m, Total: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *Reports) TopProducts(_ context.Context, limit int) ([]entity.ProductPopularity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := map[int64]int64{}
	for _, sale := range s.sales {
		counts[sale.ProductID]++
	}
	var out []entity.ProductPopularity
	for id, n := range counts {
		out = append(out, entity.ProductPopularity{ProductID: id, Name: s.products[id].Name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
