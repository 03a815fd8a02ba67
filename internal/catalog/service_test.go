package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/logger"
)

type memRepo struct {
	products   map[int64]Product
	categories map[string]Category
	specials   []Special
	nextID     int64
	gotDate    string
}

func newMemRepo() *memRepo {
	return &memRepo{products: map[int64]Product{}, categories: map[string]Category{}}
}

func (m *memRepo) ListProducts(ctx context.Context, category string, onlyAvailable bool) ([]Product, error) {
	out := []Product{}
	for _, p := range m.products {
		if (category == "" || p.Category == category) && (!onlyAvailable || p.Available) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *memRepo) CreateProduct(ctx context.Context, p *Product) error {
	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = *p
	return nil
}

func (m *memRepo) UpdateProduct(ctx context.Context, p *Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	m.products[p.ID] = *p
	return nil
}

func (m *memRepo) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memRepo) ListCategories(ctx context.Context) ([]Category, error) {
	out := []Category{}
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memRepo) CreateCategory(ctx context.Context, c *Category) error {
	c.CreatedAt = time.Now()
	m.categories[c.ID] = *c
	return nil
}

func (m *memRepo) UpdateCategory(ctx context.Context, c *Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return ErrNotFound
	}
	m.categories[c.ID] = *c
	return nil
}

func (m *memRepo) DeleteCategory(ctx context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

func (m *memRepo) CountProductsInCategory(ctx context.Context, id string) (int, error) {
	n := 0
	for _, p := range m.products {
		if p.Category == id {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) ListSpecials(ctx context.Context, date string, onlyAvailable bool) ([]Special, error) {
	m.gotDate = date
	return m.specials, nil
}

func (m *memRepo) CreateSpecial(ctx context.Context, productID int64, discount float64, date string) (int64, error) {
	return 9, nil
}

func (m *memRepo) DeleteSpecial(ctx context.Context, id int64) error { return ErrNotFound }

func (m *memRepo) Stats(ctx context.Context, today string) (*DashboardStats, error) {
	return &DashboardStats{}, nil
}

func newTestService(t *testing.T, repo *memRepo, now time.Time) *Service {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return NewService(repo, loc, func() time.Time { return now }, logger.NewTest(t))
}

func TestLookup(t *testing.T) {
	repo := newMemRepo()
	repo.products[1] = Product{ID: 1, Name: "Cappuccino", Price: 3.5, Category: "cafes", Available: true}
	repo.products[2] = Product{ID: 2, Name: "Mocha", Price: 4, Category: "cafes", Available: false}
	svc := newTestService(t, repo, time.Now())
	ctx := context.Background()

	p, err := svc.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cappuccino", p.Name)

	_, err = svc.Lookup(ctx, 2)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Lookup(ctx, 99)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Product(ctx, 2)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, "Producto no encontrado", apperr.PublicMessage(err))
}

func TestMapErrKeepsMessageVerbatim(t *testing.T) {
	err := mapErr(ErrNotFound, "Mezcla 100% arábica no encontrada")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, "Mezcla 100% arábica no encontrada", apperr.PublicMessage(err))
}

func TestTodayUsesStoreLocation(t *testing.T) {
	repo := newMemRepo()
	// 23:30 UTC on the 14th is already the 15th in Madrid.
	svc := newTestService(t, repo, time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC))

	_, err := svc.TodaySpecials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", repo.gotDate)
}

func TestDiscountedPrice(t *testing.T) {
	s := Special{Product: Product{Price: 3.5}, Discount: 20}
	assert.Equal(t, 2.8, s.DiscountedPrice())

	s = Special{Product: Product{Price: 2.99}, Discount: 15}
	assert.Equal(t, 2.54, s.DiscountedPrice())
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newMemRepo()
	repo.categories["cafes"] = Category{ID: "cafes", Name: "Cafés"}
	repo.products[1] = Product{ID: 1, Name: "Latte", Category: "cafes", Available: true}
	svc := newTestService(t, repo, time.Now())

	err := svc.DeleteCategory(context.Background(), "cafes")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	err = svc.DeleteCategory(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestCreateProductValidation(t *testing.T) {
	repo := newMemRepo()
	repo.categories["cafes"] = Category{ID: "cafes", Name: "Cafés"}
	svc := newTestService(t, repo, time.Now())
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductRequest{Name: "Latte", Price: 3, Category: "teas"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.CreateProduct(ctx, ProductRequest{Name: "Latte", Price: -1, Category: "cafes"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	p, err := svc.CreateProduct(ctx, ProductRequest{Name: " Latte ", Price: 3.456, Category: "cafes"})
	require.NoError(t, err)
	assert.Equal(t, "Latte", p.Name)
	assert.Equal(t, 3.46, p.Price)
	assert.True(t, p.Available)
}

func TestCreateSpecial(t *testing.T) {
	repo := newMemRepo()
	repo.products[1] = Product{ID: 1, Name: "Latte", Category: "cafes", Price: 3, Available: true}
	svc := newTestService(t, repo, time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateSpecial(ctx, SpecialRequest{ProductID: 1, Discount: 0})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.CreateSpecial(ctx, SpecialRequest{ProductID: 1, Discount: 10, Date: "15/10/2026"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	sp, err := svc.CreateSpecial(ctx, SpecialRequest{ProductID: 1, Discount: 10})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", sp.Date)
	assert.Equal(t, 2.7, sp.DiscountedPrice())
}
