package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/logger"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
	log  logger.Logger
}

// NewService builds the catalog service. "Today" is computed from now in loc.
func NewService(repo Repository, loc *time.Location, now func() time.Time, log logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, loc: loc, now: now, log: log.With(map[string]interface{}{"component": "catalog"})}
}

// Today returns the current calendar date in the store location.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(dateLayout)
}

// Products lists available products, optionally filtered by category.
func (s *Service) Products(ctx context.Context, category string) ([]Product, error) {
	out, err := s.repo.ListProducts(ctx, strings.TrimSpace(category), true)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// AllProducts lists every product including unavailable ones.
func (s *Service) AllProducts(ctx context.Context) ([]Product, error) {
	out, err := s.repo.ListProducts(ctx, "", false)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Product returns an available product.
func (s *Service) Product(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapErr(err, "Producto no encontrado")
	}
	if !p.Available {
		return nil, apperr.NotFound("Producto no encontrado")
	}
	return p, nil
}

// Lookup resolves a product for order intake. Missing or unavailable products
// are validation failures of the order, not lookups of a resource.
func (s *Service) Lookup(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.Validation("Producto %d no existe", id)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !p.Available {
		return nil, apperr.Validation("Producto %s no está disponible", p.Name)
	}
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	p := &Product{Available: true}
	if err := s.applyProduct(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, apperr.Internal(err)
	}
	s.log.Info("product created", map[string]interface{}{"product_id": p.ID, "name": p.Name})
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapErr(err, "Producto no encontrado")
	}
	if err := s.applyProduct(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, mapErr(err, "Producto no encontrado")
	}
	return p, nil
}

func (s *Service) applyProduct(ctx context.Context, p *Product, req ProductRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperr.Validation("El nombre del producto es obligatorio")
	}
	if req.Price < 0 {
		return apperr.Validation("El precio no puede ser negativo")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return apperr.Validation("La categoría es obligatoria")
	}
	if _, err := s.repo.GetCategory(ctx, category); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.Validation("La categoría %q no existe", category)
		}
		return apperr.Internal(err)
	}

	p.Name = name
	p.Description = strings.TrimSpace(req.Description)
	p.Price = decimal.NewFromFloat(req.Price).Round(2).InexactFloat64()
	p.Category = category
	p.Image = req.Image
	if req.Available != nil {
		p.Available = *req.Available
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return mapErr(err, "Producto no encontrado")
	}
	return nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	out, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	c := &Category{
		ID:          strings.TrimSpace(req.ID),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Icon:        req.Icon,
	}
	if c.ID == "" || c.Name == "" {
		return nil, apperr.Validation("El id y el nombre de la categoría son obligatorios")
	}
	if _, err := s.repo.GetCategory(ctx, c.ID); err == nil {
		return nil, apperr.Conflict("Ya existe una categoría con id %q", c.ID)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Internal(err)
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, apperr.Internal(err)
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*Category, error) {
	c := &Category{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Icon:        req.Icon,
	}
	if c.Name == "" {
		return nil, apperr.Validation("El nombre de la categoría es obligatorio")
	}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, mapErr(err, "Categoría no encontrada")
	}
	return c, nil
}

// DeleteCategory refuses to remove a category that products still reference.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.repo.GetCategory(ctx, id); err != nil {
		return mapErr(err, "Categoría no encontrada")
	}
	n, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if n > 0 {
		return apperr.Conflict("No se puede eliminar la categoría. Hay %d producto(s) que la usan.", n)
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return mapErr(err, "Categoría no encontrada")
	}
	return nil
}

// TodaySpecials lists today's specials on available products, highest discount first.
func (s *Service) TodaySpecials(ctx context.Context) ([]Special, error) {
	out, err := s.repo.ListSpecials(ctx, s.Today(), true)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) AllSpecials(ctx context.Context) ([]Special, error) {
	out, err := s.repo.ListSpecials(ctx, "", false)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) CreateSpecial(ctx context.Context, req SpecialRequest) (*Special, error) {
	if req.Discount <= 0 || req.Discount > 100 {
		return nil, apperr.Validation("El descuento debe estar entre 0 y 100")
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.Today()
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperr.Validation("Formato de fecha inválido. Use YYYY-MM-DD")
	}
	p, err := s.repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Validation("Producto %d no existe", req.ProductID)
		}
		return nil, apperr.Internal(err)
	}
	id, err := s.repo.CreateSpecial(ctx, p.ID, req.Discount, date)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Special{ID: id, Product: *p, Discount: req.Discount, Date: date}, nil
}

func (s *Service) DeleteSpecial(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSpecial(ctx, id); err != nil {
		return mapErr(err, "Especial no encontrado")
	}
	return nil
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	st, err := s.repo.Stats(ctx, s.Today())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return st, nil
}

func discounted(price, discount float64) float64 {
	p := decimal.NewFromFloat(price)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount).Div(decimal.NewFromInt(100)))
	return p.Mul(factor).Round(2).InexactFloat64()
}

func mapErr(err error, notFound string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("%s", notFound)
	}
	return apperr.Internal(err)
}
