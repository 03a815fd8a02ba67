package content

import (
	"context"
	"errors"
	"strings"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/logger"
)

const (
	defaultNewsLimit = 50
	maxNewsLimit     = 200
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log.With(map[string]interface{}{"component": "content"})}
}

// News lists published articles, newest first.
func (s *Service) News(ctx context.Context, featuredOnly bool, limit int) ([]Article, error) {
	return s.listArticles(ctx, NewsQuery{FeaturedOnly: featuredOnly, OnlyPublished: true, Limit: limit})
}

// AllNews is the admin view, drafts included.
func (s *Service) AllNews(ctx context.Context) ([]Article, error) {
	return s.listArticles(ctx, NewsQuery{Limit: maxNewsLimit})
}

func (s *Service) listArticles(ctx context.Context, q NewsQuery) ([]Article, error) {
	if q.Limit <= 0 {
		q.Limit = defaultNewsLimit
	}
	if q.Limit > maxNewsLimit {
		q.Limit = maxNewsLimit
	}
	out, err := s.repo.ListArticles(ctx, q)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Article returns a published article; drafts are not found.
func (s *Service) Article(ctx context.Context, id int64) (*Article, error) {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return nil, mapErr(err, "Noticia no encontrada")
	}
	if !a.Published {
		return nil, apperr.NotFound("Noticia no encontrada")
	}
	return a, nil
}

func (s *Service) CreateArticle(ctx context.Context, req ArticleRequest) (*Article, error) {
	a := &Article{Published: true, Tags: []string{}}
	applyArticle(a, req)
	required := []struct{ field, v string }{
		{"title", a.Title}, {"excerpt", a.Excerpt}, {"content", a.Content}, {"author", a.Author}, {"category", a.Category},
	}
	for _, r := range required {
		if r.v == "" {
			return nil, apperr.Validation("El campo %s es obligatorio", r.field)
		}
	}
	if err := s.repo.CreateArticle(ctx, a); err != nil {
		return nil, apperr.Internal(err)
	}
	s.log.Info("article created", map[string]interface{}{"article_id": a.ID})
	return a, nil
}

func (s *Service) UpdateArticle(ctx context.Context, id int64, req ArticleRequest) (*Article, error) {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return nil, mapErr(err, "Noticia no encontrada")
	}
	applyArticle(a, req)
	if a.Title == "" || a.Content == "" {
		return nil, apperr.Validation("El título y el contenido no pueden quedar vacíos")
	}
	if err := s.repo.UpdateArticle(ctx, a); err != nil {
		return nil, mapErr(err, "Noticia no encontrada")
	}
	return a, nil
}

func (s *Service) DeleteArticle(ctx context.Context, id int64) error {
	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return mapErr(err, "Noticia no encontrada")
	}
	return nil
}

func applyArticle(a *Article, req ArticleRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&a.Title, req.Title)
	set(&a.Excerpt, req.Excerpt)
	set(&a.Content, req.Content)
	set(&a.Author, req.Author)
	set(&a.Category, req.Category)
	set(&a.Image, req.Image)
	if req.Featured != nil {
		a.Featured = *req.Featured
	}
	if req.Published != nil {
		a.Published = *req.Published
	}
	if req.Tags != nil {
		a.Tags = append([]string{}, *req.Tags...)
	}
}

func (s *Service) Pages(ctx context.Context, page, section string) ([]Page, error) {
	out, err := s.repo.ListPages(ctx, strings.TrimSpace(page), strings.TrimSpace(section))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) CreatePage(ctx context.Context, req PageRequest) (*Page, error) {
	p := &Page{ID: strings.TrimSpace(req.ID)}
	applyPage(p, req)
	if p.ID == "" || p.Title == "" || p.Content == "" || p.Section == "" || p.Page == "" {
		return nil, apperr.Validation("id, title, content, section y page son obligatorios")
	}
	if err := s.repo.CreatePage(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperr.Conflict("Ya existe contenido con ese ID")
		}
		return nil, apperr.Internal(err)
	}
	return p, nil
}

func (s *Service) UpdatePage(ctx context.Context, id string, req PageRequest) (*Page, error) {
	p, err := s.repo.GetPage(ctx, id)
	if err != nil {
		return nil, mapErr(err, "Contenido no encontrado")
	}
	applyPage(p, req)
	if err := s.repo.UpdatePage(ctx, p); err != nil {
		return nil, mapErr(err, "Contenido no encontrado")
	}
	return p, nil
}

func (s *Service) DeletePage(ctx context.Context, id string) error {
	if err := s.repo.DeletePage(ctx, id); err != nil {
		return mapErr(err, "Contenido no encontrado")
	}
	return nil
}

func applyPage(p *Page, req PageRequest) {
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Section != nil {
		p.Section = strings.TrimSpace(*req.Section)
	}
	if req.Page != nil {
		p.Page = strings.TrimSpace(*req.Page)
	}
}

func mapErr(err error, notFound string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("%s", notFound)
	}
	return apperr.Internal(err)
}
