package content

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MikeMC777/cafe-demo/internal/store"
)

var (
	ErrNotFound  = errors.New("content not found")
	ErrDuplicate = errors.New("content id already exists")
)

type Repository interface {
	ListArticles(ctx context.Context, q NewsQuery) ([]Article, error)
	GetArticle(ctx context.Context, id int64) (*Article, error)
	CreateArticle(ctx context.Context, a *Article) error
	UpdateArticle(ctx context.Context, a *Article) error
	DeleteArticle(ctx context.Context, id int64) error

	ListPages(ctx context.Context, page, section string) ([]Page, error)
	GetPage(ctx context.Context, id string) (*Page, error)
	CreatePage(ctx context.Context, p *Page) error
	UpdatePage(ctx context.Context, p *Page) error
	DeletePage(ctx context.Context, id string) error
}

type PGRepo struct{ db store.DB }

func NewPGRepo(db store.DB) *PGRepo { return &PGRepo{db: db} }

const articleCols = `id, title, excerpt, content, author, category, featured, COALESCE(image,''),
	COALESCE(tags, '{}'), published, created_at, updated_at`

func scanArticle(row pgx.Row, a *Article) error {
	return row.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Author, &a.Category, &a.Featured,
		&a.Image, &a.Tags, &a.Published, &a.CreatedAt, &a.UpdatedAt)
}

func (r *PGRepo) ListArticles(ctx context.Context, q NewsQuery) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+articleCols+`
		FROM news_articles
		WHERE (NOT $1 OR published) AND (NOT $2 OR featured)
		ORDER BY created_at DESC
		LIMIT $3
	`, q.OnlyPublished, q.FeaturedOnly, q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Article{}
	for rows.Next() {
		var a Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetArticle(ctx context.Context, id int64) (*Article, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var a Article
	err := scanArticle(r.db.QueryRow(ctx, `SELECT `+articleCols+` FROM news_articles WHERE id = $1`, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGRepo) CreateArticle(ctx context.Context, a *Article) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO news_articles (title, excerpt, content, author, category, featured, image, tags, published, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8,$9,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`, a.Title, a.Excerpt, a.Content, a.Author, a.Category, a.Featured, a.Image, a.Tags, a.Published,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *PGRepo) UpdateArticle(ctx context.Context, a *Article) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE news_articles
		SET title=$2, excerpt=$3, content=$4, author=$5, category=$6, featured=$7,
			image=NULLIF($8,''), tags=$9, published=$10, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at
	`, a.ID, a.Title, a.Excerpt, a.Content, a.Author, a.Category, a.Featured, a.Image, a.Tags, a.Published,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) DeleteArticle(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM news_articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const pageCols = `id, title, content, section, page, updated_at`

func scanPage(row pgx.Row, p *Page) error {
	return row.Scan(&p.ID, &p.Title, &p.Content, &p.Section, &p.Page, &p.UpdatedAt)
}

// ListPages filters by page and section; an empty value matches everything.
func (r *PGRepo) ListPages(ctx context.Context, page, section string) ([]Page, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+pageCols+`
		FROM page_contents
		WHERE ($1 = '' OR page = $1) AND ($2 = '' OR section = $2)
		ORDER BY page, section
	`, page, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Page{}
	for rows.Next() {
		var p Page
		if err := scanPage(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetPage(ctx context.Context, id string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var p Page
	err := scanPage(r.db.QueryRow(ctx, `SELECT `+pageCols+` FROM page_contents WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) CreatePage(ctx context.Context, p *Page) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO page_contents (id, title, content, section, page, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING updated_at
	`, p.ID, p.Title, p.Content, p.Section, p.Page).Scan(&p.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) UpdatePage(ctx context.Context, p *Page) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE page_contents SET title=$2, content=$3, section=$4, page=$5, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.Title, p.Content, p.Section, p.Page).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) DeletePage(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM page_contents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
