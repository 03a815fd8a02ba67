// Package catalog holds products, categories and daily specials.
package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/MikeMC777/cafe-demo/internal/store"
)

var (
	ErrNotFound = errors.New("catalog entry not found")
)

type Repository interface {
	ListProducts(ctx context.Context, category string, onlyAvailable bool) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error
	CountProductsInCategory(ctx context.Context, id string) (int, error)

	// ListSpecials returns specials for date (all dates when empty), highest discount first.
	ListSpecials(ctx context.Context, date string, onlyAvailable bool) ([]Special, error)
	CreateSpecial(ctx context.Context, productID int64, discount float64, date string) (int64, error)
	DeleteSpecial(ctx context.Context, id int64) error

	Stats(ctx context.Context, today string) (*DashboardStats, error)
}

type PGRepo struct{ db store.DB }

func NewPGRepo(db store.DB) *PGRepo { return &PGRepo{db: db} }

const productCols = `id, name, COALESCE(description,''), price::float8, category, COALESCE(image,''), available`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Available)
}

func (r *PGRepo) ListProducts(ctx context.Context, category string, onlyAvailable bool) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR available)
		ORDER BY category, name
	`, category, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var p Product
	err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) CreateProduct(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category, image, available)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6)
		RETURNING id
	`, p.Name, p.Description, p.Price, p.Category, p.Image, p.Available).Scan(&p.ID)
}

func (r *PGRepo) UpdateProduct(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5,
		    image = NULLIF($6,''), available = $7
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Price, p.Category, p.Image, p.Available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteProduct(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM specials WHERE product_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(description,''), COALESCE(icon,''), created_at
		FROM product_categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(description,''), COALESCE(icon,''), created_at
		FROM product_categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO product_categories (id, name, description, icon, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),NOW())
		RETURNING created_at
	`, c.ID, c.Name, c.Description, c.Icon).Scan(&c.CreatedAt)
}

func (r *PGRepo) UpdateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE product_categories
		SET name = $2, description = $3, icon = NULLIF($4,'')
		WHERE id = $1
		RETURNING created_at
	`, c.ID, c.Name, c.Description, c.Icon).Scan(&c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountProductsInCategory(ctx context.Context, id string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, id).Scan(&n)
	return n, err
}

func (r *PGRepo) ListSpecials(ctx context.Context, date string, onlyAvailable bool) ([]Special, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.discount::float8, to_char(s.date, 'YYYY-MM-DD'),
		       p.id, p.name, COALESCE(p.description,''), p.price::float8, p.category, COALESCE(p.image,''), p.available
		FROM specials s
		JOIN products p ON p.id = s.product_id
		WHERE ($1 = '' OR s.date = $1::date) AND (NOT $2 OR p.available)
		ORDER BY s.discount DESC, s.id
	`, date, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Special{}
	for rows.Next() {
		var s Special
		p := &s.Product
		if err := rows.Scan(&s.ID, &s.Discount, &s.Date,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Available); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateSpecial(ctx context.Context, productID int64, discount float64, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO specials (product_id, discount, date)
		VALUES ($1,$2,$3::date)
		RETURNING id
	`, productID, discount, date).Scan(&id)
	return id, err
}

func (r *PGRepo) DeleteSpecial(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM specials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Stats(ctx context.Context, today string) (*DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var s DashboardStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products WHERE available),
			(SELECT COUNT(*) FROM specials WHERE date = $1::date),
			(SELECT COUNT(*) FROM product_categories)
	`, today).Scan(&s.TotalProducts, &s.ActiveSpecials, &s.TotalCategories)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
