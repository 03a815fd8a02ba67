// Package content serves the news section and the editable page texts of the site.
package content

import "time"

type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Featured  bool      `json:"featured"`
	Image     string    `json:"image,omitempty"`
	Tags      []string  `json:"tags"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is one editable text block, addressed by a caller-chosen id.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Section   string    `json:"section"`
	Page      string    `json:"page"`
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model ArticleRequest
type ArticleRequest struct {
	Title     *string   `json:"title,omitempty"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Author    *string   `json:"author,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Featured  *bool     `json:"featured,omitempty"`
	Image     *string   `json:"image,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	Published *bool     `json:"published,omitempty"`
}

// swagger:model PageRequest
type PageRequest struct {
	ID      string  `json:"id,omitempty" example:"home-hero"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Section *string `json:"section,omitempty" example:"hero"`
	Page    *string `json:"page,omitempty" example:"home"`
}

// NewsQuery filters the public news list.
type NewsQuery struct {
	FeaturedOnly  bool
	OnlyPublished bool
	Limit         int
}
