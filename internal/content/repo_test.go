package content

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGRepo_ListArticlesPassesFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	cols := []string{"id", "title", "excerpt", "content", "author", "category", "featured", "image",
		"tags", "published", "created_at", "updated_at"}
	mock.ExpectQuery(`FROM news_articles`).
		WithArgs(true, true, 5).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), "Nuevo tueste", "e", "c", "Equipo", "eventos", true, "", []string{"cafe"}, true, now, now))

	got, err := NewPGRepo(mock).ListArticles(context.Background(), NewsQuery{OnlyPublished: true, FeaturedOnly: true, Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"cafe"}, got[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_UpdatePageMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE page_contents`).
		WithArgs("nope", "t", "c", "s", "p").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))

	err = NewPGRepo(mock).UpdatePage(context.Background(), &Page{ID: "nope", Title: "t", Content: "c", Section: "s", Page: "p"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
