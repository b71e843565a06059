package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/review"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReviewRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormReviewRepository(newTestDB(t))

	productID := uuid.New()
	base := time.Now().Add(-time.Hour)
	inputs := []review.NewReviewInput{
		{ProductID: productID, ProductName: "Classic Flap", CustomerName: "Asha", CustomerEmail: "asha@example.com", Rating: 5, Comment: "Pristine"},
		{ProductID: productID, ProductName: "Classic Flap", CustomerName: "Vikram", CustomerEmail: "vik@example.com", Rating: 3, Comment: "Some 100% wear"},
		{ProductID: uuid.New(), ProductName: "Birkin 25", CustomerName: "Nisha", CustomerEmail: "nisha@example.com", Rating: 4, Comment: "Lovely"},
	}
	var created []*review.Review
	for i, in := range inputs {
		rv, err := review.NewReview(in)
		require.NoError(t, err)
		rv.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, rv))
		created = append(created, rv)
	}

	t.Run("pages newest first", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 2}
		items, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 2)
		assert.Equal(t, "Nisha", items[0].CustomerName)
		assert.Equal(t, "Vikram", items[1].CustomerName)
	})

	t.Run("search is case-insensitive across columns", func(t *testing.T) {
		for _, term := range []string{"BIRKIN", "nisha@", "lovely"} {
			filter := shared.DefaultFilter()
			filter.Search = term
			items, total, err := repo.FindAll(ctx, filter)
			require.NoError(t, err, term)
			assert.Equal(t, int64(1), total, term)
			assert.Equal(t, created[2].ID, items[0].ID, term)
		}
	})

	t.Run("escapes like wildcards", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "100%"
		_, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("filters by product", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["product_id"] = productID
		_, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("export returns all matches without paging", func(t *testing.T) {
		items, err := repo.FindAllForExport(ctx, "classic")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Vikram", items[0].CustomerName)

		all, err := repo.FindAllForExport(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created[0].ID))
		_, err := repo.FindByID(ctx, created[0].ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created[0].ID), shared.ErrNotFound)
	})
}
