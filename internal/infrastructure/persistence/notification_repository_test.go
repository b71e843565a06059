package persistence

import (
	"context"
	"testing"

	"github.com/sellaids/backend/internal/domain/notification"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormNotificationRepository(newTestDB(t))

	var feed []*notification.Notification
	for _, c := range []notification.Category{notification.CategoryVendor, notification.CategoryReview, notification.CategoryReview} {
		n, err := notification.NewNotification(c, "Title "+string(c), "message", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, n))
		feed = append(feed, n)
	}

	t.Run("tab filters", func(t *testing.T) {
		all, err := notification.ParseTab("all")
		require.NoError(t, err)
		_, total, err := repo.FindByTab(ctx, all, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		reviews, err := notification.ParseTab("review")
		require.NoError(t, err)
		items, total, err := repo.FindByTab(ctx, reviews, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, n := range items {
			assert.Equal(t, notification.CategoryReview, n.Category)
		}
	})

	t.Run("mark one read", func(t *testing.T) {
		feed[0].MarkRead()
		require.NoError(t, repo.Update(ctx, feed[0]))

		found, err := repo.FindByID(ctx, feed[0].ID)
		require.NoError(t, err)
		assert.True(t, found.IsRead())

		unread, err := repo.CountUnread(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), unread)

		tab, err := notification.ParseTab("unread")
		require.NoError(t, err)
		_, total, err := repo.FindByTab(ctx, tab, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("mark all read", func(t *testing.T) {
		updated, err := repo.MarkAllRead(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated)

		updated, err = repo.MarkAllRead(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), updated)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, feed[1].ID))
		assert.ErrorIs(t, repo.Delete(ctx, feed[1].ID), shared.ErrNotFound)
	})
}
