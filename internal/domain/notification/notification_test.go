package notification

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	ref := uuid.New()
	n, err := NewNotification(CategoryVendor, "New vendor registration", "Meera Luxe is awaiting approval", &ref)

	require.NoError(t, err)
	assert.False(t, n.IsRead())
	assert.Equal(t, ref, *n.ReferenceID)

	_, err = NewNotification("order", "x", "", nil)
	assert.Error(t, err)

	_, err = NewNotification(CategorySystem, " ", "", nil)
	assert.Error(t, err)
}

func TestNewNotification_TruncatesTitleByRune(t *testing.T) {
	title := strings.Repeat("₹", 250)
	n, err := NewNotification(CategoryProduct, title, "", nil)

	require.NoError(t, err)
	assert.Equal(t, 200, utf8.RuneCountInString(n.Title))
	assert.True(t, utf8.ValidString(n.Title))
}

func TestNotification_MarkRead(t *testing.T) {
	n, err := NewNotification(CategorySystem, "Maintenance", "", nil)
	require.NoError(t, err)

	n.MarkRead()
	require.True(t, n.IsRead())
	first := *n.ReadAt

	n.MarkRead()
	assert.Equal(t, first, *n.ReadAt)
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		raw     string
		want    Tab
		wantErr bool
	}{
		{"", Tab{}, false},
		{"all", Tab{}, false},
		{"Unread", Tab{UnreadOnly: true}, false},
		{"review", Tab{Category: CategoryReview}, false},
		{"ticket", Tab{Category: CategoryTicket}, false},
		{"orders", Tab{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTab(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
