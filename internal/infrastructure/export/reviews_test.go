package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newReview(t *testing.T, customer string, rating int, created time.Time) review.Review {
	t.Helper()
	r, err := review.NewReview(review.NewReviewInput{
		ProductID:     uuid.New(),
		ProductName:   "Chanel Classic Flap",
		CustomerName:  customer,
		CustomerEmail: customer + "@example.com",
		Rating:        rating,
		Comment:       "Authentic, as described",
	})
	require.NoError(t, err)
	r.CreatedAt = created
	return *r
}

func TestReviewExporter_WriteReviews(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	reviews := []review.Review{
		newReview(t, "meera", 5, created),
		newReview(t, "kabir", 3, created.Add(-time.Hour)),
	}

	var buf bytes.Buffer
	ist := time.FixedZone("IST", 5*3600+1800)
	require.NoError(t, NewReviewExporter(ist).WriteReviews(&buf, reviews))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReviewSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Product", "Customer", "Email", "Rating", "Comment", "Date"}, rows[0])
	assert.Equal(t, []string{
		reviews[0].ID.String(),
		"Chanel Classic Flap",
		"meera",
		"meera@example.com",
		"5",
		"Authentic, as described",
		"2026-03-14 15:00",
	}, rows[1])
	assert.Equal(t, "kabir", rows[2][2])
}

func TestReviewExporter_EmptyExportHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReviewExporter(nil).WriteReviews(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReviewSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 7)
}

func TestReviewFilename(t *testing.T) {
	assert.Equal(t, "reviews-20260102.xlsx", ReviewFilename(time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)))
}
