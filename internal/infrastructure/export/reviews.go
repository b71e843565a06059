// Package export renders admin downloads as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/sellaids/backend/internal/domain/review"
	"github.com/xuri/excelize/v2"
)

// ReviewSheet is the worksheet name inside review exports
const ReviewSheet = "Reviews"

// ContentTypeXLSX is the MIME type of an .xlsx workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var reviewHeader = []string{"ID", "Product", "Customer", "Email", "Rating", "Comment", "Date"}

var reviewColumnWidths = []float64{38, 32, 24, 30, 8, 60, 18}

// ReviewFilename returns reviews-YYYYMMDD.xlsx for the given day
func ReviewFilename(now time.Time) string {
	return fmt.Sprintf("reviews-%s.xlsx", now.Format("20060102"))
}

// ReviewExporter writes reviews to an .xlsx workbook
type ReviewExporter struct {
	location *time.Location
}

// NewReviewExporter creates an exporter. Dates are rendered in loc, or UTC
// when loc is nil.
func NewReviewExporter(loc *time.Location) *ReviewExporter {
	if loc == nil {
		loc = time.UTC
	}
	return &ReviewExporter{location: loc}
}

// WriteReviews streams one header row plus one row per review to w
func (e *ReviewExporter) WriteReviews(w io.Writer, reviews []review.Review) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", ReviewSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E8E2D6"}},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	sw, err := f.NewStreamWriter(ReviewSheet)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}
	for i, width := range reviewColumnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}

	header := make([]any, len(reviewHeader))
	for i, title := range reviewHeader {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: title}
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{Height: 20}); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}

	for i, r := range reviews {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		row := []any{
			r.ID.String(),
			r.ProductName,
			r.CustomerName,
			r.CustomerEmail,
			r.Rating,
			r.Comment,
			r.CreatedAt.In(e.location).Format("2006-01-02 15:04"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
