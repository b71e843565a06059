package persistence

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sortColumns whitelists the ORDER BY columns of one table. Client input
// never reaches SQL without passing through one of these.
type sortColumns map[string]struct{}

func newSortColumns(extra ...string) sortColumns {
	cols := sortColumns{"id": {}, "created_at": {}, "updated_at": {}}
	for _, c := range extra {
		cols[c] = struct{}{}
	}
	return cols
}

var (
	baseSortColumns    = newSortColumns()
	vendorSortColumns  = newSortColumns("owner_name", "business_name", "store_name", "city", "status", "approved_at")
	productSortColumns = newSortColumns("name", "brand", "category", "price", "stock", "status", "approval_status")
	ticketSortColumns  = newSortColumns("panel_type", "subject", "status")
	reviewSortColumns  = newSortColumns("product_name", "customer_name", "rating")
)

// column returns the requested column when whitelisted, fallback otherwise
func (s sortColumns) column(requested, fallback string) string {
	if _, ok := s[strings.TrimSpace(requested)]; ok {
		return strings.TrimSpace(requested)
	}
	return fallback
}

// sortDirection accepts "asc" in any case; everything else sorts descending
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// applyPaging orders by a whitelisted column and applies offset/limit.
// id breaks ties so pages stay stable.
func applyPaging(query *gorm.DB, filter shared.Filter, cols sortColumns, fallback string) *gorm.DB {
	dir := sortDirection(filter.OrderDir)
	return query.
		Order(cols.column(filter.OrderBy, fallback) + " " + dir).
		Order("id " + dir).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// applySearch adds a case-insensitive OR match of the search term over columns.
// LOWER(..) LIKE keeps the query portable between PostgreSQL and SQLite.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// filterString reads a non-empty string filter value
func filterString(filters map[string]any, key string) (string, bool) {
	raw, ok := filters[key]
	if !ok || raw == nil {
		return "", false
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		// named string types such as catalog.ApprovalStatus
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.String {
			return "", false
		}
		s = rv.String()
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// filterUUID reads a UUID filter value given as uuid.UUID, *uuid.UUID or string
func filterUUID(filters map[string]any, key string) (uuid.UUID, bool) {
	switch v := filters[key].(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, false
		}
		return *v, *v != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

// translateError maps GORM sentinels onto the domain's repository errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}

// updateAll writes every column of model, zero values included, and
// reports ErrNotFound when no row matched.
func updateAll(db *gorm.DB, model any) error {
	result := db.Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
