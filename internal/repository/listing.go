// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rratchapol/backend/internal/models"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize applies when a listing request omits the page size.
	DefaultPageSize = 10
	// MaxPageSize caps a single listing page.
	MaxPageSize = 100
)

// ListParams are the caller-supplied knobs of a paginated listing.
type ListParams struct {
	// PageSize must be positive.
	PageSize int
	// Offset is a row offset into the filtered, sorted collection.
	Offset int
	// SortColumn indexes the entity's column whitelist; negative means no sort.
	SortColumn int
	// SortDir is "asc" or "desc"; anything else disables the sort pair.
	SortDir string
	// Search is an optional case-insensitive substring matched against every
	// whitelisted column.
	Search string
}

// ListResult is one page of a filtered, sorted collection.
type ListResult[T any] struct {
	Rows     []T   `json:"rows"`
	Total    int64 `json:"total"`
	Page     int   `json:"current_page"`
	PageSize int   `json:"per_page"`
}

// rowNumbered is implemented by entities that carry a listing rank.
type rowNumbered interface {
	SetRowNumber(n int)
}

// listCollection runs the generic listing query over an entity's collection.
// columns is the server-defined whitelist: it drives the SELECT list, the
// searchable set, and the orderable set, so client input never names a raw
// storage column.
func listCollection[T any](ctx context.Context, db *gorm.DB, columns []string, p ListParams) (*ListResult[T], error) {
	if p.PageSize <= 0 {
		return nil, models.NewValidationError("The length must be a positive integer.")
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Offset < 0 {
		return nil, models.NewValidationError("The start must not be negative.")
	}

	var model T
	q := db.WithContext(ctx).Model(&model).Select(columns)

	if term := strings.TrimSpace(p.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, fmt.Sprintf("LOWER(CAST(%s AS TEXT)) LIKE ?", col))
			args = append(args, like)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// An invalid sort pair falls back to storage order rather than failing.
	dir := strings.ToLower(p.SortDir)
	if p.SortColumn >= 0 && p.SortColumn < len(columns) && (dir == "asc" || dir == "desc") {
		q = q.Order(columns[p.SortColumn] + " " + strings.ToUpper(dir))
	}

	// Pre-allocated so an empty page serializes as [] rather than null.
	rows := make([]T, 0, p.PageSize)
	if err := q.Offset(p.Offset).Limit(p.PageSize).Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	for i := range rows {
		if n, ok := any(&rows[i]).(rowNumbered); ok {
			n.SetRowNumber(p.Offset + i + 1)
		}
	}

	return &ListResult[T]{
		Rows:     rows,
		Total:    total,
		Page:     p.Offset/p.PageSize + 1,
		PageSize: p.PageSize,
	}, nil
}
