package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Filter is a column → value equality filter merged from path parameters and
// the caller-supplied JSON filter query parameter.
type Filter map[string]any

func (f Filter) Empty() bool { return len(f) == 0 }

// Merge returns a copy of f with other on top of it.
func (f Filter) Merge(other Filter) Filter {
	out := make(Filter, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ListOptions carries the pagination, sorting and projection of one list
// request. Sort entries use the column name with an optional '-' prefix for
// descending order. All names are validated against the per-resource column
// sets before they reach the repository.
type ListOptions struct {
	Page   int
	Limit  int
	Sort   []string
	Fields []string
}

// Apply attaches sorting, projection and pagination to a pending query.
func (o ListOptions) Apply(q *gorm.DB) *gorm.DB {
	if len(o.Sort) > 0 {
		for _, s := range o.Sort {
			if col, ok := strings.CutPrefix(s, "-"); ok {
				q = q.Order(col + " DESC")
			} else {
				q = q.Order(s + " ASC")
			}
		}
	} else {
		q = q.Order("created_at DESC")
	}
	if len(o.Fields) > 0 {
		q = q.Select(o.Fields)
	}
	page := o.Page
	if page < 1 {
		page = 1
	}
	limit := o.Limit
	if limit < 1 {
		limit = 50
	}
	return q.Offset((page - 1) * limit).Limit(limit)
}
