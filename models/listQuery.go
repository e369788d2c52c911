package models

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

type SortSpec struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// PageWindow is a zero-based page index plus a page size. The fetched window
// is rows [Index*Size, Index*Size+Size-1].
type PageWindow struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// Condition is the closed set of filter operators. New operators are added as
// new concrete types with a compiler case; a field id is never interpreted
// generically.
type Condition interface {
	conditionField() string
}

// TextMatch is a case-insensitive partial match on one column, or an
// OR-combination across several columns when the field declares multiple
// sources (e.g. installer company OR first OR last name).
type TextMatch struct {
	Field string
	Value string
}

// ExactMatch is strict equality (status enums, ids, flag markers).
type ExactMatch struct {
	Field string
	Value any
}

// DateRange is an inclusive bound on one date column. Either bound may be
// nil (open range); both nil removes the filter entirely.
type DateRange struct {
	Field string
	From  *time.Time
	To    *time.Time
}

func (c TextMatch) conditionField() string  { return c.Field }
func (c ExactMatch) conditionField() string { return c.Field }
func (c DateRange) conditionField() string  { return c.Field }

type FieldKind int

const (
	KindText FieldKind = iota
	KindTextMulti
	KindExact
	KindDateRange
)

// JoinSpec names the join a foreign field needs. Whether the join is inner
// or left is an explicit per-field decision (ForceInner on the FieldSpec),
// never inferred: an inner join drops rows without the joined record, a left
// join keeps them with nulls.
type JoinSpec struct {
	Name        string
	InnerClause string
	LeftClause  string
}

type FieldSpec struct {
	Kind       FieldKind
	Columns    []string
	Join       *JoinSpec
	ForceInner bool
}

// ResourceSpec describes one list screen's queryable surface: the table or
// pre-joined view it reads, its closed filter field table, its sortable
// columns and its default order.
type ResourceSpec struct {
	Name        string
	Table       string
	Fields      map[string]FieldSpec
	Sortable    map[string]string
	DefaultSort string
	// StableKey is a deterministic secondary order for projections without a
	// unique natural order, so pages stay stable while rows are inserted.
	StableKey string
	// Select restricts the projected columns; needed when a base table is
	// joined and `*` would collide.
	Select string
}

// ListQuery is a compiled, executable list query.
type ListQuery struct {
	resource *ResourceSpec
	conds    []Condition
	sort     *SortSpec
	page     PageWindow
}

// CompileListQuery validates a filter/sort/page description against the
// resource's field table. Misconfigured filters (unknown field, operator not
// matching the field kind) are programmer errors and fail loudly.
func CompileListQuery(resource string, conds []Condition, sort *SortSpec, page PageWindow) (*ListQuery, error) {
	spec, ok := resourceRegistry[resource]
	if !ok {
		return nil, fmt.Errorf("unknown list resource %q", resource)
	}

	for _, cond := range conds {
		field, ok := spec.Fields[cond.conditionField()]
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q for resource %q", cond.conditionField(), resource)
		}
		switch cond.(type) {
		case TextMatch:
			if field.Kind != KindText && field.Kind != KindTextMulti {
				return nil, fmt.Errorf("field %q of %q does not accept a text match", cond.conditionField(), resource)
			}
		case ExactMatch:
			if field.Kind != KindExact {
				return nil, fmt.Errorf("field %q of %q does not accept an exact match", cond.conditionField(), resource)
			}
		case DateRange:
			if field.Kind != KindDateRange {
				return nil, fmt.Errorf("field %q of %q does not accept a date range", cond.conditionField(), resource)
			}
		default:
			return nil, fmt.Errorf("unsupported condition type %T", cond)
		}
	}

	if sort != nil {
		if _, ok := spec.Sortable[sort.Field]; !ok {
			return nil, fmt.Errorf("field %q of %q is not sortable", sort.Field, resource)
		}
		if sort.Direction != SortAsc && sort.Direction != SortDesc {
			return nil, fmt.Errorf("invalid sort direction %q", sort.Direction)
		}
	}

	if page.Index < 0 {
		page.Index = 0
	}
	if page.Size <= 0 {
		page.Size = DefaultPageSize
	}
	if page.Size > MaxPageSize {
		page.Size = MaxPageSize
	}

	return &ListQuery{resource: spec, conds: conds, sort: sort, page: page}, nil
}

// buildPredicates applies joins and WHERE clauses only; it is shared by the
// count query and the windowed row query so both see the same row set.
func (q *ListQuery) buildPredicates(dbCtx *gorm.DB) *gorm.DB {
	// collect joins needed by the active filters; a filter on a ForceInner
	// field upgrades the join from left to inner
	type joinUse struct {
		spec  *JoinSpec
		inner bool
	}
	joins := make(map[string]*joinUse)
	for _, cond := range q.conds {
		field := q.resource.Fields[cond.conditionField()]
		if field.Join == nil {
			continue
		}
		use, ok := joins[field.Join.Name]
		if !ok {
			use = &joinUse{spec: field.Join}
			joins[field.Join.Name] = use
		}
		if field.ForceInner {
			use.inner = true
		}
	}
	for _, use := range joins {
		if use.inner {
			dbCtx = dbCtx.Joins(use.spec.InnerClause)
		} else {
			dbCtx = dbCtx.Joins(use.spec.LeftClause)
		}
	}

	for _, cond := range q.conds {
		field := q.resource.Fields[cond.conditionField()]
		switch c := cond.(type) {
		case TextMatch:
			if c.Value == "" {
				continue
			}
			pattern := "%" + c.Value + "%"
			if len(field.Columns) == 1 {
				dbCtx = dbCtx.Where(field.Columns[0]+" LIKE ?", pattern)
			} else {
				clauses := make([]string, 0, len(field.Columns))
				args := make([]any, 0, len(field.Columns))
				for _, column := range field.Columns {
					clauses = append(clauses, column+" LIKE ?")
					args = append(args, pattern)
				}
				dbCtx = dbCtx.Where("("+strings.Join(clauses, " OR ")+")", args...)
			}
		case ExactMatch:
			dbCtx = dbCtx.Where(field.Columns[0]+" = ?", c.Value)
		case DateRange:
			if c.From != nil && c.To != nil {
				dbCtx = dbCtx.Where(field.Columns[0]+" BETWEEN ? AND ?", *c.From, *c.To)
			} else if c.From != nil {
				dbCtx = dbCtx.Where(field.Columns[0]+" >= ?", *c.From)
			} else if c.To != nil {
				dbCtx = dbCtx.Where(field.Columns[0]+" <= ?", *c.To)
			}
			// both bounds absent: filter removed, no predicate
		}
	}

	return dbCtx
}

// buildWindow applies ordering and the page window on top of the predicates.
func (q *ListQuery) buildWindow(dbCtx *gorm.DB) *gorm.DB {
	dbCtx = q.buildPredicates(dbCtx)

	if q.resource.Select != "" {
		dbCtx = dbCtx.Select(q.resource.Select)
	}
	if q.sort != nil {
		dbCtx = dbCtx.Order(q.resource.Sortable[q.sort.Field] + " " + string(q.sort.Direction))
	} else if q.resource.DefaultSort != "" {
		dbCtx = dbCtx.Order(q.resource.DefaultSort)
	}
	if q.resource.StableKey != "" {
		dbCtx = dbCtx.Order(q.resource.StableKey)
	}

	return dbCtx.Offset(q.page.Index * q.page.Size).Limit(q.page.Size)
}

// FetchWindow executes the compiled query in one round trip per concern: the
// exact row count under the same predicates, then the requested window.
// A page index past the end returns zero rows and the true count, not an
// error.
func FetchWindow[T any](ctx context.Context, q *ListQuery) ([]*T, int64, error) {
	db := config.GetDB()

	var count int64
	countCtx := q.buildPredicates(db.WithContext(ctx).Table(q.resource.Table))
	if err := countCtx.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting %s rows: %w", q.resource.Name, err)
	}

	rows := make([]*T, 0, q.page.Size)
	rowCtx := q.buildWindow(db.WithContext(ctx).Table(q.resource.Table))
	if err := rowCtx.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching %s rows: %w", q.resource.Name, err)
	}

	return rows, count, nil
}

// FetchAll executes the compiled query without the page window. Exports use
// this; list endpoints always go through FetchWindow.
func FetchAll[T any](ctx context.Context, q *ListQuery) ([]*T, error) {
	db := config.GetDB()

	dbCtx := q.buildPredicates(db.WithContext(ctx).Table(q.resource.Table))
	if q.resource.Select != "" {
		dbCtx = dbCtx.Select(q.resource.Select)
	}
	if q.sort != nil {
		dbCtx = dbCtx.Order(q.resource.Sortable[q.sort.Field] + " " + string(q.sort.Direction))
	} else if q.resource.DefaultSort != "" {
		dbCtx = dbCtx.Order(q.resource.DefaultSort)
	}
	if q.resource.StableKey != "" {
		dbCtx = dbCtx.Order(q.resource.StableKey)
	}

	var rows []*T
	if err := dbCtx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching %s rows: %w", q.resource.Name, err)
	}
	return rows, nil
}

// PageSize reports the effective (clamped) page size of the compiled query.
func (q *ListQuery) PageSize() int {
	return q.page.Size
}

// TotalPages derives the page count from the exact row count.
func TotalPages(totalRows int64, pageSize int) int {
	if totalRows <= 0 || pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalRows) / float64(pageSize)))
}
