// Package filters turns loosely typed listing parameters into a typed
// filter set and applies it to a gorm query. Values that cannot be
// understood are dropped rather than reported.
package filters

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ismaelescalante7/challenge-leverbox/constants"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskFilters struct {
	Status        *models.TaskStatus
	DueDate       *models.Date
	PriorityID    *uint
	TagIDs        []uint
	Overdue       bool
	Search        string
	SortBy        string
	SortDirection string

	// Today anchors the overdue predicate.
	Today models.Date
}

// Pagination is a 1-based page request with PerPage clamped to
// constants.MaxPerPage.
type Pagination struct {
	Page    int
	PerPage int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Parse builds a TaskFilters from raw values. Accepted value types are
// strings, string slices, numbers, bools and []any of those.
func Parse(raw map[string]any, today models.Date) TaskFilters {
	f := TaskFilters{
		SortBy:        constants.DefaultSortBy,
		SortDirection: constants.DefaultSortDirection,
		Today:         today,
	}

	if s, ok := scalar(raw["status"]); ok {
		status := models.TaskStatus(s)
		if status.IsValid() {
			f.Status = &status
		}
	}

	if s, ok := scalar(raw["due_date"]); ok && s != "" {
		if d, err := models.ParseDate(s); err == nil {
			f.DueDate = &d
		}
	}

	if s, ok := scalar(raw["priority_id"]); ok {
		if id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil && id > 0 {
			pid := uint(id)
			f.PriorityID = &pid
		}
	}

	if v, ok := raw["tag_ids"]; ok {
		f.TagIDs = parseIDs(v)
	}

	if s, ok := scalar(raw["overdue"]); ok {
		f.Overdue = truthy(s)
	}

	if s, ok := scalar(raw["search"]); ok {
		f.Search = strings.TrimSpace(s)
	}

	if s, ok := scalar(raw["sort_by"]); ok && slices.Contains(constants.SortableColumns, s) {
		f.SortBy = s
	}

	if s, ok := scalar(raw["sort_direction"]); ok {
		switch dir := strings.ToLower(strings.TrimSpace(s)); dir {
		case constants.SortAsc, constants.SortDesc:
			f.SortDirection = dir
		}
	}

	return f
}

// ParsePagination reads page and per_page, defaulting and clamping both.
// Page is capped at constants.MaxPage.
func ParsePagination(raw map[string]any) Pagination {
	p := Pagination{Page: constants.DefaultPage, PerPage: constants.DefaultPerPage}

	if s, ok := scalar(raw["page"]); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.Page = min(n, constants.MaxPage)
		}
	}
	if s, ok := scalar(raw["per_page"]); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.PerPage = n
		}
	}
	if p.PerPage > constants.MaxPerPage {
		p.PerPage = constants.MaxPerPage
	}
	return p
}

// Apply adds the WHERE predicates of f to q. Ordering is left to Sort so
// the same filtered query can be counted.
func Apply(q *gorm.DB, f TaskFilters) *gorm.DB {
	if f.Status != nil {
		q = q.Where("tasks.status = ?", *f.Status)
	}
	if f.DueDate != nil {
		q = q.Where("tasks.due_date = ?", *f.DueDate)
	}
	if f.PriorityID != nil {
		q = q.Where("tasks.priority_id = ?", *f.PriorityID)
	}
	if len(f.TagIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM task_tag WHERE task_tag.task_id = tasks.id AND task_tag.tag_id IN ?)", f.TagIDs)
	}
	if f.Overdue {
		q = q.Where("tasks.due_date IS NOT NULL AND tasks.due_date < ? AND tasks.status <> ?", f.Today, models.StatusCompleted)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("(tasks.title LIKE ? OR tasks.description LIKE ?)", like, like)
	}
	return q
}

// Sort orders q by f's column and direction, with id as tiebreaker.
func Sort(q *gorm.DB, f TaskFilters) *gorm.DB {
	column := f.SortBy
	if !slices.Contains(constants.SortableColumns, column) {
		column = constants.DefaultSortBy
	}
	desc := f.SortDirection != constants.SortAsc
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Table: "tasks", Name: column}, Desc: desc})
	if column != "id" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Table: "tasks", Name: "id"}, Desc: desc})
	}
	return q
}

// Applied reports the recognised filters back in their canonical form.
func (f TaskFilters) Applied() map[string]any {
	out := map[string]any{}
	if f.Status != nil {
		out["status"] = string(*f.Status)
	}
	if f.DueDate != nil {
		out["due_date"] = f.DueDate.String()
	}
	if f.PriorityID != nil {
		out["priority_id"] = *f.PriorityID
	}
	if len(f.TagIDs) > 0 {
		out["tag_ids"] = f.TagIDs
	}
	if f.Overdue {
		out["overdue"] = true
	}
	if f.Search != "" {
		out["search"] = f.Search
	}
	return out
}

func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []string:
		if len(val) == 0 {
			return "", false
		}
		return val[0], true
	case bool:
		return strconv.FormatBool(val), true
	case int, int64, uint, uint64, float64:
		return fmt.Sprint(val), true
	}
	return "", false
}

func parseIDs(v any) []uint {
	var parts []string
	switch val := v.(type) {
	case string:
		parts = strings.Split(val, ",")
	case []string:
		for _, s := range val {
			parts = append(parts, strings.Split(s, ",")...)
		}
	case []any:
		for _, item := range val {
			if s, ok := scalar(item); ok {
				parts = append(parts, s)
			}
		}
	case []uint:
		return dedupe(val)
	case []int:
		for _, n := range val {
			parts = append(parts, strconv.Itoa(n))
		}
	default:
		if s, ok := scalar(val); ok {
			parts = []string{s}
		}
	}

	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || n == 0 {
			continue
		}
		ids = append(ids, uint(n))
	}
	return dedupe(ids)
}

func dedupe(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
