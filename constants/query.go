package constants

const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100
	// MaxPage keeps (page-1)*per_page within int range.
	MaxPage = 1<<31 - 1

	DefaultSortBy        = "created_at"
	DefaultSortDirection = "desc"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortableColumns are the task columns accepted by sort_by.
var SortableColumns = []string{
	"id",
	"title",
	"status",
	"due_date",
	"priority_id",
	"created_at",
	"updated_at",
}

// FilterKeys are the query keys the task listing understands.
var FilterKeys = []string{
	"status",
	"due_date",
	"priority_id",
	"tag_ids",
	"overdue",
	"search",
	"sort_by",
	"sort_direction",
}
