package resources

import (
	"net/url"
	"strconv"
	"time"

	"github.com/ismaelescalante7/challenge-leverbox/constants"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/repositories"
)

type PaginationResource struct {
	CurrentPage  int   `json:"current_page"`
	From         int   `json:"from"`
	LastPage     int   `json:"last_page"`
	PerPage      int   `json:"per_page"`
	To           int   `json:"to"`
	Total        int64 `json:"total"`
	HasMorePages bool  `json:"has_more_pages"`
}

type LinksResource struct {
	First   string  `json:"first"`
	Last    string  `json:"last"`
	Prev    *string `json:"prev"`
	Next    *string `json:"next"`
	Current string  `json:"current"`
}

type StatusOption struct {
	Value models.TaskStatus `json:"value"`
	Label string            `json:"label"`
	Color string            `json:"color"`
}

type ListFilters struct {
	AvailableStatuses []StatusOption `json:"available_statuses"`
	SortOptions       []string       `json:"sort_options"`
	SortDirections    []string       `json:"sort_directions"`
}

type ListMeta struct {
	Timestamp      string         `json:"timestamp"`
	AppliedFilters map[string]any `json:"applied_filters"`
}

// TaskList is the envelope body of a paginated task listing.
type TaskList struct {
	Success    bool               `json:"success"`
	Data       []TaskResource     `json:"data"`
	Pagination PaginationResource `json:"pagination"`
	Links      LinksResource      `json:"links"`
	Filters    ListFilters        `json:"filters"`
	Meta       ListMeta           `json:"meta"`
}

func NewPagination(p *repositories.Page) PaginationResource {
	return PaginationResource{
		CurrentPage:  p.Page,
		From:         p.From(),
		LastPage:     p.LastPage(),
		PerPage:      p.PerPage,
		To:           p.To(),
		Total:        p.Total,
		HasMorePages: p.HasMorePages(),
	}
}

// NewLinks builds page links from the request path and query, replacing
// only the page parameter.
func NewLinks(path string, query url.Values, p *repositories.Page) LinksResource {
	pageURL := func(n int) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(n))
		return path + "?" + q.Encode()
	}

	links := LinksResource{
		First:   pageURL(1),
		Last:    pageURL(p.LastPage()),
		Current: pageURL(p.Page),
	}
	if p.Page > 1 {
		prev := pageURL(min(p.Page-1, p.LastPage()))
		links.Prev = &prev
	}
	if p.HasMorePages() {
		next := pageURL(p.Page + 1)
		links.Next = &next
	}
	return links
}

func NewListFilters() ListFilters {
	statuses := make([]StatusOption, 0, len(models.TaskStatuses()))
	for _, s := range models.TaskStatuses() {
		statuses = append(statuses, StatusOption{Value: s, Label: StatusLabel(s), Color: StatusColor(s)})
	}
	return ListFilters{
		AvailableStatuses: statuses,
		SortOptions:       append([]string(nil), constants.SortableColumns...),
		SortDirections:    []string{constants.SortAsc, constants.SortDesc},
	}
}

func NewTaskList(page *repositories.Page, path string, query url.Values, applied map[string]any, today models.Date, now time.Time) TaskList {
	return TaskList{
		Success:    true,
		Data:       NewTaskCollection(page.Items, today),
		Pagination: NewPagination(page),
		Links:      NewLinks(path, query, page),
		Filters:    NewListFilters(),
		Meta: ListMeta{
			Timestamp:      now.Format(time.RFC3339),
			AppliedFilters: applied,
		},
	}
}
