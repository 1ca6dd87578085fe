package resources

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/repositories"
	"github.com/ismaelescalante7/challenge-leverbox/services"
)

var today = models.NewDate(2025, time.March, 10)

func datePtr(d models.Date) *models.Date { return &d }

func intPtr(n int) *int { return &n }

func TestStatusLabelsAndColors(t *testing.T) {
	cases := []struct {
		status models.TaskStatus
		label  string
		color  string
	}{
		{models.StatusPending, "Pendiente", ColorGray},
		{models.StatusInProgress, "En Progreso", ColorAmber},
		{models.StatusCompleted, "Completada", ColorGreen},
		{"archived", "archived", ColorGray},
	}
	for _, tc := range cases {
		if got := StatusLabel(tc.status); got != tc.label {
			t.Errorf("StatusLabel(%q) = %q, want %q", tc.status, got, tc.label)
		}
		if got := StatusColor(tc.status); got != tc.color {
			t.Errorf("StatusColor(%q) = %q, want %q", tc.status, got, tc.color)
		}
	}
}

func TestCatalogLabels(t *testing.T) {
	if PriorityLabel(models.PriorityHigh) != "Alta" || PriorityColor(models.PriorityHigh) != ColorRed {
		t.Error("HIGH priority presentation wrong")
	}
	if PriorityColor("URGENT") != ColorGray || PriorityLabel("URGENT") != "URGENT" {
		t.Error("unknown priority should fall back to its name and gray")
	}
	if TagLabel(models.TagQA) != "Control de Calidad" || TagColor(models.TagQA) != ColorPurple {
		t.Error("QA tag presentation wrong")
	}
}

func TestIsOverdue(t *testing.T) {
	yesterday := datePtr(today.AddDays(-1))

	if !IsOverdue(yesterday, models.StatusPending, today) {
		t.Error("past due pending task should be overdue")
	}
	if IsOverdue(yesterday, models.StatusCompleted, today) {
		t.Error("completed task is never overdue")
	}
	if IsOverdue(datePtr(today), models.StatusPending, today) {
		t.Error("task due today is not overdue")
	}
	if IsOverdue(nil, models.StatusPending, today) {
		t.Error("task without due date is not overdue")
	}
}

func TestDaysUntilDue(t *testing.T) {
	if DaysUntilDue(nil, today) != nil {
		t.Error("expected nil without due date")
	}
	if got := DaysUntilDue(datePtr(today.AddDays(3)), today); got == nil || *got != 3 {
		t.Errorf("got %v, want 3", got)
	}
	if got := DaysUntilDue(datePtr(today.AddDays(-2)), today); got == nil || *got != -2 {
		t.Errorf("got %v, want -2", got)
	}
}

func TestUrgencyLevel(t *testing.T) {
	cases := []struct {
		name     string
		overdue  bool
		priority models.PriorityName
		days     *int
		want     string
	}{
		{"overdue high", true, models.PriorityHigh, intPtr(-1), UrgencyCritical},
		{"overdue low", true, models.PriorityLow, intPtr(-1), UrgencyHigh},
		{"high not due", false, models.PriorityHigh, nil, UrgencyHigh},
		{"medium soon", false, models.PriorityMedium, intPtr(3), UrgencyMedium},
		{"medium later", false, models.PriorityMedium, intPtr(4), UrgencyLow},
		{"medium no date", false, models.PriorityMedium, nil, UrgencyLow},
		{"low soon", false, models.PriorityLow, intPtr(1), UrgencyLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UrgencyLevel(tc.overdue, tc.priority, tc.days); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewTaskResource(t *testing.T) {
	task := models.Task{
		ID:          7,
		Title:       "Ship release",
		Description: "Tag and publish the build",
		Status:      models.StatusPending,
		DueDate:     datePtr(today.AddDays(-1)),
		PriorityID:  3,
		Priority:    models.Priority{ID: 3, Name: models.PriorityHigh},
		Tags:        []models.Tag{{ID: 1, Name: models.TagDev}},
	}

	res := NewTaskResource(task, today)

	if res.Status.Label != "Pendiente" {
		t.Errorf("status label = %q", res.Status.Label)
	}
	if !res.Dates.IsOverdue || res.Meta.UrgencyLevel != UrgencyCritical {
		t.Errorf("expected overdue critical, got %+v %+v", res.Dates, res.Meta)
	}
	if res.Dates.DueDate == nil || *res.Dates.DueDate != "2025-03-09" {
		t.Errorf("due_date = %v", res.Dates.DueDate)
	}
	if res.Dates.FormattedDueDate == nil || *res.Dates.FormattedDueDate != "09/03/2025" {
		t.Errorf("formatted_due_date = %v", res.Dates.FormattedDueDate)
	}
	if res.Priority == nil || res.Priority.Label != "Alta" {
		t.Errorf("priority = %+v", res.Priority)
	}
	if len(res.Tags) != 1 || res.Tags[0].Label != "Desarrollo" {
		t.Errorf("tags = %+v", res.Tags)
	}
	if !res.Meta.CanEdit {
		t.Error("pending task should be editable")
	}

	task.Status = models.StatusCompleted
	res = NewTaskResource(task, today)
	if res.Dates.IsOverdue || res.Meta.CanEdit {
		t.Errorf("completed task should be neither overdue nor editable: %+v", res)
	}
	if res.Dates.DueDate == nil {
		t.Error("completing a task keeps its due date")
	}
}

func TestNewTaskResource_NoDueDate(t *testing.T) {
	res := NewTaskResource(models.Task{Status: models.StatusPending}, today)
	if res.Dates.DueDate != nil || res.Dates.DaysUntilDue != nil {
		t.Errorf("expected nil dates, got %+v", res.Dates)
	}
	if res.Tags == nil {
		t.Error("tags should encode as an empty array")
	}
}

func TestNewPriorityResource(t *testing.T) {
	res := NewPriorityResource(services.PriorityStats{
		Priority: models.Priority{ID: 1, Name: models.PriorityLow},
		ByStatus: map[models.TaskStatus]int64{models.StatusPending: 2, models.StatusCompleted: 1},
	})
	if res.TasksCount != 3 {
		t.Errorf("tasks_count = %d, want 3", res.TasksCount)
	}
	if n, ok := res.TasksByStatus[models.StatusInProgress]; !ok || n != 0 {
		t.Error("every status should be listed")
	}
}

func TestNewLinks(t *testing.T) {
	page := &repositories.Page{Items: make([]models.Task, 15), Total: 40, Page: 2, PerPage: 15}
	q := url.Values{"status": {"pending"}, "page": {"2"}}

	links := NewLinks("/api/tasks", q, page)

	if !strings.Contains(links.First, "page=1") || !strings.Contains(links.First, "status=pending") {
		t.Errorf("first = %q", links.First)
	}
	if !strings.Contains(links.Last, "page=3") {
		t.Errorf("last = %q", links.Last)
	}
	if links.Prev == nil || !strings.Contains(*links.Prev, "page=1") {
		t.Errorf("prev = %v", links.Prev)
	}
	if links.Next == nil || !strings.Contains(*links.Next, "page=3") {
		t.Errorf("next = %v", links.Next)
	}
	if q.Get("page") != "2" {
		t.Error("request query must not be modified")
	}

	last := &repositories.Page{Items: make([]models.Task, 10), Total: 40, Page: 3, PerPage: 15}
	if NewLinks("/api/tasks", nil, last).Next != nil {
		t.Error("last page has no next link")
	}
}

func TestNewPagination_BeyondLastPage(t *testing.T) {
	p := NewPagination(&repositories.Page{Items: []models.Task{}, Total: 5, Page: 4, PerPage: 15})
	if p.Total != 5 || p.From != 0 || p.To != 0 || p.LastPage != 1 || p.HasMorePages {
		t.Errorf("unexpected pagination %+v", p)
	}
}
