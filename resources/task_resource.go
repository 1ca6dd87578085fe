package resources

import (
	"time"

	"github.com/ismaelescalante7/challenge-leverbox/models"
)

const timestampLayout = "2006-01-02 15:04:05"

type StatusResource struct {
	Value models.TaskStatus `json:"value"`
	Label string            `json:"label"`
	Color string            `json:"color"`
}

type DatesResource struct {
	DueDate          *string `json:"due_date"`
	FormattedDueDate *string `json:"formatted_due_date"`
	DaysUntilDue     *int    `json:"days_until_due"`
	IsOverdue        bool    `json:"is_overdue"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type PriorityRef struct {
	ID    uint                `json:"id"`
	Name  models.PriorityName `json:"name"`
	Label string              `json:"label"`
	Color string              `json:"color"`
}

type TagRef struct {
	ID    uint           `json:"id"`
	Name  models.TagName `json:"name"`
	Label string         `json:"label"`
	Color string         `json:"color"`
}

type TaskMeta struct {
	CanEdit      bool   `json:"can_edit"`
	UrgencyLevel string `json:"urgency_level"`
}

type TaskResource struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      StatusResource `json:"status"`
	Dates       DatesResource  `json:"dates"`
	Priority    *PriorityRef   `json:"priority"`
	Tags        []TagRef       `json:"tags"`
	Meta        TaskMeta       `json:"meta"`
}

// NewTaskResource expects Priority and Tags to be loaded.
func NewTaskResource(t models.Task, today models.Date) TaskResource {
	overdue := IsOverdue(t.DueDate, t.Status, today)
	days := DaysUntilDue(t.DueDate, today)

	res := TaskResource{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status: StatusResource{
			Value: t.Status,
			Label: StatusLabel(t.Status),
			Color: StatusColor(t.Status),
		},
		Dates: DatesResource{
			DaysUntilDue: days,
			IsOverdue:    overdue,
			CreatedAt:    formatTimestamp(t.CreatedAt),
			UpdatedAt:    formatTimestamp(t.UpdatedAt),
		},
		Tags: make([]TagRef, 0, len(t.Tags)),
		Meta: TaskMeta{
			CanEdit:      CanEdit(t.Status),
			UrgencyLevel: UrgencyLevel(overdue, t.Priority.Name, days),
		},
	}

	if t.DueDate != nil && !t.DueDate.IsZero() {
		due := t.DueDate.String()
		formatted := t.DueDate.Time().Format("02/01/2006")
		res.Dates.DueDate = &due
		res.Dates.FormattedDueDate = &formatted
	}

	if t.Priority.ID != 0 {
		res.Priority = &PriorityRef{
			ID:    t.Priority.ID,
			Name:  t.Priority.Name,
			Label: PriorityLabel(t.Priority.Name),
			Color: PriorityColor(t.Priority.Name),
		}
	}

	for _, tag := range t.Tags {
		res.Tags = append(res.Tags, NewTagRef(tag))
	}
	return res
}

func NewTaskCollection(tasks []models.Task, today models.Date) []TaskResource {
	out := make([]TaskResource, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResource(t, today))
	}
	return out
}

func NewTagRef(tag models.Tag) TagRef {
	return TagRef{
		ID:    tag.ID,
		Name:  tag.Name,
		Label: TagLabel(tag.Name),
		Color: TagColor(tag.Name),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
