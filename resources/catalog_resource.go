package resources

import (
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/services"
)

type PriorityResource struct {
	ID            uint                        `json:"id"`
	Name          models.PriorityName         `json:"name"`
	Label         string                      `json:"label"`
	Color         string                      `json:"color"`
	TasksCount    int64                       `json:"tasks_count"`
	TasksByStatus map[models.TaskStatus]int64 `json:"tasks_by_status"`
	CreatedAt     string                      `json:"created_at"`
	UpdatedAt     string                      `json:"updated_at"`
}

type TagResource struct {
	ID         uint           `json:"id"`
	Name       models.TagName `json:"name"`
	Label      string         `json:"label"`
	Color      string         `json:"color"`
	TasksCount int64          `json:"tasks_count"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

func NewPriorityResource(s services.PriorityStats) PriorityResource {
	byStatus := make(map[models.TaskStatus]int64, len(models.TaskStatuses()))
	for _, status := range models.TaskStatuses() {
		byStatus[status] = s.ByStatus[status]
	}
	return PriorityResource{
		ID:            s.Priority.ID,
		Name:          s.Priority.Name,
		Label:         PriorityLabel(s.Priority.Name),
		Color:         PriorityColor(s.Priority.Name),
		TasksCount:    s.TaskCount(),
		TasksByStatus: byStatus,
		CreatedAt:     formatTimestamp(s.Priority.CreatedAt),
		UpdatedAt:     formatTimestamp(s.Priority.UpdatedAt),
	}
}

func NewPriorityCollection(stats []services.PriorityStats) []PriorityResource {
	out := make([]PriorityResource, 0, len(stats))
	for _, s := range stats {
		out = append(out, NewPriorityResource(s))
	}
	return out
}

func NewTagResource(s services.TagStats) TagResource {
	return TagResource{
		ID:         s.Tag.ID,
		Name:       s.Tag.Name,
		Label:      TagLabel(s.Tag.Name),
		Color:      TagColor(s.Tag.Name),
		TasksCount: s.TaskCount,
		CreatedAt:  formatTimestamp(s.Tag.CreatedAt),
		UpdatedAt:  formatTimestamp(s.Tag.UpdatedAt),
	}
}

func NewTagCollection(stats []services.TagStats) []TagResource {
	out := make([]TagResource, 0, len(stats))
	for _, s := range stats {
		out = append(out, NewTagResource(s))
	}
	return out
}
