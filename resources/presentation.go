// Package resources shapes loaded entities into API responses. Every
// function here is pure: the current day is passed in, never read.
package resources

import "github.com/ismaelescalante7/challenge-leverbox/models"

const (
	ColorGray   = "#6B7280"
	ColorAmber  = "#F59E0B"
	ColorGreen  = "#10B981"
	ColorRed    = "#EF4444"
	ColorBlue   = "#3B82F6"
	ColorPurple = "#8B5CF6"
	ColorPink   = "#EC4899"
)

const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

func StatusLabel(s models.TaskStatus) string {
	switch s {
	case models.StatusPending:
		return "Pendiente"
	case models.StatusInProgress:
		return "En Progreso"
	case models.StatusCompleted:
		return "Completada"
	}
	return string(s)
}

func StatusColor(s models.TaskStatus) string {
	switch s {
	case models.StatusInProgress:
		return ColorAmber
	case models.StatusCompleted:
		return ColorGreen
	}
	return ColorGray
}

func PriorityLabel(p models.PriorityName) string {
	switch p {
	case models.PriorityLow:
		return "Baja"
	case models.PriorityMedium:
		return "Media"
	case models.PriorityHigh:
		return "Alta"
	}
	return string(p)
}

func PriorityColor(p models.PriorityName) string {
	switch p {
	case models.PriorityLow:
		return ColorGreen
	case models.PriorityMedium:
		return ColorAmber
	case models.PriorityHigh:
		return ColorRed
	}
	return ColorGray
}

func TagLabel(t models.TagName) string {
	switch t {
	case models.TagDev:
		return "Desarrollo"
	case models.TagQA:
		return "Control de Calidad"
	case models.TagHR:
		return "Recursos Humanos"
	}
	return string(t)
}

func TagColor(t models.TagName) string {
	switch t {
	case models.TagDev:
		return ColorBlue
	case models.TagQA:
		return ColorPurple
	case models.TagHR:
		return ColorPink
	}
	return ColorGray
}

// IsOverdue is true when the due date is before today and the task is not
// completed.
func IsOverdue(due *models.Date, status models.TaskStatus, today models.Date) bool {
	if due == nil || due.IsZero() {
		return false
	}
	return due.Before(today) && status != models.StatusCompleted
}

// DaysUntilDue is negative for past dates and nil without a due date.
func DaysUntilDue(due *models.Date, today models.Date) *int {
	if due == nil || due.IsZero() {
		return nil
	}
	days := today.DaysUntil(*due)
	return &days
}

func UrgencyLevel(overdue bool, priority models.PriorityName, daysUntilDue *int) string {
	high := priority == models.PriorityHigh
	switch {
	case overdue && high:
		return UrgencyCritical
	case overdue || high:
		return UrgencyHigh
	case priority == models.PriorityMedium && daysUntilDue != nil && *daysUntilDue <= 3:
		return UrgencyMedium
	}
	return UrgencyLow
}

func CanEdit(s models.TaskStatus) bool {
	return s != models.StatusCompleted
}
