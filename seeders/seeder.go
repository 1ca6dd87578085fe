// Package seeders fills the reference tables and, optionally, a set of
// sample tasks. Running it twice leaves the data unchanged.
package seeders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ismaelescalante7/challenge-leverbox/filters"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/repositories"
	"github.com/ismaelescalante7/challenge-leverbox/services"
	"gorm.io/gorm"
)

type Result struct {
	Priorities int
	Tags       int
	Tasks      int
}

type sampleTask struct {
	title       string
	description string
	status      models.TaskStatus
	dueInDays   int
	priority    models.PriorityName
	tags        []models.TagName
}

var sampleTasks = []sampleTask{
	{"Implement user authentication system", "Develop a complete authentication system with login, register, and JWT token management.", models.StatusInProgress, 7, models.PriorityHigh, []models.TagName{models.TagDev}},
	{"Create API documentation", "Write comprehensive API documentation using OpenAPI for all endpoints.", models.StatusPending, 10, models.PriorityMedium, []models.TagName{models.TagDev, models.TagQA}},
	{"Conduct integration tests", "Create and execute integration tests for the REST API endpoints.", models.StatusPending, 5, models.PriorityHigh, []models.TagName{models.TagQA}},
	{"Hire frontend developer", "Review CVs and conduct technical interviews for a new frontend developer position.", models.StatusPending, 14, models.PriorityLow, []models.TagName{models.TagHR}},
	{"Optimize database queries", "Review and improve the performance of slow database queries in the application.", models.StatusCompleted, -2, models.PriorityHigh, []models.TagName{models.TagDev}},
	{"Setup CI/CD pipeline", "Configure automated testing and deployment pipeline for every push.", models.StatusInProgress, 8, models.PriorityMedium, []models.TagName{models.TagDev, models.TagQA}},
	{"Code review guidelines", "Create documentation for the code review process and its conventions.", models.StatusPending, 12, models.PriorityLow, []models.TagName{models.TagDev}},
	{"Performance testing", "Execute load and stress tests to check application performance under high traffic.", models.StatusPending, 6, models.PriorityMedium, []models.TagName{models.TagQA, models.TagDev}},
	{"Update employee handbook", "Review and update the company employee handbook with new policies.", models.StatusInProgress, 20, models.PriorityLow, []models.TagName{models.TagHR}},
	{"Security audit", "Conduct a security audit of the application and its infrastructure.", models.StatusPending, 15, models.PriorityHigh, []models.TagName{models.TagDev, models.TagQA}},
}

// Run seeds the LOW/MEDIUM/HIGH priorities and DEV/QA/HR tags. With
// withTasks it also adds the sample tasks, but only to an empty table.
func Run(ctx context.Context, db *gorm.DB, logger *slog.Logger, withTasks bool, today models.Date) (Result, error) {
	var res Result

	priorities := map[models.PriorityName]uint{}
	priorityRepo := repositories.NewPriorityRepository(db)
	for _, name := range models.PriorityNames() {
		p, err := priorityRepo.FirstOrCreate(ctx, name)
		if err != nil {
			return res, fmt.Errorf("failed to seed priority %s: %w", name, err)
		}
		priorities[name] = p.ID
		res.Priorities++
	}

	tags := map[models.TagName]uint{}
	tagRepo := repositories.NewTagRepository(db)
	for _, name := range models.TagNames() {
		tag, err := tagRepo.FirstOrCreate(ctx, name)
		if err != nil {
			return res, fmt.Errorf("failed to seed tag %s: %w", name, err)
		}
		tags[name] = tag.ID
		res.Tags++
	}

	if !withTasks {
		return res, nil
	}

	svc := services.NewTaskService(db, logger)
	existing, err := svc.CountTasks(ctx, filters.TaskFilters{})
	if err != nil {
		return res, err
	}
	if existing > 0 {
		logger.Info("tasks table not empty, skipping sample tasks", "count", existing)
		return res, nil
	}

	for _, s := range sampleTasks {
		due := today.AddDays(s.dueInDays)
		tagIDs := make([]uint, 0, len(s.tags))
		for _, name := range s.tags {
			tagIDs = append(tagIDs, tags[name])
		}
		_, err := svc.CreateTask(ctx, services.CreateTaskInput{
			Title:       s.title,
			Description: s.description,
			Status:      s.status,
			DueDate:     &due,
			PriorityID:  priorities[s.priority],
			TagIDs:      tagIDs,
		})
		if err != nil {
			return res, fmt.Errorf("failed to seed task %q: %w", s.title, err)
		}
		res.Tasks++
	}
	return res, nil
}
