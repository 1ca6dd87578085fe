// Package services holds the task workflows. It is the only layer that
// opens transactions: creates and updates write the task row and its tag
// links together or not at all.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/filters"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/repositories"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *models.Date
	PriorityID  uint
	TagIDs      []uint
}

// UpdateTaskInput is a partial update. Nil pointers and absent Optionals
// leave the column alone; a null DueDate clears it; a present TagIDs
// replaces the tag set (an empty list removes every tag).
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     models.Optional[models.Date]
	PriorityID  *uint
	TagIDs      models.Optional[[]uint]
}

type BulkUpdateInput struct {
	TaskIDs    []uint
	Status     *models.TaskStatus
	PriorityID *uint
}

type TaskService struct {
	db         *gorm.DB
	tasks      *repositories.TaskRepository
	priorities *repositories.PriorityRepository
	tags       *repositories.TagRepository
	logger     *slog.Logger
}

func NewTaskService(db *gorm.DB, logger *slog.Logger) *TaskService {
	return &TaskService{
		db:         db,
		tasks:      repositories.NewTaskRepository(db),
		priorities: repositories.NewPriorityRepository(db),
		tags:       repositories.NewTagRepository(db),
		logger:     logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, f filters.TaskFilters, p filters.Pagination) (*repositories.Page, error) {
	return s.tasks.Paginate(ctx, f, p)
}

func (s *TaskService) AllTasks(ctx context.Context, f filters.TaskFilters) ([]models.Task, error) {
	return s.tasks.All(ctx, f)
}

func (s *TaskService) CountTasks(ctx context.Context, f filters.TaskFilters) (int64, error) {
	return s.tasks.Count(ctx, f)
}

func (s *TaskService) FindTask(ctx context.Context, id uint) (*models.Task, error) {
	return s.tasks.Find(ctx, id)
}

func (s *TaskService) FindTaskOrFail(ctx context.Context, id uint) (*models.Task, error) {
	return s.tasks.FindOrFail(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if err := validateStatus(string(status)); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		PriorityID:  in.PriorityID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, &in.PriorityID, in.TagIDs); err != nil {
			return err
		}
		repo := s.tasks.WithTx(tx)
		if err := repo.Create(ctx, task); err != nil {
			return err
		}
		if len(in.TagIDs) > 0 {
			return repo.SyncTags(ctx, task, in.TagIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("error creating task", "title", in.Title, "error", err)
		return nil, err
	}

	s.logger.Info("task created", "task_id", task.ID, "title", task.Title, "status", task.Status)
	return s.tasks.FindOrFail(ctx, task.ID)
}

func (s *TaskService) UpdateTask(ctx context.Context, task *models.Task, in UpdateTaskInput) (*models.Task, error) {
	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Status != nil {
		if err := validateStatus(string(*in.Status)); err != nil {
			return nil, err
		}
		changes["status"] = *in.Status
	}
	if in.DueDate.Present {
		if due, ok := in.DueDate.Get(); ok {
			changes["due_date"] = &due
		} else {
			changes["due_date"] = nil
		}
	}
	if in.PriorityID != nil {
		changes["priority_id"] = *in.PriorityID
	}
	tagIDs, syncTags := in.TagIDs.Get()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, in.PriorityID, tagIDs); err != nil {
			return err
		}
		repo := s.tasks.WithTx(tx)
		if err := repo.Update(ctx, task, changes); err != nil {
			return err
		}
		if syncTags {
			return repo.SyncTags(ctx, task, tagIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("error updating task", "task_id", task.ID, "error", err)
		return nil, err
	}

	s.logger.Info("task updated", "task_id", task.ID, "fields", keys(changes), "tags_synced", syncTags)
	return s.tasks.FindOrFail(ctx, task.ID)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, task *models.Task, status string) (*models.Task, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	old := task.Status
	if err := s.tasks.UpdateStatus(ctx, task, models.TaskStatus(status)); err != nil {
		s.logger.Error("error updating task status", "task_id", task.ID, "status", status, "error", err)
		return nil, err
	}

	s.logger.Info("task status updated", "task_id", task.ID, "old_status", old, "new_status", status)
	return s.tasks.FindOrFail(ctx, task.ID)
}

func (s *TaskService) MarkAsCompleted(ctx context.Context, task *models.Task) (*models.Task, error) {
	return s.UpdateTaskStatus(ctx, task, string(models.StatusCompleted))
}

func (s *TaskService) MarkAsInProgress(ctx context.Context, task *models.Task) (*models.Task, error) {
	return s.UpdateTaskStatus(ctx, task, string(models.StatusInProgress))
}

func (s *TaskService) MarkAsPending(ctx context.Context, task *models.Task) (*models.Task, error) {
	return s.UpdateTaskStatus(ctx, task, string(models.StatusPending))
}

func (s *TaskService) DeleteTask(ctx context.Context, task *models.Task) error {
	if err := s.tasks.Delete(ctx, task); err != nil {
		s.logger.Error("error deleting task", "task_id", task.ID, "error", err)
		return err
	}
	s.logger.Info("task deleted", "task_id", task.ID, "title", task.Title)
	return nil
}

func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	return s.tasks.Search(ctx, query)
}

func (s *TaskService) GetTasksByStatus(ctx context.Context, status string) ([]models.Task, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	return s.tasks.GetByStatus(ctx, models.TaskStatus(status))
}

// BulkUpdate applies the same status and/or priority to every listed task
// in one transaction. A missing id aborts the whole batch.
func (s *TaskService) BulkUpdate(ctx context.Context, in BulkUpdateInput) ([]models.Task, error) {
	ids := uniqueIDs(in.TaskIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidation("task_ids", "The task_ids field must contain at least one id.")
	}

	changes := map[string]any{}
	if in.Status != nil {
		if err := validateStatus(string(*in.Status)); err != nil {
			return nil, err
		}
		changes["status"] = *in.Status
	}
	if in.PriorityID != nil {
		changes["priority_id"] = *in.PriorityID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.tasks.WithTx(tx)
		if err := requireAll(ctx, repo.ExistingIDs, ids, "task"); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, in.PriorityID, nil); err != nil {
			return err
		}
		return repo.UpdateMany(ctx, ids, changes)
	})
	if err != nil {
		s.logger.Error("error bulk updating tasks", "task_ids", ids, "error", err)
		return nil, err
	}

	s.logger.Info("tasks bulk updated", "count", len(ids), "fields", keys(changes))
	return s.tasks.FindMany(ctx, ids)
}

// BulkDelete removes every listed task in one transaction.
func (s *TaskService) BulkDelete(ctx context.Context, ids []uint) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, apperrors.NewValidation("task_ids", "The task_ids field must contain at least one id.")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.tasks.WithTx(tx)
		if err := requireAll(ctx, repo.ExistingIDs, ids, "task"); err != nil {
			return err
		}
		for _, id := range ids {
			if err := repo.Delete(ctx, &models.Task{ID: id}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("error bulk deleting tasks", "task_ids", ids, "error", err)
		return 0, err
	}

	s.logger.Info("tasks bulk deleted", "count", len(ids))
	return len(ids), nil
}

// checkReferences reports unknown priority or tag ids as validation errors.
func (s *TaskService) checkReferences(ctx context.Context, tx *gorm.DB, priorityID *uint, tagIDs []uint) error {
	verr := &apperrors.ValidationError{Message: "The given data was invalid."}

	if priorityID != nil {
		ok, err := s.priorities.WithTx(tx).Exists(ctx, *priorityID)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add("priority_id", "The selected priority does not exist.")
		}
	}

	if len(tagIDs) > 0 {
		found, err := s.tags.WithTx(tx).ExistingIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if len(found) != len(uniqueIDs(tagIDs)) {
			verr.Add("tag_ids", "One or more selected tags do not exist.")
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func validateStatus(status string) error {
	if models.TaskStatus(status).IsValid() {
		return nil
	}
	allowed := make([]string, 0, 3)
	for _, s := range models.TaskStatuses() {
		allowed = append(allowed, string(s))
	}
	return apperrors.NewInvalidState("status", status, allowed)
}

func requireAll(ctx context.Context, existing func(context.Context, []uint) ([]uint, error), ids []uint, resource string) error {
	found, err := existing(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check %s ids: %w", resource, err)
	}
	for _, id := range ids {
		if !slices.Contains(found, id) {
			return apperrors.NewNotFound(resource, id)
		}
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
