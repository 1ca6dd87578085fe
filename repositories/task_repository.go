// Package repositories runs queries and mutations against the database.
// It holds no business rules and opens no transactions; callers that need
// one pass a transaction handle through WithTx.
package repositories

import (
	"context"
	"errors"

	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/filters"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"gorm.io/gorm"
)

// Page is one slice of a filtered listing plus the size of the whole set.
type Page struct {
	Items   []models.Task
	Total   int64
	Page    int
	PerPage int
}

func (p Page) LastPage() int {
	if p.Total == 0 || p.PerPage <= 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// From is the 1-based position of the first item, or 0 when the page is empty.
func (p Page) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

func (p Page) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

func (p Page) HasMorePages() bool {
	return p.Page < p.LastPage()
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Task{}).Preload("Priority").Preload("Tags")
}

func (r *TaskRepository) Paginate(ctx context.Context, f filters.TaskFilters, p filters.Pagination) (*Page, error) {
	var total int64
	if err := filters.Apply(r.db.WithContext(ctx).Model(&models.Task{}), f).Count(&total).Error; err != nil {
		return nil, err
	}

	page := &Page{Total: total, Page: p.Page, PerPage: p.PerPage, Items: []models.Task{}}
	if total == 0 || p.Page > page.LastPage() {
		return page, nil
	}

	q := filters.Sort(filters.Apply(r.withRelations(ctx), f), f)
	if err := q.Offset(p.Offset()).Limit(p.PerPage).Find(&page.Items).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *TaskRepository) All(ctx context.Context, f filters.TaskFilters) ([]models.Task, error) {
	tasks := []models.Task{}
	err := filters.Sort(filters.Apply(r.withRelations(ctx), f), f).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Count(ctx context.Context, f filters.TaskFilters) (int64, error) {
	var total int64
	err := filters.Apply(r.db.WithContext(ctx).Model(&models.Task{}), f).Count(&total).Error
	return total, err
}

// Find returns nil without error when id does not exist.
func (r *TaskRepository) Find(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.withRelations(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindOrFail(ctx context.Context, id uint) (*models.Task, error) {
	task, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NewNotFound("task", id)
	}
	return task, nil
}

// FindMany loads the tasks with the given ids, in id order.
func (r *TaskRepository) FindMany(ctx context.Context, ids []uint) ([]models.Task, error) {
	tasks := []models.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.withRelations(ctx).Where("tasks.id IN ?", ids).Order("tasks.id").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Priority", "Tags").Create(task).Error
}

// Update writes the given column values. Keys are column names.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(task).Omit("Priority", "Tags").Updates(changes).Error
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, task *models.Task, status models.TaskStatus) error {
	return r.db.WithContext(ctx).Model(task).Omit("Priority", "Tags").Update("status", status).Error
}

// UpdateMany sets the same column values on every task in ids.
func (r *TaskRepository) UpdateMany(ctx context.Context, ids []uint, changes map[string]any) error {
	if len(ids) == 0 || len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Task{}).Where("id IN ?", ids).Updates(changes).Error
}

// Delete removes the task row and its tag links.
func (r *TaskRepository) Delete(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(task).Error
}

// SyncTags makes tagIDs the complete tag set of task.
func (r *TaskRepository) SyncTags(ctx context.Context, task *models.Task, tagIDs []uint) error {
	assoc := r.db.WithContext(ctx).Model(task).Association("Tags")
	if len(tagIDs) == 0 {
		return assoc.Clear()
	}

	var tags []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	return assoc.Replace(tags)
}

func (r *TaskRepository) Search(ctx context.Context, query string) ([]models.Task, error) {
	return r.All(ctx, filters.TaskFilters{
		Search:        query,
		SortBy:        "created_at",
		SortDirection: "desc",
	})
}

func (r *TaskRepository) GetByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	return r.All(ctx, filters.TaskFilters{
		Status:        &status,
		SortBy:        "created_at",
		SortDirection: "desc",
	})
}

// ExistingIDs returns the subset of ids present in the tasks table.
func (r *TaskRepository) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}
