package repositories

import (
	"context"
	"errors"

	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"gorm.io/gorm"
)

type PriorityRepository struct {
	db *gorm.DB
}

func NewPriorityRepository(db *gorm.DB) *PriorityRepository {
	return &PriorityRepository{db: db}
}

func (r *PriorityRepository) WithTx(tx *gorm.DB) *PriorityRepository {
	return &PriorityRepository{db: tx}
}

func (r *PriorityRepository) All(ctx context.Context) ([]models.Priority, error) {
	priorities := []models.Priority{}
	err := r.db.WithContext(ctx).Order("id").Find(&priorities).Error
	return priorities, err
}

func (r *PriorityRepository) FindOrFail(ctx context.Context, id uint) (*models.Priority, error) {
	var p models.Priority
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("priority", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PriorityRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Priority{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PriorityRepository) Create(ctx context.Context, p *models.Priority) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FirstOrCreate returns the priority called name, inserting it if absent.
func (r *PriorityRepository) FirstOrCreate(ctx context.Context, name models.PriorityName) (*models.Priority, error) {
	p := models.Priority{}
	err := r.db.WithContext(ctx).Where(models.Priority{Name: name}).FirstOrCreate(&p).Error
	return &p, err
}

func (r *PriorityRepository) Delete(ctx context.Context, p *models.Priority) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

// TaskCount returns how many tasks reference the priority.
func (r *PriorityRepository) TaskCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("priority_id = ?", id).Count(&count).Error
	return count, err
}

// StatusCounts returns task counts per priority and status.
func (r *PriorityRepository) StatusCounts(ctx context.Context) (map[uint]map[models.TaskStatus]int64, error) {
	var rows []struct {
		PriorityID uint
		Status     models.TaskStatus
		Total      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("priority_id, status, COUNT(*) AS total").
		Group("priority_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]map[models.TaskStatus]int64)
	for _, row := range rows {
		if out[row.PriorityID] == nil {
			out[row.PriorityID] = make(map[models.TaskStatus]int64)
		}
		out[row.PriorityID][row.Status] = row.Total
	}
	return out, nil
}

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

func (r *TagRepository) All(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).Order("id").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindOrFail(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("tag", id)
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ExistingIDs returns the subset of ids present in the tags table.
func (r *TagRepository) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *TagRepository) FirstOrCreate(ctx context.Context, name models.TagName) (*models.Tag, error) {
	tag := models.Tag{}
	err := r.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
	return &tag, err
}

// Delete detaches the tag from every task, then removes it.
func (r *TagRepository) Delete(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM task_tag WHERE tag_id = ?", tag.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(tag).Error
}

// TaskCounts returns the number of tasks carrying each tag.
func (r *TagRepository) TaskCounts(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		TagID uint
		Total int64
	}
	err := r.db.WithContext(ctx).Table("task_tag").
		Select("tag_id, COUNT(*) AS total").
		Group("tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.TagID] = row.Total
	}
	return out, nil
}
