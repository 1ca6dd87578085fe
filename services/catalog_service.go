package services

import (
	"context"
	"log/slog"

	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/repositories"
	"gorm.io/gorm"
)

// PriorityStats pairs a priority with the tasks that use it.
type PriorityStats struct {
	Priority models.Priority
	ByStatus map[models.TaskStatus]int64
}

func (p PriorityStats) TaskCount() int64 {
	var total int64
	for _, n := range p.ByStatus {
		total += n
	}
	return total
}

type TagStats struct {
	Tag       models.Tag
	TaskCount int64
}

// CatalogService manages the priority and tag reference lists.
type CatalogService struct {
	db         *gorm.DB
	priorities *repositories.PriorityRepository
	tags       *repositories.TagRepository
	logger     *slog.Logger
}

func NewCatalogService(db *gorm.DB, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		db:         db,
		priorities: repositories.NewPriorityRepository(db),
		tags:       repositories.NewTagRepository(db),
		logger:     logger,
	}
}

func (s *CatalogService) ListPriorities(ctx context.Context) ([]PriorityStats, error) {
	priorities, err := s.priorities.All(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.priorities.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PriorityStats, 0, len(priorities))
	for _, p := range priorities {
		byStatus := map[models.TaskStatus]int64{}
		for _, status := range models.TaskStatuses() {
			byStatus[status] = counts[p.ID][status]
		}
		out = append(out, PriorityStats{Priority: p, ByStatus: byStatus})
	}
	return out, nil
}

func (s *CatalogService) CreatePriority(ctx context.Context, name string) (*models.Priority, error) {
	pn := models.PriorityName(name)
	if !pn.IsValid() {
		return nil, apperrors.NewValidation("name", "The name must be one of: LOW, MEDIUM, HIGH.")
	}
	p := &models.Priority{Name: pn}
	if err := s.priorities.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("priority created", "priority_id", p.ID, "name", p.Name)
	return p, nil
}

// DeletePriority refuses to remove a priority that tasks still reference.
func (s *CatalogService) DeletePriority(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.priorities.WithTx(tx)
		p, err := repo.FindOrFail(ctx, id)
		if err != nil {
			return err
		}
		inUse, err := repo.TaskCount(ctx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.NewConflict("priority %s is used by %d task(s)", p.Name, inUse)
		}
		if err := repo.Delete(ctx, p); err != nil {
			return err
		}
		s.logger.Info("priority deleted", "priority_id", id)
		return nil
	})
}

func (s *CatalogService) ListTags(ctx context.Context) ([]TagStats, error) {
	tags, err := s.tags.All(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.tags.TaskCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TagStats, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagStats{Tag: tag, TaskCount: counts[tag.ID]})
	}
	return out, nil
}

func (s *CatalogService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tn := models.TagName(name)
	if !tn.IsValid() {
		return nil, apperrors.NewValidation("name", "The name must be one of: DEV, QA, HR.")
	}
	tag := &models.Tag{Name: tn}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	s.logger.Info("tag created", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

// DeleteTag detaches the tag from its tasks and removes it.
func (s *CatalogService) DeleteTag(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.tags.WithTx(tx)
		tag, err := repo.FindOrFail(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, tag); err != nil {
			return err
		}
		s.logger.Info("tag deleted", "tag_id", id)
		return nil
	})
}
