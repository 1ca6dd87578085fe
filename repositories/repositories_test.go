package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/config"
	"github.com/ismaelescalante7/challenge-leverbox/filters"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	tasks *TaskRepository
	low   models.Priority
	high  models.Priority
	dev   models.Tag
	qa    models.Tag
	hr    models.Tag
	today models.Date
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Name = filepath.Join(t.TempDir(), "repo.db")
	db, err := config.ConnectDB(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	f := &fixture{
		db:    db,
		tasks: NewTaskRepository(db),
		today: models.NewDate(2025, 3, 10),
		ctx:   context.Background(),
	}

	priorities := NewPriorityRepository(db)
	tags := NewTagRepository(db)
	f.low = mustPriority(t, priorities, models.PriorityLow)
	f.high = mustPriority(t, priorities, models.PriorityHigh)
	f.dev = mustTag(t, tags, models.TagDev)
	f.qa = mustTag(t, tags, models.TagQA)
	f.hr = mustTag(t, tags, models.TagHR)
	return f
}

func mustPriority(t *testing.T, r *PriorityRepository, name models.PriorityName) models.Priority {
	t.Helper()
	p, err := r.FirstOrCreate(context.Background(), name)
	if err != nil {
		t.Fatalf("priority %s: %v", name, err)
	}
	return *p
}

func mustTag(t *testing.T, r *TagRepository, name models.TagName) models.Tag {
	t.Helper()
	tag, err := r.FirstOrCreate(context.Background(), name)
	if err != nil {
		t.Fatalf("tag %s: %v", name, err)
	}
	return *tag
}

func (f *fixture) add(t *testing.T, title string, status models.TaskStatus, due *models.Date, priority models.Priority, tags ...models.Tag) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:       title,
		Description: "description for " + title,
		Status:      status,
		DueDate:     due,
		PriorityID:  priority.ID,
	}
	if err := f.tasks.Create(f.ctx, task); err != nil {
		t.Fatalf("create %s: %v", title, err)
	}
	if len(tags) > 0 {
		ids := make([]uint, 0, len(tags))
		for _, tag := range tags {
			ids = append(ids, tag.ID)
		}
		if err := f.tasks.SyncTags(f.ctx, task, ids); err != nil {
			t.Fatalf("sync tags: %v", err)
		}
	}
	return task
}

func datePtr(d models.Date) *models.Date { return &d }

func TestFindOrFail(t *testing.T) {
	f := newFixture(t)
	task := f.add(t, "Find me", models.StatusPending, nil, f.low, f.dev)

	got, err := f.tasks.FindOrFail(f.ctx, task.ID)
	if err != nil {
		t.Fatalf("FindOrFail: %v", err)
	}
	if got.Priority.Name != models.PriorityLow || len(got.Tags) != 1 {
		t.Errorf("relations not loaded: %+v", got)
	}

	missing, err := f.tasks.Find(f.ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("Find(missing) = %v, %v", missing, err)
	}
	if _, err := f.tasks.FindOrFail(f.ctx, 9999); !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestSyncTagsReplaces(t *testing.T) {
	f := newFixture(t)
	task := f.add(t, "Tagged", models.StatusPending, nil, f.low, f.dev, f.qa)

	if err := f.tasks.SyncTags(f.ctx, task, []uint{f.qa.ID, f.hr.ID}); err != nil {
		t.Fatalf("sync: %v", err)
	}
	got, _ := f.tasks.FindOrFail(f.ctx, task.ID)
	ids := got.TagIDs()
	if len(ids) != 2 {
		t.Fatalf("tags = %v", ids)
	}
	for _, id := range ids {
		if id == f.dev.ID {
			t.Fatalf("DEV should have been removed: %v", ids)
		}
	}

	if err := f.tasks.SyncTags(f.ctx, task, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = f.tasks.FindOrFail(f.ctx, task.ID)
	if len(got.Tags) != 0 {
		t.Fatalf("tags not cleared: %v", got.TagIDs())
	}
}

func TestPaginateFilters(t *testing.T) {
	f := newFixture(t)
	yesterday := datePtr(f.today.AddDays(-1))
	tomorrow := datePtr(f.today.AddDays(1))

	f.add(t, "Late pending", models.StatusPending, yesterday, f.high, f.dev)
	f.add(t, "Late done", models.StatusCompleted, yesterday, f.high)
	f.add(t, "Upcoming", models.StatusInProgress, tomorrow, f.low, f.qa)
	f.add(t, "Someday", models.StatusPending, nil, f.low, f.dev, f.qa)

	cases := []struct {
		name string
		raw  map[string]any
		want int64
	}{
		{"none", map[string]any{}, 4},
		{"status", map[string]any{"status": "pending"}, 2},
		{"overdue", map[string]any{"overdue": "true"}, 1},
		{"priority", map[string]any{"priority_id": f.high.ID}, 2},
		{"tag any-of", map[string]any{"tag_ids": []uint{f.qa.ID}}, 2},
		{"tags and status", map[string]any{"tag_ids": fmt.Sprintf("%d,%d", f.dev.ID, f.qa.ID), "status": "pending"}, 2},
		{"due date", map[string]any{"due_date": tomorrow.String()}, 1},
		{"search", map[string]any{"search": "late"}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tf := filters.Parse(tc.raw, f.today)
			page, err := f.tasks.Paginate(f.ctx, tf, filters.Pagination{Page: 1, PerPage: 15})
			if err != nil {
				t.Fatalf("paginate: %v", err)
			}
			if page.Total != tc.want || int64(len(page.Items)) != tc.want {
				t.Errorf("total=%d items=%d, want %d", page.Total, len(page.Items), tc.want)
			}
		})
	}
}

func TestPaginateBeyondLastPage(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.add(t, "Task", models.StatusPending, nil, f.low)
	}

	page, err := f.tasks.Paginate(f.ctx, filters.Parse(nil, f.today), filters.Pagination{Page: 5, PerPage: 2})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 0 || page.Items == nil {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.LastPage() != 2 || page.HasMorePages() {
		t.Errorf("last=%d more=%v", page.LastPage(), page.HasMorePages())
	}
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	task := f.add(t, "Edit me", models.StatusPending, datePtr(f.today), f.low, f.dev)

	if err := f.tasks.Update(f.ctx, task, map[string]any{"title": "Edited", "due_date": nil}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := f.tasks.FindOrFail(f.ctx, task.ID)
	if got.Title != "Edited" || got.DueDate != nil {
		t.Errorf("update not applied: %+v", got)
	}

	if err := f.tasks.UpdateStatus(f.ctx, got, models.StatusCompleted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, _ = f.tasks.FindOrFail(f.ctx, task.ID)
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %s", got.Status)
	}

	if err := f.tasks.Delete(f.ctx, got); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var links int64
	f.db.Table("task_tag").Where("task_id = ?", task.ID).Count(&links)
	if links != 0 {
		t.Errorf("tag links left behind: %d", links)
	}
}

func TestCatalogStats(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A", models.StatusPending, nil, f.high, f.dev)
	f.add(t, "B", models.StatusCompleted, nil, f.high, f.dev, f.qa)

	priorities := NewPriorityRepository(f.db)
	counts, err := priorities.StatusCounts(f.ctx)
	if err != nil {
		t.Fatalf("status counts: %v", err)
	}
	if counts[f.high.ID][models.StatusPending] != 1 || counts[f.high.ID][models.StatusCompleted] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if n, _ := priorities.TaskCount(f.ctx, f.low.ID); n != 0 {
		t.Errorf("low task count = %d", n)
	}

	tags := NewTagRepository(f.db)
	tagCounts, err := tags.TaskCounts(f.ctx)
	if err != nil {
		t.Fatalf("tag counts: %v", err)
	}
	if tagCounts[f.dev.ID] != 2 || tagCounts[f.qa.ID] != 1 || tagCounts[f.hr.ID] != 0 {
		t.Errorf("tag counts = %v", tagCounts)
	}

	found, err := tags.ExistingIDs(f.ctx, []uint{f.dev.ID, 999})
	if err != nil || len(found) != 1 {
		t.Errorf("ExistingIDs = %v, %v", found, err)
	}
}
