package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ismaelescalante7/challenge-leverbox/filters"
	"github.com/ismaelescalante7/challenge-leverbox/resources"
	"github.com/ismaelescalante7/challenge-leverbox/services"
)

type TaskController struct {
	Service *services.TaskService
	Responder
}

func (tc *TaskController) GetTasks(c *gin.Context) {
	query := c.Request.URL.Query()
	raw := queryMap(query)
	today := tc.today()

	f := filters.Parse(raw, today)
	p := filters.ParsePagination(raw)

	page, err := tc.Service.ListTasks(c.Request.Context(), f, p)
	if err != nil {
		tc.fail(c, "Error retrieving tasks", err)
		return
	}

	c.JSON(http.StatusOK, resources.NewTaskList(page, c.Request.URL.Path, query, f.Applied(), today, time.Now()))
}

func (tc *TaskController) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		tc.fail(c, "Error creating task", err)
		return
	}
	if err := validateDueDate(req.DueDate, tc.today()); err != nil {
		tc.fail(c, "Error creating task", err)
		return
	}

	task, err := tc.Service.CreateTask(c.Request.Context(), req.Input())
	if err != nil {
		tc.fail(c, "Error creating task", err)
		return
	}

	tc.ok(c, http.StatusCreated, "Task created successfully", resources.NewTaskResource(*task, tc.today()))
}

func (tc *TaskController) GetTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		tc.fail(c, "Error retrieving task", err)
		return
	}

	task, err := tc.Service.FindTaskOrFail(c.Request.Context(), id)
	if err != nil {
		tc.fail(c, "Error retrieving task", err)
		return
	}

	tc.ok(c, http.StatusOK, "", resources.NewTaskResource(*task, tc.today()))
}

func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		tc.fail(c, "Error updating task", err)
		return
	}

	var req UpdateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		tc.fail(c, "Error updating task", err)
		return
	}

	ctx := c.Request.Context()
	task, err := tc.Service.FindTaskOrFail(ctx, id)
	if err != nil {
		tc.fail(c, "Error updating task", err)
		return
	}

	updated, err := tc.Service.UpdateTask(ctx, task, req.Input())
	if err != nil {
		tc.fail(c, "Error updating task", err)
		return
	}

	tc.ok(c, http.StatusOK, "Task updated successfully", resources.NewTaskResource(*updated, tc.today()))
}

func (tc *TaskController) UpdateTaskStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		tc.fail(c, "Error updating task status", err)
		return
	}

	var req UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		tc.fail(c, "Error updating task status", err)
		return
	}

	ctx := c.Request.Context()
	task, err := tc.Service.FindTaskOrFail(ctx, id)
	if err != nil {
		tc.fail(c, "Error updating task status", err)
		return
	}

	updated, err := tc.Service.UpdateTaskStatus(ctx, task, req.Status)
	if err != nil {
		tc.fail(c, "Error updating task status", err)
		return
	}

	tc.ok(c, http.StatusOK, "Task status updated successfully", resources.NewTaskResource(*updated, tc.today()))
}

func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		tc.fail(c, "Error deleting task", err)
		return
	}

	ctx := c.Request.Context()
	task, err := tc.Service.FindTaskOrFail(ctx, id)
	if err != nil {
		tc.fail(c, "Error deleting task", err)
		return
	}

	if err := tc.Service.DeleteTask(ctx, task); err != nil {
		tc.fail(c, "Error deleting task", err)
		return
	}

	tc.ok(c, http.StatusOK, "Task deleted successfully", nil)
}

func (tc *TaskController) SearchTasks(c *gin.Context) {
	var req SearchRequest
	if err := bindQuery(c, &req); err != nil {
		tc.fail(c, "Error searching tasks", err)
		return
	}

	tasks, err := tc.Service.SearchTasks(c.Request.Context(), strings.TrimSpace(req.Q))
	if err != nil {
		tc.fail(c, "Error searching tasks", err)
		return
	}

	tc.ok(c, http.StatusOK, "", resources.NewTaskCollection(tasks, tc.today()))
}

func (tc *TaskController) GetTasksByStatus(c *gin.Context) {
	tasks, err := tc.Service.GetTasksByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		tc.fail(c, "Error retrieving tasks by status", err)
		return
	}

	tc.ok(c, http.StatusOK, "", resources.NewTaskCollection(tasks, tc.today()))
}

func (tc *TaskController) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		tc.fail(c, "Error bulk updating tasks", err)
		return
	}

	tasks, err := tc.Service.BulkUpdate(c.Request.Context(), req.Input())
	if err != nil {
		tc.fail(c, "Error bulk updating tasks", err)
		return
	}

	tc.ok(c, http.StatusOK, "Tasks updated successfully", resources.NewTaskCollection(tasks, tc.today()))
}

func (tc *TaskController) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := bindJSON(c, &req); err != nil {
		tc.fail(c, "Error bulk deleting tasks", err)
		return
	}

	n, err := tc.Service.BulkDelete(c.Request.Context(), req.TaskIDs)
	if err != nil {
		tc.fail(c, "Error bulk deleting tasks", err)
		return
	}

	tc.ok(c, http.StatusOK, "Tasks deleted successfully", gin.H{"deleted": n})
}

// queryMap flattens a query string for filters.Parse. "tag_ids[]" is read
// as "tag_ids" and repeated keys keep every value.
func queryMap(q url.Values) map[string]any {
	raw := make(map[string]any, len(q))
	for key, values := range q {
		key = strings.TrimSuffix(key, "[]")
		if existing, ok := raw[key].([]string); ok {
			raw[key] = append(existing, values...)
			continue
		}
		if len(values) == 1 {
			if prev, ok := raw[key].(string); ok {
				raw[key] = []string{prev, values[0]}
				continue
			}
			raw[key] = values[0]
			continue
		}
		raw[key] = append([]string(nil), values...)
	}
	return raw
}
