package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/utils"
)

func bindBody(t *testing.T, body string, req any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidation()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return bindJSON(c, req)
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Fields
}

func TestBindCreateTask(t *testing.T) {
	var req CreateTaskRequest
	err := bindBody(t, `{"title":"Ok title","description":"long enough text","priority_id":2,"tag_ids":[1,3],"due_date":"2030-05-01"}`, &req)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	in := req.Input()
	if in.DueDate == nil || in.DueDate.String() != "2030-05-01" || len(in.TagIDs) != 2 {
		t.Errorf("input = %+v", in)
	}

	fields := fieldsOf(t, bindBody(t, `{"title":"ab","tag_ids":[0]}`, &CreateTaskRequest{}))
	for _, f := range []string{"title", "description", "priority_id", "tag_ids"} {
		if len(fields[f]) == 0 {
			t.Errorf("missing error for %s: %v", f, fields)
		}
	}

	fields = fieldsOf(t, bindBody(t, `{"title":"Ok title","description":"long enough text","priority_id":1,"due_date":"someday"}`, &CreateTaskRequest{}))
	if len(fields["due_date"]) == 0 {
		t.Errorf("bad date should be reported on due_date: %v", fields)
	}

	fields = fieldsOf(t, bindBody(t, `{"title":"Ok title","priority_id":"one"}`, &CreateTaskRequest{}))
	if len(fields["priority_id"]) == 0 {
		t.Errorf("wrong type should be reported on priority_id: %v", fields)
	}

	fields = fieldsOf(t, bindBody(t, `{"title":`, &CreateTaskRequest{}))
	if len(fields["body"]) == 0 {
		t.Errorf("malformed json should be reported on body: %v", fields)
	}
}

func TestBindUpdateTask(t *testing.T) {
	var req UpdateTaskRequest
	if err := bindBody(t, `{"status":"completed","due_date":null,"tag_ids":[]}`, &req); err != nil {
		t.Fatalf("bind: %v", err)
	}
	in := req.Input()
	if in.Title != nil || in.Status == nil || *in.Status != models.StatusCompleted {
		t.Errorf("input = %+v", in)
	}
	if !in.DueDate.Present || !in.DueDate.Null {
		t.Errorf("due_date should be an explicit null: %+v", in.DueDate)
	}
	if ids, ok := in.TagIDs.Get(); !ok || len(ids) != 0 {
		t.Errorf("tag_ids should be an explicit empty list: %+v", in.TagIDs)
	}

	fields := fieldsOf(t, bindBody(t, `{"description":"short"}`, &UpdateTaskRequest{}))
	if len(fields["description"]) == 0 {
		t.Errorf("short description should fail: %v", fields)
	}
}

func TestBindTrimsBeforeLengthRules(t *testing.T) {
	fields := fieldsOf(t, bindBody(t, `{"title":"   x   ","description":"     short      "}`, &UpdateTaskRequest{}))
	for _, f := range []string{"title", "description"} {
		if len(fields[f]) == 0 {
			t.Errorf("padded %s should fail length rules: %v", f, fields)
		}
	}

	fields = fieldsOf(t, bindBody(t, `{"title":"          ","description":"A description long enough","priority_id":1}`, &CreateTaskRequest{}))
	if len(fields["title"]) == 0 {
		t.Errorf("blank title should be required: %v", fields)
	}

	fields = fieldsOf(t, bindBody(t, `{"title":"    "}`, &UpdateTaskRequest{}))
	if len(fields["title"]) == 0 {
		t.Errorf("blank title on update should fail: %v", fields)
	}

	var req CreateTaskRequest
	if err := bindBody(t, `{"title":"  abc  ","description":"  long enough text  ","priority_id":1}`, &req); err != nil {
		t.Fatalf("padded valid values should bind: %v", err)
	}
	if in := req.Input(); in.Title != "abc" || in.Description != "long enough text" {
		t.Errorf("input not trimmed: %+v", in)
	}
}

func TestBindSearchTrimsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidation()

	for _, q := range []string{"%20%20%20", "%20a%20"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?q="+q, nil)
		var req SearchRequest
		if err := bindQuery(c, &req); err == nil {
			t.Errorf("q=%s should fail validation", q)
		}
	}
}

func TestValidateDueDate(t *testing.T) {
	today := models.NewDate(2025, 3, 10)
	yesterday := today.AddDays(-1)

	if err := validateDueDate(nil, today); err != nil {
		t.Errorf("nil due date: %v", err)
	}
	if err := validateDueDate(&today, today); err != nil {
		t.Errorf("today should be allowed: %v", err)
	}
	if err := validateDueDate(&yesterday, today); err == nil {
		t.Error("yesterday should be rejected")
	}
}

func TestQueryMap(t *testing.T) {
	q := url.Values{
		"status":    {"pending"},
		"tag_ids[]": {"1", "2"},
		"search":    {"a", "b"},
	}
	raw := queryMap(q)

	if raw["status"] != "pending" {
		t.Errorf("status = %v", raw["status"])
	}
	tags, ok := raw["tag_ids"].([]string)
	if !ok || len(tags) != 2 {
		t.Errorf("tag_ids = %#v", raw["tag_ids"])
	}
	if s, ok := raw["search"].([]string); !ok || len(s) != 2 {
		t.Errorf("search = %#v", raw["search"])
	}
}

func TestFailEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		debug     bool
		err       error
		wantCode  int
		wantDebug bool
	}{
		{"validation", false, apperrors.NewValidation("title", "required"), http.StatusUnprocessableEntity, false},
		{"not found", false, apperrors.NewNotFound("task", 3), http.StatusNotFound, false},
		{"server hidden", false, errors.New("db exploded"), http.StatusInternalServerError, false},
		{"server debug", true, errors.New("db exploded"), http.StatusInternalServerError, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResponder(tc.debug, utils.NewLogger("error", "text", io.Discard))
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			r.fail(c, "Error doing thing", tc.err)

			if w.Code != tc.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tc.wantCode)
			}
			body := w.Body.String()
			if hasDebug := bytes.Contains([]byte(body), []byte(`"debug"`)); hasDebug != tc.wantDebug {
				t.Errorf("debug present = %v, body = %s", hasDebug, body)
			}
			if !tc.debug && bytes.Contains([]byte(body), []byte("db exploded")) {
				t.Errorf("internal error leaked: %s", body)
			}
		})
	}
}
