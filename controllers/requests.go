package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/services"
)

type CreateTaskRequest struct {
	Title       string       `json:"title" binding:"required,min=3,max=255"`
	Description string       `json:"description" binding:"required,min=10"`
	Status      string       `json:"status"`
	DueDate     *models.Date `json:"due_date"`
	PriorityID  uint         `json:"priority_id" binding:"required,gt=0"`
	TagIDs      []uint       `json:"tag_ids" binding:"omitempty,dive,gt=0"`
}

func (r CreateTaskRequest) Input() services.CreateTaskInput {
	return services.CreateTaskInput{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Status:      models.TaskStatus(r.Status),
		DueDate:     r.DueDate,
		PriorityID:  r.PriorityID,
		TagIDs:      r.TagIDs,
	}
}

type UpdateTaskRequest struct {
	Title       *string                      `json:"title" binding:"omitnil,min=3,max=255"`
	Description *string                      `json:"description" binding:"omitnil,min=10"`
	Status      *string                      `json:"status"`
	DueDate     models.Optional[models.Date] `json:"due_date"`
	PriorityID  *uint                        `json:"priority_id" binding:"omitempty,gt=0"`
	TagIDs      models.Optional[[]uint]      `json:"tag_ids"`
}

func (r UpdateTaskRequest) Input() services.UpdateTaskInput {
	in := services.UpdateTaskInput{
		Title:       trimPtr(r.Title),
		Description: trimPtr(r.Description),
		DueDate:     r.DueDate,
		PriorityID:  r.PriorityID,
		TagIDs:      r.TagIDs,
	}
	if r.Status != nil {
		s := models.TaskStatus(*r.Status)
		in.Status = &s
	}
	return in
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkUpdateRequest struct {
	TaskIDs    []uint  `json:"task_ids" binding:"required,min=1,dive,gt=0"`
	Status     *string `json:"status"`
	PriorityID *uint   `json:"priority_id" binding:"omitempty,gt=0"`
}

func (r BulkUpdateRequest) Input() services.BulkUpdateInput {
	in := services.BulkUpdateInput{TaskIDs: r.TaskIDs, PriorityID: r.PriorityID}
	if r.Status != nil {
		s := models.TaskStatus(*r.Status)
		in.Status = &s
	}
	return in
}

type BulkDeleteRequest struct {
	TaskIDs []uint `json:"task_ids" binding:"required,min=1,dive,gt=0"`
}

type SearchRequest struct {
	Q string `form:"q" binding:"required,min=2,max=255"`
}

type CatalogRequest struct {
	Name string `json:"name" binding:"required"`
}

// RegisterValidation makes validator report fields by their json name and
// check string rules against the trimmed value.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return strings.TrimSpace(field.String())
	}, "")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err)
	}
	return nil
}

func bindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindingError turns decoder and validator failures into field messages.
func bindingError(err error) error {
	verr := &apperrors.ValidationError{Message: "The given data was invalid."}

	var fieldErrs validator.ValidationErrors
	var dateErr *models.DateParseError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			field := fieldName(fe.Field())
			verr.Add(field, fieldMessage(field, fe))
		}
	case errors.As(err, &dateErr):
		verr.Add("due_date", "The due_date is not a valid date.")
	case errors.As(err, &typeErr):
		field := fieldName(typeErr.Field)
		if field == "" {
			field = "body"
		}
		verr.Add(field, fmt.Sprintf("The %s field must be of type %s.", field, typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		verr.Add("body", "The request body must be valid JSON.")
	default:
		verr.Add("body", err.Error())
	}
	return verr
}

// fieldName drops slice indexes and nested paths: "tag_ids[1]" is "tag_ids".
func fieldName(field string) string {
	if i := strings.IndexAny(field, "[."); i >= 0 {
		return field[:i]
	}
	return field
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s field must have at least %s items.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s characters.", field, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must contain positive ids.", field)
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

// validateDueDate rejects a due date before today.
func validateDueDate(due *models.Date, today models.Date) error {
	if due != nil && !due.IsZero() && due.Before(today) {
		return apperrors.NewValidation("due_date", "The due_date must be today or a future date.")
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
