package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ismaelescalante7/challenge-leverbox/apperrors"
	"github.com/ismaelescalante7/challenge-leverbox/models"
)

// Responder writes the response envelope shared by every handler.
type Responder struct {
	Debug  bool
	Logger *slog.Logger
	// Today returns the day used for derived date fields.
	Today func() models.Date
}

func NewResponder(debug bool, logger *slog.Logger) Responder {
	return Responder{Debug: debug, Logger: logger, Today: models.Today}
}

func (r Responder) ok(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// fail maps err onto its HTTP status. Server errors keep their detail out
// of the body unless debug is on.
func (r Responder) fail(c *gin.Context, message string, err error) {
	status := apperrors.HTTPStatus(err)
	body := gin.H{"success": false, "message": message}

	var verr *apperrors.ValidationError
	var serr *apperrors.InvalidStateError
	switch {
	case errors.As(err, &verr):
		body["message"] = verr.Message
		body["errors"] = verr.Fields
	case errors.As(err, &serr):
		body["message"] = serr.Error()
		body["errors"] = map[string][]string{serr.Field: {serr.Error()}}
	case status != http.StatusInternalServerError:
		body["message"] = err.Error()
	default:
		r.Logger.Error(message, "method", c.Request.Method, "path", c.FullPath(), "request_id", c.GetString("request_id"), "error", err)
	}

	if r.Debug {
		body["debug"] = gin.H{"error": err.Error()}
	}
	c.AbortWithStatusJSON(status, body)
}

func (r Responder) today() models.Date {
	if r.Today == nil {
		return models.Today()
	}
	return r.Today()
}

func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("id", "The id must be a positive integer.")
	}
	return uint(id), nil
}
