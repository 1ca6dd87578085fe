package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ismaelescalante7/challenge-leverbox/resources"
	"github.com/ismaelescalante7/challenge-leverbox/services"
)

type PriorityController struct {
	Service *services.CatalogService
	Responder
}

func (pc *PriorityController) GetPriorities(c *gin.Context) {
	stats, err := pc.Service.ListPriorities(c.Request.Context())
	if err != nil {
		pc.fail(c, "Error retrieving priorities", err)
		return
	}
	pc.ok(c, http.StatusOK, "", resources.NewPriorityCollection(stats))
}

func (pc *PriorityController) CreatePriority(c *gin.Context) {
	var req CatalogRequest
	if err := bindJSON(c, &req); err != nil {
		pc.fail(c, "Error creating priority", err)
		return
	}

	p, err := pc.Service.CreatePriority(c.Request.Context(), strings.ToUpper(strings.TrimSpace(req.Name)))
	if err != nil {
		pc.fail(c, "Error creating priority", err)
		return
	}

	pc.ok(c, http.StatusCreated, "Priority created successfully", resources.NewPriorityResource(services.PriorityStats{Priority: *p}))
}

func (pc *PriorityController) DeletePriority(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pc.fail(c, "Error deleting priority", err)
		return
	}
	if err := pc.Service.DeletePriority(c.Request.Context(), id); err != nil {
		pc.fail(c, "Error deleting priority", err)
		return
	}
	pc.ok(c, http.StatusOK, "Priority deleted successfully", nil)
}

type TagController struct {
	Service *services.CatalogService
	Responder
}

func (tc *TagController) GetTags(c *gin.Context) {
	stats, err := tc.Service.ListTags(c.Request.Context())
	if err != nil {
		tc.fail(c, "Error retrieving tags", err)
		return
	}
	tc.ok(c, http.StatusOK, "", resources.NewTagCollection(stats))
}

func (tc *TagController) CreateTag(c *gin.Context) {
	var req CatalogRequest
	if err := bindJSON(c, &req); err != nil {
		tc.fail(c, "Error creating tag", err)
		return
	}

	tag, err := tc.Service.CreateTag(c.Request.Context(), strings.ToUpper(strings.TrimSpace(req.Name)))
	if err != nil {
		tc.fail(c, "Error creating tag", err)
		return
	}

	tc.ok(c, http.StatusCreated, "Tag created successfully", resources.NewTagResource(services.TagStats{Tag: *tag}))
}

func (tc *TagController) DeleteTag(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		tc.fail(c, "Error deleting tag", err)
		return
	}
	if err := tc.Service.DeleteTag(c.Request.Context(), id); err != nil {
		tc.fail(c, "Error deleting tag", err)
		return
	}
	tc.ok(c, http.StatusOK, "Tag deleted successfully", nil)
}
