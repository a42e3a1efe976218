package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/service"
	apperrors "github.com/ikkim/marketplace-api/internal/errors"
	"github.com/ikkim/marketplace-api/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// ListTags 태그 목록 조회
// GET /TagItems
func (ctrl *TagController) ListTags(c *gin.Context) {
	tags, err := ctrl.tagService.ListTags()
	if err != nil {
		respondServiceError(c, err, "list tags", nil)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag GET /TagItems/:id
func (ctrl *TagController) GetTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.GetTag(id)
	if err != nil {
		respondServiceError(c, err, "get tag", map[string]interface{}{"tag_id": id})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// CreateTag POST /TagItems
func (ctrl *TagController) CreateTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.TagDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tag payload", map[string]interface{}{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	tag, err := ctrl.tagService.CreateTag(req)
	if err != nil {
		respondCreateError(c, err, "tag")
		return
	}

	log.Info("Tag created", map[string]interface{}{"tag_id": tag.ID})
	created(c, "TagItems", tag.ID, tag)
}

// UpdateTag PUT /TagItems/:id
func (ctrl *TagController) UpdateTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.TagDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.tagService.UpdateTag(id, req); err != nil {
		respondServiceError(c, err, "update tag", map[string]interface{}{"tag_id": id})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTag DELETE /TagItems/:id
func (ctrl *TagController) DeleteTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.tagService.DeleteTag(id); err != nil {
		respondServiceError(c, err, "delete tag", map[string]interface{}{"tag_id": id})
		return
	}
	c.Status(http.StatusNoContent)
}
