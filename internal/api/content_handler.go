package api

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/service"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

type ContentRequest struct {
	Title        string             `json:"title" binding:"required"`
	Type         domain.ContentType `json:"type" binding:"required,oneof=Video Image"`
	Description  string             `json:"description"`
	ThumbnailURL string             `json:"thumbnailUrl"`
}

type ThumbnailUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// ContentResponse carries the stored thumbnail reference alongside a URL
// the browser can load.
type ContentResponse struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Type                 domain.ContentType `json:"type"`
	Description          string             `json:"description,omitempty"`
	ThumbnailURL         string             `json:"thumbnailUrl,omitempty"`
	ResolvedThumbnailURL string             `json:"resolvedThumbnailUrl,omitempty"`
	UploadDate           time.Time          `json:"uploadDate"`
}

func (h *ContentHandler) toResponse(ctx context.Context, item *domain.FitnessContent) (ContentResponse, error) {
	resolved, err := h.contentService.ThumbnailURL(ctx, item)
	if err != nil {
		return ContentResponse{}, err
	}
	return ContentResponse{
		ID:                   item.ID,
		Title:                item.Title,
		Type:                 item.Type,
		Description:          item.Description,
		ThumbnailURL:         item.ThumbnailURL,
		ResolvedThumbnailURL: resolved,
		UploadDate:           item.UploadDate,
	}, nil
}

func (h *ContentHandler) ListContent(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.contentService.ListContent(ctx)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]ContentResponse, 0, len(items))
	for i := range items {
		r, err := h.toResponse(ctx, &items[i])
		if err != nil {
			handleServiceError(c, err)
			return
		}
		resp = append(resp, r)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	item, err := h.contentService.GetContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp, err := h.toResponse(c.Request.Context(), item)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := h.contentService.CreateContent(c.Request.Context(), service.ContentInput{
		Title:        req.Title,
		Type:         req.Type,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp, err := h.toResponse(c.Request.Context(), item)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) DeleteContent(c *gin.Context) {
	if err := h.contentService.DeleteContent(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestThumbnailUpload godoc
// @Summary Get a presigned URL for uploading a thumbnail
// @Description Returns a temporary PUT URL and the object key to store on the content item.
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ThumbnailUploadRequest true "Image MIME type"
// @Success 200 {object} service.ThumbnailUpload
// @Failure 400 {object} gin.H "Not an image type"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /content/thumbnail-upload-url [post]
func (h *ContentHandler) RequestThumbnailUpload(c *gin.Context) {
	var req ThumbnailUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	upload, err := h.contentService.RequestThumbnailUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
