package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/internal/application"
	"github.com/communitydesk/bulletin-board/internal/domain/entity"
	"github.com/communitydesk/bulletin-board/internal/domain/repository"
	"github.com/communitydesk/bulletin-board/internal/interface/middleware"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
	"github.com/communitydesk/bulletin-board/pkg/response"
	"github.com/communitydesk/bulletin-board/pkg/validation"
)

// PostHandler serves the post lifecycle: create, list own, public feed,
// delete own.
type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title       string `json:"title" binding:"required"`
	ContactName string `json:"contact_name" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"`
	ContactInfo string `json:"contact_info" binding:"required"`
	Timeline    string `json:"timeline" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func postJSON(p *entity.Post) gin.H {
	out := gin.H{
		"id":           p.ID,
		"owner_id":     p.OwnerID,
		"title":        p.Title,
		"contact_name": p.ContactName,
		"event_date":   p.EventDate,
		"contact_info": p.ContactInfo,
		"timeline":     p.Timeline,
		"description":  p.Description,
		"created_at":   p.CreatedAt,
	}
	if p.PostedBy != "" {
		out["posted_by"] = p.PostedBy
	}
	return out
}

func postListJSON(posts []entity.Post) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for i := range posts {
		out = append(out, postJSON(&posts[i]))
	}
	return out
}

// Create POST /api/posts (auth required)
func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), uid, application.CreatePostInput{
		Title:       req.Title,
		ContactName: req.ContactName,
		EventDate:   req.EventDate,
		ContactInfo: req.ContactInfo,
		Timeline:    req.Timeline,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, application.ErrMissingFields) {
			resp := response.Error[any](c, http.StatusBadRequest, "missing required fields", nil)
			c.JSON(resp.Status, resp)
			return
		}
		helpers.LogError(h.Logger, "post create failed", err, logrus.Fields{"user_id": uid})
		resp := response.Error[any](c, http.StatusInternalServerError, "could not save post", nil)
		c.JSON(resp.Status, resp)
		return
	}

	resp := response.Success(c, http.StatusCreated, postJSON(p), "post created", nil)
	c.JSON(resp.Status, resp)
}

// ListMine GET /api/posts/mine (auth required)
func (h *PostHandler) ListMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	posts, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		helpers.LogError(h.Logger, "list own posts failed", err, logrus.Fields{"user_id": uid})
		resp := response.Error[any](c, http.StatusInternalServerError, "could not fetch posts", nil)
		c.JSON(resp.Status, resp)
		return
	}

	resp := response.Success(c, http.StatusOK, postListJSON(posts), "posts", nil)
	c.JSON(resp.Status, resp)
}

// ListAll GET /api/posts. The public feed needs no session.
func (h *PostHandler) ListAll(c *gin.Context) {
	posts, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "list all posts failed", err, nil)
		resp := response.Error[any](c, http.StatusInternalServerError, "could not fetch posts", nil)
		c.JSON(resp.Status, resp)
		return
	}

	resp := response.Success(c, http.StatusOK, postListJSON(posts), "posts", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/posts/:id (auth required). A missing post and a post
// owned by someone else produce the same 404, so post existence never
// leaks across owners.
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid post id", nil)
		c.JSON(resp.Status, resp)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), postID, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "post not found or not yours", nil)
			c.JSON(resp.Status, resp)
			return
		}
		helpers.LogError(h.Logger, "post delete failed", err, logrus.Fields{"user_id": uid, "post_id": postID})
		resp := response.Error[any](c, http.StatusInternalServerError, "could not delete post", nil)
		c.JSON(resp.Status, resp)
		return
	}

	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
	c.JSON(resp.Status, resp)
}
