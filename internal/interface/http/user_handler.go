package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/api/internal/application"
	"github.com/devconnect/api/internal/interface/middleware"
	"github.com/devconnect/api/pkg/response"
	"github.com/devconnect/api/pkg/validation"
)

// UserHandler exposes the profile subsystem. All routes sit behind the
// auth middleware.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Username string   `json:"username"`
	Avatar   string   `json:"avatar" binding:"omitempty,url"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	users, err := h.Svc.ListUsers(c.Request.Context(), uid)
	if err != nil {
		h.serverError(c, "list users failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users}, "users")
}

// Get GET /api/users/:userId
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.serverError(c, "get user failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "user")
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:     req.Username,
		PhotoURL: req.Avatar,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.serverError(c, "update profile failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile updated")
}

// UploadAvatar POST /api/users/avatar (multipart form, field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	u, err := h.Svc.UploadAvatar(c.Request.Context(), uid, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.serverError(c, "avatar upload failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "avatar uploaded")
}

// Search GET /api/users/search?q=...&size=...
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.serverError(c, "user search failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results")
}

func (h *UserHandler) serverError(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.Error[any](c, http.StatusInternalServerError, "server error", nil)
}
