package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pulse-backend/application/services"
	"pulse-backend/domain/core/entities"
	"pulse-backend/pkg/common"
	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PostHandler handles post and like HTTP requests
type PostHandler struct {
	posts  *services.PostService
	likes  *services.LikeService
	errors *appErrors.ErrorHandler
	logger *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *services.PostService, likes *services.LikeService, errorHandler *appErrors.ErrorHandler, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		posts:  posts,
		likes:  likes,
		errors: errorHandler,
		logger: logger,
	}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Content  string `json:"content" validate:"required,max=1000"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// PostResponse is the wire shape of a post
type PostResponse struct {
	PostID        string `json:"postId"`
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Avatar        string `json:"avatar,omitempty"`
	Content       string `json:"content"`
	ImageURL      string `json:"imageUrl,omitempty"`
	LikesCount    int    `json:"likesCount"`
	CommentsCount int    `json:"commentsCount"`
	CreatedAt     string `json:"createdAt"`
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, appErrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, appErrors.NewValidationError(err.Error()))
		return
	}

	post, err := h.posts.CreatePost(r.Context(), req.UserID, req.Content, req.ImageURL)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, toPostResponse(post))
}

// GetPost handles GET /posts/{postID}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toPostResponse(post))
}

// ListUserPosts handles GET /users/{userID}/posts
func (h *PostHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := parseLimit(r)

	posts, err := h.posts.ListUserPosts(r.Context(), userID, limit)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(post))
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"posts": responses,
		"count": len(responses),
	})
}

// LikePost handles POST /posts/{postID}/likes/{userID}
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	userID := chi.URLParam(r, "userID")

	if err := h.likes.LikePost(r.Context(), userID, postID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"userId": userID,
		"postId": postID,
	})
}

// UnlikePost handles DELETE /posts/{postID}/likes/{userID}
func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	userID := chi.URLParam(r, "userID")

	if err := h.likes.UnlikePost(r.Context(), userID, postID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"userId": userID,
		"postId": postID,
	})
}

// HasLiked handles GET /posts/{postID}/likes/{userID}
func (h *PostHandler) HasLiked(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	userID := chi.URLParam(r, "userID")

	liked, err := h.likes.HasLiked(r.Context(), userID, postID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func toPostResponse(p *entities.Post) PostResponse {
	return PostResponse{
		PostID:        p.PostID,
		UserID:        p.UserID,
		Username:      p.Username,
		DisplayName:   p.DisplayName,
		Avatar:        p.Avatar,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     utils.FormatRFC3339(p.CreatedAt),
	}
}

// parseLimit reads the optional limit query parameter; 0 lets the service
// apply its default page size
func parseLimit(r *http.Request) int32 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || limit < 0 {
		return 0
	}
	return int32(limit)
}
