package handlers

import (
	"net/http"

	"pulse-backend/application/services"
	"pulse-backend/domain/core/entities"
	"pulse-backend/pkg/common"
	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FeedHandler handles feed read requests
type FeedHandler struct {
	feed   *services.FeedService
	errors *appErrors.ErrorHandler
	logger *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feed *services.FeedService, errorHandler *appErrors.ErrorHandler, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feed:   feed,
		errors: errorHandler,
		logger: logger,
	}
}

// FeedEntryResponse is the wire shape of a feed entry
type FeedEntryResponse struct {
	PostID        string `json:"postId"`
	AuthorID      string `json:"authorId"`
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Avatar        string `json:"avatar,omitempty"`
	Content       string `json:"content"`
	ImageURL      string `json:"imageUrl,omitempty"`
	LikesCount    int    `json:"likesCount"`
	CommentsCount int    `json:"commentsCount"`
	CreatedAt     string `json:"createdAt"`
}

// GetFeed handles GET /users/{userID}/feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := parseLimit(r)

	entries, err := h.feed.GetUserFeed(r.Context(), userID, limit)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]FeedEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toFeedEntryResponse(entry))
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"feed":  responses,
		"count": len(responses),
	})
}

func toFeedEntryResponse(e *entities.FeedEntry) FeedEntryResponse {
	return FeedEntryResponse{
		PostID:        e.PostID,
		AuthorID:      e.AuthorID,
		Username:      e.Username,
		DisplayName:   e.DisplayName,
		Avatar:        e.Avatar,
		Content:       e.Content,
		ImageURL:      e.ImageURL,
		LikesCount:    e.LikesCount,
		CommentsCount: e.CommentsCount,
		CreatedAt:     utils.FormatRFC3339(e.CreatedAt),
	}
}
