package handlers

import (
	"net/http"

	"pulse-backend/application/services"
	"pulse-backend/pkg/common"
	appErrors "pulse-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SocialHandler handles follow-relationship HTTP requests
type SocialHandler struct {
	graph  *services.SocialGraphService
	errors *appErrors.ErrorHandler
	logger *zap.Logger
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(graph *services.SocialGraphService, errorHandler *appErrors.ErrorHandler, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{
		graph:  graph,
		errors: errorHandler,
		logger: logger,
	}
}

// Follow handles POST /users/{userID}/follow/{targetID}
func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID := chi.URLParam(r, "userID")
	followedID := chi.URLParam(r, "targetID")

	if err := h.graph.Follow(r.Context(), followerID, followedID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"followerId": followerID,
		"followedId": followedID,
	})
}

// Unfollow handles DELETE /users/{userID}/follow/{targetID}
func (h *SocialHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID := chi.URLParam(r, "userID")
	followedID := chi.URLParam(r, "targetID")

	if err := h.graph.Unfollow(r.Context(), followerID, followedID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"followerId": followerID,
		"followedId": followedID,
	})
}

// IsFollowing handles GET /users/{userID}/follow/{targetID}
func (h *SocialHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	followerID := chi.URLParam(r, "userID")
	followedID := chi.URLParam(r, "targetID")

	following, err := h.graph.IsFollowing(r.Context(), followerID, followedID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"following": following})
}

// ListFollowers handles GET /users/{userID}/followers
func (h *SocialHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	followers, err := h.graph.ListFollowers(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"followers": followers,
		"count":     len(followers),
	})
}
