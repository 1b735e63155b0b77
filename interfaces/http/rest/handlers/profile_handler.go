package handlers

import (
	"encoding/json"
	"net/http"

	"pulse-backend/application/services"
	"pulse-backend/domain/core/entities"
	"pulse-backend/pkg/common"
	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profiles *services.ProfileService
	errors   *appErrors.ErrorHandler
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService, errorHandler *appErrors.ErrorHandler, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		errors:   errorHandler,
		logger:   logger,
	}
}

// CreateProfileRequest represents the request body for creating a profile
type CreateProfileRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30,alphanum"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Avatar      string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// UpdateProfileRequest represents the request body for updating a profile.
// Only the fields present are touched; username and counters are immutable
// through this endpoint.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Avatar      *string `json:"avatar,omitempty" validate:"omitempty,url"`
	IsPrivate   *bool   `json:"isPrivate,omitempty"`
}

// ProfileResponse is the wire shape of a profile
type ProfileResponse struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Bio            string `json:"bio,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	PostsCount     int    `json:"postsCount"`
	IsVerified     bool   `json:"isVerified"`
	IsPrivate      bool   `json:"isPrivate"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, appErrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, appErrors.NewValidationError(err.Error()))
		return
	}

	profile, err := h.profiles.CreateProfile(r.Context(), req.Username, req.DisplayName, req.Bio, req.Avatar)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// GetProfile handles GET /profiles/{userID}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toProfileResponse(profile))
}

// GetProfileByUsername handles GET /profiles/by-username/{username}
func (h *ProfileHandler) GetProfileByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.profiles.GetProfileByUsername(r.Context(), username)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles PATCH /profiles/{userID}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, appErrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, appErrors.NewValidationError(err.Error()))
		return
	}

	update := entities.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
		IsPrivate:   req.IsPrivate,
	}
	profile, err := h.profiles.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(p *entities.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:         p.UserID,
		Username:       p.Username,
		DisplayName:    p.DisplayName,
		Bio:            p.Bio,
		Avatar:         p.Avatar,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		PostsCount:     p.PostsCount,
		IsVerified:     p.IsVerified,
		IsPrivate:      p.IsPrivate,
		CreatedAt:      utils.FormatRFC3339(p.CreatedAt),
		UpdatedAt:      utils.FormatRFC3339(p.UpdatedAt),
	}
}
