package rest

import (
	"net/http"

	"pulse-backend/application/services"
	"pulse-backend/interfaces/http/rest/handlers"
	"pulse-backend/interfaces/http/rest/middleware"
	appErrors "pulse-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	profiles *services.ProfileService
	graph    *services.SocialGraphService
	posts    *services.PostService
	likes    *services.LikeService
	feed     *services.FeedService
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	profiles *services.ProfileService,
	graph *services.SocialGraphService,
	posts *services.PostService,
	likes *services.LikeService,
	feed *services.FeedService,
	logger *zap.Logger,
) *Router {
	return &Router{
		profiles: profiles,
		graph:    graph,
		posts:    posts,
		likes:    likes,
		feed:     feed,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	errorHandler := appErrors.NewErrorHandler(rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Profile endpoints
		r.Route("/profiles", func(r chi.Router) {
			profileHandler := handlers.NewProfileHandler(rt.profiles, errorHandler, rt.logger)
			r.Post("/", profileHandler.CreateProfile)
			r.Get("/{userID}", profileHandler.GetProfile)
			r.Patch("/{userID}", profileHandler.UpdateProfile)
			r.Get("/by-username/{username}", profileHandler.GetProfileByUsername)
		})

		// Post and like endpoints
		postHandler := handlers.NewPostHandler(rt.posts, rt.likes, errorHandler, rt.logger)
		r.Route("/posts", func(r chi.Router) {
			r.Post("/", postHandler.CreatePost)
			r.Get("/{postID}", postHandler.GetPost)
			r.Post("/{postID}/likes/{userID}", postHandler.LikePost)
			r.Delete("/{postID}/likes/{userID}", postHandler.UnlikePost)
			r.Get("/{postID}/likes/{userID}", postHandler.HasLiked)
		})

		// Per-user endpoints: follows, timeline, feed
		r.Route("/users/{userID}", func(r chi.Router) {
			socialHandler := handlers.NewSocialHandler(rt.graph, errorHandler, rt.logger)
			r.Post("/follow/{targetID}", socialHandler.Follow)
			r.Delete("/follow/{targetID}", socialHandler.Unfollow)
			r.Get("/follow/{targetID}", socialHandler.IsFollowing)
			r.Get("/followers", socialHandler.ListFollowers)

			r.Get("/posts", postHandler.ListUserPosts)

			feedHandler := handlers.NewFeedHandler(rt.feed, errorHandler, rt.logger)
			r.Get("/feed", feedHandler.GetFeed)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
