package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"islandfeed/internal/handler"
	"islandfeed/internal/httputil"
	authmw "islandfeed/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	FollowHandler   *handler.FollowHandler
	PostHandler     *handler.PostHandler
	IslanderHandler *handler.IslanderHandler
	JWTSecret       string
	CORSOrigins     []string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Post("/signup", cfg.AuthHandler.Signup)
	r.Post("/login", cfg.AuthHandler.Login)
	r.Post("/refresh", cfg.AuthHandler.Refresh)

	// Cast catalog is public
	r.Get("/islanders", cfg.IslanderHandler.List)
	r.Get("/islanders/{id}", cfg.IslanderHandler.GetByID)

	// Public post reads; the feed personalizes for signed-in callers
	r.With(authmw.OptionalAuthMiddleware(cfg.JWTSecret)).Get("/posts", cfg.PostHandler.List)
	r.Get("/posts/{id}", cfg.PostHandler.GetByID)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/logout", cfg.AuthHandler.Logout)

		r.Get("/profile", cfg.AuthHandler.Profile)
		r.Put("/profile", cfg.AuthHandler.UpdateProfile)

		r.Post("/posts", cfg.PostHandler.Create)
		r.Post("/posts/{id}/replies", cfg.PostHandler.AddReply)
		r.Post("/posts/{id}/like", cfg.PostHandler.React)

		r.Get("/users/search", cfg.UserHandler.Search)
		r.Get("/users/{username}", cfg.UserHandler.GetByUsername)
		r.Get("/users/{username}/posts", cfg.PostHandler.GetUserPosts)
		r.Get("/users/{username}/likes", cfg.PostHandler.GetUserLikes)
		r.Post("/users/{username}/follow", cfg.FollowHandler.Follow)
		r.Post("/users/{username}/unfollow", cfg.FollowHandler.Unfollow)
	})

	return r
}
