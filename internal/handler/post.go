package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"islandfeed/internal/httputil"
	"islandfeed/internal/model"
	"islandfeed/internal/service"
	"islandfeed/internal/transport/http/middleware"
)

type PostHandler struct {
	postService       *service.PostService
	engagementService *service.EngagementService
}

func NewPostHandler(postService *service.PostService, engagementService *service.EngagementService) *PostHandler {
	return &PostHandler{
		postService:       postService,
		engagementService: engagementService,
	}
}

// List returns all posts newest first. Authenticated callers get their own
// reaction attached to each post.
// GET /posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	var viewer *string
	if username, ok := middleware.GetUsernameFromContext(r.Context()); ok {
		viewer = &username
	}

	posts, err := h.postService.List(r.Context(), viewer)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetByID fetches one post with its replies
// GET /posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		slog.Error("get post failed", "post", postID, "error", err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Create creates a post owned by the caller
// POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), username, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNameRequired), errors.Is(err, model.ErrMessageRequired):
			httputil.WriteBadRequest(w, err.Error())
		default:
			slog.Error("create post failed", "user", username, "error", err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// AddReply appends a reply to a post
// POST /posts/{id}/replies
func (h *PostHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	reply, err := h.postService.AddReply(r.Context(), postID, username, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMessageRequired):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			slog.Error("add reply failed", "post", postID, "user", username, "error", err)
			httputil.WriteInternalError(w, "Failed to add reply")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, reply)
}

// React applies an up/down/none reaction and returns the new counter with
// the caller's resulting reaction.
// POST /posts/{id}/like
func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	requested, err := model.ParseReaction(req.Reaction)
	if err != nil {
		httputil.WriteBadRequest(w, "Reaction must be \"up\", \"down\" or null")
		return
	}

	result, err := h.engagementService.React(r.Context(), postID, username, requested)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			slog.Error("react failed", "post", postID, "user", username, "error", err)
			httputil.WriteInternalError(w, "Failed to apply reaction")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetUserPosts lists a user's posts, newest first
// GET /users/{username}/posts
func (h *PostHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	posts, err := h.postService.ListByUser(r.Context(), username)
	if err != nil {
		slog.Error("list user posts failed", "user", username, "error", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetUserLikes lists the posts a user currently upvotes
// GET /users/{username}/likes
func (h *PostHandler) GetUserLikes(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	posts, err := h.postService.ListUpvotedBy(r.Context(), username)
	if err != nil {
		slog.Error("list user likes failed", "user", username, "error", err)
		httputil.WriteInternalError(w, "Failed to list liked posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

func parsePostID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
