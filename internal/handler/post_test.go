package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmw "islandfeed/internal/transport/http/middleware"
)

const testJWTSecret = "test-secret"

// likeRouter mounts the like route the way the real router does: behind the
// auth middleware, with the post id as a chi URL param.
func likeRouter(h *PostHandler) chi.Router {
	r := chi.NewRouter()
	r.With(authmw.AuthMiddleware(testJWTSecret)).Post("/posts/{id}/like", h.React)
	return r
}

func authHeader(t *testing.T, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     "user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestPostHandler_React_InvalidLiteral(t *testing.T) {
	// Validation fails before any service call, so no services are needed.
	router := likeRouter(NewPostHandler(nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/posts/1/like",
		strings.NewReader(`{"reaction":"sideways"}`))
	req.Header.Set("Authorization", authHeader(t, "alice"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `Reaction must be \"up\", \"down\" or null`)
}

func TestPostHandler_React_InvalidPostID(t *testing.T) {
	router := likeRouter(NewPostHandler(nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/posts/not-a-number/like",
		strings.NewReader(`{"reaction":"up"}`))
	req.Header.Set("Authorization", authHeader(t, "alice"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_React_MalformedBody(t *testing.T) {
	router := likeRouter(NewPostHandler(nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/posts/1/like",
		strings.NewReader(`{"reaction":`))
	req.Header.Set("Authorization", authHeader(t, "alice"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_React_RequiresAuth(t *testing.T) {
	router := likeRouter(NewPostHandler(nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/posts/1/like",
		strings.NewReader(`{"reaction":"up"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
