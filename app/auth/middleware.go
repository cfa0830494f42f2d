package auth

import (
	"context"
	"net/http"

	"github.com/Mostafalol1233/resturant/models"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "pos_session"

type contextKey struct{}

var userKey contextKey

// UserFromContext returns the authenticated user, or nil outside RequireAuth.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// UserID returns the authenticated user's id, or "" outside RequireAuth.
func UserID(ctx context.Context) string {
	if user := UserFromContext(ctx); user != nil {
		return user.ID
	}
	return ""
}

// RequireAuth rejects requests without a live session before they reach any
// state-reading or state-mutating handler, and puts the user on the context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			unauthorized(w)
			return
		}

		session, err := h.sessions.Get(cookie.Value)
		if err != nil {
			unauthorized(w)
			return
		}

		user, err := h.users.GetByID(session.UserID)
		if err != nil || !user.IsActive {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthorized"}`))
}
