package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mostafalol1233/resturant/models"
)

// --- Mock users ---

type MockUserRepo struct {
	Users map[string]*models.User // keyed by id

	created []*models.User
}

func newMockUserRepo(users ...*models.User) *MockUserRepo {
	m := &MockUserRepo{Users: make(map[string]*models.User)}
	for _, u := range users {
		m.Users[u.ID] = u
	}
	return m
}

func (m *MockUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := m.Users[id]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *MockUserRepo) Create(user *models.User) error {
	m.Users[user.ID] = user
	m.created = append(m.created, user)
	return nil
}

// --- Session store ---

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	session := NewSession("user_1", time.Hour)
	require.NoError(t, store.Set(session))
	assert.NotEmpty(t, session.Token)

	got, err := store.Get(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", got.UserID)

	require.NoError(t, store.Destroy(session.Token))
	_, err = store.Get(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()

	session := NewSession("user_1", -time.Minute)
	require.NoError(t, store.Set(session))

	_, err := store.Get(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTokensAreUnique(t *testing.T) {
	a := NewSession("user_1", time.Hour)
	b := NewSession("user_1", time.Hour)
	assert.NotEqual(t, a.Token, b.Token)
}

// --- Login / logout ---

func TestHandleLogin(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		expectedStatusCode int
		expectCookie       bool
	}{
		{
			name:               "Success creates user and session",
			body:               `{"email": "chef@restaurant.com", "password": "secret"}`,
			expectedStatusCode: http.StatusOK,
			expectCookie:       true,
		},
		{
			name:               "Missing credentials",
			body:               `{"email": "", "password": ""}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Invalid JSON",
			body:               `{broken`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := newMockUserRepo()
			h := NewAuthHandler(users, NewMemoryStore(), time.Hour)

			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.expectCookie {
				cookies := rec.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, SessionCookie, cookies[0].Name)
				assert.NotEmpty(t, cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)

				require.Len(t, users.created, 1)
				assert.Equal(t, "chef@restaurant.com", users.created[0].Email)
				assert.Equal(t, "chef", users.created[0].FirstName)
			}
		})
	}
}

func TestHandleLoginExistingUser(t *testing.T) {
	existing := &models.User{ID: "user_1", Email: "chef@restaurant.com", Role: "admin", IsActive: true}
	users := newMockUserRepo(existing)
	h := NewAuthHandler(users, NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email": "chef@restaurant.com", "password": "secret"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, users.created)

	var resp struct {
		User UserResponse `json:"user"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user_1", resp.User.ID)
}

func TestHandleAutoLogin(t *testing.T) {
	users := newMockUserRepo()
	h := NewAuthHandler(users, NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/auto-login", nil)
	rec := httptest.NewRecorder()
	h.HandleAutoLogin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users.created, 1)
	assert.Equal(t, demoEmail, users.created[0].Email)
}

func TestHandleLogoutDestroysSession(t *testing.T) {
	store := NewMemoryStore()
	session := NewSession("user_1", time.Hour)
	require.NoError(t, store.Set(session))

	h := NewAuthHandler(newMockUserRepo(), store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := store.Get(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// --- Middleware ---

func TestRequireAuth(t *testing.T) {
	activeUser := &models.User{ID: "user_1", Email: "chef@restaurant.com", IsActive: true}
	inactiveUser := &models.User{ID: "user_2", Email: "gone@restaurant.com", IsActive: false}
	users := newMockUserRepo(activeUser, inactiveUser)

	store := NewMemoryStore()
	liveSession := NewSession("user_1", time.Hour)
	require.NoError(t, store.Set(liveSession))
	inactiveSession := NewSession("user_2", time.Hour)
	require.NoError(t, store.Set(inactiveSession))
	orphanSession := NewSession("user_gone", time.Hour)
	require.NoError(t, store.Set(orphanSession))

	h := NewAuthHandler(users, store, time.Hour)

	next := h.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user_1", UserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name               string
		token              string
		expectedStatusCode int
	}{
		{name: "Valid session", token: liveSession.Token, expectedStatusCode: http.StatusOK},
		{name: "No cookie", token: "", expectedStatusCode: http.StatusUnauthorized},
		{name: "Unknown token", token: "not-a-session", expectedStatusCode: http.StatusUnauthorized},
		{name: "Inactive user", token: inactiveSession.Token, expectedStatusCode: http.StatusUnauthorized},
		{name: "Deleted user", token: orphanSession.Token, expectedStatusCode: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.token})
			}
			rec := httptest.NewRecorder()
			next.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}
