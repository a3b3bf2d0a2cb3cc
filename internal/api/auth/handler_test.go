package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gallery-backend/internal/app/http/middleware"
	"gallery-backend/internal/domain/session"
	"gallery-backend/internal/domain/users"
	"gallery-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.UseSecret(t)
	testutil.UseGlobalDB(t)

	r := gin.New()
	r.POST("/register", Register)
	r.POST("/register-artist", RegisterArtist)
	r.POST("/login", Login)
	r.POST("/change-password", middleware.AuthMiddleware(), ChangePassword)
	return r
}

func post(r *gin.Engine, path, body, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) session.Session {
	t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	s, err := session.Parse([]byte(testutil.TestSecret), body.Token)
	require.NoError(t, err)
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	r := setup(t)

	w := post(r, "/register", `{"name":"Ada","email":"Ada@Example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.Equal(t, users.RoleUser, tokenFrom(t, w).Role)

	w = post(r, "/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(r, "/login", `{"email":"ada@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	s := tokenFrom(t, w)
	assert.Equal(t, "ada@example.com", s.Email)

	w = post(r, "/login", `{"email":"ada@example.com","password":"wrong1234"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterArtistGetsArtistRole(t *testing.T) {
	r := setup(t)
	w := post(r, "/register-artist", `{"name":"Kofi Mensah","email":"kofi@example.com","password":"paint1234","bio":"Accra"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, users.RoleArtist, tokenFrom(t, w).Role)
	assert.Contains(t, w.Body.String(), `"bio":"Accra"`)
}

func TestRegisterValidation(t *testing.T) {
	r := setup(t)
	assert.Equal(t, http.StatusBadRequest, post(r, "/register", `{"name":"A","email":"a@example.com","password":"short"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/register", `{"name":"A","email":"nope","password":"secret123"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/register", `{"email":"a@example.com","password":"secret123"}`, "").Code)
}

func TestChangePassword(t *testing.T) {
	r := setup(t)
	w := post(r, "/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	tok := tokenFrom(t, w).Token

	w = post(r, "/change-password", `{"old_password":"bad12345","new_password":"fresh1234"}`, tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, "/change-password", `{"old_password":"secret123","new_password":"fresh1234"}`, tok)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusOK, post(r, "/login", `{"email":"ada@example.com","password":"fresh1234"}`, "").Code)
}

func TestPasswordAndEmailRules(t *testing.T) {
	assert.True(t, isPasswordStrong("abcd1234"))
	assert.False(t, isPasswordStrong("abcdefgh"))
	assert.False(t, isPasswordStrong("12345678"))
	assert.True(t, isEmailValid("jane.doe+art@gallery.co"))
	assert.False(t, isEmailValid("jane@localhost"))
}

func TestGoogleRoutesNeedConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/auth/google", GoogleStart)
	r.GET("/auth/google/callback", GoogleCallback)

	for _, path := range []string{"/auth/google", "/auth/google/callback?code=x&state=y"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}
