package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gallery-backend/config"
	"gallery-backend/internal/domain/session"
	"gallery-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withSecret(t *testing.T) []byte {
	t.Helper()
	prev := config.JWT_SECRET
	config.JWT_SECRET = "mw-secret"
	t.Cleanup(func() { config.JWT_SECRET = prev })
	return []byte(config.JWT_SECRET)
}

func TestAuthMiddleware(t *testing.T) {
	secret := withSecret(t)
	tok, err := session.Issue(secret, users.User{ID: 9, Email: "x@y.z", Role: users.RoleUser}, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/p", AuthMiddleware(), func(c *gin.Context) {
		fromCtx, ok := session.FromContext(c.Request.Context())
		require.True(t, ok)
		s, ok := CurrentSession(c)
		require.True(t, ok)
		assert.Equal(t, s, fromCtx)
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id"), "token": s.Token})
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", tok, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)

			if tc.want == http.StatusOK {
				var body struct {
					UserID uint   `json:"user_id"`
					Token  string `json:"token"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, uint(9), body.UserID)
				assert.Equal(t, tok, body.Token)
			}
		})
	}
}

func TestRequireRoleAndSelfOrAdmin(t *testing.T) {
	secret := withSecret(t)
	userTok, _ := session.Issue(secret, users.User{ID: 3, Role: users.RoleUser}, time.Hour)
	adminTok, _ := session.Issue(secret, users.User{ID: 1, Role: users.RoleAdmin}, time.Hour)

	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/admin", AuthMiddleware(), RequireRole(users.RoleAdmin), ok)
	r.GET("/user/:id/orders", AuthMiddleware(), RequireSelfOrAdmin("id"), ok)

	do := func(path, tok string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, do("/admin", userTok))
	assert.Equal(t, http.StatusNoContent, do("/admin", adminTok))

	assert.Equal(t, http.StatusNoContent, do("/user/3/orders", userTok))
	assert.Equal(t, http.StatusForbidden, do("/user/4/orders", userTok))
	assert.Equal(t, http.StatusNoContent, do("/user/4/orders", adminTok))
	assert.Equal(t, http.StatusBadRequest, do("/user/abc/orders", userTok))
}

func TestSanitizeStripsMarkupDeep(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	in := `{"title":"<script>x()</script>Sunset","tags":["<b>oil</b>"],"meta":{"note":"<i>hi</i>"},"price":1200.50}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(in))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Sunset", out["title"])
	assert.Equal(t, []interface{}{"oil"}, out["tags"])
	assert.Equal(t, map[string]interface{}{"note": "hi"}, out["meta"])
	assert.Equal(t, 1200.5, out["price"])

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
