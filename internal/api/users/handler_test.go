package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gallery-backend/internal/app/http/middleware"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/users"
	"gallery-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRenamePropagatesToArtworks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutil.UseSecret(t)
	db := testutil.UseGlobalDB(t)

	r := gin.New()
	r.GET("/artists/:id", GetArtist)
	r.PUT("/me", middleware.AuthMiddleware(), UpdateCurrentUser)

	artist, tok := testutil.CreateUser(t, db, "Jane", users.RoleArtist)
	require.NoError(t, db.Create(&catalog.Artwork{ID: "a1", Title: "Dawn", Artist: "Jane", ArtistID: &artist.ID}).Error)

	req := httptest.NewRequest(http.MethodPut, "/me", strings.NewReader(`{"name":"Jane Doe","bio":"Lagos"}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var art catalog.Artwork
	require.NoError(t, db.First(&art, "id = ?", "a1").Error)
	assert.Equal(t, "Jane Doe", art.Artist)

	req = httptest.NewRequest(http.MethodGet, "/artists/"+strconv.FormatUint(uint64(artist.ID), 10), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Lagos", out["bio"])
	assert.NotContains(t, out, "email")
	assert.Len(t, out["artworks"], 1)
}

func TestGetArtistIgnoresBuyers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.UseGlobalDB(t)
	buyer, _ := testutil.CreateUser(t, db, "buyer", users.RoleUser)

	r := gin.New()
	r.GET("/artists/:id", GetArtist)
	req := httptest.NewRequest(http.MethodGet, "/artists/"+strconv.FormatUint(uint64(buyer.ID), 10), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
