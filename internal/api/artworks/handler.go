package artworks

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gallery-backend/config"
	"gallery-backend/database"
	"gallery-backend/internal/app/http/middleware"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/session"
	"gallery-backend/internal/domain/users"
	"gallery-backend/internal/infra/uploads"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /artworks
func ListArtworks(c *gin.Context) {
	f := listFilter{
		Status: c.Query("status"),
		Artist: c.Query("artist"),
		Medium: c.Query("medium"),
		Search: c.Query("q"),
	}
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artist_id"})
			return
		}
		f.ArtistID = uint(id)
	}

	var out []catalog.Artwork
	if err := listQuery(database.DB.WithContext(c.Request.Context()), f).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /artworks/:id
func GetArtwork(c *gin.Context) {
	art, ok := LoadArtwork(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, art)
}

// POST /artworks
// Artists always publish under their own name; admins may name any artist.
func CreateArtwork(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in ArtworkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	imageURL, ok := storeImage(c, in.ImageURL)
	if !ok {
		return
	}

	art := catalog.Artwork{
		Title:       strings.TrimSpace(in.Title),
		Artist:      strings.TrimSpace(in.Artist),
		Description: in.Description,
		Medium:      strings.TrimSpace(in.Medium),
		Dimensions:  in.Dimensions,
		Year:        in.Year,
		Price:       in.Price,
		ImageURL:    imageURL,
		Status:      catalog.NormalizeStatus(in.Status),
	}

	if s.IsArtist() {
		var artist users.User
		if err := database.DB.First(&artist, s.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		art.Artist = artist.Name
		art.ArtistID = &artist.ID
	}
	if art.Artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Artist is required"})
		return
	}

	if err := database.DB.Create(&art).Error; err != nil {
		fmt.Println("❌ Artwork insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork"})
		return
	}
	c.JSON(http.StatusCreated, art)
}

// PUT /artworks/:id
func UpdateArtwork(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	art, ok := LoadArtwork(c)
	if !ok {
		return
	}
	if !canEdit(s, art) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own artworks"})
		return
	}

	var patch ArtworkPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}
	if patch.ImageURL != nil {
		stored, ok := storeImage(c, *patch.ImageURL)
		if !ok {
			return
		}
		patch.ImageURL = &stored
	}

	updates := patch.updates()
	if s.IsArtist() {
		delete(updates, "artist")
	}
	if patch.Status != nil {
		updates["status"] = catalog.NormalizeStatus(*patch.Status)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, art)
		return
	}

	if err := database.DB.Model(&art).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		return
	}
	database.DB.First(&art, "id = ?", art.ID)
	c.JSON(http.StatusOK, art)
}

// DELETE /artworks/:id
func DeleteArtwork(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	art, ok := LoadArtwork(c)
	if !ok {
		return
	}
	if !canEdit(s, art) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own artworks"})
		return
	}

	if err := database.DB.Delete(&catalog.Artwork{}, "id = ?", art.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

// LoadArtwork fetches the artwork named by the :id route param. On failure
// the response has already been written.
func LoadArtwork(c *gin.Context) (catalog.Artwork, bool) {
	id := catalog.ID(strings.TrimSpace(c.Param("id")))
	if id.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork id"})
		return catalog.Artwork{}, false
	}

	var art catalog.Artwork
	err := database.DB.WithContext(c.Request.Context()).First(&art, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return catalog.Artwork{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return catalog.Artwork{}, false
	}
	return art, true
}

func canEdit(s session.Session, art catalog.Artwork) bool {
	if s.IsAdmin() {
		return true
	}
	return s.IsArtist() && art.ArtistID != nil && *art.ArtistID == s.UserID
}

// storeImage turns an inline data URL into a stored file. Plain URLs pass
// through untouched.
func storeImage(c *gin.Context, ref string) (string, bool) {
	path, err := uploads.Images{Dir: config.UPLOADS_DIR}.Save(ref)
	switch {
	case errors.Is(err, uploads.ErrNotImage), errors.Is(err, uploads.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	case err != nil:
		fmt.Println("❌ Image upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return "", false
	}
	return path, true
}
