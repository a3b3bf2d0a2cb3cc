package users

import (
	"errors"
	"net/http"
	"strings"

	"gallery-backend/database"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /me
func UpdateCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Name            *string `json:"name"`
		Phone           *string `json:"phone"`
		Bio             *string `json:"bio"`
		ProfileImageURL *string `json:"profileImageUrl"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must not be empty"})
			return
		}
		updates["name"] = name
	}
	if body.Phone != nil {
		updates["phone"] = *body.Phone
	}
	if user.IsArtist() {
		if body.Bio != nil {
			updates["bio"] = *body.Bio
		}
		if body.ProfileImageURL != nil {
			updates["profile_image_url"] = *body.ProfileImageURL
		}
	}

	if len(updates) > 0 {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}
			// artwork rows carry the artist name; keep them in step
			if name, ok := updates["name"]; ok && user.IsArtist() {
				return tx.Model(&catalog.Artwork{}).Where("artist_id = ?", user.ID).Update("artist", name).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		database.DB.First(&user, userID)
	}
	c.JSON(http.StatusOK, user)
}

// GET /artists
func ListArtists(c *gin.Context) {
	var artists []users.User
	if err := database.DB.Where("role = ?", users.RoleArtist).Order("name ASC").Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artists"})
		return
	}

	out := make([]gin.H, 0, len(artists))
	for _, a := range artists {
		out = append(out, artistView(a))
	}
	c.JSON(http.StatusOK, out)
}

// GET /artists/:id
func GetArtist(c *gin.Context) {
	var artist users.User
	err := database.DB.Where("id = ? AND role = ?", c.Param("id"), users.RoleArtist).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artist"})
		return
	}

	var works []catalog.Artwork
	if err := database.DB.Where("artist_id = ?", artist.ID).Order("created_at DESC").Find(&works).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	out := artistView(artist)
	out["artworks"] = works
	c.JSON(http.StatusOK, out)
}

// artistView is the public face of an artist; no email or phone.
func artistView(u users.User) gin.H {
	return gin.H{
		"id":              u.ID,
		"name":            u.Name,
		"bio":             u.Bio,
		"profileImageUrl": u.ProfileImageURL,
	}
}
