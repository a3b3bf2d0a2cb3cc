package exhibitions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gallery-backend/database"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/exhibitions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExhibitionInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	TicketPrice float64   `json:"ticketPrice" binding:"gte=0"`
	TotalSlots  int       `json:"totalSlots" binding:"gte=0"`
}

func (in ExhibitionInput) validate() error {
	if in.EndDate.Before(in.StartDate) {
		return errors.New("endDate must not be before startDate")
	}
	return nil
}

// GET /exhibitions
func ListExhibitions(c *gin.Context) {
	var out []exhibitions.Exhibition
	if err := database.DB.WithContext(c.Request.Context()).
		Order("start_date ASC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exhibitions"})
		return
	}

	// status is derived from the dates, never trusted from the row
	now := time.Now()
	status := c.Query("status")
	filtered := make([]exhibitions.Exhibition, 0, len(out))
	for _, e := range out {
		e.Status = exhibitions.StatusFor(now, e.StartDate, e.EndDate)
		if status != "" && e.Status != status {
			continue
		}
		filtered = append(filtered, e)
	}
	c.JSON(http.StatusOK, filtered)
}

// GET /exhibitions/:id
func GetExhibition(c *gin.Context) {
	ex, ok := LoadExhibition(c, database.DB)
	if !ok {
		return
	}
	ex.Status = exhibitions.StatusFor(time.Now(), ex.StartDate, ex.EndDate)
	c.JSON(http.StatusOK, ex)
}

// POST /exhibitions
func CreateExhibition(c *gin.Context) {
	var in ExhibitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex := exhibitions.Exhibition{
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Location:       in.Location,
		ImageURL:       in.ImageURL,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		TicketPrice:    in.TicketPrice,
		TotalSlots:     in.TotalSlots,
		AvailableSlots: in.TotalSlots,
	}
	if err := database.DB.Create(&ex).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exhibition"})
		return
	}
	c.JSON(http.StatusCreated, ex)
}

// PUT /exhibitions/:id
// Changing totalSlots shifts availableSlots by the same amount, never below zero.
func UpdateExhibition(c *gin.Context) {
	ex, ok := LoadExhibition(c, database.DB)
	if !ok {
		return
	}

	var in ExhibitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available := ex.AvailableSlots + (in.TotalSlots - ex.TotalSlots)
	if available < 0 {
		available = 0
	}

	updates := map[string]interface{}{
		"title":           strings.TrimSpace(in.Title),
		"description":     in.Description,
		"location":        in.Location,
		"image_url":       in.ImageURL,
		"start_date":      in.StartDate,
		"end_date":        in.EndDate,
		"ticket_price":    in.TicketPrice,
		"total_slots":     in.TotalSlots,
		"available_slots": available,
		"status":          exhibitions.StatusFor(time.Now(), in.StartDate, in.EndDate),
	}
	if err := database.DB.Model(&ex).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update exhibition"})
		return
	}
	database.DB.First(&ex, "id = ?", ex.ID)
	c.JSON(http.StatusOK, ex)
}

// DELETE /exhibitions/:id
func DeleteExhibition(c *gin.Context) {
	ex, ok := LoadExhibition(c, database.DB)
	if !ok {
		return
	}
	if err := database.DB.Delete(&exhibitions.Exhibition{}, "id = ?", ex.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exhibition"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exhibition deleted"})
}

// LoadExhibition reads the exhibition named by the :id route param through
// db, which may be a transaction. On failure the response has already been written.
func LoadExhibition(c *gin.Context, db *gorm.DB) (exhibitions.Exhibition, bool) {
	id := catalog.ID(strings.TrimSpace(c.Param("id")))
	if id.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exhibition id"})
		return exhibitions.Exhibition{}, false
	}

	var ex exhibitions.Exhibition
	err := db.WithContext(c.Request.Context()).First(&ex, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exhibition not found"})
		return exhibitions.Exhibition{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exhibition"})
		return exhibitions.Exhibition{}, false
	}
	return ex, true
}
