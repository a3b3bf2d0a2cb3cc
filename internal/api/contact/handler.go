package contact

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gallery-backend/database"
	"gallery-backend/internal/domain/contact"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxMessageLen = 5000

type messageInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
	Source  string `json:"source"`
}

// POST /contact
func SubmitMessage(c *gin.Context) {
	var in messageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and message are required"})
		return
	}
	if len(in.Message) > maxMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("message must be at most %d characters", maxMessageLen)})
		return
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "contact_form"
	}
	msg := contact.Message{
		Name:    in.Name,
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Message: in.Message,
		Source:  source,
		Status:  contact.StatusNew,
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		fmt.Println("❌ Contact message error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": msg.ID})
}

// GET /messages?status=new
func ListMessages(c *gin.Context) {
	q := database.DB.WithContext(c.Request.Context()).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		if !contact.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		q = q.Where("status = ?", status)
	}

	out := []contact.Message{}
	if err := q.Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /messages/:id
func UpdateMessageStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !contact.ValidStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be new, read or replied"})
		return
	}

	var msg contact.Message
	err = database.DB.WithContext(c.Request.Context()).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load message"})
		return
	}

	if err := database.DB.Model(&msg).Update("status", in.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}
	msg.Status = in.Status
	c.JSON(http.StatusOK, msg)
}
