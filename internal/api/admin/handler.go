package admin

import (
	"net/http"
	"time"

	"gallery-backend/database"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/orders"
	"gallery-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers        int            `json:"total_users"`
	UsersPerRole      map[string]int `json:"users_per_role"`
	AvailableArtworks int            `json:"available_artworks"`
	SoldArtworks      int            `json:"sold_artworks"`
	CompletedOrders   int            `json:"completed_orders"`
	TotalRevenue      float64        `json:"total_revenue"`
	RecentRevenue     float64        `json:"recent_revenue"`
	TicketsSold       int            `json:"tickets_sold"`
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Phone:      u.Phone,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers, available, sold, completed int64
	var totalRevenue, recentRevenue float64
	var tickets int64

	db := database.DB.WithContext(c.Request.Context())
	db.Model(&users.User{}).Count(&totalUsers)
	db.Model(&catalog.Artwork{}).Where("status = ?", catalog.StatusAvailable).Count(&available)
	db.Model(&catalog.Artwork{}).Where("status = ?", catalog.StatusSold).Count(&sold)

	db.Model(&orders.ArtworkOrder{}).Where("status = ?", orders.StatusCompleted).Count(&completed)
	db.Model(&orders.ArtworkOrder{}).
		Where("status = ?", orders.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	db.Model(&orders.ArtworkOrder{}).
		Where("status = ? AND created_at >= ?", orders.StatusCompleted, thirtyDaysAgo).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&recentRevenue)

	db.Model(&orders.ExhibitionBooking{}).
		Where("status = ?", orders.StatusCompleted).
		Select("COALESCE(SUM(slots), 0)").Scan(&tickets)

	stats.TotalUsers = int(totalUsers)
	stats.AvailableArtworks = int(available)
	stats.SoldArtworks = int(sold)
	stats.CompletedOrders = int(completed)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue
	stats.TicketsSold = int(tickets)

	type RoleCount struct {
		Role  string
		Count int
	}
	var counts []RoleCount
	db.Model(&users.User{}).
		Select("role, COUNT(id) as count").
		Group("role").
		Scan(&counts)

	stats.UsersPerRole = map[string]int{}
	for _, rc := range counts {
		stats.UsersPerRole[rc.Role] = rc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var ords []orders.ArtworkOrder
	if err := database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&ords).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	var bookings []orders.ExhibitionBooking
	if err := database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": AdminUser{
			ID:         user.ID,
			Name:       user.Name,
			Phone:      user.Phone,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
			CreatedAt:  user.CreatedAt,
		},
		"orders":   ords,
		"bookings": bookings,
	})
}
