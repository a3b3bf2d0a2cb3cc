package recommendations

import (
	"fmt"
	"net/http"
	"strconv"

	"gallery-backend/database"
	artworksapi "gallery-backend/internal/api/artworks"
	"gallery-backend/internal/app/http/middleware"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/recommend"

	"github.com/gin-gonic/gin"
)

// Handler serves the recommendation endpoints. The engine is shared across
// requests; it keeps no per-user state.
type Handler struct {
	Engine *recommend.Engine
	Limit  int
}

func NewHandler(engine *recommend.Engine, limit int) *Handler {
	if limit <= 0 {
		limit = recommend.DefaultLimit
	}
	return &Handler{Engine: engine, Limit: limit}
}

type response struct {
	Artworks     []catalog.Artwork `json:"artworks"`
	Kind         recommend.Kind    `json:"kind"`
	Personalized bool              `json:"personalized"`
}

// GET /recommendations
// Never fails because of history trouble: an empty list plus a kind tells
// the client what to render instead.
func (h *Handler) Personalized(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	limit, ok := h.limit(c, h.Limit)
	if !ok {
		return
	}

	artworks, err := artworksapi.Catalog(c.Request.Context(), database.DB)
	if err != nil {
		fmt.Println("❌ Catalog load error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	// the request context carries the session, so a remote history source
	// can call on the user's behalf
	res := h.Engine.Recommend(c.Request.Context(), strconv.FormatUint(uint64(s.UserID), 10), artworks, limit)
	c.JSON(http.StatusOK, response{
		Artworks:     res.Artworks,
		Kind:         res.Kind,
		Personalized: res.Personalized(),
	})
}

// GET /artworks/:id/similar
func (h *Handler) Similar(c *gin.Context) {
	limit, ok := h.limit(c, recommend.DefaultSimilarLimit)
	if !ok {
		return
	}
	current, ok := artworksapi.LoadArtwork(c)
	if !ok {
		return
	}

	artworks, err := artworksapi.Catalog(c.Request.Context(), database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	c.JSON(http.StatusOK, response{
		Artworks: h.Engine.GenerateSimilarArtworkRecommendations(current, artworks, limit),
		Kind:     recommend.KindSimilar,
	})
}

// GET /recommendations/general
func (h *Handler) General(c *gin.Context) {
	limit, ok := h.limit(c, h.Limit)
	if !ok {
		return
	}

	filter := recommend.GeneralFilter{Search: c.Query("q")}
	if filter.MinPrice, ok = priceParam(c, "min_price"); !ok {
		return
	}
	if filter.MaxPrice, ok = priceParam(c, "max_price"); !ok {
		return
	}

	artworks, err := artworksapi.Catalog(c.Request.Context(), database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	c.JSON(http.StatusOK, response{
		Artworks: h.Engine.GenerateGeneralRecommendations(artworks, filter, limit),
		Kind:     recommend.KindGeneral,
	})
}

func (h *Handler) limit(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
		return 0, false
	}
	return n, true
}

func priceParam(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return nil, false
	}
	return &v, true
}
