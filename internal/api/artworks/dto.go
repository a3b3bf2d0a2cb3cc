package artworks

type ArtworkInput struct {
	Title       string  `json:"title" binding:"required"`
	Artist      string  `json:"artist"`
	Description string  `json:"description"`
	Medium      string  `json:"medium"`
	Dimensions  string  `json:"dimensions"`
	Year        int     `json:"year"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
	Status      string  `json:"status"`
}

// ArtworkPatch is the PUT body; nil fields stay untouched.
type ArtworkPatch struct {
	Title       *string  `json:"title"`
	Artist      *string  `json:"artist"`
	Description *string  `json:"description"`
	Medium      *string  `json:"medium"`
	Dimensions  *string  `json:"dimensions"`
	Year        *int     `json:"year"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Status      *string  `json:"status"`
}

func (p ArtworkPatch) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if p.Title != nil {
		u["title"] = *p.Title
	}
	if p.Artist != nil {
		u["artist"] = *p.Artist
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	if p.Medium != nil {
		u["medium"] = *p.Medium
	}
	if p.Dimensions != nil {
		u["dimensions"] = *p.Dimensions
	}
	if p.Year != nil {
		u["year"] = *p.Year
	}
	if p.Price != nil {
		u["price"] = *p.Price
	}
	if p.ImageURL != nil {
		u["image_url"] = *p.ImageURL
	}
	return u
}
