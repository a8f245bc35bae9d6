package response

import (
	"time"
)

type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description,omitempty"`
	// nil when the title has no reviews yet
	Rating    *float64          `json:"rating"`
	Category  *CategoryResponse `json:"category,omitempty"`
	Genres    []GenreResponse   `json:"genres"`
	CreatedAt time.Time         `json:"created_at"`
}
