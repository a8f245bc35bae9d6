package response

import (
	"time"

	"ratings-catalog/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"title_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review, author string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		TitleID:   review.TitleID.String(),
		Author:    author,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}
