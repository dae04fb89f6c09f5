package domain

import "time"

type Review struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Drink     string    `json:"drink"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// RatedReview pairs a review with its current like count for listing.
type RatedReview struct {
	Review
	Likes int `json:"likes"`
}
