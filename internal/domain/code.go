package domain

import "time"

// Code is a single-use invite token tying a guest name and drink choice
// to the right to submit one review.
type Code struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Username  string    `json:"username"`
	Drink     string    `json:"drink"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
