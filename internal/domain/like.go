package domain

import "time"

type Like struct {
	ID        uint      `json:"id"`
	ReviewID  uint      `json:"review_id"`
	CodeID    uint      `json:"code_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
