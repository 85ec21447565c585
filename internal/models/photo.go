package models

import "time"

// Comment is owned by its photo; it has no lifecycle of its own.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  int       `json:"authorId"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type Photo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	OwnerID     int       `json:"ownerId"`
	Owner       string    `json:"owner"`
	Likes       []int     `json:"likes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type DescriptionRequest struct {
	Description string `json:"description" validate:"max=2000"`
}
