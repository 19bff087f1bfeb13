package models

import "time"

// Article is a blog post for the practice's website.
type Article struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Content     string    `bson:"content" json:"content"`
	Date        time.Time `bson:"date" json:"date"`
	Category    string    `bson:"category" json:"category"`
	Published   bool      `bson:"published" json:"published"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	Views       int64     `bson:"views" json:"views"`
}

// ArticleUpdate carries the mutable article fields. A nil field is left
// untouched.
type ArticleUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Category    *string `json:"category"`
	Published   *bool   `json:"published"`
	ImageURL    *string `json:"imageUrl"`
}
