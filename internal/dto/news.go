package dto

import (
	"mime/multipart"
)

// NewsForm is the create and update body for news articles.
type NewsForm struct {
	Title       string                `form:"title" json:"title" binding:"required,max=255"`
	Content     string                `form:"content" json:"content" binding:"required"`
	Excerpt     string                `form:"excerpt" json:"excerpt"`
	Category    string                `form:"category" json:"category" binding:"required,max=100"`
	Author      string                `form:"author" json:"author" binding:"max=255"`
	Published   bool                  `form:"published" json:"published"`
	Image       *multipart.FileHeader `form:"image" json:"-"`
	DeleteImage bool                  `form:"deleteImage" json:"deleteImage"`
}

// PublishedToggle is the PATCH body for news.
type PublishedToggle struct {
	Published *bool `json:"published" binding:"required"`
}

// ExcerptRequest asks for a drafted excerpt of an article body.
type ExcerptRequest struct {
	Content string `json:"content" binding:"required"`
}
