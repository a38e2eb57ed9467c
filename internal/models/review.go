package models

import "time"

// Review is a single book review. Every review belongs to exactly one user;
// UserID is set at creation and never changes afterwards.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Author     string    `json:"author" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	DatePosted time.Time `json:"date_posted" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null" validate:"required,min=1,max=5"`
	Content    string    `json:"content" gorm:"type:text;not null" validate:"required"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
}
