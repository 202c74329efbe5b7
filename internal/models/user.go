package models

import (
	"time"
)

// Theme holds the public page appearance settings. Stored flattened on the
// users table, serialized as a nested object to match the frontend shape.
type Theme struct {
	BackgroundColor string `gorm:"default:'#ffffff'" json:"backgroundColor"`
	ButtonColor     string `gorm:"default:'#000000'" json:"buttonColor"`
	ButtonTextColor string `gorm:"default:'#ffffff'" json:"buttonTextColor"`
	FontFamily      string `gorm:"default:'Inter'" json:"fontFamily"`
}

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email       string `gorm:"uniqueIndex" json:"email"`
	Username    string `gorm:"uniqueIndex" json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`

	Theme Theme `gorm:"embedded;embeddedPrefix:theme_" json:"theme"`

	Password string `json:"-"`
}

// PublicProfile is the field-stripped view of a User served on the public
// page. Email and timestamps never leave the dashboard.
type PublicProfile struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Theme       Theme  `json:"theme"`
}

// Public returns the projection of u safe for unauthenticated viewers.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		Theme:       u.Theme,
	}
}
