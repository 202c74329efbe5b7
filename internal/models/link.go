package models

import (
	"time"
)

// MaxLinkTitleLength caps the display title of a link.
const MaxLinkTitleLength = 80

// Link is a single outbound link on an owner's public page.
// Order is the display rank among that owner's links; values need not be
// contiguous and duplicates are tolerated (ties break by creation time).
// Clicks only ever grows, via an SQL-level increment.
type Link struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"index" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Title  string `json:"title"`
	URL    string `json:"url"`
	Order  int    `json:"order"`
	Active bool   `gorm:"default:true" json:"active"`
	Clicks int    `gorm:"default:0" json:"clicks"`
	Icon   string `json:"icon,omitempty"`
}

// PublicLink is the stripped projection of a Link served to anonymous
// viewers: no clicks, no owner, no timestamps.
type PublicLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// Public returns the projection of l safe for unauthenticated viewers.
func (l *Link) Public() PublicLink {
	return PublicLink{
		ID:    l.ID,
		Title: l.Title,
		URL:   l.URL,
		Icon:  l.Icon,
	}
}
