package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/pkg/utils"
)

// links.go holds the link collection engine: order assignment, owner-scoped
// CRUD, batch reordering, and the public click counter. Handlers stay thin
// over these functions.

var (
	ErrLinkNotFound  = errors.New("link not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title cannot exceed 80 characters")
	ErrURLRequired   = errors.New("url is required")
)

// linkListOrder sorts by rank with creation time then id as stable
// tiebreakers, so duplicate order values (possible when two creates race)
// still render deterministically.
const linkListOrder = `"order" ASC, created_at ASC, id ASC`

// LinkPatch carries a partial update; nil fields are left untouched.
type LinkPatch struct {
	Title  *string
	URL    *string
	Active *bool
	Icon   *string
	Order  *int
}

// OrderUpdate is one (link id, new rank) pair of a reorder submission.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// NextOrder returns the append-at-end rank for a new link: one past the
// owner's current maximum, or 0 for the first link. The read is
// point-in-time; two racing creates can get the same rank, which the list
// tiebreak absorbs.
func NextOrder(userID string) (int, error) {
	var last models.Link
	err := database.DB.
		Where("user_id = ?", userID).
		Order(`"order" DESC`).
		Select(`"order"`).
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Order + 1, nil
}

// CreateLink validates and persists a new link for userID, appended at the
// end of their collection.
func CreateLink(userID, title, url, icon string) (*models.Link, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)

	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > models.MaxLinkTitleLength {
		return nil, ErrTitleTooLong
	}
	if url == "" {
		return nil, ErrURLRequired
	}

	order, err := NextOrder(userID)
	if err != nil {
		return nil, err
	}

	link := models.Link{
		ID:     utils.GenerateID(),
		UserID: userID,
		Title:  title,
		URL:    url,
		Icon:   icon,
		Order:  order,
		Active: true,
		Clicks: 0,
	}

	if err := database.DB.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLinks returns all of userID's links sorted by rank.
func ListLinks(userID string) ([]models.Link, error) {
	links := []models.Link{}
	err := database.DB.
		Where("user_id = ?", userID).
		Order(linkListOrder).
		Find(&links).Error
	return links, err
}

// ListActiveLinks returns the public projection of userID's links: active
// only, sorted by rank, stripped of clicks and ownership.
func ListActiveLinks(userID string) ([]models.PublicLink, error) {
	var links []models.Link
	err := database.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Order(linkListOrder).
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	public := make([]models.PublicLink, 0, len(links))
	for i := range links {
		public = append(public, links[i].Public())
	}
	return public, nil
}

// GetLink fetches a link by id without ownership scoping. Used on the
// public click path where the opaque id is the only guard.
func GetLink(id string) (*models.Link, error) {
	var link models.Link
	err := database.DB.First(&link, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetOwnedLink fetches a link scoped to its owner. A link owned by someone
// else is reported as not found, never as forbidden.
func GetOwnedLink(id, userID string) (*models.Link, error) {
	var link models.Link
	err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// UpdateLink applies a partial patch to a link owned by userID. Only the
// patched columns are written; clicks in particular is never part of the
// write, so an increment landing between the read and the update survives.
func UpdateLink(id, userID string, patch LinkPatch) (*models.Link, error) {
	link, err := GetOwnedLink(id, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > models.MaxLinkTitleLength {
			return nil, ErrTitleTooLong
		}
		link.Title = title
		fields["title"] = title
	}
	if patch.URL != nil {
		url := strings.TrimSpace(*patch.URL)
		if url == "" {
			return nil, ErrURLRequired
		}
		link.URL = url
		fields["url"] = url
	}
	if patch.Active != nil {
		link.Active = *patch.Active
		fields["active"] = *patch.Active
	}
	if patch.Icon != nil {
		link.Icon = *patch.Icon
		fields["icon"] = *patch.Icon
	}
	if patch.Order != nil {
		link.Order = *patch.Order
		fields["order"] = *patch.Order
	}

	if len(fields) == 0 {
		return link, nil
	}

	if err := database.DB.Model(&models.Link{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteLink removes a link owned by userID. Sibling ranks are not
// renumbered; gaps are harmless.
func DeleteLink(id, userID string) error {
	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Link{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// ReorderLinks applies a client-computed ranking in one transaction.
// Each pair is scoped to userID, so ids the caller does not own simply
// match zero rows and are skipped without failing the batch. A storage
// error rolls the whole permutation back.
func ReorderLinks(userID string, updates []OrderUpdate) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&models.Link{}).
				Where("id = ? AND user_id = ?", u.ID, userID).
				UpdateColumn("order", u.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordClick increments a link's click counter and returns the new count.
// Deliberately unauthenticated: the opaque id is the only guard. The
// increment happens in SQL so concurrent clicks are never lost to a
// read-modify-write race.
func RecordClick(id string) (int, error) {
	result := database.DB.Model(&models.Link{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrLinkNotFound
	}

	link, err := GetLink(id)
	if err != nil {
		return 0, err
	}
	return link.Clicks, nil
}
