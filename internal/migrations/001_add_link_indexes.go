package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddLinkIndexes adds indexes for the two hot-path link queries:
// the owner dashboard list and the public page projection.
//
// All statements are idempotent (IF NOT EXISTS) for safe re-runs.
func Migration001AddLinkIndexes() Migration {
	return Migration{
		ID:   "001_add_link_indexes",
		Name: "Add indexes for link list and public page queries",
		Up: func(db *gorm.DB) error {
			// Owner list: WHERE user_id = ? ORDER BY "order"
			idx1 := `
				CREATE INDEX IF NOT EXISTS idx_links_user_order
				ON links (user_id, "order")
			`
			if err := db.Exec(idx1).Error; err != nil {
				return err
			}

			// Public page: WHERE user_id = ? AND active = true ORDER BY "order"
			idx2 := `
				CREATE INDEX IF NOT EXISTS idx_links_user_active_order
				ON links (user_id, active, "order")
			`
			if err := db.Exec(idx2).Error; err != nil {
				return err
			}

			return nil
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_links_user_order`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_links_user_active_order`).Error
		},
	}
}
