package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
)

func setupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Link{},
	)
}

func seedUser(id string) {
	database.DB.Create(&models.User{ID: id, Username: id, Email: id + "@example.com"})
}

func TestNextOrder(t *testing.T) {
	setupTestDB()
	seedUser("svc_next")

	// Empty collection starts at 0
	order, err := NextOrder("svc_next")
	assert.NoError(t, err)
	assert.Equal(t, 0, order)

	database.DB.Create(&models.Link{ID: "svc_next_1", UserID: "svc_next", Title: "A", URL: "https://a.example", Order: 0})
	database.DB.Create(&models.Link{ID: "svc_next_2", UserID: "svc_next", Title: "B", URL: "https://b.example", Order: 7})

	// One past the maximum, gaps included
	order, err = NextOrder("svc_next")
	assert.NoError(t, err)
	assert.Equal(t, 8, order)
}

func TestCreateLink_SequentialOrders(t *testing.T) {
	setupTestDB()
	seedUser("svc_seq")

	for i := 0; i < 5; i++ {
		link, err := CreateLink("svc_seq", "Link", "https://a.example", "")
		assert.NoError(t, err)
		assert.Equal(t, i, link.Order)
	}

	links, err := ListLinks("svc_seq")
	assert.NoError(t, err)
	assert.Len(t, links, 5)
	for i := 1; i < len(links); i++ {
		assert.GreaterOrEqual(t, links[i].Order, links[i-1].Order)
	}
}

func TestCreateLink_Validation(t *testing.T) {
	setupTestDB()
	seedUser("svc_valid")

	_, err := CreateLink("svc_valid", "", "https://a.example", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = CreateLink("svc_valid", "   ", "https://a.example", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	long := make([]byte, models.MaxLinkTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = CreateLink("svc_valid", string(long), "https://a.example", "")
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = CreateLink("svc_valid", "Fine", "", "")
	assert.ErrorIs(t, err, ErrURLRequired)
}

func TestListLinks_DuplicateOrderTiebreak(t *testing.T) {
	setupTestDB()
	seedUser("svc_tie")

	// Two racing creates can both land on order 0; creation order decides
	first, err := CreateLink("svc_tie", "First", "https://a.example", "")
	assert.NoError(t, err)
	second := models.Link{ID: "svc_tie_dup", UserID: "svc_tie", Title: "Second", URL: "https://b.example", Order: first.Order}
	database.DB.Create(&second)

	links, err := ListLinks("svc_tie")
	assert.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Equal(t, first.ID, links[0].ID)
	assert.Equal(t, "svc_tie_dup", links[1].ID)
}

func TestRecordClick_Monotonic(t *testing.T) {
	setupTestDB()
	seedUser("svc_click")
	database.DB.Create(&models.Link{ID: "svc_click_l", UserID: "svc_click", Title: "A", URL: "https://a.example", Clicks: 10})

	const k = 25
	var last int
	for i := 1; i <= k; i++ {
		count, err := RecordClick("svc_click_l")
		assert.NoError(t, err)
		assert.Greater(t, count, last)
		last = count
	}
	assert.Equal(t, 10+k, last)
}

func TestRecordClick_Concurrent(t *testing.T) {
	setupTestDB()
	seedUser("svc_conc")
	database.DB.Create(&models.Link{ID: "svc_conc_l", UserID: "svc_conc", Title: "A", URL: "https://a.example", Clicks: 3})

	// Single connection: the in-memory driver cannot take two writers,
	// so contention resolves at the pool instead of as busy errors.
	sqlDB, err := database.DB.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const k = 20
	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := RecordClick("svc_conc_l")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	link, err := GetLink("svc_conc_l")
	assert.NoError(t, err)
	assert.Equal(t, 3+k, link.Clicks)
}

func TestUpdateLink_KeepsInFlightClicks(t *testing.T) {
	setupTestDB()
	seedUser("svc_race")
	database.DB.Create(&models.Link{ID: "svc_race_l", UserID: "svc_race", Title: "A", URL: "https://a.example", Active: true})

	// Land a click after the patch target was read but before the patch
	// is written; the counter must survive the owner's write.
	fired := false
	database.DB.Callback().Update().Before("gorm:update").Register("interleaved_click", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		database.DB.Exec(`UPDATE links SET clicks = clicks + 1 WHERE id = ?`, "svc_race_l")
	})
	defer database.DB.Callback().Update().Remove("interleaved_click")

	title := "Renamed"
	_, err := UpdateLink("svc_race_l", "svc_race", LinkPatch{Title: &title})
	assert.NoError(t, err)
	assert.True(t, fired)

	link, err := GetLink("svc_race_l")
	assert.NoError(t, err)
	assert.Equal(t, 1, link.Clicks)
	assert.Equal(t, "Renamed", link.Title)
}

func TestRecordClick_NotFound(t *testing.T) {
	setupTestDB()

	_, err := RecordClick("svc_ghost")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestUpdateLink_OwnerScoping(t *testing.T) {
	setupTestDB()
	seedUser("svc_up_a")
	seedUser("svc_up_b")
	database.DB.Create(&models.Link{ID: "svc_up_l", UserID: "svc_up_b", Title: "B", URL: "https://b.example"})

	title := "stolen"
	_, err := UpdateLink("svc_up_l", "svc_up_a", LinkPatch{Title: &title})
	assert.ErrorIs(t, err, ErrLinkNotFound)

	_, err = UpdateLink("svc_up_l", "svc_up_b", LinkPatch{Title: &title})
	assert.NoError(t, err)
}

func TestDeleteLink_LeavesGaps(t *testing.T) {
	setupTestDB()
	seedUser("svc_gap")
	database.DB.Create(&models.Link{ID: "svc_gap_0", UserID: "svc_gap", Title: "A", URL: "https://a.example", Order: 0})
	database.DB.Create(&models.Link{ID: "svc_gap_1", UserID: "svc_gap", Title: "B", URL: "https://b.example", Order: 1})
	database.DB.Create(&models.Link{ID: "svc_gap_2", UserID: "svc_gap", Title: "C", URL: "https://c.example", Order: 2})

	assert.NoError(t, DeleteLink("svc_gap_1", "svc_gap"))

	// Siblings keep their ranks; the gap is harmless
	links, err := ListLinks("svc_gap")
	assert.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Equal(t, 0, links[0].Order)
	assert.Equal(t, 2, links[1].Order)
}

func TestReorderLinks_AppliesPermutation(t *testing.T) {
	setupTestDB()
	seedUser("svc_perm")
	database.DB.Create(&models.Link{ID: "svc_perm_a", UserID: "svc_perm", Title: "A", URL: "https://a.example", Order: 0})
	database.DB.Create(&models.Link{ID: "svc_perm_b", UserID: "svc_perm", Title: "B", URL: "https://b.example", Order: 1})
	database.DB.Create(&models.Link{ID: "svc_perm_c", UserID: "svc_perm", Title: "C", URL: "https://c.example", Order: 2})

	err := ReorderLinks("svc_perm", []OrderUpdate{
		{ID: "svc_perm_c", Order: 0},
		{ID: "svc_perm_a", Order: 1},
		{ID: "svc_perm_b", Order: 2},
	})
	assert.NoError(t, err)

	links, _ := ListLinks("svc_perm")
	assert.Equal(t, []string{"svc_perm_c", "svc_perm_a", "svc_perm_b"},
		[]string{links[0].ID, links[1].ID, links[2].ID})
}

func TestListActiveLinks_StripsPrivateFields(t *testing.T) {
	setupTestDB()
	seedUser("svc_pub")
	database.DB.Create(&models.Link{ID: "svc_pub_on", UserID: "svc_pub", Title: "On", URL: "https://a.example", Order: 0, Active: true, Clicks: 99})
	database.DB.Create(&models.Link{ID: "svc_pub_off", UserID: "svc_pub", Title: "Off", URL: "https://b.example", Order: 1, Active: false})

	links, err := ListActiveLinks("svc_pub")
	assert.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Equal(t, "svc_pub_on", links[0].ID)
	assert.Equal(t, "On", links[0].Title)
}
