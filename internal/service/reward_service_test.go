package service

import (
	"fmt"
	"testing"

	"adclub/internal/domain"
	"adclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchAdCreditsReward(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, NewClubService(db))
	u := seedUser(t, db, newUser(1))
	ad := models.Ad{Title: "promo", MediaURL: "https://cdn.example/a.mp4", Reward: 2.5, Active: true}
	require.NoError(t, db.Create(&ad).Error)

	view, err := svc.WatchAd(u.ID, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, view.Reward)

	got := reload(t, db, u.ID)
	assert.Equal(t, 2.5, got.TotalBalance)
	assert.Equal(t, 2.5, got.TotalEarnings)
}

func TestWatchAdOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, NewClubService(db))
	u := seedUser(t, db, newUser(1))
	ad := models.Ad{Title: "promo", MediaURL: "https://cdn.example/a.mp4", Reward: 2.5, Active: true}
	require.NoError(t, db.Create(&ad).Error)

	_, err := svc.WatchAd(u.ID, ad.ID)
	require.NoError(t, err)
	_, err = svc.WatchAd(u.ID, ad.ID)
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "ad already watched today", de.Message)

	assert.Equal(t, 2.5, reload(t, db, u.ID).TotalBalance)
}

func TestWatchAdHonorsPackageLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, NewClubService(db))
	p := models.Package{Name: "starter", Price: 0, DailyAdLimit: 2, Active: true}
	require.NoError(t, db.Create(&p).Error)
	u := newUser(1)
	u.PackageID = &p.ID
	seeded := seedUser(t, db, u)

	for i := 0; i < 3; i++ {
		ad := models.Ad{Title: fmt.Sprintf("ad %d", i), MediaURL: "https://cdn.example/a.mp4", Reward: 1, Active: true}
		require.NoError(t, db.Create(&ad).Error)
		_, err := svc.WatchAd(seeded.ID, ad.ID)
		if i < 2 {
			require.NoError(t, err)
			continue
		}
		require.Error(t, err)
		de, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "daily ad limit reached", de.Message)
	}
	assert.Equal(t, 2.0, reload(t, db, seeded.ID).TotalBalance)
}

func TestWatchAdIgnoresInactiveAds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, NewClubService(db))
	u := seedUser(t, db, newUser(1))
	ad := models.Ad{Title: "off", MediaURL: "https://cdn.example/a.mp4", Reward: 2.5, Active: false}
	require.NoError(t, db.Create(&ad).Error)

	_, err := svc.WatchAd(u.ID, ad.ID)
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, de.Status)
}

func TestPurchasePackageAllocatesClubs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, NewClubService(db))
	p := models.Package{Name: "growth", Price: 250, DailyAdLimit: 10, Active: true}
	require.NoError(t, db.Create(&p).Error)
	u := seedUser(t, db, newUser(1))

	alloc, err := svc.PurchasePackage(u.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, alloc.ClubsCreated)
	assert.Equal(t, 50.0, alloc.DepositLeft)

	got := reload(t, db, u.ID)
	require.NotNil(t, got.PackageID)
	assert.Equal(t, p.ID, *got.PackageID)
	assert.Equal(t, 2, got.CachedClubsCount)
}
