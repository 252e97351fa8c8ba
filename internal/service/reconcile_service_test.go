package service

import (
	"testing"

	"adclub/internal/domain"
	"adclub/internal/models"
	"adclub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReconcileService(db *gorm.DB) *ReconcileService {
	return NewReconcileService(
		repository.NewUserRepository(db),
		repository.NewPointRepository(db),
		repository.NewClubRepository(db),
	)
}

func TestReconcileCleanAfterLedgerActivity(t *testing.T) {
	db := setupTestDB(t)
	clubSvc := NewClubService(db)
	svc := newReconcileService(db)

	a := seedUser(t, db, newUser(1))
	b := newUser(2)
	b.ReferredByID = &a.ID
	referred := seedUser(t, db, b)

	// a earns team income from b's clubs, b earns clubs
	_, err := clubSvc.Allocate(referred.ID, 200)
	require.NoError(t, err)
	_, err = clubSvc.Allocate(a.ID, 100)
	require.NoError(t, err)

	for _, id := range []uint{a.ID, referred.ID} {
		rep, err := svc.ReconcileUser(id)
		require.NoError(t, err)
		assert.True(t, rep.Clean, "user %d drifted: %+v", id, rep)
	}

	rep, err := svc.ReconcileUser(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, rep.TeamIncome.Derived)
	assert.Equal(t, 1.0, rep.ClubsCount.Derived)
}

func TestReconcileDetectsDrift(t *testing.T) {
	db := setupTestDB(t)
	svc := newReconcileService(db)
	u := seedUser(t, db, newUser(1))

	// a balance write that bypassed the ledger
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).
		Update("clubs_bonus", 50.0).Error)

	rep, err := svc.ReconcileUser(u.ID)
	require.NoError(t, err)
	assert.False(t, rep.Clean)
	assert.True(t, rep.ClubsBonus.Drift)
	assert.Equal(t, 50.0, rep.ClubsBonus.Stored)
	assert.Equal(t, 0.0, rep.ClubsBonus.Derived)
	assert.False(t, rep.ClubsCount.Drift)
}

func TestReconcileUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newReconcileService(db)

	_, err := svc.ReconcileUser(9999)
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, de.Status)
}
