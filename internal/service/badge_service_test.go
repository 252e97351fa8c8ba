package service

import (
	"testing"

	"adclub/internal/domain"
	"adclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeFor(t *testing.T) {
	cases := []struct {
		refs  int64
		clubs int64
		want  string
	}{
		{0, 0, domain.BadgeNone},
		{3, 1000, domain.BadgeNone}, // club count alone never promotes
		{4, 49, domain.BadgeNone},
		{4, 50, domain.BadgeSilver},
		{10, 199, domain.BadgeSilver},
		{4, 200, domain.BadgeGolden},
		{4, 399, domain.BadgeGolden},
		{4, 400, domain.BadgeDiamond},
		{100, 100000, domain.BadgeDiamond},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BadgeFor(c.refs, c.clubs), "refs=%d clubs=%d", c.refs, c.clubs)
	}
}

func TestEvaluatePromotesOnThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBadgeService(db)
	referrer := seedUser(t, db, newUser(1))

	// four direct referrals holding 50 clubs between them
	serial := uint64(0)
	for i := 0; i < 4; i++ {
		u := newUser(uint(10 + i))
		u.ReferredByID = &referrer.ID
		child := seedUser(t, db, u)
		clubs := 12
		if i == 0 {
			clubs = 14
		}
		for j := 0; j < clubs; j++ {
			serial++
			club := models.Club{OwnerID: child.ID, SerialNumber: serial, Source: "AUTO"}
			require.NoError(t, db.Create(&club).Error)
		}
	}

	require.NoError(t, svc.Evaluate([]uint{referrer.ID}))
	assert.Equal(t, domain.BadgeSilver, reload(t, db, referrer.ID).BadgeLevel)
}

func TestEvaluateRequiresFourReferrals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBadgeService(db)
	referrer := seedUser(t, db, newUser(1))

	serial := uint64(0)
	for i := 0; i < 3; i++ {
		u := newUser(uint(10 + i))
		u.ReferredByID = &referrer.ID
		child := seedUser(t, db, u)
		for j := 0; j < 40; j++ {
			serial++
			club := models.Club{OwnerID: child.ID, SerialNumber: serial, Source: "AUTO"}
			require.NoError(t, db.Create(&club).Error)
		}
	}

	require.NoError(t, svc.Evaluate([]uint{referrer.ID}))
	assert.Equal(t, domain.BadgeNone, reload(t, db, referrer.ID).BadgeLevel)
}

func TestEvaluateLeavesPlatinumAlone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBadgeService(db)
	u := newUser(1)
	u.BadgeLevel = domain.BadgePlatinum
	seeded := seedUser(t, db, u)

	require.NoError(t, svc.Evaluate([]uint{seeded.ID}))
	assert.Equal(t, domain.BadgePlatinum, reload(t, db, seeded.ID).BadgeLevel)
}
