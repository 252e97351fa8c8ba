package service

import (
	"testing"
	"time"

	"adclub/config"
	"adclub/internal/domain"
	"adclub/internal/models"
	"adclub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			AccessExpiry:  time.Minute,
			RefreshExpiry: time.Hour,
			Issuer:        "adclub-test",
		},
	}
}

func TestResolveChainTruncatesAtMaxDepth(t *testing.T) {
	db := setupTestDB(t)

	// six-deep chain: u1 <- u2 <- u3 <- u4 <- u5 <- u6
	var prev *uint
	users := make([]*models.User, 0, 6)
	for i := 1; i <= 6; i++ {
		u := newUser(uint(i))
		u.ReferredByID = prev
		seeded := seedUser(t, db, u)
		users = append(users, seeded)
		id := seeded.ID
		prev = &id
	}

	got, err := ResolveChain(db, &users[5].ID)
	require.NoError(t, err)
	// closest-first, cut at four levels
	assert.Equal(t, []uint{users[5].ID, users[4].ID, users[3].ID, users[2].ID}, got)

	got, err = ResolveChain(db, &users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{users[0].ID}, got)

	got, err = ResolveChain(db, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDistributeReferralBonusIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	a := seedUser(t, db, newUser(1))
	b := seedUser(t, db, newUser(2))
	c := seedUser(t, db, newUser(3))
	ancestors := []uint{a.ID, b.ID, c.ID}
	refKey := models.UserRef(99)

	err := DistributeReferralBonus(db, ancestors, domain.TxReferralSignupBonus, refKey, "test")
	require.NoError(t, err)
	// replaying the same event pays nothing
	err = DistributeReferralBonus(db, ancestors, domain.TxReferralSignupBonus, refKey, "test")
	require.NoError(t, err)

	assert.Equal(t, int64(1), countTx(t, db, a.ID, domain.TxReferralSignupBonus))
	assert.Equal(t, int64(1), countTx(t, db, b.ID, domain.TxReferralSignupBonus))
	assert.Equal(t, int64(1), countTx(t, db, c.ID, domain.TxReferralSignupBonus))

	assert.Equal(t, 40.0, reload(t, db, a.ID).TotalBalance)
	assert.Equal(t, 20.0, reload(t, db, b.ID).TotalBalance)
	assert.Equal(t, 10.0, reload(t, db, c.ID).TotalBalance)
	assert.Equal(t, 40.0, reload(t, db, a.ID).TeamIncome)
}

func TestRegisterPaysSignupChain(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(testConfig(), db, repository.NewUserRepository(db))

	// c <- b <- a; the new user registers under a's code
	c := seedUser(t, db, newUser(1))
	ub := newUser(2)
	ub.ReferredByID = &c.ID
	b := seedUser(t, db, ub)
	ua := newUser(3)
	ua.ReferredByID = &b.ID
	a := seedUser(t, db, ua)

	u, access, refresh, err := svc.Register("dara", "01799990001", "secret1", a.ReferralCode)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, uint(4), u.SerialNumber)
	require.NotNil(t, u.ReferredByID)
	assert.Equal(t, a.ID, *u.ReferredByID)

	var ref models.Referral
	require.NoError(t, db.Where("referred_id = ?", u.ID).First(&ref).Error)
	assert.Equal(t, a.ID, ref.ReferrerID)
	assert.Equal(t, 40.0, ref.Bonus)
	assert.True(t, ref.Rewarded)

	assert.Equal(t, 40.0, reload(t, db, a.ID).TotalBalance)
	assert.Equal(t, 40.0, reload(t, db, a.ID).RefBonusEarned)
	assert.Equal(t, 20.0, reload(t, db, b.ID).TotalBalance)
	assert.Equal(t, 10.0, reload(t, db, c.ID).TotalBalance)
	assert.Equal(t, 0.0, reload(t, db, b.ID).RefBonusEarned)

	assert.Equal(t, int64(1), countTx(t, db, a.ID, domain.TxReferralSignupBonus))
	assert.Equal(t, int64(1), countTx(t, db, b.ID, domain.TxReferralSignupBonus))
	assert.Equal(t, int64(1), countTx(t, db, c.ID, domain.TxReferralSignupBonus))
}

func TestRegisterIgnoresUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(testConfig(), db, repository.NewUserRepository(db))

	u, _, _, err := svc.Register("nur", "01799990002", "secret1", "NOSUCH00")
	require.NoError(t, err)
	assert.Nil(t, u.ReferredByID)
	assert.Equal(t, uint(1), u.SerialNumber)

	var refs int64
	db.Model(&models.Referral{}).Count(&refs)
	assert.Equal(t, int64(0), refs)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(testConfig(), db, repository.NewUserRepository(db))

	_, _, _, err := svc.Register("nur", "01799990003", "secret1", "")
	require.NoError(t, err)
	// the duplicate surfaces from the phone unique index, so even a
	// racing second registration resolves to ErrPhoneExists
	_, _, _, err = svc.Register("other", "01799990003", "secret1", "")
	assert.ErrorIs(t, err, ErrPhoneExists)

	var n int64
	db.Model(&models.User{}).Where("phone = ?", "01799990003").Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestLoginAndRefresh(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(testConfig(), db, repository.NewUserRepository(db))

	_, _, _, err := svc.Register("nur", "01799990004", "secret1", "")
	require.NoError(t, err)

	u, access, refresh, err := svc.Login("01799990004", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, "01799990004", u.Phone)

	_, _, err = svc.Refresh(refresh)
	assert.NoError(t, err)

	_, _, _, err = svc.Login("01799990004", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("01700000099", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}
