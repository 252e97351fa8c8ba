package repository

import (
	"fmt"
	"testing"

	"adclub/internal/domain"
	"adclub/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	all := []interface{}{
		&models.User{},
		&models.Club{},
		&models.ClubsBonus{},
		&models.PointTransaction{},
		&models.Referral{},
		&models.Withdrawal{},
		&models.Package{},
		&models.Ad{},
		&models.AdView{},
		&models.Banner{},
		&models.BankingService{},
	}
	if err := db.Migrator().DropTable(all...); err != nil {
		t.Fatalf("drop tables: %v", err)
	}
	if err := db.AutoMigrate(all...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, serial uint) *models.User {
	t.Helper()
	u := models.User{
		SerialNumber: serial,
		Name:         fmt.Sprintf("user%d", serial),
		Phone:        fmt.Sprintf("017%08d", serial),
		PasswordHash: "x",
		Role:         domain.RoleUser,
		ReferralCode: fmt.Sprintf("code%d", serial),
		BadgeLevel:   domain.BadgeNone,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestUserRepositoryLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	a := seedUser(t, db, 1)
	b := seedUser(t, db, 7)
	b.ReferredByID = &a.ID
	require.NoError(t, db.Save(b).Error)

	got, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Phone, got.Phone)

	got, err = repo.GetByPhone(b.Phone)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = repo.GetBySerialNumber(7)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = repo.GetByReferralCode("code1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByPhone("01700009999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	maxSerial, err := repo.MaxSerialNumber()
	require.NoError(t, err)
	assert.Equal(t, uint(7), maxSerial)

	refs, err := repo.CountDirectReferrals(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), refs)

	list, err := repo.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUniqueCodeShape(t *testing.T) {
	db := setupTestDB(t)
	code, err := UniqueCode(db)
	require.NoError(t, err)
	assert.Len(t, code, 8)
}

func TestClubRepositoryQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClubRepository(db)
	owner := seedUser(t, db, 1)
	other := seedUser(t, db, 2)

	for i := uint64(1); i <= 3; i++ {
		ownerID := owner.ID
		if i == 3 {
			ownerID = other.ID
		}
		require.NoError(t, db.Create(&models.Club{OwnerID: ownerID, SerialNumber: i, Source: "AUTO"}).Error)
	}
	var club models.Club
	require.NoError(t, db.Where("serial_number = ?", 1).First(&club).Error)
	require.NoError(t, db.Create(&models.ClubsBonus{ClubID: club.ID, UserID: owner.ID, Amount: 200, Status: "Complete"}).Error)

	list, err := repo.ListByOwner(owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, uint64(1), list[0].SerialNumber)

	n, err := repo.CountByOwner(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	bonuses, err := repo.ListBonuses(club.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, bonuses, 1)

	// another user's club bonus history reads as empty
	bonuses, err = repo.ListBonuses(club.ID, other.ID)
	require.NoError(t, err)
	assert.Empty(t, bonuses)

	byUser, err := repo.ListBonusesByUser(owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}

func TestPointRepositorySums(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPointRepository(db)
	u := seedUser(t, db, 1)

	for _, amt := range []float64{40, 20} {
		require.NoError(t, db.Create(&models.PointTransaction{
			UserID: u.ID, Amount: amt, Type: domain.TxReferralClubIncome,
		}).Error)
	}
	require.NoError(t, db.Create(&models.PointTransaction{
		UserID: u.ID, Amount: 200, Type: domain.TxClubBonus,
	}).Error)

	sum, err := repo.SumByUserAndType(u.ID, domain.TxReferralClubIncome)
	require.NoError(t, err)
	assert.Equal(t, 60.0, sum)

	sum, err = repo.SumByUserAndType(u.ID, domain.TxRoyaltyDaily)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum)

	list, err := repo.ListByUserAndType(u.ID, domain.TxClubBonus, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.ListByUser(u.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestWithdrawalRepositoryLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWithdrawalRepository(db)
	u := seedUser(t, db, 1)
	w := models.Withdrawal{
		UserID: u.ID, OrderID: "wd-test-1", Amount: 200, Fee: 10, NetAmount: 190,
		Method: "bkash", Status: domain.WithdrawStatusPending,
	}
	require.NoError(t, db.Create(&w).Error)

	got, err := repo.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "wd-test-1", got.OrderID)

	got, err = repo.GetByOrderID("wd-test-1")
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	_, err = repo.GetByOrderID("wd-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := repo.ListByUser(u.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.ListByStatus(domain.WithdrawStatusPending, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCatalogRepositoryDetail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCatalogRepository(db)

	p := models.Package{Name: "starter", Price: 100, DailyAdLimit: 5, Active: true}
	require.NoError(t, db.Create(&p).Error)
	inactive := models.Package{Name: "legacy", Price: 50, Active: false}
	require.NoError(t, db.Create(&inactive).Error)
	ad := models.Ad{Title: "promo", MediaURL: "https://cdn.example/a.mp4", Reward: 2, Active: true}
	require.NoError(t, db.Create(&ad).Error)

	got, err := repo.GetPackage(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "starter", got.Name)

	_, err = repo.GetPackage(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	gotAd, err := repo.GetAd(ad.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, gotAd.Reward)

	active, err := repo.ListPackages(true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestReferralRepositoryUpline(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReferralRepository(db)
	referrer := seedUser(t, db, 1)
	referred := seedUser(t, db, 2)
	require.NoError(t, db.Create(&models.Referral{
		ReferrerID: referrer.ID, ReferredID: referred.ID, Bonus: 40, Rewarded: true,
	}).Error)

	ref, err := repo.GetByReferredID(referred.ID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, ref.ReferrerID)

	_, err = repo.GetByReferredID(referrer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := repo.ListByReferrerID(referrer.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, referred.ID, list[0].Referred.ID)
}
