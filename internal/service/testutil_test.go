package service

import (
	"fmt"
	"testing"

	"adclub/internal/domain"
	"adclub/internal/models"

	"github.com/glebarez/sqlite"
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

// newUser builds a user whose unique fields derive from the serial.
func newUser(serial uint) models.User {
	return models.User{
		SerialNumber: serial,
		Name:         fmt.Sprintf("user%d", serial),
		Phone:        fmt.Sprintf("017%08d", serial),
		PasswordHash: "x",
		Role:         domain.RoleUser,
		ReferralCode: fmt.Sprintf("code%d", serial),
		BadgeLevel:   domain.BadgeNone,
	}
}

func seedUser(t *testing.T, db *gorm.DB, u models.User) *models.User {
	t.Helper()
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func reload(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return &u
}

func countTx(t *testing.T, db *gorm.DB, userID uint, txType string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.PointTransaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return n
}
