package repository

import (
	"adclub/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByPhone(phone string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetBySerialNumber(serial uint) (*models.User, error) {
	var u models.User
	if err := r.db.Where("serial_number = ?", serial).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByReferralCode(code string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// MaxSerialNumber returns the highest assigned user serial, 0 when the
// table is empty.
func (r *UserRepository) MaxSerialNumber() (uint, error) {
	var max uint
	err := r.db.Model(&models.User{}).Select("COALESCE(MAX(serial_number), 0)").Scan(&max).Error
	return max, err
}

// CountDirectReferrals counts users directly referred by userID.
func (r *UserRepository) CountDirectReferrals(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("referred_by_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *UserRepository) List(limit, offset int) ([]models.User, error) {
	var list []models.User
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
