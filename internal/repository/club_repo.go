package repository

import (
	"adclub/internal/models"

	"gorm.io/gorm"
)

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) ListByOwner(ownerID uint, limit, offset int) ([]models.Club, error) {
	var list []models.Club
	err := r.db.Where("owner_id = ?", ownerID).
		Order("serial_number ASC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *ClubRepository) CountByOwner(ownerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Club{}).Where("owner_id = ?", ownerID).Count(&n).Error
	return n, err
}

func (r *ClubRepository) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&models.Club{}).Count(&n).Error
	return n, err
}

// ListBonuses returns the realized bonus steps of one club, scoped to
// the owning user so callers cannot read another user's history.
func (r *ClubRepository) ListBonuses(clubID, userID uint) ([]models.ClubsBonus, error) {
	var list []models.ClubsBonus
	err := r.db.Where("club_id = ? AND user_id = ?", clubID, userID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *ClubRepository) ListBonusesByUser(userID uint, limit, offset int) ([]models.ClubsBonus, error) {
	var list []models.ClubsBonus
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
