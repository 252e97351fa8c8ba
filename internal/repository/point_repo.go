package repository

import (
	"adclub/internal/models"

	"gorm.io/gorm"
)

type PointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) ListByUser(userID uint, limit, offset int) ([]models.PointTransaction, error) {
	var list []models.PointTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *PointRepository) ListByUserAndType(userID uint, txType string, limit, offset int) ([]models.PointTransaction, error) {
	var list []models.PointTransaction
	err := r.db.Where("user_id = ? AND type = ?", userID, txType).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// SumByUserAndType totals a user's ledger entries of one type.
func (r *PointRepository) SumByUserAndType(userID uint, txType string) (float64, error) {
	var sum float64
	err := r.db.Model(&models.PointTransaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
