package repository

import (
	"adclub/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository serves the plain CRUD records around the ledger:
// packages, ads, banners and banking services.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetPackage(id uint) (*models.Package, error) {
	var p models.Package
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) ListPackages(activeOnly bool) ([]models.Package, error) {
	var list []models.Package
	q := r.db.Order("price ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return list, q.Find(&list).Error
}

func (r *CatalogRepository) SavePackage(p *models.Package) error {
	return r.db.Save(p).Error
}

func (r *CatalogRepository) DeletePackage(id uint) error {
	return r.db.Delete(&models.Package{}, id).Error
}

func (r *CatalogRepository) GetAd(id uint) (*models.Ad, error) {
	var a models.Ad
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *CatalogRepository) ListAds(activeOnly bool) ([]models.Ad, error) {
	var list []models.Ad
	q := r.db.Order("id DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return list, q.Find(&list).Error
}

func (r *CatalogRepository) SaveAd(a *models.Ad) error {
	return r.db.Save(a).Error
}

func (r *CatalogRepository) DeleteAd(id uint) error {
	return r.db.Delete(&models.Ad{}, id).Error
}

func (r *CatalogRepository) ListBanners(activeOnly bool) ([]models.Banner, error) {
	var list []models.Banner
	q := r.db.Order("sort_order ASC, id DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return list, q.Find(&list).Error
}

func (r *CatalogRepository) SaveBanner(b *models.Banner) error {
	return r.db.Save(b).Error
}

func (r *CatalogRepository) DeleteBanner(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}

func (r *CatalogRepository) ListBankingServices(activeOnly bool) ([]models.BankingService, error) {
	var list []models.BankingService
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return list, q.Find(&list).Error
}

func (r *CatalogRepository) SaveBankingService(s *models.BankingService) error {
	return r.db.Save(s).Error
}

func (r *CatalogRepository) DeleteBankingService(id uint) error {
	return r.db.Delete(&models.BankingService{}, id).Error
}
