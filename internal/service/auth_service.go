package service

import (
	"errors"
	"fmt"
	"log"

	"adclub/config"
	"adclub/internal/auth"
	"adclub/internal/domain"
	"adclub/internal/models"
	"adclub/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPhoneExists  = errors.New("phone already registered")
	ErrInvalidCreds = errors.New("invalid phone or password")
)

type AuthService struct {
	cfg   *config.Config
	db    *gorm.DB
	users *repository.UserRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, users *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, users: users}
}

// Register creates a user with a fresh serial number and referral code.
// A valid referral code links the new user into the referrer's network
// and pays the 4-level signup bonus chain in the same transaction; an
// unknown code is ignored. Phone uniqueness rests on the unique index,
// so two concurrent registrations with the same phone both resolve to
// ErrPhoneExists instead of racing a pre-check.
func (s *AuthService) Register(name, phone, password, referralCode string) (*models.User, string, string, error) {
	if name == "" || phone == "" {
		return nil, "", "", domain.NewValidationError("name and phone are required")
	}
	if len(password) < 6 {
		return nil, "", "", domain.NewValidationError("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	var referrer *models.User
	if referralCode != "" {
		r, err := s.users.GetByReferralCode(referralCode)
		if err == nil {
			referrer = r
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", err
		} else {
			log.Printf("[auth] unknown referral code %q ignored", referralCode)
		}
	}

	var u models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var maxSerial uint
		err := tx.Model(&models.User{}).Select("COALESCE(MAX(serial_number), 0)").Scan(&maxSerial).Error
		if err != nil {
			return err
		}
		code, err := repository.UniqueCode(tx)
		if err != nil {
			return err
		}
		u = models.User{
			SerialNumber: maxSerial + 1,
			Name:         name,
			Phone:        phone,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			ReferralCode: code,
			BadgeLevel:   domain.BadgeNone,
		}
		if referrer != nil {
			u.ReferredByID = &referrer.ID
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		if referrer == nil {
			return nil
		}
		return processSignupReferral(tx, &u, referrer)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", "", ErrPhoneExists
		}
		return nil, "", "", err
	}

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Phone, u.Role)
	if err != nil {
		return &u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return &u, access, "", err
	}
	return &u, access, refresh, nil
}

// processSignupReferral records the referral, pays the signup chain and
// refreshes the ancestors' badges, all inside the registration
// transaction.
func processSignupReferral(tx *gorm.DB, newUser, referrer *models.User) error {
	directBonus := domain.ReferralLevelBonus[0]
	ref := models.Referral{
		ReferrerID: referrer.ID,
		ReferredID: newUser.ID,
		Bonus:      directBonus,
		Rewarded:   true,
	}
	if err := tx.Create(&ref).Error; err != nil {
		return err
	}
	ancestors, err := ResolveChain(tx, &referrer.ID)
	if err != nil {
		return err
	}
	note := fmt.Sprintf("signup bonus for user #%d", newUser.SerialNumber)
	err = DistributeReferralBonus(tx, ancestors, domain.TxReferralSignupBonus, models.UserRef(newUser.ID), note)
	if err != nil {
		return err
	}
	err = tx.Model(&models.User{}).Where("id = ?", referrer.ID).
		Update("ref_bonus_earned", gorm.Expr("ref_bonus_earned + ?", directBonus)).Error
	if err != nil {
		return err
	}
	return EvaluateBadges(tx, ancestors)
}

func (s *AuthService) Login(phone, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Phone, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Phone, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.NewValidationError("password must be at least 6 characters")
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		return domain.NewNotFoundError("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.NewBusinessError("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", string(hash)).Error
}
