package service

import (
	"errors"
	"fmt"
	"time"

	"adclub/internal/domain"
	"adclub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettlementService handles withdrawals and peer transfers: the only
// operations that move value out of a user's totalBalance.
type SettlementService struct {
	db      *gorm.DB
	clubSvc *ClubService
}

func NewSettlementService(db *gorm.DB, clubSvc *ClubService) *SettlementService {
	return &SettlementService{db: db, clubSvc: clubSvc}
}

// RequestWithdrawal deducts the gross amount, parks the net (after
// fee) in pendingAmount and opens a PENDING withdrawal. The balance
// check and the deduction are one conditional update so concurrent
// requests cannot both pass on the same funds.
func (s *SettlementService) RequestWithdrawal(userID uint, amount float64, method, accountNumber string) (*models.Withdrawal, error) {
	if userID == 0 {
		return nil, domain.NewValidationError("user id required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}
	if method == "" {
		return nil, domain.NewValidationError("payout method required")
	}
	fee := amount * domain.WithdrawFeeRate
	net := amount - fee
	w := &models.Withdrawal{
		UserID:        userID,
		OrderID:       fmt.Sprintf("wd-%s", uuid.New().String()),
		Amount:        amount,
		Fee:           fee,
		NetAmount:     net,
		Method:        method,
		AccountNumber: accountNumber,
		Status:        domain.WithdrawStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND total_balance >= ?", userID, amount).
			Updates(map[string]interface{}{
				"total_balance":  gorm.Expr("total_balance - ?", amount),
				"pending_amount": gorm.Expr("pending_amount + ?", net),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domain.NewNotFoundError("user not found")
			}
			return domain.NewBusinessError("insufficient balance")
		}
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		entry := models.PointTransaction{
			UserID: userID,
			Amount: net,
			Type:   domain.TxTransferOut,
			RefKey: models.WithdrawRef(w.OrderID),
			Note:   "withdrawal requested",
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ApproveWithdrawal transitions PENDING to COMPLETED. The balance was
// already deducted at request time; approval only settles the pending
// net amount into totalWithdrawals.
func (s *SettlementService) ApproveWithdrawal(withdrawalID, adminID uint) (*models.Withdrawal, error) {
	return s.processWithdrawal(withdrawalID, adminID, domain.WithdrawStatusCompleted)
}

// RejectWithdrawal transitions PENDING to REJECTED with no balance
// effect.
func (s *SettlementService) RejectWithdrawal(withdrawalID, adminID uint) (*models.Withdrawal, error) {
	return s.processWithdrawal(withdrawalID, adminID, domain.WithdrawStatusRejected)
}

func (s *SettlementService) processWithdrawal(withdrawalID, adminID uint, status string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&w, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("withdrawal not found")
			}
			return err
		}
		if w.Status != domain.WithdrawStatusPending {
			return domain.NewBusinessError("withdrawal already processed")
		}
		now := time.Now()
		w.Status = status
		w.ProcessedByID = &adminID
		w.ProcessedAt = &now
		if err := tx.Save(&w).Error; err != nil {
			return err
		}
		if status == domain.WithdrawStatusCompleted {
			return tx.Model(&models.User{}).Where("id = ?", w.UserID).
				Updates(map[string]interface{}{
					"pending_amount":    gorm.Expr("pending_amount - ?", w.NetAmount),
					"total_withdrawals": gorm.Expr("total_withdrawals + ?", w.Amount),
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ManualCredit is an admin balance adjustment, positive or negative,
// always leaving a MANUAL ledger entry.
func (s *SettlementService) ManualCredit(userID uint, amount float64, note string) error {
	if userID == 0 {
		return domain.NewValidationError("user id required")
	}
	if amount == 0 {
		return domain.NewValidationError("amount must be non-zero")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("total_balance", gorm.Expr("total_balance + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("user not found")
		}
		entry := models.PointTransaction{
			UserID: userID,
			Amount: amount,
			Type:   domain.TxManual,
			Note:   note,
		}
		return tx.Create(&entry).Error
	})
}

// TransferResult reports how a transfer landed on the receiver side.
type TransferResult struct {
	ReceiverID   uint              `json:"receiverId"`
	Amount       float64           `json:"amount"`
	ShoperFee    float64           `json:"shoperFee"`
	Allocation   *AllocationResult `json:"allocation,omitempty"`
	DirectCredit bool              `json:"directCredit"`
}

// Transfer moves balance from an admin/shoper sender to the user owning
// the given serial number. Shoper receivers are credited directly;
// plain users get the amount routed through the club allocator as a
// deposit, and the sender earns the shoper fee on that deposit.
func (s *SettlementService) Transfer(senderID uint, receiverSerial uint, amount float64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}
	if receiverSerial == 0 {
		return nil, domain.NewValidationError("receiver serial number required")
	}
	var res *TransferResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sender models.User
		if err := tx.First(&sender, senderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("sender not found")
			}
			return err
		}
		if !sender.CanTransfer() {
			return domain.NewBusinessError("only admin or shoper accounts can transfer")
		}
		var receiver models.User
		if err := tx.Where("serial_number = ?", receiverSerial).First(&receiver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("receiver not found")
			}
			return err
		}
		if receiver.ID == sender.ID {
			return domain.NewBusinessError("self transfer not allowed")
		}
		if !receiver.IsShoper() && receiver.CachedClubsCount >= domain.MaxClubsPerUser {
			return domain.NewBusinessError("receiver club limit reached")
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND total_balance >= ?", sender.ID, amount).
			Update("total_balance", gorm.Expr("total_balance - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewBusinessError("insufficient balance")
		}
		out := models.PointTransaction{
			UserID: sender.ID,
			Amount: amount,
			Type:   domain.TxTransferOut,
			Note:   fmt.Sprintf("transfer to serial %d", receiverSerial),
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		res = &TransferResult{ReceiverID: receiver.ID, Amount: amount}
		if receiver.IsShoper() {
			res.DirectCredit = true
			err := tx.Model(&models.User{}).Where("id = ?", receiver.ID).
				Update("total_balance", gorm.Expr("total_balance + ?", amount)).Error
			if err != nil {
				return err
			}
		} else {
			alloc, err := s.clubSvc.AllocateTx(tx, receiver.ID, amount)
			if err != nil {
				return err
			}
			res.Allocation = alloc
			if sender.IsShoper() {
				fee := amount * domain.ShoperFeeRate
				res.ShoperFee = fee
				feeEntry := models.PointTransaction{
					UserID: sender.ID,
					Amount: fee,
					Type:   domain.TxShoperFeeEarned,
					Note:   fmt.Sprintf("commission on deposit to serial %d", receiverSerial),
				}
				if err := tx.Create(&feeEntry).Error; err != nil {
					return err
				}
				err = tx.Model(&models.User{}).Where("id = ?", sender.ID).
					Updates(map[string]interface{}{
						"total_balance":  gorm.Expr("total_balance + ?", fee),
						"total_earnings": gorm.Expr("total_earnings + ?", fee),
					}).Error
				if err != nil {
					return err
				}
			}
		}
		in := models.PointTransaction{
			UserID: receiver.ID,
			Amount: amount,
			Type:   domain.TxTransferIn,
			Note:   fmt.Sprintf("transfer from serial %d", sender.SerialNumber),
		}
		return tx.Create(&in).Error
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
