package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements the persistence.TransactionRepository
// port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// toModel converts a transaction entity to its database model
func toModel(txn *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Amount:      txn.Amount.String(),
		Currency:    txn.Currency.String(),
		Status:      string(txn.Status),
		Type:        string(txn.Type),
		Reason:      string(txn.Reason),
		ProductName: txn.ProductName,
		OrderID:     txn.OrderID,
		PaymentID:   txn.PaymentID,
		Signature:   txn.Signature,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
		ProcessedAt: txn.ProcessedAt,
	}
}

// toEntity converts a transaction model to an entity
func (r *TransactionRepository) toEntity(txnModel *model.Transaction) (*entity.Transaction, error) {
	amount, err := decimal.NewFromString(txnModel.Amount)
	if err != nil {
		r.logger.Error("Corrupt amount column", map[string]any{
			"order_id": txnModel.OrderID,
			"value":    txnModel.Amount,
		})
		return nil, fmt.Errorf("%w: corrupt amount for order %s", errs.ErrInternalServer, txnModel.OrderID)
	}

	return &entity.Transaction{
		ID:          txnModel.ID,
		UserID:      txnModel.UserID,
		Amount:      amount,
		Currency:    entity.Currency(txnModel.Currency),
		Status:      entity.TransactionStatus(txnModel.Status),
		Type:        entity.TransactionType(txnModel.Type),
		Reason:      entity.Reason(txnModel.Reason),
		ProductName: txnModel.ProductName,
		OrderID:     txnModel.OrderID,
		PaymentID:   txnModel.PaymentID,
		Signature:   txnModel.Signature,
		CreatedAt:   txnModel.CreatedAt,
		UpdatedAt:   txnModel.UpdatedAt,
		ProcessedAt: txnModel.ProcessedAt,
	}, nil
}

// Create records a new PENDING transaction. A second insert for the same
// order id is a duplicate order.
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	result := r.db.WithContext(ctx).Create(toModel(txn))
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate order id on transaction create", map[string]any{
				"order_id": txn.OrderID,
			})
			return errs.ErrDuplicateOrder
		}
		r.logger.Error("Failed to create transaction", map[string]any{
			"order_id": txn.OrderID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	r.logger.Debug("Transaction recorded", map[string]any{
		"order_id": txn.OrderID,
		"user_id":  txn.UserID,
		"status":   string(txn.Status),
	})
	return nil
}

// GetByOrderID retrieves a transaction by its gateway order id
func (r *TransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).First(&txnModel, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"order_id": orderID,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return r.toEntity(&txnModel)
}

// ListByUser returns the user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	var txnModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txnModels)
	if result.Error != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txns := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txn, err := r.toEntity(&txnModels[i])
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// MarkSettled flips the transaction to SUCCESS if and only if it is still
// PENDING. The conditional update is the settlement gate: of all callers
// racing on the same order, exactly one observes a row change and wins.
func (r *TransactionRepository) MarkSettled(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":       string(entity.StatusSuccess),
			"payment_id":   paymentID,
			"signature":    signature,
			"updated_at":   now,
			"processed_at": now,
		})
	if result.Error != nil {
		r.logger.Error("Failed to settle transaction", map[string]any{
			"order_id": orderID,
			"error":    result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		// Either the order does not exist or it already reached a terminal
		// state. The caller distinguishes the two by re-reading.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("order_id = ?", orderID).
			Count(&count).Error; err != nil {
			return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		if count == 0 {
			return false, errs.ErrTransactionNotFound
		}
		return false, nil
	}

	return true, nil
}

// MarkFailed flips PENDING transactions for the order id to FAILED. Terminal
// rows and unknown order ids are left untouched and reported as success, so
// repeated failure deliveries stay no-ops.
func (r *TransactionRepository) MarkFailed(ctx context.Context, orderID string) error {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":       string(entity.StatusFailed),
			"updated_at":   now,
			"processed_at": now,
		})
	if result.Error != nil {
		r.logger.Error("Failed to mark transaction failed", map[string]any{
			"order_id": orderID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		r.logger.Debug("No pending transaction to fail", map[string]any{
			"order_id": orderID,
		})
	}

	return nil
}
