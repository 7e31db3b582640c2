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

// walletColumns maps each wallet to its balance column. Wallet wire names
// double as column names, but SQL identifiers are always taken from this
// closed map, never from request input.
var walletColumns = map[entity.Wallet]string{
	entity.WalletPrimary:      "balance",
	entity.WalletAIAvatar:     "ai_avatar_balance",
	entity.WalletMetaAd:       "meta_ad_balance",
	entity.WalletDataScrap:    "data_scrap_balance",
	entity.WalletBroadcastBot: "broadcast_bot_balance",
}

// UserRepository implements the persistence.UserRepository port using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user, err := entity.NewUser(userModel.ID, userModel.Email, entity.Currency(userModel.Currency), r.timeProvider)
	if err != nil {
		r.logger.Error("Failed to create user entity", map[string]any{
			"user_id": userModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to create user entity: %s", errs.ErrInternalServer, err.Error())
	}

	balances := map[entity.Wallet]string{
		entity.WalletPrimary:      userModel.Balance,
		entity.WalletAIAvatar:     userModel.AIAvatarBalance,
		entity.WalletMetaAd:       userModel.MetaAdBalance,
		entity.WalletDataScrap:    userModel.DataScrapBalance,
		entity.WalletBroadcastBot: userModel.BroadcastBotBalance,
	}
	for wallet, raw := range balances {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			r.logger.Error("Corrupt balance column", map[string]any{
				"user_id": userModel.ID,
				"wallet":  wallet.String(),
				"value":   raw,
			})
			return nil, fmt.Errorf("%w: corrupt balance for wallet %s", errs.ErrInternalServer, wallet)
		}
		user.SetBalance(wallet, amount)
	}

	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt
	return user, nil
}

// entityToModel converts a user entity to its database model
func entityToModel(user *entity.User) *model.User {
	return &model.User{
		ID:                  user.ID,
		Email:               user.Email,
		Currency:            user.Currency.String(),
		Balance:             user.Balance(entity.WalletPrimary).String(),
		AIAvatarBalance:     user.Balance(entity.WalletAIAvatar).String(),
		MetaAdBalance:       user.Balance(entity.WalletMetaAd).String(),
		DataScrapBalance:    user.Balance(entity.WalletDataScrap).String(),
		BroadcastBotBalance: user.Balance(entity.WalletBroadcastBot).String(),
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"key": key,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"key":   key,
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrUserLocked
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return r.modelToEntity(&userModel)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "email = ?", email)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error, email)
	}
	return r.modelToEntity(&userModel)
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Create(entityToModel(user))
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.Email)
	}

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

// lockUser reads the user's row under an exclusive FOR UPDATE lock
func (r *UserRepository) lockUser(tx *gorm.DB, userID string) (*model.User, error) {
	var userModel model.User
	result := tx.Set("gorm:query_option", "FOR UPDATE").First(&userModel, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &userModel, nil
}

// applyBalances writes the entity's wallet balances back to the row
func (r *UserRepository) applyBalances(tx *gorm.DB, user *entity.User) error {
	updates := map[string]interface{}{
		"updated_at": user.UpdatedAt,
	}
	for wallet, column := range walletColumns {
		updates[column] = user.Balance(wallet).String()
	}

	result := tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Credit adds amount to one of the user's wallets under a row lock. It
// expects to run inside a unit of work so the credit commits or rolls back
// together with the transaction status flip.
func (r *UserRepository) Credit(ctx context.Context, userID string, wallet entity.Wallet, amount decimal.Decimal) (*entity.User, error) {
	db := r.db.WithContext(ctx)

	userModel, err := r.lockUser(db, userID)
	if err != nil {
		return nil, r.classifyMutationError("crediting wallet", err, userID)
	}

	user, err := r.modelToEntity(userModel)
	if err != nil {
		return nil, err
	}

	if err := user.Credit(wallet, amount, r.timeProvider); err != nil {
		return nil, err
	}

	if err := r.applyBalances(db, user); err != nil {
		return nil, r.classifyMutationError("crediting wallet", err, userID)
	}

	return user, nil
}

// Transfer moves amount between two of the user's wallets atomically. The
// row lock serializes concurrent transfers and credits touching the same
// user, so the funds check and the write see one consistent state.
func (r *UserRepository) Transfer(ctx context.Context, userID string, from, to entity.Wallet, amount decimal.Decimal) (*entity.User, error) {
	var user *entity.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userModel, err := r.lockUser(tx, userID)
		if err != nil {
			return err
		}

		user, err = r.modelToEntity(userModel)
		if err != nil {
			return err
		}

		if err := user.Transfer(from, to, amount, r.timeProvider); err != nil {
			return err
		}

		return r.applyBalances(tx, user)
	})
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			return nil, err
		}
		return nil, r.classifyMutationError("transferring between wallets", err, userID)
	}

	return user, nil
}

// classifyMutationError maps storage failures on the write paths to domain
// errors, passing already-classified domain errors through untouched.
func (r *UserRepository) classifyMutationError(operation string, err error, userID string) error {
	if errors.Is(err, errs.ErrUserNotFound) ||
		errors.Is(err, errs.ErrInvalidWallet) ||
		errors.Is(err, errs.ErrInvalidAmount) ||
		errors.Is(err, errs.ErrInternalServer) {
		return err
	}
	if r.errorClassifier.IsLockError(err) {
		r.logger.Warn("User row is locked by another operation", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return errs.ErrUserLocked
	}
	return r.handleDatabaseError(operation, err, userID)
}
