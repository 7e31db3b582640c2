package transfer

import (
	"context"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/domain/port/persistence"
)

// Service executes atomic moves of value between a user's sub-wallets.
type Service struct {
	userRepo persistence.UserRepository
	logger   coreport.Logger
}

// NewService creates a transfer service
func NewService(userRepo persistence.UserRepository, logger coreport.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Transfer validates the request and moves amount from one sub-wallet to
// another on the same user. Wallet names are checked against the whitelist
// before any store access. A transfer with fromWallet == toWallet is
// permitted as a degenerate no-op once the funds check passes.
func (s *Service) Transfer(ctx context.Context, email, fromWallet, toWallet, amount string) (*entity.User, error) {
	from, err := entity.ParseWallet(fromWallet)
	if err != nil {
		return nil, err
	}

	to, err := entity.ParseWallet(toWallet)
	if err != nil {
		return nil, err
	}

	amt, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Transfer(ctx, user.ID, from, to, amt)
	if err != nil {
		s.logger.Warn("Transfer rejected", map[string]any{
			"user_id":     user.ID,
			"from_wallet": from.String(),
			"to_wallet":   to.String(),
			"amount":      entity.FormatAmount(amt),
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transfer completed", map[string]any{
		"user_id":     user.ID,
		"from_wallet": from.String(),
		"to_wallet":   to.String(),
		"amount":      entity.FormatAmount(amt),
	})

	return updated, nil
}
