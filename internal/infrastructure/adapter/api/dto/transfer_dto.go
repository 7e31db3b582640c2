package dto

// TransferRequest represents the API request to move value between two of
// the caller's sub-wallets
type TransferRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FromWallet string `json:"from_wallet" binding:"required"`
	ToWallet   string `json:"to_wallet" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}
