package dto

// CreateUserRequest represents the API request to register a user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Currency string `json:"currency"`
}

// UserResponse represents a user with all sub-wallet balances
type UserResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Currency  string            `json:"currency"`
	Balances  map[string]string `json:"balances"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}
