package model

import (
	"time"
)

// Transaction represents the database model for funding transactions. The
// primary key equals the gateway order id, which gives settlement its
// idempotency anchor at the storage layer.
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:255"`
	UserID      string    `gorm:"type:uuid;not null;index"`
	Amount      string    `gorm:"type:numeric(20,2);not null"`
	Currency    string    `gorm:"not null;size:3"`
	Status      string    `gorm:"not null;size:20;index"`
	Type        string    `gorm:"not null;size:20"`
	Reason      string    `gorm:"not null;size:50"`
	ProductName string    `gorm:"size:255"`
	OrderID     string    `gorm:"uniqueIndex;not null;size:255"`
	PaymentID   string    `gorm:"size:255"`
	Signature   string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
	ProcessedAt *time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
