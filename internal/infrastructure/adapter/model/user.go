package model

import (
	"time"
)

// User represents the database model for users. Each sub-wallet is a
// dedicated numeric column whose name equals the wallet's wire name, so a
// wallet identifier maps straight to a column.
type User struct {
	ID                  string    `gorm:"primaryKey;type:uuid"`
	Email               string    `gorm:"uniqueIndex;not null;size:255"`
	Currency            string    `gorm:"not null;size:3"`
	Balance             string    `gorm:"column:balance;type:numeric(20,2);not null;default:0"`
	AIAvatarBalance     string    `gorm:"column:ai_avatar_balance;type:numeric(20,2);not null;default:0"`
	MetaAdBalance       string    `gorm:"column:meta_ad_balance;type:numeric(20,2);not null;default:0"`
	DataScrapBalance    string    `gorm:"column:data_scrap_balance;type:numeric(20,2);not null;default:0"`
	BroadcastBotBalance string    `gorm:"column:broadcast_bot_balance;type:numeric(20,2);not null;default:0"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
