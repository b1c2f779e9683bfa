package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a wallet that can stake on markets.
// Users are provisioned lazily the first time an address is referenced.
type User struct {
	gorm.Model
	ID         int64           `json:"id" gorm:"primary_key"`
	Address    string          `json:"address" gorm:"unique;not null;size:100;index"`
	Balance    decimal.Decimal `json:"balance" gorm:"type:numeric(20,6);not null"`
	Reputation int64           `json:"reputation" gorm:"default:100"`
	Holdings   string          `json:"holdings" gorm:"type:text;default:'{}'"` // auxiliary JSON blob, not used by settlement
}

// UserPublic is the public-facing user profile
type UserPublic struct {
	ID         int64  `json:"id"`
	Address    string `json:"address"`
	Balance    string `json:"balance"`
	Reputation int64  `json:"reputation"`
}

// ToPublic converts User to UserPublic with the balance formatted
// to 6 fractional digits
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:         u.ID,
		Address:    u.Address,
		Balance:    u.Balance.StringFixed(6),
		Reputation: u.Reputation,
	}
}

// LoginRequest is the request body for opening a session
type LoginRequest struct {
	Address string `json:"address" validate:"required,min=3,max=100"`
}

// LoginResponse is returned after opening a session
type LoginResponse struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}
