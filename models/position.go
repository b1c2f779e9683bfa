package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Position statuses. A position is pending while its market is open and
// becomes won or lost exactly once, at or after resolution.
const (
	PositionStatusPending = "pending"
	PositionStatusWon     = "won"
	PositionStatusLost    = "lost"
)

// Position is a user's stake on one option of one market.
type Position struct {
	gorm.Model
	ID          int64           `json:"id" gorm:"primary_key"`
	MarketID    int64           `json:"marketId" gorm:"not null;index"`
	OptionID    int64           `json:"optionId" gorm:"not null;index"`
	UserAddress string          `json:"userAddress" gorm:"not null;size:100;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(20,6);not null"`
	Status      string          `json:"status" gorm:"default:pending;index"`
	Claimed     bool            `json:"claimed" gorm:"default:false"`
	SettledAt   *time.Time      `json:"settledAt,omitempty"`
}

// PositionPublic is the public-facing position with money as strings
type PositionPublic struct {
	ID          int64      `json:"id"`
	MarketID    int64      `json:"marketId"`
	OptionID    int64      `json:"optionId"`
	UserAddress string     `json:"userAddress"`
	Amount      string     `json:"amount"`
	Status      string     `json:"status"`
	Claimed     bool       `json:"claimed"`
	CreatedAt   time.Time  `json:"createdAt"`
	SettledAt   *time.Time `json:"settledAt,omitempty"`
}

func (p *Position) ToPublic() PositionPublic {
	return PositionPublic{
		ID:          p.ID,
		MarketID:    p.MarketID,
		OptionID:    p.OptionID,
		UserAddress: p.UserAddress,
		Amount:      p.Amount.StringFixed(6),
		Status:      p.Status,
		Claimed:     p.Claimed,
		CreatedAt:   p.CreatedAt,
		SettledAt:   p.SettledAt,
	}
}

// StakeRequest is the request body for opening a position
type StakeRequest struct {
	MarketID    int64  `json:"marketId" validate:"required,gt=0"`
	OptionID    int64  `json:"optionId" validate:"required,gt=0"`
	UserAddress string `json:"userAddress" validate:"required,min=3,max=100"`
	Amount      string `json:"amount" validate:"required"`
}

// StakeResponse is returned after opening a position
type StakeResponse struct {
	Success    bool           `json:"success"`
	Position   PositionPublic `json:"position"`
	NewBalance string         `json:"newBalance"`
}

// ClaimRequest is the request body for claiming a payout
type ClaimRequest struct {
	MarketID    int64  `json:"marketId" validate:"required,gt=0"`
	UserAddress string `json:"userAddress" validate:"required,min=3,max=100"`
}

// ClaimResponse is returned after a claim. Payout is a 6-digit decimal
// string; "0" when only losing positions were closed out.
type ClaimResponse struct {
	Success    bool   `json:"success"`
	Payout     string `json:"payout"`
	NewBalance string `json:"newBalance"`
}
