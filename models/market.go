package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Market statuses
const (
	MarketStatusOpen     = "open"
	MarketStatusResolved = "resolved"
)

type Market struct {
	gorm.Model
	ID              int64           `json:"id" gorm:"primary_key"`
	Question        string          `json:"question" gorm:"not null;size:200"`
	Description     string          `json:"description" gorm:"size:2000"`
	Category        string          `json:"category" gorm:"default:general;index"`
	BannerURL       string          `json:"bannerUrl,omitempty" gorm:"size:500"`
	CloseTime       time.Time       `json:"closeTime" gorm:"not null"`
	CreatorAddress  string          `json:"creatorAddress" gorm:"not null;size:100"`
	Status          string          `json:"status" gorm:"default:open;index"`
	WinningOptionID *int64          `json:"winningOptionId,omitempty"`
	TotalLiquidity  decimal.Decimal `json:"totalLiquidity" gorm:"type:numeric(20,6);not null;default:0"`
}

// MarketOption is one outcome of a market. Options are created with the
// market and accumulate stake as positions are opened against them.
type MarketOption struct {
	gorm.Model
	ID          int64           `json:"id" gorm:"primary_key"`
	MarketID    int64           `json:"marketId" gorm:"not null;index"`
	Text        string          `json:"text" gorm:"not null;size:100"`
	TotalStaked decimal.Decimal `json:"totalStaked" gorm:"type:numeric(20,6);not null;default:0"`
}

// MarketOptionPublic is the public-facing option with money as strings
type MarketOptionPublic struct {
	ID          int64  `json:"id"`
	MarketID    int64  `json:"marketId"`
	Text        string `json:"text"`
	TotalStaked string `json:"totalStaked"`
}

func (o *MarketOption) ToPublic() MarketOptionPublic {
	return MarketOptionPublic{
		ID:          o.ID,
		MarketID:    o.MarketID,
		Text:        o.Text,
		TotalStaked: o.TotalStaked.StringFixed(6),
	}
}

// MarketPublic is the public-facing market, enriched with its options
// and position count
type MarketPublic struct {
	ID              int64                `json:"id"`
	Question        string               `json:"question"`
	Description     string               `json:"description"`
	DescriptionHTML string               `json:"descriptionHtml,omitempty"`
	Category        string               `json:"category"`
	BannerURL       string               `json:"bannerUrl,omitempty"`
	CloseTime       time.Time            `json:"closeTime"`
	CreatorAddress  string               `json:"creatorAddress"`
	Status          string               `json:"status"`
	WinningOptionID *int64               `json:"winningOptionId,omitempty"`
	TotalLiquidity  string               `json:"totalLiquidity"`
	CreatedAt       time.Time            `json:"createdAt"`
	Options         []MarketOptionPublic `json:"options"`
	TotalPositions  int64                `json:"totalPositions"`
}

func (m *Market) ToPublic(options []MarketOption, totalPositions int64) MarketPublic {
	pub := MarketPublic{
		ID:              m.ID,
		Question:        m.Question,
		Description:     m.Description,
		Category:        m.Category,
		BannerURL:       m.BannerURL,
		CloseTime:       m.CloseTime,
		CreatorAddress:  m.CreatorAddress,
		Status:          m.Status,
		WinningOptionID: m.WinningOptionID,
		TotalLiquidity:  m.TotalLiquidity.StringFixed(6),
		CreatedAt:       m.CreatedAt,
		TotalPositions:  totalPositions,
	}
	pub.Options = make([]MarketOptionPublic, 0, len(options))
	for i := range options {
		pub.Options = append(pub.Options, options[i].ToPublic())
	}
	return pub
}

// IsOpenAt reports whether the market accepts stakes at t. A market can
// be logically closed by its close time even while the stored status
// still says open.
func (m *Market) IsOpenAt(t time.Time) bool {
	return m.Status == MarketStatusOpen && t.Before(m.CloseTime)
}

// CreateMarketRequest is the request body for creating a market
type CreateMarketRequest struct {
	Question       string    `json:"question" validate:"required,min=1,max=160"`
	Description    string    `json:"description" validate:"max=2000"`
	Category       string    `json:"category" validate:"max=50"`
	BannerURL      string    `json:"bannerUrl" validate:"omitempty,url,max=500"`
	CloseTime      time.Time `json:"closeTime" validate:"required"`
	CreatorAddress string    `json:"creatorAddress" validate:"required,min=3,max=100"`
	Options        []string  `json:"options" validate:"required,min=2,max=10,dive,required,max=100"`
}

// ResolveMarketRequest is the request body for resolving a market
type ResolveMarketRequest struct {
	WinningOptionID int64 `json:"winningOptionId" validate:"required,gt=0"`
}
