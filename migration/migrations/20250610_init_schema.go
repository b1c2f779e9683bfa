package migrations

import (
	"log"
	"time"

	"stakecast/migration"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	if err := migration.Register("20250610_init_schema", Migration20250610InitSchema); err != nil {
		log.Fatalf("Failed to register migration 20250610_init_schema: %v", err)
	}
}

// Local model copies so later model changes don't rewrite history

// User model for migration
type User struct {
	gorm.Model
	ID         int64           `gorm:"primary_key"`
	Address    string          `gorm:"unique;not null;size:100;index"`
	Balance    decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Reputation int64           `gorm:"default:100"`
	Holdings   string          `gorm:"type:text;default:'{}'"`
}

// Market model for migration
type Market struct {
	gorm.Model
	ID              int64           `gorm:"primary_key"`
	Question        string          `gorm:"not null;size:200"`
	Description     string          `gorm:"size:2000"`
	Category        string          `gorm:"default:general;index"`
	BannerURL       string          `gorm:"size:500"`
	CloseTime       time.Time       `gorm:"not null"`
	CreatorAddress  string          `gorm:"not null;size:100"`
	Status          string          `gorm:"default:open;index"`
	WinningOptionID *int64
	TotalLiquidity  decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0"`
}

// MarketOption model for migration
type MarketOption struct {
	gorm.Model
	ID          int64           `gorm:"primary_key"`
	MarketID    int64           `gorm:"not null;index"`
	Text        string          `gorm:"not null;size:100"`
	TotalStaked decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0"`
}

// Position model for migration
type Position struct {
	gorm.Model
	ID          int64           `gorm:"primary_key"`
	MarketID    int64           `gorm:"not null;index"`
	OptionID    int64           `gorm:"not null;index"`
	UserAddress string          `gorm:"not null;size:100;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Status      string          `gorm:"default:pending;index"`
	Claimed     bool            `gorm:"default:false"`
	SettledAt   *time.Time
}

func Migration20250610InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Market{}, &MarketOption{}, &Position{}); err != nil {
		return err
	}

	// Indexes for the hot settlement queries
	db.Exec("CREATE INDEX IF NOT EXISTS idx_positions_market_user ON positions(market_id, user_address)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_positions_unclaimed ON positions(market_id, user_address, claimed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_market_options_market ON market_options(market_id)")

	return nil
}
