package storage

import (
	"time"

	"stakecast/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreatePosition opens a position: debit the user, insert the pending
// position, and bump the option and market pools. The whole sequence is
// one transaction; a failed precondition leaves zero mutations.
func (s *Storage) CreatePosition(marketID, optionID int64, userAddress string, amount decimal.Decimal) (*models.Position, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if s.cfg != nil && amount.LessThan(s.cfg.MinimumStake()) {
		return nil, ErrInvalidAmount
	}

	var position models.Position
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var market models.Market
		if err := tx.First(&market, marketID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrMarketNotFound
			}
			return err
		}
		if !market.IsOpenAt(time.Now()) {
			return ErrMarketClosed
		}

		var option models.MarketOption
		if err := tx.Where("id = ? AND market_id = ?", optionID, marketID).First(&option).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOptionNotFound
			}
			return err
		}

		user, err := s.getOrCreateUser(tx, userAddress)
		if err != nil {
			return err
		}
		if user.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		user.Balance = user.Balance.Sub(amount)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("balance", user.Balance).Error; err != nil {
			return err
		}

		position = models.Position{
			MarketID:    marketID,
			OptionID:    optionID,
			UserAddress: userAddress,
			Amount:      amount,
			Status:      models.PositionStatusPending,
			Claimed:     false,
		}
		if err := tx.Create(&position).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.MarketOption{}).Where("id = ?", optionID).
			Update("total_staked", option.TotalStaked.Add(amount)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Market{}).Where("id = ?", marketID).
			Update("total_liquidity", market.TotalLiquidity.Add(amount)).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"marketId": marketID,
		"optionId": optionID,
		"address":  userAddress,
		"amount":   amount.StringFixed(6),
	}).Info("position opened")
	return &position, nil
}
