package storage

import (
	"time"

	"stakecast/models"

	"gorm.io/gorm"
)

// ResolveMarket declares the winning option and classifies every
// position on the market as won or lost. No balance moves here; payout
// is deferred to claim.
func (s *Storage) ResolveMarket(marketID, winningOptionID int64) (*models.Market, error) {
	var market models.Market
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&market, marketID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrMarketNotFound
			}
			return err
		}
		if market.Status == models.MarketStatusResolved {
			return ErrMarketResolved
		}

		var option models.MarketOption
		if err := tx.Where("id = ? AND market_id = ?", winningOptionID, marketID).First(&option).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOptionNotFound
			}
			return err
		}

		market.Status = models.MarketStatusResolved
		market.WinningOptionID = &winningOptionID
		if err := tx.Model(&models.Market{}).Where("id = ?", marketID).
			Updates(map[string]interface{}{
				"status":            models.MarketStatusResolved,
				"winning_option_id": winningOptionID,
			}).Error; err != nil {
			return err
		}

		var positions []models.Position
		if err := tx.Where("market_id = ?", marketID).Find(&positions).Error; err != nil {
			return err
		}

		settledAt := time.Now()
		for i := range positions {
			status := models.PositionStatusLost
			if positions[i].OptionID == winningOptionID {
				status = models.PositionStatusWon
			}
			if err := tx.Model(&models.Position{}).Where("id = ?", positions[i].ID).
				Updates(map[string]interface{}{
					"status":     status,
					"settled_at": settledAt,
				}).Error; err != nil {
				return err
			}
		}

		s.log.WithFields(map[string]interface{}{
			"marketId":  marketID,
			"winner":    winningOptionID,
			"positions": len(positions),
		}).Info("market resolved")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &market, nil
}
