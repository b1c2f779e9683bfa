package storage

import (
	"time"

	"stakecast/models"

	"gorm.io/gorm"
)

// GetUserPositions lists a user's positions newest first. Any position
// still pending on a market that has meanwhile resolved is classified
// and persisted before being returned, so callers never observe a
// pending position on a resolved market.
func (s *Storage) GetUserPositions(address string) ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.Where("user_address = ?", address).Order("created_at DESC").Find(&positions).Error; err != nil {
		return nil, err
	}

	for i := range positions {
		if positions[i].Status != models.PositionStatusPending {
			continue
		}
		var market models.Market
		if err := s.db.First(&market, positions[i].MarketID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}
		if market.Status != models.MarketStatusResolved || market.WinningOptionID == nil {
			continue
		}

		// Safety net for positions a resolution pass missed
		status := models.PositionStatusLost
		if positions[i].OptionID == *market.WinningOptionID {
			status = models.PositionStatusWon
		}
		settledAt := time.Now()
		if err := s.db.Model(&models.Position{}).Where("id = ?", positions[i].ID).
			Updates(map[string]interface{}{
				"status":     status,
				"settled_at": settledAt,
			}).Error; err != nil {
			return nil, err
		}
		positions[i].Status = status
		positions[i].SettledAt = &settledAt
	}
	return positions, nil
}

// GetMarketPositions lists every position on a market
func (s *Storage) GetMarketPositions(marketID int64) ([]models.Position, error) {
	var positions []models.Position
	err := s.db.Where("market_id = ?", marketID).Order("created_at DESC").Find(&positions).Error
	return positions, err
}
