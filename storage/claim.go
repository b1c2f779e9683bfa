package storage

import (
	"stakecast/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClaimPayout pays out a user's unclaimed positions on a resolved
// market. Winning positions receive their proportional share of the
// entire pool, apportioned by their fraction of the winning pool:
//
//	payout = amount / winningOption.totalStaked * market.totalLiquidity
//
// Every selected position is marked claimed in the same transaction,
// winners and losers alike, so a claim is at-most-once. Returns the
// summed payout as a 6-digit decimal string.
func (s *Storage) ClaimPayout(marketID int64, userAddress string) (string, error) {
	totalPayout := decimal.Zero
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var market models.Market
		if err := tx.First(&market, marketID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrMarketNotFound
			}
			return err
		}
		if market.Status != models.MarketStatusResolved || market.WinningOptionID == nil {
			return ErrMarketNotResolved
		}

		var positions []models.Position
		if err := tx.Where("market_id = ? AND user_address = ? AND claimed = ?",
			marketID, userAddress, false).Find(&positions).Error; err != nil {
			return err
		}
		if len(positions) == 0 {
			return ErrNoUnclaimedPositions
		}

		var winners []models.Position
		for i := range positions {
			if positions[i].OptionID == *market.WinningOptionID {
				winners = append(winners, positions[i])
			}
		}

		ids := make([]int64, 0, len(positions))
		for i := range positions {
			ids = append(ids, positions[i].ID)
		}
		if err := tx.Model(&models.Position{}).Where("id IN ?", ids).
			Update("claimed", true).Error; err != nil {
			return err
		}

		if len(winners) == 0 {
			// Closing out losing positions credits nothing
			return nil
		}

		var winningOption models.MarketOption
		if err := tx.First(&winningOption, *market.WinningOptionID).Error; err != nil {
			return err
		}
		winningPool := winningOption.TotalStaked
		if winningPool.IsZero() {
			// degenerate guard, keeps the division defined
			winningPool = decimal.NewFromInt(1)
		}

		for i := range winners {
			payout := winners[i].Amount.Div(winningPool).Mul(market.TotalLiquidity)
			totalPayout = totalPayout.Add(payout)
		}

		user, err := s.getOrCreateUser(tx, userAddress)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("balance", user.Balance.Add(totalPayout)).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if totalPayout.IsZero() {
		return "0", nil
	}
	s.log.WithFields(map[string]interface{}{
		"marketId": marketID,
		"address":  userAddress,
		"payout":   totalPayout.StringFixed(6),
	}).Info("payout claimed")
	return totalPayout.StringFixed(6), nil
}
