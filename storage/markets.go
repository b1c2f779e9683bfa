package storage

import (
	"stakecast/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateMarket inserts a market with its options, each starting at zero
// stake. Inputs are assumed sanitized by the handler layer.
func (s *Storage) CreateMarket(req models.CreateMarketRequest) (*models.MarketPublic, error) {
	category := req.Category
	if category == "" && s.cfg != nil {
		category = s.cfg.Economics.Market.DefaultCategory
	}

	market := models.Market{
		Question:       req.Question,
		Description:    req.Description,
		Category:       category,
		BannerURL:      req.BannerURL,
		CloseTime:      req.CloseTime,
		CreatorAddress: req.CreatorAddress,
		Status:         models.MarketStatusOpen,
		TotalLiquidity: decimal.Zero,
	}

	var options []models.MarketOption
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&market).Error; err != nil {
			return err
		}
		for _, text := range req.Options {
			opt := models.MarketOption{
				MarketID:    market.ID,
				Text:        text,
				TotalStaked: decimal.Zero,
			}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
			options = append(options, opt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"marketId": market.ID,
		"options":  len(options),
	}).Info("market created")

	pub := market.ToPublic(options, 0)
	return &pub, nil
}

// GetMarkets lists all markets newest first, enriched with their
// options and position counts
func (s *Storage) GetMarkets() ([]models.MarketPublic, error) {
	var all []models.Market
	if err := s.db.Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, err
	}

	result := make([]models.MarketPublic, 0, len(all))
	for i := range all {
		var options []models.MarketOption
		if err := s.db.Where("market_id = ?", all[i].ID).Order("id").Find(&options).Error; err != nil {
			return nil, err
		}
		var count int64
		if err := s.db.Model(&models.Position{}).Where("market_id = ?", all[i].ID).Count(&count).Error; err != nil {
			return nil, err
		}
		result = append(result, all[i].ToPublic(options, count))
	}
	return result, nil
}

// GetMarket fetches one market with its full option list
func (s *Storage) GetMarket(id int64) (*models.MarketPublic, error) {
	market, options, err := s.getMarketRow(s.db, id)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&models.Position{}).Where("market_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	pub := market.ToPublic(options, count)
	return &pub, nil
}

func (s *Storage) getMarketRow(tx *gorm.DB, id int64) (*models.Market, []models.MarketOption, error) {
	var market models.Market
	if err := tx.First(&market, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrMarketNotFound
		}
		return nil, nil, err
	}
	var options []models.MarketOption
	if err := tx.Where("market_id = ?", id).Order("id").Find(&options).Error; err != nil {
		return nil, nil, err
	}
	return &market, options, nil
}

// DeleteMarket removes a market and everything under it, children
// before parent: positions, then options, then the market row.
func (s *Storage) DeleteMarket(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var market models.Market
		if err := tx.First(&market, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrMarketNotFound
			}
			return err
		}
		if err := tx.Unscoped().Where("market_id = ?", id).Delete(&models.Position{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("market_id = ?", id).Delete(&models.MarketOption{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&market).Error; err != nil {
			return err
		}
		s.log.WithField("marketId", id).Info("market deleted")
		return nil
	})
}
