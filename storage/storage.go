package storage

import (
	"stakecast/models"
	"stakecast/setup"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Storage is the settlement engine over the relational store. It is
// stateless; all durable state lives in the database, and every
// money-moving operation runs inside a single transaction.
type Storage struct {
	db  *gorm.DB
	cfg *setup.EconomicConfig
	log *logrus.Logger
}

func New(db *gorm.DB, cfg *setup.EconomicConfig, log *logrus.Logger) *Storage {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Storage{db: db, cfg: cfg, log: log}
}

// DB exposes the underlying handle for migrations and tests
func (s *Storage) DB() *gorm.DB {
	return s.db
}

// GetOrCreateUser returns the user for address, provisioning it with
// the configured starting balance and reputation on first reference.
func (s *Storage) GetOrCreateUser(address string) (*models.User, error) {
	return s.getOrCreateUser(s.db, address)
}

func (s *Storage) getOrCreateUser(tx *gorm.DB, address string) (*models.User, error) {
	var user models.User
	err := tx.Where("address = ?", address).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{
		Address:    address,
		Balance:    s.initialBalance(),
		Reputation: s.initialReputation(),
		Holdings:   "{}",
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	s.log.WithField("address", address).Info("provisioned new user")
	return &user, nil
}

// GetUser returns the user for address or ErrUserNotFound
func (s *Storage) GetUser(address string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("address = ?", address).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) initialBalance() decimal.Decimal {
	if s.cfg != nil {
		return s.cfg.InitialBalance()
	}
	return decimal.NewFromInt(1000)
}

func (s *Storage) initialReputation() int64 {
	if s.cfg != nil && s.cfg.Economics.User.InitialReputation > 0 {
		return s.cfg.Economics.User.InitialReputation
	}
	return 100
}
