package setup

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EconomicConfig holds the tunable economics of the exchange
type EconomicConfig struct {
	Economics struct {
		User struct {
			InitialBalance    string `yaml:"initialBalance"`
			InitialReputation int64  `yaml:"initialReputation"`
		} `yaml:"user"`
		Market struct {
			DefaultCategory string `yaml:"defaultCategory"`
			MinimumStake    string `yaml:"minimumStake"`
		} `yaml:"market"`
	} `yaml:"economics"`
}

var (
	config *EconomicConfig
	once   sync.Once
)

// LoadEconomicsConfig reads setup.yaml next to this package. The result
// is cached for the lifetime of the process.
func LoadEconomicsConfig() (*EconomicConfig, error) {
	var err error
	once.Do(func() {
		config, err = loadConfig(configPath())
	})
	if err != nil {
		return nil, err
	}
	return config, nil
}

func loadConfig(path string) (*EconomicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg EconomicConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath() string {
	if p := os.Getenv("SETUP_CONFIG_PATH"); p != "" {
		return p
	}
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "setup.yaml")
}

// InitialBalance returns the starting balance for new users
func (c *EconomicConfig) InitialBalance() decimal.Decimal {
	d, err := decimal.NewFromString(c.Economics.User.InitialBalance)
	if err != nil {
		return decimal.NewFromInt(1000)
	}
	return d
}

// MinimumStake returns the smallest allowed stake amount
func (c *EconomicConfig) MinimumStake() decimal.Decimal {
	d, err := decimal.NewFromString(c.Economics.Market.MinimumStake)
	if err != nil {
		return decimal.NewFromFloat(0.000001)
	}
	return d
}
