package seed

import (
	"fmt"
	"strings"
	"time"

	"stakecast/models"
	"stakecast/storage"

	"github.com/brianvoe/gofakeit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var categories = []string{"cricket", "crypto", "politics", "tech", "general"}

// Run populates the database with demo users, markets and stakes.
// Intended for local development only.
func Run(store *storage.Storage, log *logrus.Logger) error {
	gofakeit.Seed(time.Now().UnixNano())

	addresses := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		addr := demoAddress()
		if _, err := store.GetOrCreateUser(addr); err != nil {
			return err
		}
		addresses = append(addresses, addr)
	}

	for i := 0; i < 5; i++ {
		req := models.CreateMarketRequest{
			Question:       fmt.Sprintf("Will %s %s?", gofakeit.BuzzWord(), gofakeit.Word()),
			Description:    gofakeit.Paragraph(1, 3, 12, " "),
			Category:       categories[gofakeit.Number(0, len(categories)-1)],
			CloseTime:      time.Now().Add(time.Duration(gofakeit.Number(24, 240)) * time.Hour),
			CreatorAddress: addresses[0],
			Options:        []string{"Yes", "No"},
		}
		market, err := store.CreateMarket(req)
		if err != nil {
			return err
		}

		// A few random stakes so pools are non-empty
		for j := 0; j < gofakeit.Number(2, 6); j++ {
			addr := addresses[gofakeit.Number(0, len(addresses)-1)]
			opt := market.Options[gofakeit.Number(0, len(market.Options)-1)]
			amount := decimal.NewFromInt(int64(gofakeit.Number(5, 100)))
			if _, err := store.CreatePosition(market.ID, opt.ID, addr, amount); err != nil {
				return err
			}
		}
		log.WithField("marketId", market.ID).Info("seeded market")
	}
	return nil
}

func demoAddress() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")[:32]
}
