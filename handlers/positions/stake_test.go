package positions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stakecast/db"
	"stakecast/middleware"
	"stakecast/models"
	"stakecast/storage"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	conn, err := db.ConnectTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Market{}, &models.MarketOption{}, &models.Position{},
	))
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return storage.New(conn, nil, log)
}

func newTestMarket(t *testing.T, store *storage.Storage) *models.MarketPublic {
	t.Helper()
	market, err := store.CreateMarket(models.CreateMarketRequest{
		Question:       "Who wins the final?",
		CloseTime:      time.Now().Add(time.Hour),
		CreatorAddress: "0xcreator",
		Options:        []string{"Team A", "Team B"},
	})
	require.NoError(t, err)
	return market
}

func testLimiter() *middleware.AddressRateLimiter {
	return middleware.NewAddressRateLimiter(rate.Inf, 1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestStakeHandlerCreatesPosition(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	w := postJSON(t, StakeHandler(store, testLimiter()), models.StakeRequest{
		MarketID:    market.ID,
		OptionID:    market.Options[0].ID,
		UserAddress: "0xalice",
		Amount:      "25.5",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.StakeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "25.500000", resp.Position.Amount)
	assert.Equal(t, models.PositionStatusPending, resp.Position.Status)
	assert.Equal(t, "974.500000", resp.NewBalance)
}

func TestStakeHandlerRejectsBadAmount(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	w := postJSON(t, StakeHandler(store, testLimiter()), models.StakeRequest{
		MarketID:    market.ID,
		OptionID:    market.Options[0].ID,
		UserAddress: "0xalice",
		Amount:      "not-a-number",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStakeHandlerMissingMarket(t *testing.T) {
	store := newTestStore(t)

	w := postJSON(t, StakeHandler(store, testLimiter()), models.StakeRequest{
		MarketID:    999,
		OptionID:    1,
		UserAddress: "0xalice",
		Amount:      "10",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStakeHandlerInsufficientBalance(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	w := postJSON(t, StakeHandler(store, testLimiter()), models.StakeRequest{
		MarketID:    market.ID,
		OptionID:    market.Options[0].ID,
		UserAddress: "0xalice",
		Amount:      "5000",
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestStakeHandlerRateLimited(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)
	limiter := middleware.NewAddressRateLimiter(rate.Limit(0.001), 1)

	body := models.StakeRequest{
		MarketID:    market.ID,
		OptionID:    market.Options[0].ID,
		UserAddress: "0xalice",
		Amount:      "1",
	}
	w := postJSON(t, StakeHandler(store, limiter), body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, StakeHandler(store, limiter), body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestClaimHandlerFullFlow(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	_, err := store.CreatePosition(market.ID, market.Options[0].ID, "0xalice", decimal.NewFromInt(30))
	require.NoError(t, err)
	_, err = store.CreatePosition(market.ID, market.Options[1].ID, "0xbob", decimal.NewFromInt(70))
	require.NoError(t, err)
	_, err = store.ResolveMarket(market.ID, market.Options[0].ID)
	require.NoError(t, err)

	w := postJSON(t, ClaimHandler(store, testLimiter()), models.ClaimRequest{
		MarketID:    market.ID,
		UserAddress: "0xalice",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ClaimResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "100.000000", resp.Payout)
	assert.Equal(t, "1070.000000", resp.NewBalance)

	// Second claim has nothing left
	w = postJSON(t, ClaimHandler(store, testLimiter()), models.ClaimRequest{
		MarketID:    market.ID,
		UserAddress: "0xalice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandlerUnresolvedMarket(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	_, err := store.CreatePosition(market.ID, market.Options[0].ID, "0xalice", decimal.NewFromInt(10))
	require.NoError(t, err)

	w := postJSON(t, ClaimHandler(store, testLimiter()), models.ClaimRequest{
		MarketID:    market.ID,
		UserAddress: "0xalice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPositionsHandlerReconciles(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	_, err := store.CreatePosition(market.ID, market.Options[0].ID, "0xalice", decimal.NewFromInt(10))
	require.NoError(t, err)

	// Resolve directly in the store so the position stays pending
	require.NoError(t, store.DB().Model(&models.Market{}).Where("id = ?", market.ID).
		Updates(map[string]interface{}{
			"status":            models.MarketStatusResolved,
			"winning_option_id": market.Options[0].ID,
		}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/positions?userAddress=0xalice", nil)
	w := httptest.NewRecorder()
	ListPositionsHandler(store)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var positions []models.PositionPublic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &positions))
	require.Len(t, positions, 1)
	assert.Equal(t, models.PositionStatusWon, positions[0].Status)
	assert.NotNil(t, positions[0].SettledAt)
}

func TestListPositionsHandlerRequiresAddress(t *testing.T) {
	store := newTestStore(t)
	req := httptest.NewRequest(http.MethodGet, "/api/positions", nil)
	w := httptest.NewRecorder()
	ListPositionsHandler(store)(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
