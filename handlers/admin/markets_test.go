package adminhandlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"stakecast/db"
	"stakecast/models"
	"stakecast/storage"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAdminKey = "test-admin-key"

func newTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	conn, err := db.ConnectTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Market{}, &models.MarketOption{}, &models.Position{},
	))
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ADMIN_KEY_HASH", string(hash))

	return storage.New(conn, nil, log)
}

func newTestMarket(t *testing.T, store *storage.Storage) *models.MarketPublic {
	t.Helper()
	market, err := store.CreateMarket(models.CreateMarketRequest{
		Question:       "Resolution test?",
		CloseTime:      time.Now().Add(time.Hour),
		CreatorAddress: "0xcreator",
		Options:        []string{"Yes", "No"},
	})
	require.NoError(t, err)
	return market
}

func adminRouter(store *storage.Storage) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/markets/{id}", DeleteMarketHandler(store)).Methods(http.MethodDelete)
	r.HandleFunc("/api/markets/{id}/resolve", ResolveMarketHandler(store)).Methods(http.MethodPost)
	return r
}

func TestResolveMarketHandler(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	_, err := store.CreatePosition(market.ID, market.Options[0].ID, "0xalice", decimal.NewFromInt(30))
	require.NoError(t, err)

	body, _ := json.Marshal(models.ResolveMarketRequest{WinningOptionID: market.Options[0].ID})
	req := httptest.NewRequest(http.MethodPost,
		"/api/markets/"+strconv.FormatInt(market.ID, 10)+"/resolve", bytes.NewReader(body))
	req.Header.Set("X-Admin-Key", testAdminKey)
	w := httptest.NewRecorder()
	adminRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.GetMarket(market.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MarketStatusResolved, got.Status)
}

func TestResolveMarketHandlerRequiresAdminKey(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	body, _ := json.Marshal(models.ResolveMarketRequest{WinningOptionID: market.Options[0].ID})
	req := httptest.NewRequest(http.MethodPost,
		"/api/markets/"+strconv.FormatInt(market.ID, 10)+"/resolve", bytes.NewReader(body))
	w := httptest.NewRecorder()
	adminRouter(store).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost,
		"/api/markets/"+strconv.FormatInt(market.ID, 10)+"/resolve", bytes.NewReader(body))
	req.Header.Set("X-Admin-Key", "wrong-key")
	w = httptest.NewRecorder()
	adminRouter(store).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResolveMarketHandlerTwiceConflicts(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	body, _ := json.Marshal(models.ResolveMarketRequest{WinningOptionID: market.Options[0].ID})
	url := "/api/markets/" + strconv.FormatInt(market.ID, 10) + "/resolve"

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("X-Admin-Key", testAdminKey)
	w := httptest.NewRecorder()
	adminRouter(store).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("X-Admin-Key", testAdminKey)
	w = httptest.NewRecorder()
	adminRouter(store).ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteMarketHandler(t *testing.T) {
	store := newTestStore(t)
	market := newTestMarket(t, store)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/markets/"+strconv.FormatInt(market.ID, 10), nil)
	req.Header.Set("X-Admin-Key", testAdminKey)
	w := httptest.NewRecorder()
	adminRouter(store).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := store.GetMarket(market.ID)
	assert.ErrorIs(t, err, storage.ErrMarketNotFound)
}
