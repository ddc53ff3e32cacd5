package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records capture requests instead of calling Razorpay
type fakeGateway struct {
	captured []utils.CaptureRequest
	decline  bool
}

func (f *fakeGateway) Capture(req utils.CaptureRequest) (*utils.CaptureResult, error) {
	if f.decline {
		return nil, utils.PaymentDeclinedError("Payment was declined by the card gateway", nil)
	}
	f.captured = append(f.captured, req)
	return &utils.CaptureResult{PaymentID: fmt.Sprintf("pay_test_%d", len(f.captured))}, nil
}

func useFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	fake := &fakeGateway{}
	previous := utils.Gateway
	utils.Gateway = fake
	t.Cleanup(func() { utils.Gateway = previous })
	return fake
}

func postJoin(t *testing.T, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/v1/pool/join", JoinPool)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/v1/pool/join", bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func joinBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"payment_token": "tok_test",
		"email":         email,
		"first_name":    "Dov",
		"last_name":     "Ber",
		"lottery_type":  "powerball",
		"ticket_qty":    1,
	}
}

func TestJoinPoolValidation(t *testing.T) {
	// Missing required fields are rejected before any I/O, so no
	// database is needed
	body := joinBody("")
	w := postJoin(t, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
}

func TestJoinPoolDuplicateRejected(t *testing.T) {
	db := testDB(t)
	fake := useFakeGateway(t)

	first := postJoin(t, joinBody("dup@example.com"))
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	require.Len(t, fake.captured, 1)
	assert.Equal(t, int64(300), fake.captured[0].AmountCents)

	second := postJoin(t, joinBody("dup@example.com"))
	assert.Equal(t, http.StatusConflict, second.Code)
	// No second charge attempted
	assert.Len(t, fake.captured, 1)

	var entries int64
	require.NoError(t, db.Model(&models.PoolEntry{}).Count(&entries).Error)
	assert.Equal(t, int64(1), entries)
}

func TestJoinPoolCreditsAppliedFirst(t *testing.T) {
	db := testDB(t)
	fake := useFakeGateway(t)

	user := models.User{Email: "credits@example.com", FirstName: "Sara", ReferralCode: utils.GenerateReferralCode(), CreditCents: 250}
	require.NoError(t, db.Create(&user).Error)

	w := postJoin(t, joinBody("credits@example.com"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Only the remainder went to the gateway
	require.Len(t, fake.captured, 1)
	assert.Equal(t, int64(50), fake.captured[0].AmountCents)

	var entry models.PoolEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, int64(50), entry.AmountPaidCents)
	assert.Equal(t, int64(250), entry.CreditsUsedCents)
	assert.Equal(t, models.PaymentMethodCard, entry.PaymentMethod)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, int64(0), reloaded.CreditCents)
}

func TestJoinPoolFullyCreditFunded(t *testing.T) {
	db := testDB(t)
	fake := useFakeGateway(t)

	user := models.User{Email: "rich@example.com", FirstName: "Yosef", ReferralCode: utils.GenerateReferralCode(), CreditCents: 1000}
	require.NoError(t, db.Create(&user).Error)

	// No payment token: credits cover the whole charge, so the gateway
	// is never invoked
	body := joinBody("rich@example.com")
	delete(body, "payment_token")
	w := postJoin(t, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, fake.captured, 0)

	var entry models.PoolEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, int64(0), entry.AmountPaidCents)
	assert.Equal(t, int64(300), entry.CreditsUsedCents)
	assert.Equal(t, models.PaymentMethodCredits, entry.PaymentMethod)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, int64(700), reloaded.CreditCents)
}

func TestJoinPoolDeclineLeavesNoState(t *testing.T) {
	db := testDB(t)
	fake := useFakeGateway(t)
	fake.decline = true

	w := postJoin(t, joinBody("declined@example.com"))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var entries int64
	require.NoError(t, db.Model(&models.PoolEntry{}).Count(&entries).Error)
	assert.Equal(t, int64(0), entries)
}

func TestJoinPoolRefreshesAggregates(t *testing.T) {
	db := testDB(t)
	fake := useFakeGateway(t)

	first := postJoin(t, joinBody("one@example.com"))
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	body := joinBody("two@example.com")
	body["lottery_type"] = "megamillions"
	body["ticket_qty"] = 2
	second := postJoin(t, body)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	require.Len(t, fake.captured, 2)
	assert.Equal(t, int64(1200), fake.captured[1].AmountCents)

	var pool models.PoolWeek
	require.NoError(t, db.Where("status = ?", models.PoolStatusOpen).First(&pool).Error)
	assert.Equal(t, 2, pool.TotalParticipants)
	assert.Equal(t, int64(1500), pool.TotalAmountCents)
}
