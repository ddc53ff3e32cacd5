package utils

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// CaptureRequest describes a single card capture attempt
type CaptureRequest struct {
	// SourceToken is the tokenized card source produced by the browser
	// checkout widget
	SourceToken string
	AmountCents int64
	BuyerEmail  string
	// IdempotencyKey is unique per attempt so a resubmission after a
	// failure never double-charges
	IdempotencyKey string
}

// CaptureResult carries the gateway's payment reference
type CaptureResult struct {
	PaymentID string
}

// CardGateway captures card payments. The production implementation
// talks to Razorpay; tests swap in a fake.
type CardGateway interface {
	Capture(req CaptureRequest) (*CaptureResult, error)
}

// Gateway is the card gateway used by the pool payment flow
var Gateway CardGateway = &razorpayGateway{}

// NewIdempotencyKey generates a fresh idempotency reference for one
// capture attempt
func NewIdempotencyKey() string {
	return uuid.New().String()
}

type razorpayGateway struct{}

func (g *razorpayGateway) Capture(req CaptureRequest) (*CaptureResult, error) {
	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))

	data := map[string]interface{}{
		"currency": "USD",
		"email":    req.BuyerEmail,
		"notes": map[string]interface{}{
			"idempotency_key": req.IdempotencyKey,
		},
	}
	headers := map[string]string{
		"X-Idempotency-Key": req.IdempotencyKey,
	}

	body, err := client.Payment.Capture(req.SourceToken, int(req.AmountCents), data, headers)
	if err != nil {
		return nil, PaymentDeclinedError("Payment was declined by the card gateway", err)
	}

	paymentID, _ := body["id"].(string)
	if paymentID == "" {
		return nil, InternalError("Card gateway returned no payment id", fmt.Errorf("capture response: %v", body))
	}

	return &CaptureResult{PaymentID: paymentID}, nil
}
