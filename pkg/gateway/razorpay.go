package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

// PaymentGateway is the external payment processor boundary. CreateOrder
// is a blocking call with a bounded timeout; VerifySignature checks a
// confirmation payload against the processor's signing scheme.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receiptRef string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// Order is the processor's view of a created payment order.
type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// razorpayGateway talks to the Razorpay Orders REST API with basic auth.
type razorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	log       *zap.Logger
}

func NewRazorpayGateway(config utils.GatewayConfig, log *zap.Logger) PaymentGateway {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &razorpayGateway{
		keyID:     config.KeyID,
		keySecret: config.KeySecret,
		baseURL:   config.BaseURL,
		client:    &http.Client{Timeout: timeout},
		log:       log.With(zap.String("gateway", "razorpay")),
	}
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder requests an order from the processor. Context cancellation
// and the client timeout both bound the call; any transport failure or
// non-2xx response is returned to the caller, which must not silently
// retry with the same order.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receiptRef string) (*Order, error) {
	start := time.Now()
	defer func() {
		utils.GatewayRequestLatency.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(createOrderRequest{
		Amount:         amountMinorUnits,
		Currency:       currency,
		Receipt:        receiptRef,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("Gateway unreachable", zap.Error(err))
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.log.Warn("Gateway rejected order creation",
			zap.Int("status", resp.StatusCode),
			zap.Int64("amount", amountMinorUnits))
		return nil, fmt.Errorf("gateway create order: status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	if order.ID == "" {
		return nil, fmt.Errorf("gateway returned order without id")
	}

	return &order, nil
}

// VerifySignature checks the HMAC-SHA256 the processor computes over
// "<orderID>|<paymentID>" with the key secret.
func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
