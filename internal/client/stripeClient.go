package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodmate-server/internal/config"

	"github.com/shopspring/decimal"
)

type StripeClient interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, orderID string) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}

type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}

type stripeClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: stripeCfg.BaseApiURL,
		secretKey:  stripeCfg.SecretKey,
	}
}

func (c *stripeClientImpl) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, orderID string) (*PaymentIntent, error) {
	// stripe wants the amount in the smallest currency unit
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(cents, 10))
	form.Set("currency", "usd")
	form.Set("payment_method_types[]", "card")
	form.Set("metadata[order_id]", orderID)

	return c.doIntentRequest(ctx, http.MethodPost,
		c.baseApiURL+"/v1/payment_intents",
		strings.NewReader(form.Encode()))
}

func (c *stripeClientImpl) GetPaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	return c.doIntentRequest(ctx, http.MethodGet,
		c.baseApiURL+"/v1/payment_intents/"+intentID, nil)
}

func (c *stripeClientImpl) doIntentRequest(ctx context.Context, method, reqURL string, body io.Reader) (*PaymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &intent, nil
}
