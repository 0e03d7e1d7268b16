package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/address"
)

const (
	productionBaseURL = "https://connect.squareup.com"
	sandboxBaseURL    = "https://connect.squareupsandbox.com"

	apiVersion = "2024-08-21"
	currency   = "USD"
)

// Known Square error codes with tailored user messaging upstream.
const (
	ErrCodeCardDeclined = "CARD_DECLINED"
	ErrCodeInvalidCard  = "INVALID_CARD"
)

var (
	ErrNoAccessToken = errors.New("square access token is not configured")
	ErrNoLocation    = errors.New("square location is not configured")
)

// APIError is a structured error returned by the Square API. The detail is
// for logs only; user-facing messages are derived from the code upstream.
type APIError struct {
	StatusCode int
	Category   string
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("square api error: status=%d category=%s code=%s detail=%s",
		e.StatusCode, e.Category, e.Code, e.Detail)
}

// Client is a thin wrapper over the Square orders and payments endpoints.
// Credentials may be absent at construction time; Ready reports that as a
// configuration error so checkout can fail with a server-side classification
// instead of crashing at boot.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	locationID string
}

func NewClient() *Client {
	baseURL := sandboxBaseURL
	if viper.GetString("square.environment") == "production" {
		baseURL = productionBaseURL
	}

	locationID := viper.GetString("square.location_id")
	if locationID == "" {
		locationID = os.Getenv("SQUARE_LOCATION_ID")
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      os.Getenv("SQUARE_ACCESS_TOKEN"),
		locationID: locationID,
	}
}

// Ready verifies the client has everything it needs to talk to Square.
func (c *Client) Ready() error {
	if c.token == "" {
		return ErrNoAccessToken
	}
	if c.locationID == "" {
		return ErrNoLocation
	}

	return nil
}

// LineItem is one purchasable line sent to Square.
type LineItem struct {
	Name           string
	Quantity       int
	UnitPriceCents int64
	Note           string
}

// CreateOrderParams describes the remote order to create, including the
// shipment fulfillment for the recipient.
type CreateOrderParams struct {
	IdempotencyKey string
	ReferenceID    string
	Items          []LineItem
	Recipient      address.Address
}

// Payment is the subset of Square's payment object the storefront cares about.
type Payment struct {
	ID         string
	Status     string
	ReceiptURL string
}

// CreatePaymentParams describes the charge tied to a previously created order.
type CreatePaymentParams struct {
	IdempotencyKey string
	SourceID       string
	OrderID        string
	AmountCents    int64
	BuyerEmail     string
	Address        address.Address
	Note           string
}

type moneyPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type addressPayload struct {
	AddressLine1                 string `json:"address_line_1,omitempty"`
	AddressLine2                 string `json:"address_line_2,omitempty"`
	Locality                     string `json:"locality,omitempty"`
	AdministrativeDistrictLevel1 string `json:"administrative_district_level_1,omitempty"`
	PostalCode                   string `json:"postal_code,omitempty"`
	Country                      string `json:"country,omitempty"`
}

func toAddressPayload(a address.Address) addressPayload {
	country := a.Country
	if country == "" {
		country = "US"
	}

	return addressPayload{
		AddressLine1:                 a.AddressLine1,
		AddressLine2:                 a.AddressLine2,
		Locality:                     a.City,
		AdministrativeDistrictLevel1: a.State,
		PostalCode:                   a.PostalCode,
		Country:                      country,
	}
}

// CreateOrder creates a remote order with a proposed shipment fulfillment and
// returns the Square order id.
func (c *Client) CreateOrder(ctx context.Context, p CreateOrderParams) (string, error) {
	type lineItemPayload struct {
		Name           string       `json:"name"`
		Quantity       string       `json:"quantity"`
		BasePriceMoney moneyPayload `json:"base_price_money"`
		Note           string       `json:"note,omitempty"`
	}

	items := make([]lineItemPayload, len(p.Items))
	for i, it := range p.Items {
		items[i] = lineItemPayload{
			Name:     it.Name,
			Quantity: fmt.Sprintf("%d", it.Quantity),
			BasePriceMoney: moneyPayload{
				Amount:   it.UnitPriceCents,
				Currency: currency,
			},
			Note: it.Note,
		}
	}

	body := map[string]any{
		"idempotency_key": p.IdempotencyKey,
		"order": map[string]any{
			"location_id":  c.locationID,
			"reference_id": p.ReferenceID,
			"line_items":   items,
			"fulfillments": []map[string]any{
				{
					"type":  "SHIPMENT",
					"state": "PROPOSED",
					"shipment_details": map[string]any{
						"recipient": map[string]any{
							"display_name":  p.Recipient.FirstName + " " + p.Recipient.LastName,
							"email_address": p.Recipient.Email,
							"phone_number":  p.Recipient.Phone,
							"address":       toAddressPayload(p.Recipient),
						},
					},
				},
			},
		},
	}

	var out struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	if err := c.post(ctx, "/v2/orders", body, &out); err != nil {
		return "", err
	}
	if out.Order.ID == "" {
		return "", &APIError{StatusCode: http.StatusOK, Detail: "order id missing from response"}
	}

	return out.Order.ID, nil
}

// CreatePayment charges the payment source for the given amount.
func (c *Client) CreatePayment(ctx context.Context, p CreatePaymentParams) (*Payment, error) {
	body := map[string]any{
		"source_id":       p.SourceID,
		"idempotency_key": p.IdempotencyKey,
		"amount_money": moneyPayload{
			Amount:   p.AmountCents,
			Currency: currency,
		},
		"order_id":            p.OrderID,
		"location_id":         c.locationID,
		"buyer_email_address": p.BuyerEmail,
		"shipping_address":    toAddressPayload(p.Address),
		"note":                p.Note,
	}

	var out struct {
		Payment struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			ReceiptURL string `json:"receipt_url"`
		} `json:"payment"`
	}
	if err := c.post(ctx, "/v2/payments", body, &out); err != nil {
		return nil, err
	}
	if out.Payment.ID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Detail: "payment missing from response"}
	}

	return &Payment{
		ID:         out.Payment.ID,
		Status:     out.Payment.Status,
		ReceiptURL: out.Payment.ReceiptURL,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode square request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build square request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("square request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read square response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, payload)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode square response: %w", err)
	}

	return nil
}

func parseAPIError(status int, payload []byte) error {
	var body struct {
		Errors []struct {
			Category string `json:"category"`
			Code     string `json:"code"`
			Detail   string `json:"detail"`
		} `json:"errors"`
	}

	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(payload, &body); err == nil && len(body.Errors) > 0 {
		apiErr.Category = body.Errors[0].Category
		apiErr.Code = body.Errors[0].Code
		apiErr.Detail = body.Errors[0].Detail
	} else {
		apiErr.Detail = string(payload)
	}

	return apiErr
}
