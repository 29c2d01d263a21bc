package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/domain"
)

// Client implements usecase.InvoiceGateway against the billing platform's
// REST API. Every call is bounded by the client timeout; a timeout counts as
// a gateway failure for that call and is never retried here.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a new billing Client.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// invoiceRecord is the loose wire shape of an invoice. The billing API is not
// strict about types, so everything is validated into domain.Invoice before
// any scoring logic sees it.
type invoiceRecord struct {
	ID         string      `json:"id"`
	BalanceDue json.Number `json:"balance_due"`
	Currency   string      `json:"currency"`
	Date       time.Time   `json:"date"`
	ClientID   string      `json:"client_id"`
	ClientName string      `json:"client_name"`
	Status     string      `json:"status"`
}

type clientRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type paymentRequest struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Date          string `json:"date"`
}

type paymentResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// GetOutstandingInvoice retrieves a single invoice by id.
func (c *Client) GetOutstandingInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	var record invoiceRecord
	if err := c.getJSON(ctx, "/api/v1/invoices/"+url.PathEscape(id), &record); err != nil {
		return nil, err
	}

	invoice, err := recordToInvoice(record)
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// ListOutstandingInvoices retrieves up to limit outstanding invoices.
// Records that fail validation are skipped, not fatal: one malformed invoice
// must not sink a whole match run.
func (c *Client) ListOutstandingInvoices(ctx context.Context, limit int) ([]*domain.Invoice, error) {
	var records []invoiceRecord
	if err := c.getJSON(ctx, "/api/v1/invoices?status=outstanding&limit="+strconv.Itoa(limit), &records); err != nil {
		return nil, err
	}

	return c.validRecords(records), nil
}

// ListClientInvoices retrieves all invoices of one client.
func (c *Client) ListClientInvoices(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	var records []invoiceRecord
	if err := c.getJSON(ctx, "/api/v1/clients/"+url.PathEscape(clientID)+"/invoices", &records); err != nil {
		return nil, err
	}

	return c.validRecords(records), nil
}

// ListClients retrieves the client roster as id -> display name.
func (c *Client) ListClients(ctx context.Context) (map[string]string, error) {
	var records []clientRecord
	if err := c.getJSON(ctx, "/api/v1/clients", &records); err != nil {
		return nil, err
	}

	clients := make(map[string]string, len(records))
	for _, r := range records {
		if r.ID == "" || r.Name == "" {
			continue
		}
		clients[r.ID] = r.Name
	}

	return clients, nil
}

// ApplyPayment applies a transaction as a payment against an invoice. The
// Idempotency-Key header carries the transaction id so a replayed call after
// a crash is a no-op on the billing side.
func (c *Client) ApplyPayment(ctx context.Context, invoiceID string, txn *domain.Transaction) (*domain.PaymentResult, error) {
	body, err := json.Marshal(paymentRequest{
		TransactionID: txn.ID,
		Amount:        txn.Amount.String(),
		Currency:      txn.Currency,
		Date:          txn.Date.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/api/v1/invoices/" + url.PathEscape(invoiceID) + "/payments"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", txn.ID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: apply payment: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: invoice %s", domain.ErrInvoiceNotFound, invoiceID)
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusConflict:
		var rejection paymentResponse
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil {
			rejection.Message = resp.Status
		}
		return &domain.PaymentResult{Accepted: false, Message: rejection.Message}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: apply payment: %s", domain.ErrGatewayUnavailable, resp.Status)
	}

	var result paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode payment response: %v", domain.ErrGatewayUnavailable, err)
	}

	return &domain.PaymentResult{Accepted: result.Accepted, Message: result.Message}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %s", domain.ErrGatewayUnavailable, path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrGatewayUnavailable, path, err)
	}

	return nil
}

func (c *Client) validRecords(records []invoiceRecord) []*domain.Invoice {
	invoices := make([]*domain.Invoice, 0, len(records))
	for _, record := range records {
		invoice, err := recordToInvoice(record)
		if err != nil {
			c.logger.Warn().Err(err).Str("invoice_id", record.ID).Msg("skipping malformed invoice record")
			continue
		}

		invoices = append(invoices, invoice)
	}

	return invoices
}

func recordToInvoice(record invoiceRecord) (*domain.Invoice, error) {
	balance, err := decimal.NewFromString(record.BalanceDue.String())
	if err != nil {
		return nil, fmt.Errorf("invoice %s: parse balance %q: %w", record.ID, record.BalanceDue, err)
	}

	invoice := &domain.Invoice{
		ID:         record.ID,
		BalanceDue: balance,
		Currency:   record.Currency,
		Date:       record.Date,
		ClientID:   record.ClientID,
		ClientName: record.ClientName,
		Status:     record.Status,
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	return invoice, nil
}
