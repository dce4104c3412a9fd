package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"saldo/credentials"
)

// Client is the JSON-over-HTTP implementation of Gateway. One request is one
// bounded unit of work: the configured timeout is the only cancellation, and
// a timeout is reported like any other wallet failure.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type rpcEnvelope struct {
	AgentCode   string `json:"agent_code"`
	AgentSecret string `json:"agent_secret"`
	Currency    string `json:"currency"`

	PlayID        string          `json:"play_id"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        json.RawMessage `json:"amount,omitempty"`
	WinAmount     json.RawMessage `json:"win_amount,omitempty"`
	Report        *Report         `json:"report,omitempty"`
}

func (c *Client) Balance(ctx context.Context, creds credentials.Credentials, playID, currency string) (Result, error) {
	return c.call(ctx, "/v1/wallet/balance", rpcEnvelope{
		AgentCode:   creds.AgentCode,
		AgentSecret: creds.AgentSecret,
		Currency:    currency,
		PlayID:      playID,
	})
}

func (c *Client) Wager(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	return c.transfer(ctx, "/v1/wallet/wager", creds, req)
}

func (c *Client) Payout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	return c.transfer(ctx, "/v1/wallet/payout", creds, req)
}

func (c *Client) WagerAndPayout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	return c.transfer(ctx, "/v1/wallet/wager-payout", creds, req)
}

func (c *Client) Bonus(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	return c.transfer(ctx, "/v1/wallet/bonus", creds, req)
}

func (c *Client) Cancel(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	return c.transfer(ctx, "/v1/wallet/cancel", creds, req)
}

func (c *Client) transfer(ctx context.Context, path string, creds credentials.Credentials, req TransferRequest) (Result, error) {
	amount, err := req.Amount.MarshalJSON()
	if err != nil {
		return Result{}, err
	}
	env := rpcEnvelope{
		AgentCode:     creds.AgentCode,
		AgentSecret:   creds.AgentSecret,
		Currency:      req.Currency,
		PlayID:        req.PlayID,
		TransactionID: req.TransactionID,
		Amount:        amount,
		Report:        &req.Report,
	}
	if !req.WinAmount.IsZero() {
		win, err := req.WinAmount.MarshalJSON()
		if err != nil {
			return Result{}, err
		}
		env.WinAmount = win
	}
	return c.call(ctx, path, env)
}

func (c *Client) call(ctx context.Context, path string, env rpcEnvelope) (Result, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return Result{}, fmt.Errorf("wallet: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return Result{}, fmt.Errorf("wallet: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("wallet: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("wallet: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("wallet: %s returned HTTP %d", path, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, fmt.Errorf("wallet: decode response: %w", err)
	}

	return result, nil
}
