package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"saldo/credentials"
)

var testCreds = credentials.Credentials{
	Provider:    "playstar",
	Currency:    "IDR",
	Environment: "test",
	AgentCode:   "agent01",
	AgentSecret: "topsecret",
}

func TestBalanceRequestAndDecode(t *testing.T) {
	var got rpcEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/wallet/balance" {
			t.Errorf("path = %s, want /v1/wallet/balance", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status_code":  2100,
			"credit":       "1500.50",
			"credit_after": "1500.50",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.Balance(context.Background(), testCreds, "PS001", "IDR")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !res.OK() {
		t.Fatalf("status_code = %d, want %d", res.StatusCode, StatusSuccess)
	}
	if !res.Credit.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("credit = %s, want 1500.50", res.Credit)
	}

	if got.AgentCode != "agent01" || got.AgentSecret != "topsecret" {
		t.Fatalf("agent fields = %s/%s, want agent01/topsecret", got.AgentCode, got.AgentSecret)
	}
	if got.PlayID != "PS001" || got.Currency != "IDR" {
		t.Fatalf("play fields = %s/%s, want PS001/IDR", got.PlayID, got.Currency)
	}
}

func TestWagerCarriesTransferFields(t *testing.T) {
	var got rpcEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/wallet/wager" {
			t.Errorf("path = %s, want /v1/wallet/wager", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status_code":  2100,
			"credit":       "900",
			"credit_after": "900",
		})
	}))
	defer srv.Close()

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.Wager(context.Background(), testCreds, TransferRequest{
		PlayID:        "PS001",
		Currency:      "IDR",
		TransactionID: "TXN-1",
		Amount:        decimal.NewFromInt(100),
		Report:        Report{GameCode: "G1", RoundID: "R1", At: at},
	})
	if err != nil {
		t.Fatalf("Wager: %v", err)
	}
	if !res.CreditAfter.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("credit_after = %s, want 900", res.CreditAfter)
	}

	if got.TransactionID != "TXN-1" {
		t.Fatalf("transaction_id = %s, want TXN-1", got.TransactionID)
	}
	if string(got.Amount) != `"100"` {
		t.Fatalf("amount = %s, want \"100\"", got.Amount)
	}
	if got.Report == nil || got.Report.RoundID != "R1" {
		t.Fatalf("report = %+v, want round R1", got.Report)
	}
	if got.WinAmount != nil {
		t.Fatalf("win_amount = %s, want omitted on pure wager", got.WinAmount)
	}
}

func TestWagerAndPayoutCarriesWinAmount(t *testing.T) {
	var got rpcEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/wallet/wager-payout" {
			t.Errorf("path = %s, want /v1/wallet/wager-payout", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]any{"status_code": 2100, "credit_after": "1050"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.WagerAndPayout(context.Background(), testCreds, TransferRequest{
		PlayID:        "PS001",
		Currency:      "IDR",
		TransactionID: "TXN-2",
		Amount:        decimal.NewFromInt(100),
		WinAmount:     decimal.NewFromInt(150),
	})
	if err != nil {
		t.Fatalf("WagerAndPayout: %v", err)
	}
	if string(got.WinAmount) != `"150"` {
		t.Fatalf("win_amount = %s, want \"150\"", got.WinAmount)
	}
}

func TestRejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status_code": 4203, "credit": "0"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.Balance(context.Background(), testCreds, "PS001", "IDR")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if res.OK() {
		t.Fatal("status 4203 reported as success")
	}
}

func TestNon200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Balance(context.Background(), testCreds, "PS001", "IDR"); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestGarbageBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Balance(context.Background(), testCreds, "PS001", "IDR"); err == nil {
		t.Fatal("expected error on non-JSON body")
	}
}

func TestTimeoutIsAnError(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, 50*time.Millisecond)
	if _, err := c.Balance(context.Background(), testCreds, "PS001", "IDR"); err == nil {
		t.Fatal("expected error on timeout")
	}
}
