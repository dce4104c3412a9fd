package playstar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"saldo/credentials"
	"saldo/models"
	"saldo/settlement"
	"saldo/store"
	"saldo/wallet"
)

type memPlayers struct {
	rows map[string]*models.Player
}

func (m *memPlayers) key(provider, playID string) string { return provider + "/" + playID }

func (m *memPlayers) Find(_ context.Context, provider, playID string) (*models.Player, error) {
	p, ok := m.rows[m.key(provider, playID)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (m *memPlayers) CreateIfAbsent(_ context.Context, p *models.Player) error {
	k := m.key(p.Provider, p.PlayID)
	if _, ok := m.rows[k]; !ok {
		m.rows[k] = p
	}
	return nil
}

func (m *memPlayers) UpdateLaunch(_ context.Context, provider, playID, token, gameCode string) error {
	if p, ok := m.rows[m.key(provider, playID)]; ok {
		p.Token, p.GameCode = token, gameCode
	}
	return nil
}

type memTxns struct {
	rows map[string]*models.ProviderTransaction
}

func (m *memTxns) key(provider, externalID string) string { return provider + "/" + externalID }

func (m *memTxns) FindByExternalID(_ context.Context, provider, externalID string) (*models.ProviderTransaction, error) {
	t, ok := m.rows[m.key(provider, externalID)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}

func (m *memTxns) FindByRound(_ context.Context, provider, roundID string) (*models.ProviderTransaction, error) {
	for _, t := range m.rows {
		if t.Provider == provider && t.RoundID == roundID {
			return t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memTxns) Insert(_ context.Context, txn *models.ProviderTransaction) error {
	k := m.key(txn.Provider, txn.ExternalID)
	if _, ok := m.rows[k]; ok {
		return store.ErrDuplicate
	}
	m.rows[k] = txn
	return nil
}

func (m *memTxns) UpdateSettlement(_ context.Context, provider, externalID string, s store.Settlement) error {
	t, ok := m.rows[m.key(provider, externalID)]
	if !ok || t.SettledAt != nil {
		return store.ErrNotFound
	}
	at := s.SettledAt
	t.WinAmount, t.BetWinlose, t.Status, t.SettledAt = s.WinAmount, s.BetWinlose, s.Status, &at
	return nil
}

func (m *memTxns) MarkVoided(_ context.Context, provider, externalID string, at time.Time) error {
	t, ok := m.rows[m.key(provider, externalID)]
	if !ok || t.Status == models.TxStatusVoided {
		return store.ErrNotFound
	}
	t.WinAmount, t.BetWinlose, t.Status, t.SettledAt = t.BetAmount, decimal.Zero, models.TxStatusVoided, &at
	return nil
}

// memWallet keeps one balance per play id and moves money the way the real
// ledger would, so adapter tests see consistent before/after balances.
type memWallet struct {
	balances map[string]decimal.Decimal
}

func (w *memWallet) result(playID string) (wallet.Result, error) {
	bal := w.balances[playID]
	return wallet.Result{StatusCode: wallet.StatusSuccess, Credit: bal, CreditAfter: bal}, nil
}

func (w *memWallet) Balance(_ context.Context, _ credentials.Credentials, playID, _ string) (wallet.Result, error) {
	return w.result(playID)
}

func (w *memWallet) Wager(_ context.Context, _ credentials.Credentials, req wallet.TransferRequest) (wallet.Result, error) {
	w.balances[req.PlayID] = w.balances[req.PlayID].Sub(req.Amount)
	return w.result(req.PlayID)
}

func (w *memWallet) Payout(_ context.Context, _ credentials.Credentials, req wallet.TransferRequest) (wallet.Result, error) {
	w.balances[req.PlayID] = w.balances[req.PlayID].Add(req.Amount)
	return w.result(req.PlayID)
}

func (w *memWallet) WagerAndPayout(_ context.Context, _ credentials.Credentials, req wallet.TransferRequest) (wallet.Result, error) {
	w.balances[req.PlayID] = w.balances[req.PlayID].Sub(req.Amount).Add(req.WinAmount)
	return w.result(req.PlayID)
}

func (w *memWallet) Bonus(_ context.Context, _ credentials.Credentials, req wallet.TransferRequest) (wallet.Result, error) {
	w.balances[req.PlayID] = w.balances[req.PlayID].Add(req.Amount)
	return w.result(req.PlayID)
}

func (w *memWallet) Cancel(_ context.Context, _ credentials.Credentials, req wallet.TransferRequest) (wallet.Result, error) {
	w.balances[req.PlayID] = w.balances[req.PlayID].Sub(req.Amount)
	return w.result(req.PlayID)
}

func newTestApp(t *testing.T, startBalance int64) (*fiber.App, *memWallet) {
	t.Helper()

	players := &memPlayers{rows: map[string]*models.Player{
		"playstar/PS001": {Provider: "playstar", PlayID: "PS001", Username: "PS001", Currency: "IDR", IsActive: true},
	}}
	txns := &memTxns{rows: map[string]*models.ProviderTransaction{}}
	w := &memWallet{balances: map[string]decimal.Decimal{
		"PS001": decimal.NewFromInt(startBalance),
	}}

	log := logrus.New()
	log.SetOutput(io.Discard)

	creds := credentials.NewRegistry()
	creds.Register(credentials.Credentials{
		Provider: "playstar", Currency: "IDR", Environment: "test",
		AgentCode: "agent01", AgentSecret: "secret", APIURL: "http://playstar.test",
	})

	engine := settlement.NewEngine(players, txns, w, log)
	h := New(engine, creds, log, "IDR", "test")

	app := fiber.New(fiber.Config{Immutable: true})
	app.Get("/playstar/getbalance", h.GetBalance)
	app.Get("/playstar/bet", h.Bet)
	app.Get("/playstar/result", h.Result)
	app.Get("/playstar/refund", h.Refund)
	app.Get("/playstar/bonusaward", h.BonusAward)
	return app, w
}

func call(t *testing.T, app *fiber.App, target string) response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request %s: http %d, want 200", target, resp.StatusCode)
	}
	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", target, err)
	}
	return out
}

func TestGetBalance(t *testing.T) {
	app, _ := newTestApp(t, 5000)

	out := call(t, app, "/playstar/getbalance?member_id=PS001")
	if out.StatusCode != statusOK {
		t.Fatalf("status_code = %d, want %d", out.StatusCode, statusOK)
	}
	if out.Balance != 5000 {
		t.Fatalf("balance = %d, want 5000", out.Balance)
	}
}

func TestGetBalanceUnknownMember(t *testing.T) {
	app, _ := newTestApp(t, 5000)

	out := call(t, app, "/playstar/getbalance?member_id=NOBODY")
	if out.StatusCode != statusInvalidMember {
		t.Fatalf("status_code = %d, want %d", out.StatusCode, statusInvalidMember)
	}
}

func TestBetAndResultRound(t *testing.T) {
	app, _ := newTestApp(t, 1000)

	out := call(t, app, "/playstar/bet?member_id=PS001&txn_id=T1&round_id=R1&game_id=G1&total_bet=100&ts=1700000000")
	if out.StatusCode != statusOK {
		t.Fatalf("bet status_code = %d, want %d", out.StatusCode, statusOK)
	}
	if out.Balance != 900 {
		t.Fatalf("balance after bet = %d, want 900", out.Balance)
	}

	out = call(t, app, "/playstar/result?txn_id=T2&round_id=R1&total_win=150&ts=1700000100")
	if out.StatusCode != statusOK {
		t.Fatalf("result status_code = %d, want %d", out.StatusCode, statusOK)
	}
	if out.Balance != 1050 {
		t.Fatalf("balance after result = %d, want 1050", out.Balance)
	}
}

func TestBetDuplicateTxn(t *testing.T) {
	app, w := newTestApp(t, 1000)

	first := "/playstar/bet?member_id=PS001&txn_id=T1&round_id=R1&total_bet=100"
	if out := call(t, app, first); out.StatusCode != statusOK {
		t.Fatalf("first bet status_code = %d, want %d", out.StatusCode, statusOK)
	}
	out := call(t, app, first)
	if out.StatusCode != statusDuplicateTxn {
		t.Fatalf("replayed bet status_code = %d, want %d", out.StatusCode, statusDuplicateTxn)
	}
	if got := w.balances["PS001"]; !got.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("wallet balance = %s, want 900 (stake debited once)", got)
	}
}

func TestBetInsufficientFunds(t *testing.T) {
	app, w := newTestApp(t, 50)

	out := call(t, app, "/playstar/bet?member_id=PS001&txn_id=T1&round_id=R1&total_bet=100")
	if out.StatusCode != statusInsufficient {
		t.Fatalf("status_code = %d, want %d", out.StatusCode, statusInsufficient)
	}
	if got := w.balances["PS001"]; !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("wallet balance = %s, want untouched 50", got)
	}
}

func TestResultTwiceRejected(t *testing.T) {
	app, _ := newTestApp(t, 1000)

	call(t, app, "/playstar/bet?member_id=PS001&txn_id=T1&round_id=R1&total_bet=100")
	if out := call(t, app, "/playstar/result?txn_id=T2&round_id=R1&total_win=0"); out.StatusCode != statusOK {
		t.Fatalf("first result status_code = %d, want %d", out.StatusCode, statusOK)
	}
	out := call(t, app, "/playstar/result?txn_id=T3&round_id=R1&total_win=0")
	if out.StatusCode != statusAlreadySettled {
		t.Fatalf("second result status_code = %d, want %d", out.StatusCode, statusAlreadySettled)
	}
}

func TestResultUnknownRound(t *testing.T) {
	app, _ := newTestApp(t, 1000)

	out := call(t, app, "/playstar/result?txn_id=T9&round_id=NOROUND&total_win=10")
	if out.StatusCode != statusInvalidTxn {
		t.Fatalf("status_code = %d, want %d", out.StatusCode, statusInvalidTxn)
	}
}

func TestRefundReturnsStake(t *testing.T) {
	app, w := newTestApp(t, 1000)

	call(t, app, "/playstar/bet?member_id=PS001&txn_id=T1&round_id=R1&total_bet=100")
	out := call(t, app, "/playstar/refund?txn_id=T1&round_id=R1")
	if out.StatusCode != statusOK {
		t.Fatalf("refund status_code = %d, want %d", out.StatusCode, statusOK)
	}
	if got := w.balances["PS001"]; !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("wallet balance = %s, want restored 1000", got)
	}

	out = call(t, app, "/playstar/refund?txn_id=T1&round_id=R1")
	if out.StatusCode != statusAlreadySettled {
		t.Fatalf("second refund status_code = %d, want %d", out.StatusCode, statusAlreadySettled)
	}
}

func TestRefundSettledRoundRejected(t *testing.T) {
	app, _ := newTestApp(t, 1000)

	call(t, app, "/playstar/bet?member_id=PS001&txn_id=T1&round_id=R1&total_bet=100")
	call(t, app, "/playstar/result?txn_id=T2&round_id=R1&total_win=200")
	out := call(t, app, "/playstar/refund?txn_id=T1&round_id=R1")
	if out.StatusCode != statusAlreadySettled {
		t.Fatalf("status_code = %d, want %d", out.StatusCode, statusAlreadySettled)
	}
}

func TestBonusAward(t *testing.T) {
	app, w := newTestApp(t, 1000)

	out := call(t, app, "/playstar/bonusaward?member_id=PS001&txn_id=B1&game_id=G1&bonus_win=250")
	if out.StatusCode != statusOK {
		t.Fatalf("status_code = %d, want %d", out.StatusCode, statusOK)
	}
	if got := w.balances["PS001"]; !got.Equal(decimal.NewFromInt(1250)) {
		t.Fatalf("wallet balance = %s, want 1250", got)
	}

	out = call(t, app, "/playstar/bonusaward?member_id=PS001&txn_id=B1&game_id=G1&bonus_win=250")
	if out.StatusCode != statusDuplicateTxn {
		t.Fatalf("replayed bonus status_code = %d, want %d", out.StatusCode, statusDuplicateTxn)
	}
}

func TestMissingParams(t *testing.T) {
	app, _ := newTestApp(t, 1000)

	cases := []struct {
		target string
		want   int
	}{
		{"/playstar/getbalance", statusInvalidMember},
		{"/playstar/bet?member_id=PS001&total_bet=100", statusInvalidTxn},
		{"/playstar/bet?member_id=PS001&txn_id=T1", statusInternal},
		{"/playstar/result?round_id=R1&total_win=10", statusInvalidTxn},
	}
	for _, tc := range cases {
		if out := call(t, app, tc.target); out.StatusCode != tc.want {
			t.Fatalf("%s: status_code = %d, want %d", tc.target, out.StatusCode, tc.want)
		}
	}
}
