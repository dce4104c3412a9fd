package wallet

import (
	"context"
	"time"

	"saldo/credentials"
	"saldo/metrics"
)

type metricsGateway struct {
	next Gateway
}

// WithMetrics decorates gw so every wallet call records its duration and
// result under saldo_wallet_request_duration_seconds.
func WithMetrics(gw Gateway) Gateway {
	return &metricsGateway{next: gw}
}

func (m *metricsGateway) observe(method string, start time.Time, res Result, err error) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case !res.OK():
		result = "rejected"
	}
	metrics.WalletRequests.WithLabelValues(method, result).Observe(time.Since(start).Seconds())
}

func (m *metricsGateway) Balance(ctx context.Context, creds credentials.Credentials, playID, currency string) (Result, error) {
	start := time.Now()
	res, err := m.next.Balance(ctx, creds, playID, currency)
	m.observe("balance", start, res, err)
	return res, err
}

func (m *metricsGateway) Wager(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	start := time.Now()
	res, err := m.next.Wager(ctx, creds, req)
	m.observe("wager", start, res, err)
	return res, err
}

func (m *metricsGateway) Payout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	start := time.Now()
	res, err := m.next.Payout(ctx, creds, req)
	m.observe("payout", start, res, err)
	return res, err
}

func (m *metricsGateway) WagerAndPayout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	start := time.Now()
	res, err := m.next.WagerAndPayout(ctx, creds, req)
	m.observe("wager_payout", start, res, err)
	return res, err
}

func (m *metricsGateway) Bonus(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	start := time.Now()
	res, err := m.next.Bonus(ctx, creds, req)
	m.observe("bonus", start, res, err)
	return res, err
}

func (m *metricsGateway) Cancel(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	start := time.Now()
	res, err := m.next.Cancel(ctx, creds, req)
	m.observe("cancel", start, res, err)
	return res, err
}
