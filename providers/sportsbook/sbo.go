package sportsbook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"saldo/providers"
)

// SboLauncher logs a player into the sportsbook and returns the portal URL.
type SboLauncher struct {
	apiURL     string
	companyKey string
	serverID   string
	http       *http.Client
	log        *logrus.Logger
}

func NewSboLauncher(apiURL, companyKey, serverID string, timeout time.Duration, log *logrus.Logger) *SboLauncher {
	return &SboLauncher{
		apiURL:     apiURL,
		companyKey: companyKey,
		serverID:   serverID,
		http:       &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (p *SboLauncher) StartGame(ctx context.Context, req providers.LaunchRequest) (string, error) {
	username := req.PlayID
	if len(username) < 6 {
		username = fmt.Sprintf("%s_user", username)
	}

	payload := map[string]any{
		"CompanyKey": p.companyKey,
		"ServerId":   p.serverID,
		"Username":   username,
		"Portfolio":  "SportsBook",
		"Lang":       req.Lang,
		"Device":     map[string]string{"mobile": "m", "desktop": "d"}[req.Platform],
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiURL+"/web-root/restricted/player/login.aspx", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		p.log.WithError(err).Warn("sbo launch request failed")
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to launch game, status: %s", resp.Status)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.URL == "" {
		return "", errors.New("no login URL returned")
	}

	return result.URL, nil
}
