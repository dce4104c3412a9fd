package slots

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

// PlaystarLauncher retrieves game-entry URLs from the Playstar launch API.
type PlaystarLauncher struct {
	apiURL    string
	accessKey string
	http      *http.Client
	log       *logrus.Logger
}

func NewPlaystarLauncher(apiURL, accessKey string, timeout time.Duration, log *logrus.Logger) *PlaystarLauncher {
	return &PlaystarLauncher{
		apiURL:    apiURL,
		accessKey: accessKey,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

func (p *PlaystarLauncher) StartGame(ctx context.Context, req providers.LaunchRequest) (string, error) {
	payload := map[string]any{
		"access_key":   p.accessKey,
		"member_id":    req.PlayID,
		"game_id":      req.GameCode,
		"lang":         req.Lang,
		"device":       map[string]string{"mobile": "m", "desktop": "d"}[req.Platform],
		"access_token": req.SessionToken,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/launch", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		p.log.WithError(err).Warn("playstar launch request failed")
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
		URL string `json:"game_url"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.URL == "" {
		return "", errors.New("no launch URL returned")
	}

	p.log.WithFields(logrus.Fields{
		"provider": "playstar",
		"play_id":  req.PlayID,
		"game":     req.GameCode,
	}).Info("game launched")

	return result.URL, nil
}
