// Package providers holds the outbound launch clients, one per vendor. They
// are plain request/response wrappers around each vendor's launch API; all
// wagering flows back in through the provider callbacks.
package providers

import (
	"context"
	"strings"
)

type LaunchRequest struct {
	PlayID       string `json:"play_id"`
	Username     string `json:"username"`
	GameType     string `json:"game_type"`
	ProviderCode string `json:"provider_code"`
	GameCode     string `json:"game_code"`
	Lang         string `json:"lang"`
	Platform     string `json:"platform"`
	Currency     string `json:"currency"`
	IP           string `json:"ip"`
	SessionToken string `json:"session_token"`
}

type GameProviderLauncher interface {
	StartGame(ctx context.Context, req LaunchRequest) (string, error)
}

// Registry maps a provider code to its launcher. Populated at startup.
type Registry struct {
	launchers map[string]GameProviderLauncher
}

func NewRegistry() *Registry {
	return &Registry{launchers: make(map[string]GameProviderLauncher)}
}

func (r *Registry) Register(name string, launcher GameProviderLauncher) {
	r.launchers[strings.ToLower(name)] = launcher
}

func (r *Registry) Get(name string) GameProviderLauncher {
	return r.launchers[strings.ToLower(name)]
}
