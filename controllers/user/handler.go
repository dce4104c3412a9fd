// Package user exposes the integrator endpoints the in-house front-end
// calls: player registration, balance, and game launch.
package user

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"saldo/credentials"
	"saldo/providers"
	"saldo/settlement"
	"saldo/store"
)

type Handler struct {
	db          *gorm.DB
	players     store.PlayerStore
	engine      *settlement.Engine
	creds       *credentials.Registry
	launchers   *providers.Registry
	log         *logrus.Logger
	secret      string
	environment string
}

func New(
	db *gorm.DB,
	players store.PlayerStore,
	engine *settlement.Engine,
	creds *credentials.Registry,
	launchers *providers.Registry,
	log *logrus.Logger,
	sessionSecret string,
	environment string,
) *Handler {
	return &Handler{
		db:          db,
		players:     players,
		engine:      engine,
		creds:       creds,
		launchers:   launchers,
		log:         log,
		secret:      sessionSecret,
		environment: environment,
	}
}
