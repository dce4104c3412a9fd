package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"saldo/config"
	"saldo/controllers/callback/slots/goldapi"
	"saldo/controllers/callback/slots/playstar"
	"saldo/controllers/callback/slots/pragmatic"
	"saldo/controllers/callback/sportsbook/sbo"
	"saldo/controllers/user"
	"saldo/credentials"
	"saldo/database"
	"saldo/jobs"
	"saldo/logger"
	"saldo/providers"
	"saldo/providers/slots"
	"saldo/providers/sportsbook"
	"saldo/routes"
	"saldo/settlement"
	"saldo/store"
	"saldo/wallet"
)

// baseCurrency is the only currency the wallet settles in today. Adding one
// means another credentials.Register call per vendor.
const baseCurrency = "IDR"

func main() {
	// .env is a local convenience; deployed environments inject variables
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	players := store.NewPlayerStore(db)
	txns := store.NewTransactionStore(db)

	var gw wallet.Gateway = wallet.NewClient(cfg.WalletAPIURL, cfg.WalletTimeout)
	gw = wallet.WithMetrics(gw)
	gw = wallet.WithLogging(gw, log)

	engine := settlement.NewEngine(players, txns, gw, log)

	creds := credentials.NewRegistry()
	for provider, apiURL := range map[string]string{
		"playstar":  cfg.PlaystarAPIURL,
		"sbo":       cfg.SboAPIURL,
		"pragmatic": "",
		"goldapi":   "",
	} {
		creds.Register(credentials.Credentials{
			Provider:    provider,
			Currency:    baseCurrency,
			Environment: cfg.Environment,
			AgentCode:   cfg.WalletAgentCode,
			AgentSecret: cfg.WalletAgentSecret,
			APIURL:      apiURL,
		})
	}

	launchers := providers.NewRegistry()
	launchers.Register("playstar", slots.NewPlaystarLauncher(cfg.PlaystarAPIURL, cfg.PlaystarAccessKey, cfg.WalletTimeout, log))
	launchers.Register("sbo", sportsbook.NewSboLauncher(cfg.SboAPIURL, cfg.SboCompanyKey, cfg.SboServerID, cfg.WalletTimeout, log))

	app := fiber.New(fiber.Config{
		AppName:               "saldo",
		DisableStartupMessage: cfg.Environment == "production",
	})

	routes.Setup(app, routes.Deps{
		DB:        db,
		User:      user.New(db, players, engine, creds, launchers, log, cfg.SessionSecret, cfg.Environment),
		Playstar:  playstar.New(engine, creds, log, baseCurrency, cfg.Environment),
		Sbo:       sbo.New(engine, creds, log, baseCurrency, cfg.Environment),
		Pragmatic: pragmatic.New(engine, creds, log, baseCurrency, cfg.Environment),
		GoldAPI:   goldapi.New(engine, creds, log, baseCurrency, cfg.Environment),

		SessionSecret:    cfg.SessionSecret,
		SboCompanyKey:    cfg.SboCompanyKey,
		PragmaticSecret:  cfg.PragmaticSecret,
		GoldAPIAgentCode: cfg.GoldAPIAgentCode,
		GoldAPISecret:    cfg.GoldAPIAgentSecret,
	})

	stopCleanup := jobs.StartSessionCleanup(db, log, time.Hour)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.WithField("addr", addr).Info("server starting")

	go func() {
		if err := app.Listen(addr); err != nil {
			log.WithError(err).Fatal("server failed")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("shutting down")
	close(stopCleanup)
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}
	log.Info("server exited cleanly")
}
