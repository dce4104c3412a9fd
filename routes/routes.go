package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"saldo/controllers/callback/slots/goldapi"
	"saldo/controllers/callback/slots/playstar"
	"saldo/controllers/callback/slots/pragmatic"
	"saldo/controllers/callback/sportsbook/sbo"
	"saldo/controllers/user"
	"saldo/middlewares"
)

// Deps carries everything the route table needs. main wires it up once.
type Deps struct {
	DB *gorm.DB

	User      *user.Handler
	Playstar  *playstar.Handler
	Sbo       *sbo.Handler
	Pragmatic *pragmatic.Handler
	GoldAPI   *goldapi.Handler

	SessionSecret    string
	SboCompanyKey    string
	PragmaticSecret  string
	GoldAPIAgentCode string
	GoldAPISecret    string
}

func Setup(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	userroutes := app.Group("/user", middlewares.AgentAuth(d.DB))
	userroutes.Post("/register", d.User.RegisterPlayer)
	userroutes.Get("/balance", d.User.GetBalance)
	userroutes.Post("/games/start", d.User.StartGame)

	//playstar
	psroutes := app.Group("/seamless/slot/api", middlewares.PlaystarAuth(d.SessionSecret))
	psroutes.Get("/getbalance", d.Playstar.GetBalance)
	psroutes.Get("/bet", d.Playstar.Bet)
	psroutes.Get("/result", d.Playstar.Result)
	psroutes.Get("/refund", d.Playstar.Refund)
	psroutes.Get("/bonusaward", d.Playstar.BonusAward)

	//sbo
	sboroutes := app.Group("/seamless/sportsbook/sbo", middlewares.SboAuth(d.SboCompanyKey))
	sboroutes.Post("/GetBalance", d.Sbo.GetBalance)
	sboroutes.Post("/Deduct", d.Sbo.Deduct)
	sboroutes.Post("/Settle", d.Sbo.Settle)
	sboroutes.Post("/Cancel", d.Sbo.Cancel)
	sboroutes.Post("/Rollback", d.Sbo.Rollback)
	sboroutes.Post("/Bonus", d.Sbo.Bonus)

	//pragmatic
	prroutes := app.Group("/seamless/provider/pragmatic", middlewares.PragmaticAuth(d.PragmaticSecret))
	prroutes.Post("/balance", d.Pragmatic.Balance)
	prroutes.Post("/bet", d.Pragmatic.Bet)
	prroutes.Post("/result", d.Pragmatic.Result)
	prroutes.Post("/refund", d.Pragmatic.Refund)

	//gold_api
	gold := app.Group("/seamless/slot/gold_api", middlewares.GoldAPIAuth(d.GoldAPIAgentCode, d.GoldAPISecret))
	gold.Post("/user_balance", d.GoldAPI.UserBalance)
	gold.Post("/game_callback", d.GoldAPI.GameCallback)
}
