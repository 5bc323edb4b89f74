package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/internal/application/exchange"
	"github.com/okendra/retailops-api/internal/application/holdbill"
	"github.com/okendra/retailops-api/internal/application/transfer"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// RouterDeps collects the router dependencies.
type RouterDeps struct {
	CreateTransfer *transfer.CreateUseCase
	Transition     *transfer.TransitionUseCase
	TransferQuery  *transfer.QueryUseCase
	ExchangeUC     *exchange.UseCase
	HoldBillUC     *holdbill.UseCase
	StockRepo      repository.StockRepository
	QuarantineRepo repository.QuarantineRepository
	ItemRepo       repository.ItemRepository
	LocationRepo   repository.LocationRepository
	JWTSecret      string
}

// Router registers the API routes. Every route runs behind the tolerant actor
// middleware: identity is resolved when present, "Unknown" otherwise, and no
// request is rejected for missing attribution.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware(deps.JWTSecret))

	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.CreateTransfer, deps.Transition, deps.TransferQuery)
	transfers.Post("/requests", transferHandler.Create)
	transfers.Get("/requests", transferHandler.List)
	transfers.Get("/inward", transferHandler.Inward)
	transfers.Get("/requests/:idOrCode", transferHandler.Get)
	transfers.Put("/requests/:id/lines", transferHandler.ReplaceLines)
	transfers.Put("/requests/:id", transferHandler.Transition)

	sales := api.Group("/sales")
	exchangeHandler := NewExchangeHandler(deps.ExchangeUC)
	sales.Post("/exchange", exchangeHandler.Process)
	sales.Post("/exchange/settle", exchangeHandler.Settle)
	sales.Post("/mark-exchanged", exchangeHandler.MarkExchanged)

	holdHandler := NewHoldBillHandler(deps.HoldBillUC)
	sales.Post("/hold", holdHandler.Hold)
	sales.Get("/hold", holdHandler.List)
	sales.Post("/hold/:id/resume", holdHandler.Resume)
	sales.Delete("/hold/:id", holdHandler.Delete)

	stockHandler := NewStockHandler(deps.StockRepo, deps.QuarantineRepo, deps.ItemRepo, deps.LocationRepo)
	api.Get("/stock", stockHandler.Stock)
	api.Get("/stock/quarantine", stockHandler.Quarantine)
	api.Get("/locations", stockHandler.Locations)
	api.Get("/items", stockHandler.Items)
}
