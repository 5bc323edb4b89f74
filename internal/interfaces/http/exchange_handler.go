package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/internal/application/dto"
	"github.com/okendra/retailops-api/internal/application/exchange"
)

// ExchangeHandler serves the exchange/return reconciliation endpoints.
type ExchangeHandler struct {
	uc *exchange.UseCase
}

// NewExchangeHandler builds the handler.
func NewExchangeHandler(uc *exchange.UseCase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

// Process godoc
// @Summary      Process a return-and-reissue exchange
// @Description  Returned items enter the quarantine ledger; issued items leave
//	the live ledger immediately (clamped at zero). One atomic write.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExchangeRequest  true  "originalSaleId, returns, issues"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/exchange [post]
func (h *ExchangeHandler) Process(c *fiber.Ctx) error {
	var in dto.ExchangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	id, err := h.uc.Process(c.Context(), exchange.ProcessInput{
		OriginalSaleID: in.OriginalSaleID,
		LocationID:     in.LocationID,
		CustomerName:   in.Customer.Name,
		CustomerPhone:  in.Customer.Phone,
		Reason:         in.Reason,
		Returns:        toExchangeLines(in.Returns),
		Issues:         toExchangeLines(in.Issues),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// MarkExchanged godoc
// @Summary      Link an exchange back to its originating sale
// @Description  Advisory audit link: always succeeds unless the input is
//	structurally invalid. A storage failure is logged and discarded.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkExchangedRequest  true  "originalSaleId, exchangeId, newSaleId"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/mark-exchanged [post]
func (h *ExchangeHandler) MarkExchanged(c *fiber.Ctx) error {
	var in dto.MarkExchangedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	err := h.uc.MarkExchanged(c.Context(), exchange.MarkExchangedInput{
		OriginalSaleID: in.OriginalSaleID,
		ExchangeID:     in.ExchangeID,
		NewSaleID:      in.NewSaleID,
		Note:           in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Settle godoc
// @Summary      Settle the price difference of an exchange
// @Description  due = max(0, newTotal - originalTotal); payments must sum to
//	exactly the amount due unless allowPartial is set.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettleRequest  true  "originalTotal, newTotal, payments"
// @Success      200   {object}  dto.SettleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/exchange/settle [post]
func (h *ExchangeHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	payments := make([]exchange.Payment, 0, len(in.Payments))
	for _, p := range in.Payments {
		payments = append(payments, exchange.Payment{Mode: p.Mode, Amount: p.Amount})
	}
	s, err := exchange.SettleDifference(in.OriginalTotal, in.NewTotal, payments, in.AllowPartial)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SettleResponse{Due: s.Due, Paid: s.Paid, Partial: s.Partial})
}

func toExchangeLines(in []dto.ExchangeLineInput) []exchange.LineInput {
	out := make([]exchange.LineInput, 0, len(in))
	for _, l := range in {
		out = append(out, exchange.LineInput{
			ItemID:      l.ItemID,
			ItemCode:    l.ItemCode,
			StockNumber: l.StockNumber,
			Quantity:    l.Qty,
			UnitPrice:   l.UnitPrice,
		})
	}
	return out
}
