package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/internal/application/dto"
	"github.com/okendra/retailops-api/internal/application/holdbill"
	"github.com/okendra/retailops-api/internal/domain/entity"
)

// HoldBillHandler serves the suspended-cart endpoints.
type HoldBillHandler struct {
	uc *holdbill.UseCase
}

// NewHoldBillHandler builds the handler.
func NewHoldBillHandler(uc *holdbill.UseCase) *HoldBillHandler {
	return &HoldBillHandler{uc: uc}
}

// Hold godoc
// @Summary      Suspend an in-progress sale cart
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HoldRequest  true  "cart lines plus discount/tax snapshot"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/hold [post]
func (h *HoldBillHandler) Hold(c *fiber.Ctx) error {
	var in dto.HoldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	token, err := h.uc.Hold(c.Context(), holdbill.HoldInput{
		CustomerName: in.CustomerName,
		Settings:     in.Settings,
		Lines:        in.Lines,
		ActorID:      GetActorID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": token})
}

// List godoc
// @Summary      List held bills
// @Tags         sales
// @Produce      json
// @Param        maxAgeHours  query  int  false  "only bills held within the last N hours"
// @Success      200  {array}  dto.HeldBillResponse
// @Router       /sales/hold [get]
func (h *HoldBillHandler) List(c *fiber.Ctx) error {
	bills, err := h.uc.List(c.Context(), c.QueryInt("maxAgeHours"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.HeldBillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toHeldBillResponse(b))
	}
	return c.JSON(out)
}

// Resume godoc
// @Summary      Resume a held bill
// @Description  Pop-and-return: the bill is deleted in the same atomic step
//	that reads it, so the same token can never be resumed twice.
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "bill token"
// @Success      200  {object}  dto.HeldBillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/hold/{id}/resume [post]
func (h *HoldBillHandler) Resume(c *fiber.Ctx) error {
	bill, err := h.uc.Resume(c.Context(), c.Params("id"), GetActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toHeldBillResponse(bill))
}

// Delete godoc
// @Summary      Discard a held bill without resuming it
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "bill token"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/hold/{id} [delete]
func (h *HoldBillHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func toHeldBillResponse(b *entity.HeldBill) dto.HeldBillResponse {
	return dto.HeldBillResponse{
		ID:           b.ID,
		CreatedAt:    b.CreatedAt,
		CustomerName: b.CustomerName,
		Settings:     b.Settings,
		Lines:        b.Lines,
		HeldBy:       b.HeldBy,
	}
}
