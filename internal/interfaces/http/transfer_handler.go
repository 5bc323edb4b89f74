package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/internal/application/dto"
	"github.com/okendra/retailops-api/internal/application/transfer"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// TransferHandler serves the transfer request and state machine endpoints.
type TransferHandler struct {
	create     *transfer.CreateUseCase
	transition *transfer.TransitionUseCase
	query      *transfer.QueryUseCase
}

// NewTransferHandler builds the handler.
func NewTransferHandler(
	create *transfer.CreateUseCase,
	transition *transfer.TransitionUseCase,
	query *transfer.QueryUseCase,
) *TransferHandler {
	return &TransferHandler{create: create, transition: transition, query: query}
}

// Create godoc
// @Summary      Create a transfer request
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "toLocationId, items[{itemId|itemCode, qty}]; fromLocationId empty for external supply"
// @Success      201   {object}  dto.CreateTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /transfers/requests [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	lines := make([]transfer.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, transfer.LineInput{
			ItemID: it.ItemID, ItemCode: it.ItemCode, StockNumber: it.StockNumber, Quantity: it.Qty,
		})
	}
	res, err := h.create.Create(c.Context(), transfer.CreateInput{
		SourceLocationID: in.FromLocationID,
		DestLocationID:   in.ToLocationID,
		Priority:         in.Priority,
		Note:             in.Note,
		Lines:            lines,
		Actor: transfer.Actor{
			UserID:      GetActorID(c),
			DisplayName: GetActorName(c),
			LocationID:  GetActorLocation(c),
		},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateTransferResponse{
		ID: res.ID, Code: res.Code, ItemCount: res.ItemCount, Status: entity.TransferPending,
	})
}

// ReplaceLines godoc
// @Summary      Replace all lines of a pending transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "transfer id"
// @Param        body  body  dto.ReplaceLinesRequest  true  "replacement line set"
// @Success      200   {object}  dto.CreateTransferResponse
// @Failure      400   {object}  dto.ErrorResponse  "not pending, or invalid lines"
// @Router       /transfers/requests/{id}/lines [put]
func (h *TransferHandler) ReplaceLines(c *fiber.Ctx) error {
	var in dto.ReplaceLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	lines := make([]transfer.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, transfer.LineInput{
			ItemID: it.ItemID, ItemCode: it.ItemCode, StockNumber: it.StockNumber, Quantity: it.Qty,
		})
	}
	count, err := h.create.ReplaceLines(c.Context(), c.Params("id"), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "itemCount": count})
}

// Transition godoc
// @Summary      Advance a transfer through the state machine
// @Description  Pending->Shipped (sender), Shipped->Received/Confirmed (receiver),
//	any non-terminal -> Rejected (either party). Confirm credits the
//	destination stock ledger exactly once.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "transfer id"
// @Param        body  body  dto.TransitionRequest  true  "status, actorLocationId, discrepancyNote"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /transfers/requests/{id} [put]
func (h *TransferHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed JSON body"})
	}
	actorLocation := in.ActorLocationID
	if actorLocation == "" {
		actorLocation = GetActorLocation(c)
	}
	t, err := h.transition.Transition(c.Context(), transfer.TransitionInput{
		TransferID:      c.Params("id"),
		To:              in.Status,
		ActorLocationID: actorLocation,
		DiscrepancyNote: in.DiscrepancyNote,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": t.ID, "status": t.Status})
}

// List godoc
// @Summary      List transfer requests
// @Tags         transfers
// @Produce      json
// @Param        status      query  string  false  "filter by status"
// @Param        toLocationId    query  string  false  "filter by destination"
// @Param        fromLocationId  query  string  false  "filter by source"
// @Success      200  {array}  dto.TransferResponse
// @Router       /transfers/requests [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	views, err := h.query.List(c.Context(), repository.TransferFilter{
		Status:         c.Query("status"),
		DestLocationID: c.Query("toLocationId"),
		SourceID:       c.Query("fromLocationId"),
		Limit:          c.QueryInt("limit"),
		Offset:         c.QueryInt("offset"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponses(views))
}

// Get godoc
// @Summary      Get one transfer by id or code
// @Tags         transfers
// @Produce      json
// @Param        idOrCode  path  string  true  "transfer id or human-readable code"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /transfers/requests/{idOrCode} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	view, err := h.query.Get(c.Context(), c.Params("idOrCode"))
	if err != nil {
		return respondError(c, err)
	}
	if view == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transfer not found"})
	}
	return c.JSON(toTransferResponse(view))
}

// Inward godoc
// @Summary      List transfers shipping into a location
// @Tags         transfers
// @Produce      json
// @Param        locationId  query  string  true   "destination location"
// @Param        status      query  string  false  "filter by status"
// @Success      200  {array}  dto.TransferResponse
// @Router       /transfers/inward [get]
func (h *TransferHandler) Inward(c *fiber.Ctx) error {
	locationID := c.Query("locationId")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "locationId is required"})
	}
	views, err := h.query.Inward(c.Context(), locationID, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponses(views))
}

func toTransferResponses(views []*entity.TransferView) []dto.TransferResponse {
	out := make([]dto.TransferResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTransferResponse(v))
	}
	return out
}

func toTransferResponse(v *entity.TransferView) dto.TransferResponse {
	items := make([]dto.TransferLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, dto.TransferLineResponse{
			ItemID:          l.ItemID,
			ItemName:        l.ItemName,
			ItemStockNumber: l.ItemStockNumber,
			Qty:             l.Quantity,
		})
	}
	return dto.TransferResponse{
		ID:              v.ID,
		Code:            v.Code,
		FromLocationID:  v.SourceLocationID,
		FromName:        v.SourceName,
		ToLocationID:    v.DestLocationID,
		ToName:          v.DestName,
		Priority:        v.Priority,
		Note:            v.Note,
		Status:          v.Status,
		CreatedBy:       v.CreatedBy,
		CreatedByName:   v.CreatedByName,
		CreatedAt:       v.CreatedAt,
		DispatchedAt:    v.DispatchedAt,
		AcceptedAt:      v.AcceptedAt,
		DiscrepancyNote: v.DiscrepancyNote,
		Items:           items,
	}
}
