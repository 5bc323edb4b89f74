package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/internal/application/dto"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// StockHandler serves ledger reads and the reference lookups the dashboard
// needs. Pure queries, no mutation.
type StockHandler struct {
	stock      repository.StockRepository
	quarantine repository.QuarantineRepository
	items      repository.ItemRepository
	locations  repository.LocationRepository
}

// NewStockHandler builds the handler on pool-bound repositories.
func NewStockHandler(
	stock repository.StockRepository,
	quarantine repository.QuarantineRepository,
	items repository.ItemRepository,
	locations repository.LocationRepository,
) *StockHandler {
	return &StockHandler{stock: stock, quarantine: quarantine, items: items, locations: locations}
}

// Stock godoc
// @Summary      Current sellable stock for a location
// @Tags         stock
// @Produce      json
// @Param        locationId  query  string  true  "location id"
// @Success      200  {array}  map[string]interface{}
// @Router       /stock [get]
func (h *StockHandler) Stock(c *fiber.Ctx) error {
	return h.listLedger(c, h.stock.ListByLocation)
}

// Quarantine godoc
// @Summary      Quarantined (returned, uninspected) stock for a location
// @Tags         stock
// @Produce      json
// @Param        locationId  query  string  true  "location id"
// @Success      200  {array}  map[string]interface{}
// @Router       /stock/quarantine [get]
func (h *StockHandler) Quarantine(c *fiber.Ctx) error {
	return h.listLedger(c, h.quarantine.ListByLocation)
}

func (h *StockHandler) listLedger(c *fiber.Ctx, list func(string) ([]*entity.StockView, error)) error {
	locationID := c.Query("locationId")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "locationId is required"})
	}
	views, err := list(locationID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(views))
	for _, v := range views {
		out = append(out, fiber.Map{
			"locationId":   v.LocationID,
			"locationName": v.LocationName,
			"itemId":       v.ItemID,
			"itemName":     v.ItemName,
			"stockNumber":  v.ItemStockNumber,
			"qty":          v.Quantity,
			"updatedAt":    v.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Locations godoc
// @Summary      List locations
// @Tags         reference
// @Produce      json
// @Success      200  {array}  map[string]string
// @Router       /locations [get]
func (h *StockHandler) Locations(c *fiber.Ctx) error {
	locs, err := h.locations.List()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(locs))
	for _, l := range locs {
		out = append(out, fiber.Map{"id": l.ID, "code": l.Code, "name": l.Name, "kind": l.Kind})
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      List items
// @Tags         reference
// @Produce      json
// @Param        limit   query  int  false  "page size (default 100)"
// @Param        offset  query  int  false  "page offset"
// @Success      200  {array}  map[string]interface{}
// @Router       /items [get]
func (h *StockHandler) Items(c *fiber.Ctx) error {
	items, err := h.items.List(c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(items))
	for _, it := range items {
		out = append(out, fiber.Map{
			"id":          it.ID,
			"code":        it.Code,
			"stockNumber": it.StockNumber,
			"name":        it.Name,
			"unitPrice":   it.UnitPrice,
		})
	}
	return c.JSON(out)
}
