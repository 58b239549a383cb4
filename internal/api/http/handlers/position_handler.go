package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-service/internal/api/dto"
	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/repository"
	"github.com/spec-kit/admin-service/internal/service"
)

// PositionHandler exposes the position CRUD endpoints.
type PositionHandler struct {
	positions *service.PositionService
}

// NewPositionHandler constructs handler.
func NewPositionHandler(positions *service.PositionService) *PositionHandler {
	return &PositionHandler{positions: positions}
}

// Create handles POST /v1/positions.
func (h *PositionHandler) Create(c *fiber.Ctx) error {
	var req dto.PositionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "postname required")
	}

	pos := &domain.Position{
		Name:   req.Name,
		Level:  req.Level,
		Sort:   req.Sort,
		Remark: req.Remark,
	}
	if err := h.positions.Create(c.UserContext(), pos); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": positionResponse(pos)})
}

// List handles GET /v1/positions.
func (h *PositionHandler) List(c *fiber.Ctx) error {
	offset, limit := pageWindow(c)
	filters := repository.PositionFilters{
		Name:   c.Query("postname"),
		Offset: offset,
		Limit:  limit,
	}

	result, err := h.positions.List(c.UserContext(), filters)
	if err != nil {
		return err
	}

	list := make([]dto.PositionResponse, 0, len(result.List))
	for i := range result.List {
		list = append(list, positionResponse(&result.List[i]))
	}
	return c.JSON(fiber.Map{"data": dto.PositionListResponse{Total: result.Total, List: list}})
}

// Get handles GET /v1/positions/:id.
func (h *PositionHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid position id")
	}
	pos, err := h.positions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": positionResponse(pos)})
}

// Update handles POST /v1/positions/update.
func (h *PositionHandler) Update(c *fiber.Ctx) error {
	var req struct {
		dto.PositionRequest
		PositionID int64 `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PositionID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "post_id required")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "postname required")
	}

	pos := &domain.Position{
		ID:     req.PositionID,
		Name:   req.Name,
		Level:  req.Level,
		Sort:   req.Sort,
		Remark: req.Remark,
	}
	if err := h.positions.Update(c.UserContext(), pos); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "updated"}})
}

// Delete handles DELETE /v1/positions/:id.
func (h *PositionHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid position id")
	}
	if err := h.positions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// SelectList handles GET /v1/positions/select_list.
func (h *PositionHandler) SelectList(c *fiber.Ctx) error {
	list, err := h.positions.SelectList(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.PositionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, positionResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func positionResponse(pos *domain.Position) dto.PositionResponse {
	return dto.PositionResponse{
		PositionID: pos.ID,
		Name:       pos.Name,
		Level:      pos.Level,
		Sort:       pos.Sort,
		Remark:     pos.Remark,
		CreatedAt:  pos.CreatedAt.Format(timeLayout),
	}
}
