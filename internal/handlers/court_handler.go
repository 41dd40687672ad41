package handlers

import (
	"errors"
	"strconv"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CourtHandler struct {
	courtService   *services.CourtService
	catalogService *services.CatalogService
}

func NewCourtHandler(courtService *services.CourtService, catalogService *services.CatalogService) *CourtHandler {
	return &CourtHandler{courtService: courtService, catalogService: catalogService}
}

func (h *CourtHandler) List(c *fiber.Ctx) error {
	courts, err := h.courtService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch courts",
		})
	}
	return c.JSON(courts)
}

func (h *CourtHandler) Create(c *fiber.Ctx) error {
	var req dto.CourtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	court, err := h.courtService.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateCourtResponse{
		CourtID: court.ID,
		Message: "Court created",
	})
}

func (h *CourtHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid court ID",
		})
	}

	var req dto.CourtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	court, err := h.courtService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrCourtNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update court",
		})
	}
	return c.JSON(court)
}

// Options backs the three searchable selects of the booking form.
func (h *CourtHandler) Options(c *fiber.Ctx) error {
	resp, err := h.catalogService.Options()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch options",
		})
	}
	return c.JSON(resp)
}
