package handlers

import (
	"errors"
	"strconv"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	resp, err := h.bookingService.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch bookings",
		})
	}
	return c.JSON(resp)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid booking ID",
		})
	}

	resp, err := h.bookingService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch booking",
		})
	}
	return c.JSON(resp)
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.bookingService.Create(&req)
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BookingHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid booking ID",
		})
	}

	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.bookingService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return bookingError(c, err)
	}
	return c.JSON(resp)
}

func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid booking ID",
		})
	}

	if err := h.bookingService.Delete(id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete booking",
		})
	}
	return c.JSON(dto.DeleteResponse{Message: "Booking deleted"})
}

// bookingError maps validation and FK-resolution failures to 400; anything
// else is a storage fault.
func bookingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrCourtRequired) ||
		errors.Is(err, services.ErrClientRequired) ||
		errors.Is(err, services.ErrStartTimeRequired) ||
		errors.Is(err, services.ErrInvalidDuration) ||
		errors.Is(err, services.ErrInvalidStatus) ||
		errors.Is(err, services.ErrUnknownCourt) ||
		errors.Is(err, services.ErrUnknownClient) ||
		errors.Is(err, services.ErrUnknownCoach) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to save booking",
	})
}
