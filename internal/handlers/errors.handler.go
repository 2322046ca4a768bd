package handlers

import (
	"errors"

	"savvy/internal/jobstore"
	"savvy/internal/services"

	cleanersController "savvy/internal/controllers/cleaners"
	jobsController "savvy/internal/controllers/jobs"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

var (
	badRequestErrors = []error{
		jobstore.ErrInvalidAssignment,
		jobstore.ErrInvalidSchedule,
		jobstore.ErrInvalidStatus,
		services.ErrNoCleaner,
		services.ErrEmptyMessage,
		services.ErrUnknownTemplate,
		jobsController.ErrNoRecipients,
	}
	notFoundErrors = []error{
		jobstore.ErrJobNotFound,
		cleanersController.ErrCleanerNotFound,
	}
)

func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fiber.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// respondError reports domain errors to the caller as is and hides
// anything else behind the fallback message.
func respondError(c *fiber.Ctx, log logger.Logger, err error, fallback string) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Er(fallback, err)
		return c.Status(status).JSON(fiber.Map{
			"error": fallback,
		})
	}

	log.Warn(fallback, "error", err, "status", status)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
