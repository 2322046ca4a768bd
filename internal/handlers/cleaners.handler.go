package handlers

import (
	"strconv"

	"savvy/internal/app"

	cleanersController "savvy/internal/controllers/cleaners"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type CleanersHandler struct {
	Handler
	cleanersController cleanersController.CleanersControllerInterface
}

func NewCleanersHandler(app app.App, router fiber.Router) *CleanersHandler {
	log := logger.New("handlers").File("cleaners_handler")
	return &CleanersHandler{
		cleanersController: app.Controllers.Cleaners,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CleanersHandler) Register() {
	cleaners := h.router.Group("/cleaners")

	cleaners.Get("", h.listCleaners)
	cleaners.Get("/:id", h.getCleaner)
}

func (h *CleanersHandler) listCleaners(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("cleaners_handler").Function("listCleaners")

	var req cleanersController.ListCleanersRequest

	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("Invalid available filter", "value", raw)
			return badRequest(c, "Invalid available filter")
		}
		req.Available = &available
	}

	if raw := c.Query("located"); raw != "" {
		located, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("Invalid located filter", "value", raw)
			return badRequest(c, "Invalid located filter")
		}
		req.Located = located
	}

	cleaners := h.cleanersController.ListCleaners(c.UserContext(), req)
	return c.JSON(fiber.Map{
		"cleaners": cleaners,
		"count":    len(cleaners),
	})
}

func (h *CleanersHandler) getCleaner(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("cleaners_handler").Function("getCleaner")

	cleanerID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid cleaner ID")
	}

	cleaner, err := h.cleanersController.GetCleaner(c.UserContext(), cleanerID)
	if err != nil {
		return respondError(c, log, err, "Failed to retrieve cleaner")
	}

	return c.JSON(fiber.Map{
		"cleaner": cleaner,
	})
}
