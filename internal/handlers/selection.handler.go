package handlers

import (
	"savvy/internal/app"

	jobsController "savvy/internal/controllers/jobs"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type SelectionHandler struct {
	Handler
	jobsController jobsController.JobsControllerInterface
}

type toggleSelectionRequest struct {
	Selected bool `json:"selected"`
}

func NewSelectionHandler(app app.App, router fiber.Router) *SelectionHandler {
	log := logger.New("handlers").File("selection_handler")
	return &SelectionHandler{
		jobsController: app.Controllers.Jobs,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SelectionHandler) Register() {
	selection := h.router.Group("/selection")

	selection.Get("", h.getSelection)
	selection.Put("/:id", h.toggleSelection)
	selection.Delete("", h.clearSelection)
}

func (h *SelectionHandler) getSelection(c *fiber.Ctx) error {
	return c.JSON(h.jobsController.GetSelection(c.UserContext()))
}

func (h *SelectionHandler) toggleSelection(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("selection_handler").Function("toggleSelection")

	jobID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req toggleSelectionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	return c.JSON(h.jobsController.ToggleSelection(c.UserContext(), jobID, req.Selected))
}

func (h *SelectionHandler) clearSelection(c *fiber.Ctx) error {
	return c.JSON(h.jobsController.ClearSelection(c.UserContext()))
}
