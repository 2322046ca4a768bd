package handlers

import (
	"savvy/internal/app"

	jobsController "savvy/internal/controllers/jobs"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AssignmentsHandler struct {
	Handler
	jobsController jobsController.JobsControllerInterface
}

func NewAssignmentsHandler(app app.App, router fiber.Router) *AssignmentsHandler {
	log := logger.New("handlers").File("assignments_handler")
	return &AssignmentsHandler{
		jobsController: app.Controllers.Jobs,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AssignmentsHandler) Register() {
	h.router.Post("/assignments", h.assignJobs)
}

// assignJobs assigns the listed jobs, or the current selection when no ids
// are given.
func (h *AssignmentsHandler) assignJobs(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("assignments_handler").Function("assignJobs")

	var req jobsController.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	result, err := h.jobsController.AssignJobs(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err, "Failed to assign jobs")
	}

	return c.JSON(result)
}
