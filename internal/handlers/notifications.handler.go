package handlers

import (
	"savvy/internal/app"

	jobsController "savvy/internal/controllers/jobs"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type NotificationsHandler struct {
	Handler
	jobsController jobsController.JobsControllerInterface
}

func NewNotificationsHandler(app app.App, router fiber.Router) *NotificationsHandler {
	log := logger.New("handlers").File("notifications_handler")
	return &NotificationsHandler{
		jobsController: app.Controllers.Jobs,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationsHandler) Register() {
	notifications := h.router.Group("/notifications")

	notifications.Post("/bulk", h.sendBulkMessage)
}

func (h *NotificationsHandler) sendBulkMessage(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("notifications_handler").Function("sendBulkMessage")

	var req jobsController.BulkMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	result, err := h.jobsController.SendBulkMessage(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err, "Failed to send bulk message")
	}

	return c.JSON(result)
}
