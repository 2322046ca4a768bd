package handlers

import (
	"strconv"

	"savvy/internal/app"
	"savvy/internal/jobstore"

	jobsController "savvy/internal/controllers/jobs"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type JobsHandler struct {
	Handler
	jobsController jobsController.JobsControllerInterface
}

func NewJobsHandler(app app.App, router fiber.Router) *JobsHandler {
	log := logger.New("handlers").File("jobs_handler")
	return &JobsHandler{
		jobsController: app.Controllers.Jobs,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *JobsHandler) Register() {
	jobs := h.router.Group("/jobs")

	jobs.Get("", h.listJobs)
	jobs.Get("/stats", h.getStats)
	jobs.Get("/locations", h.getLocations)
	jobs.Post("/print", h.printJobs)
	jobs.Get("/:id", h.getJob)
	jobs.Patch("/:id/guests", h.toggleGuestStatus)
	jobs.Put("/:id/schedule", h.scheduleNotification)
	jobs.Post("/:id/notify", h.notifyCleaner)
}

func (h *JobsHandler) handlerLog(c *fiber.Ctx, function string) logger.Logger {
	return logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("jobs_handler").
		Function(function)
}

// parseCriteria reads the list filters from the query string. Status is
// validated by the store.
func parseCriteria(c *fiber.Ctx) (jobstore.Criteria, error) {
	criteria := jobstore.Criteria{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Date:     c.Query("date"),
		Status:   jobstore.StatusFilter(c.Query("status")),
	}

	if raw := c.Query("cleanerId"); raw != "" {
		cleanerID, err := strconv.Atoi(raw)
		if err != nil {
			return jobstore.Criteria{}, err
		}
		criteria.CleanerID = &cleanerID
	}

	return criteria, nil
}

func (h *JobsHandler) listJobs(c *fiber.Ctx) error {
	log := h.handlerLog(c, "listJobs")

	criteria, err := parseCriteria(c)
	if err != nil {
		log.Warn("Invalid cleanerId", "error", err)
		return badRequest(c, "Invalid cleanerId")
	}

	jobs, err := h.jobsController.ListJobs(c.UserContext(), criteria)
	if err != nil {
		return respondError(c, log, err, "Failed to list jobs")
	}

	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (h *JobsHandler) getStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stats": h.jobsController.GetStats(c.UserContext()),
	})
}

func (h *JobsHandler) getLocations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"locations": h.jobsController.GetLocations(c.UserContext()),
	})
}

func (h *JobsHandler) getJob(c *fiber.Ctx) error {
	log := h.handlerLog(c, "getJob")

	jobID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	job, err := h.jobsController.GetJob(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, log, err, "Failed to retrieve job")
	}

	return c.JSON(fiber.Map{
		"job": job,
	})
}

func (h *JobsHandler) toggleGuestStatus(c *fiber.Ctx) error {
	log := h.handlerLog(c, "toggleGuestStatus")

	jobID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	job, err := h.jobsController.ToggleGuestStatus(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, log, err, "Failed to toggle guest status")
	}

	return c.JSON(fiber.Map{
		"job": job,
	})
}

func (h *JobsHandler) scheduleNotification(c *fiber.Ctx) error {
	log := h.handlerLog(c, "scheduleNotification")

	jobID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req jobsController.ScheduleNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	result, err := h.jobsController.ScheduleNotification(c.UserContext(), jobID, req)
	if err != nil {
		return respondError(c, log, err, "Failed to schedule notification")
	}

	return c.JSON(result)
}

func (h *JobsHandler) notifyCleaner(c *fiber.Ctx) error {
	log := h.handlerLog(c, "notifyCleaner")

	jobID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req jobsController.NotifyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Warn("Invalid request body", "error", err)
			return badRequest(c, "Invalid request body")
		}
	}

	result, err := h.jobsController.NotifyCleaner(c.UserContext(), jobID, req)
	if err != nil {
		return respondError(c, log, err, "Failed to notify cleaner")
	}

	return c.JSON(result)
}

func (h *JobsHandler) printJobs(c *fiber.Ctx) error {
	log := h.handlerLog(c, "printJobs")

	var req jobsController.PrintRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Warn("Invalid request body", "error", err)
			return badRequest(c, "Invalid request body")
		}
	}

	return c.JSON(h.jobsController.PrintJobs(c.UserContext(), req))
}
