package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// TaskHandler handles the daily task list.
type TaskHandler struct {
	session  *services.Session
	tasks    *services.TaskService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(session *services.Session, tasks *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		session:  session,
		tasks:    tasks,
		validate: validator.New(),
		logger:   logger.OrNop(log),
	}
}

// RegisterRoutes registers the task routes with the Fiber app.
func (h *TaskHandler) RegisterRoutes(router fiber.Router) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.Get("/", h.HandleGetTasks)
	taskRoutes.Post("/", h.HandleAddTask)
	taskRoutes.Post("/generate", h.HandleGenerateTasks)
	taskRoutes.Patch("/:id/toggle", h.HandleToggleTask)
	taskRoutes.Delete("/completed", h.HandleClearCompleted)
}

// TaskRequest is the body of a new task.
type TaskRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// HandleGetTasks returns the task list.
func (h *TaskHandler) HandleGetTasks(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve tasks", err)
	}
	tasks, err := h.tasks.List(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve tasks", err)
	}
	return c.JSON(tasks)
}

// HandleAddTask adds a manual task.
func (h *TaskHandler) HandleAddTask(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not add task", err)
	}
	var req TaskRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not add task", err)
	}
	task, err := h.tasks.Add(c.UserContext(), profile.ID, req.Text)
	if err != nil {
		return respondError(c, h.logger, "Could not add task", err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleGenerateTasks asks the AI collaborator for today's tasks.
func (h *TaskHandler) HandleGenerateTasks(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not generate tasks", err)
	}
	tasks, err := h.tasks.Generate(c.UserContext(), profile)
	if err != nil {
		return respondError(c, h.logger, "Could not generate tasks", err)
	}
	return c.Status(fiber.StatusCreated).JSON(tasks)
}

// HandleToggleTask flips the completed flag of a task.
func (h *TaskHandler) HandleToggleTask(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not update task", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Could not update task", err)
	}
	task, err := h.tasks.Toggle(c.UserContext(), profile.ID, id)
	if err != nil {
		return respondError(c, h.logger, "Could not update task", err)
	}
	return c.JSON(task)
}

// HandleClearCompleted removes completed tasks.
func (h *TaskHandler) HandleClearCompleted(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not clear tasks", err)
	}
	removed, err := h.tasks.ClearCompleted(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not clear tasks", err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}
