package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/agenda/core"
)

func (a *Adapter) listTasks(c fiber.Ctx) error {
	userID := c.Query("userId")

	tasks, err := a.tasks.List(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"title":   "Tasks retrieved",
		"message": "The user's tasks were retrieved successfully.",
		"tasks":   tasks,
	})
}

func (a *Adapter) addTask(c fiber.Ctx) error {
	body := map[string]any{}
	if err := c.Bind().Body(&body); err != nil {
		return core.Validation("invalid request body")
	}

	taskID, err := a.tasks.Add(c.Context(), body)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"title":   "Task created",
		"message": "The task was created successfully.",
		"taskId":  taskID,
	})
}

func (a *Adapter) updateTask(c fiber.Ctx) error {
	taskID := c.Params("taskId")

	body := map[string]any{}
	if err := c.Bind().Body(&body); err != nil {
		return core.Validation("invalid request body")
	}

	if err := a.tasks.Update(c.Context(), taskID, body); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"title":   "Task updated",
		"message": "The task was updated successfully.",
	})
}

func (a *Adapter) deleteTask(c fiber.Ctx) error {
	taskID := c.Params("taskId")
	userID := c.Query("userId")

	if err := a.tasks.Delete(c.Context(), taskID, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"title":   "Task deleted",
		"message": "The task was deleted successfully.",
	})
}
