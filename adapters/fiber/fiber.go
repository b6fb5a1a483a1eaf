// Package fiber adapts the auth and task services to an HTTP surface on
// gofiber/fiber v3.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/agenda/services"
)

type Adapter struct {
	app   *fiber.App
	auth  *services.AuthService
	tasks *services.TaskService
}

func New(app *fiber.App, auth *services.AuthService, tasks *services.TaskService) *Adapter {
	return &Adapter{app: app, auth: auth, tasks: tasks}
}

func (a *Adapter) RegisterRoutes() {
	auth := a.app.Group("/auth")
	auth.Get("/", a.healthcheck)
	auth.Post("/register", a.register)
	auth.Post("/login", a.login)
	auth.Post("/logout", a.logout)
	auth.Put("/update/:uid", a.updateProfile)
	auth.Get("/user/:uid", a.profile)

	// Task routes sit behind the bearer-token middleware.
	tasks := a.app.Group("/tasks", a.requireAuth)
	tasks.Get("/", a.listTasks)
	tasks.Post("/", a.addTask)
	tasks.Put("/:taskId", a.updateTask)
	tasks.Delete("/:taskId", a.deleteTask)
}

func (a *Adapter) healthcheck(c fiber.Ctx) error {
	return c.SendString("auth API is up")
}
