package services

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lborres/agenda/core"
)

// TaskService orchestrates the task store for list/add/update/delete.
//
// Request bodies arrive as decoded JSON maps so that the add-path can apply
// its ordered, rule-specific type checks before any typed model exists.
type TaskService struct {
	tasks core.TaskStore
	log   *slog.Logger
}

func NewTaskService(tasks core.TaskStore, log *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, log: log}
}

// List returns every task under the given user. An unknown user yields an
// empty list, not an error; only a store failure is reported, and it maps to
// status 400 with the store's own message.
func (s *TaskService) List(ctx context.Context, userID string) ([]*core.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, userID)
	if err != nil {
		return nil, core.ProviderWithStatus(http.StatusBadRequest, "Failed to retrieve tasks", err)
	}
	if tasks == nil {
		tasks = []*core.Task{}
	}
	return tasks, nil
}

// Add validates the raw body and creates a task document under the user's
// sub-collection. The first failing rule short-circuits; nothing is written
// on a validation failure.
func (s *TaskService) Add(ctx context.Context, body map[string]any) (string, error) {
	task, verr := parseTask(body)
	if verr != nil {
		return "", verr
	}

	id, err := s.tasks.CreateTask(ctx, task.UserID, task)
	if err != nil {
		return "", core.Provider("Failed to add task", err)
	}

	s.log.Debug("task created", "userId", task.UserID, "taskId", id)
	return id, nil
}

// Update applies the supplied body as a partial update to an existing task.
// Unlike Add there is no per-field type validation; the body is written as
// given, userId included.
func (s *TaskService) Update(ctx context.Context, taskID string, body map[string]any) error {
	userID, verr := requireUserID(body["userId"])
	if verr != nil {
		return verr
	}

	exists, err := s.tasks.TaskExists(ctx, userID, taskID)
	if err != nil {
		return core.Provider("Failed to update task", err)
	}
	if !exists {
		return core.NotFound("Failed to update task", "task not found")
	}

	if err := s.tasks.UpdateTask(ctx, userID, taskID, body); err != nil {
		return core.Provider("Failed to update task", err)
	}

	s.log.Debug("task updated", "userId", userID, "taskId", taskID)
	return nil
}

// Delete removes an existing task. Deleting an already-deleted task returns
// not-found, never a second success.
func (s *TaskService) Delete(ctx context.Context, taskID, userID string) error {
	if _, verr := requireUserID(userID); verr != nil {
		return verr
	}

	exists, err := s.tasks.TaskExists(ctx, userID, taskID)
	if err != nil {
		return core.Provider("Failed to delete task", err)
	}
	if !exists {
		return core.NotFound("Failed to delete task", "task not found")
	}

	if err := s.tasks.DeleteTask(ctx, userID, taskID); err != nil {
		return core.Provider("Failed to delete task", err)
	}

	s.log.Debug("task deleted", "userId", userID, "taskId", taskID)
	return nil
}

// requireUserID checks the caller-supplied owner id: it must be a non-empty,
// non-blank string.
func requireUserID(v any) (string, *core.Error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", core.Validation("invalid userId")
	}
	return s, nil
}

// parseTask runs the ordered validation rules for task creation over the
// decoded JSON body and builds the document to store. Rules run in a fixed
// order and the first failure wins:
//
//  1. userId: non-empty string
//  2. name: non-empty string
//  3. description, date, startTime, endTime: string when present
//  4. completed, favorite: boolean (an omitted boolean is a failure)
//  5. tags: array of strings when present, defaults to empty
func parseTask(body map[string]any) (*core.Task, *core.Error) {
	userID, verr := requireUserID(body["userId"])
	if verr != nil {
		return nil, verr
	}

	name, ok := body["name"].(string)
	if !ok || name == "" {
		return nil, core.Validation("task name is required and must be a string")
	}

	optional := []struct {
		key, message string
	}{
		{"description", "description must be a string"},
		{"date", "date must be a string"},
		{"startTime", "startTime must be a string"},
		{"endTime", "endTime must be a string"},
	}
	strs := map[string]string{}
	for _, f := range optional {
		v, present := body[f.key]
		if !present || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, core.Validation(f.message)
		}
		strs[f.key] = s
	}

	completed, ok := body["completed"].(bool)
	if !ok {
		return nil, core.Validation("completed must be a boolean")
	}
	favorite, ok := body["favorite"].(bool)
	if !ok {
		return nil, core.Validation("favorite must be a boolean")
	}

	tags := []string{}
	if v, present := body["tags"]; present && v != nil {
		raw, ok := v.([]any)
		if !ok {
			return nil, core.Validation("tags must be an array")
		}
		for _, e := range raw {
			s, ok := e.(string)
			if !ok {
				return nil, core.Validation("tags must be an array of strings")
			}
			tags = append(tags, s)
		}
	}

	return &core.Task{
		Name:        name,
		Description: strs["description"],
		Date:        strs["date"],
		StartTime:   strs["startTime"],
		EndTime:     strs["endTime"],
		Completed:   completed,
		Favorite:    favorite,
		Tags:        tags,
		UserID:      userID,
	}, nil
}
