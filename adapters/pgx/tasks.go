package pgx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lborres/agenda/core"
)

// taskColumns maps JSON field names to their columns for partial updates.
// userId is absent on purpose: the storage path segment is authoritative for
// ownership and is never rewritten.
var taskColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"date":        "date",
	"startTime":   "start_time",
	"endTime":     "end_time",
	"completed":   "completed",
	"favorite":    "favorite",
	"tags":        "tags",
}

func (a *Adapter) ListTasks(ctx context.Context, userID string) ([]*core.Task, error) {
	q := `SELECT id, name, description, date, start_time, end_time, completed, favorite, tags, user_id
	      FROM tasks WHERE user_id = $1`

	rows, err := a.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*core.Task
	for rows.Next() {
		t := &core.Task{}
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Date, &t.StartTime, &t.EndTime,
			&t.Completed, &t.Favorite, &t.Tags, &t.UserID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (a *Adapter) CreateTask(ctx context.Context, userID string, t *core.Task) (string, error) {
	id := uuid.NewString()
	q := `INSERT INTO tasks (id, user_id, name, description, date, start_time, end_time, completed, favorite, tags)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := a.pool.Exec(ctx, q, id, userID, t.Name, t.Description, t.Date, t.StartTime, t.EndTime,
		t.Completed, t.Favorite, t.Tags)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (a *Adapter) TaskExists(ctx context.Context, userID, taskID string) (bool, error) {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)`
	if err := a.pool.QueryRow(ctx, q, taskID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (a *Adapter) UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) error {
	sets := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+2)
	for field, value := range updates {
		col, ok := taskColumns[field]
		if !ok {
			continue
		}
		if field == "tags" {
			value = toStringSlice(value)
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return errors.New("no updatable fields supplied")
	}

	args = append(args, taskID, userID)
	q := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	tag, err := a.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func (a *Adapter) DeleteTask(ctx context.Context, userID, taskID string) error {
	_, err := a.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	return err
}

// toStringSlice coerces a decoded JSON array into []string for the text[]
// column. Non-string elements are dropped.
func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
