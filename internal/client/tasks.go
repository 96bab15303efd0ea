package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/redmonkez12/go-todo-client/internal/task"
)

// GetTasks lists the user's tasks in the order the server returns them
func (c *Client) GetTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.sendTask(ctx, "get_tasks", msgFetchTasks, http.MethodGet, "/users/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// GetTask fetches a single task
func (c *Client) GetTask(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	if err := c.sendTask(ctx, "get_task", msgFetchTask, http.MethodGet, taskPath(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask validates the title locally, then creates an incomplete task.
// An empty description is left out of the request.
func (c *Client) CreateTask(ctx context.Context, title, description string) (*task.Task, error) {
	const op = "create_task"

	title, err := task.ValidateTitle(title)
	if err != nil {
		return nil, validationError(op, err)
	}
	description, err = task.ValidateDescription(description)
	if err != nil {
		return nil, validationError(op, err)
	}

	payload := task.CreateRequest{Title: title, Completed: false}
	if description != "" {
		payload.Description = &description
	}

	var t task.Task
	if err := c.sendTask(ctx, op, msgCreateTask, http.MethodPost, "/users/tasks", payload, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask sends only the fields set in u and returns the server's task
func (c *Client) UpdateTask(ctx context.Context, id string, u task.Update) (*task.Task, error) {
	const op = "update_task"

	u, err := task.NormalizeUpdate(u)
	if err != nil {
		return nil, validationError(op, err)
	}

	var t task.Task
	if err := c.sendTask(ctx, op, msgUpdateTask, http.MethodPut, taskPath(id), u, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.sendTask(ctx, "delete_task", msgDeleteTask, http.MethodDelete, taskPath(id), nil, nil)
}

// ToggleTask asks the server to flip the task's completion flag
func (c *Client) ToggleTask(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	if err := c.sendTask(ctx, "toggle_task", msgToggleTask, http.MethodPatch, taskPath(id, "toggle"), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// sendTask performs an authenticated task request. Any non-success status
// yields message; the response body is discarded. out may be nil.
func (c *Client) sendTask(ctx context.Context, op, message, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	c.authorize(ctx, req)

	resp, cancel, err := c.do(req)
	if err != nil {
		return networkError(op, message, err)
	}
	defer cancel()
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return statusError(op, resp.StatusCode, message)
	}

	if out != nil {
		if err := decodeJSON(resp.Body, out); err != nil {
			return decodeError(op, resp.StatusCode, message, err)
		}
	}
	return nil
}
