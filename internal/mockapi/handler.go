package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/go-todo-client/internal/httputil"
	"github.com/redmonkez12/go-todo-client/internal/logging"
	"github.com/redmonkez12/go-todo-client/internal/task"
	"github.com/redmonkez12/go-todo-client/internal/user"
)

// Token is the auth response body
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /auth/register
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"})
		return
	}
	if fieldErrs := requireCredentials(req.Email, req.Password); len(fieldErrs) > 0 {
		httputil.RespondValidationError(w, fieldErrs...)
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err.Error())
		httputil.RespondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	newUser, err := a.users.Create(r.Context(), req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondError(w, "A user with this email already exists", http.StatusConflict)
			return
		}
		logger.Error("registration failed", "error", err.Error())
		httputil.RespondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("user registered", "user_id", newUser.ID)
	a.respondToken(w, newUser)
}

// Login handles POST /auth/login with form-encoded credentials
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body"}, Msg: "invalid form body", Type: "value_error"})
		return
	}
	email, password := r.PostForm.Get("email"), r.PostForm.Get("password")
	if fieldErrs := requireCredentials(email, password); len(fieldErrs) > 0 {
		httputil.RespondValidationError(w, fieldErrs...)
		return
	}

	u, err := a.users.GetByEmail(r.Context(), email)
	if err != nil || !verifyPassword(u.PasswordHash, password) {
		logger.Warn("login failed: invalid credentials")
		w.Header().Set("WWW-Authenticate", "Bearer")
		httputil.RespondError(w, "Incorrect email or password", http.StatusUnauthorized)
		return
	}

	logger.Info("user logged in", "user_id", u.ID)
	a.respondToken(w, u)
}

// ListTasks handles GET /users/tasks
func (a *API) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	tasks, err := a.tasks.List(r.Context(), userID)
	if err != nil {
		a.respondTaskError(w, r, err)
		return
	}
	httputil.RespondJSON(w, tasks, http.StatusOK)
}

// CreateTask handles POST /users/tasks
func (a *API) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	var req task.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"})
		return
	}
	if _, err := task.ValidateTitle(req.Title); err != nil {
		httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body", "title"}, Msg: err.Error(), Type: "value_error"})
		return
	}
	if req.Description != nil {
		if _, err := task.ValidateDescription(*req.Description); err != nil {
			httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body", "description"}, Msg: err.Error(), Type: "value_error"})
			return
		}
	}

	created, err := a.tasks.Create(r.Context(), userID, req)
	if err != nil {
		a.respondTaskError(w, r, err)
		return
	}
	httputil.RespondJSON(w, created, http.StatusOK)
}

// GetTask handles GET /users/tasks/{taskID}
func (a *API) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	t, err := a.tasks.Get(r.Context(), userID, chi.URLParam(r, "taskID"))
	if err != nil {
		a.respondTaskError(w, r, err)
		return
	}
	httputil.RespondJSON(w, t, http.StatusOK)
}

// UpdateTask handles PUT /users/tasks/{taskID}. Only fields present in the body change.
func (a *API) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	var u task.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"})
		return
	}
	if u.Title != nil {
		if _, err := task.ValidateTitle(*u.Title); err != nil {
			httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body", "title"}, Msg: err.Error(), Type: "value_error"})
			return
		}
	}
	if u.Description != nil {
		if _, err := task.ValidateDescription(*u.Description); err != nil {
			httputil.RespondValidationError(w, httputil.FieldError{Loc: []string{"body", "description"}, Msg: err.Error(), Type: "value_error"})
			return
		}
	}

	updated, err := a.tasks.Update(r.Context(), userID, chi.URLParam(r, "taskID"), u)
	if err != nil {
		a.respondTaskError(w, r, err)
		return
	}
	httputil.RespondJSON(w, updated, http.StatusOK)
}

// DeleteTask handles DELETE /users/tasks/{taskID}
func (a *API) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	if err := a.tasks.Delete(r.Context(), userID, chi.URLParam(r, "taskID")); err != nil {
		a.respondTaskError(w, r, err)
		return
	}
	httputil.RespondJSON(w, map[string]string{"message": "Task deleted successfully"}, http.StatusOK)
}

// ToggleTask handles PATCH /users/tasks/{taskID}/toggle
func (a *API) ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	t, err := a.tasks.Toggle(r.Context(), userID, chi.URLParam(r, "taskID"))
	if err != nil {
		a.respondTaskError(w, r, err)
		return
	}
	httputil.RespondJSON(w, t, http.StatusOK)
}

func (a *API) respondToken(w http.ResponseWriter, u *user.User) {
	httputil.RespondJSON(w, Token{
		AccessToken: a.tokens.CreateToken(u.ID, u.Email, a.tokenDuration),
		TokenType:   "bearer",
	}, http.StatusOK)
}

func (a *API) respondTaskError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, task.ErrNotFound) {
		httputil.RespondError(w, "Task not found", http.StatusNotFound)
		return
	}
	logging.GetLoggerFromContext(r.Context()).Error("task operation failed", "error", err.Error())
	httputil.RespondError(w, "Internal server error", http.StatusInternalServerError)
}

// requireCredentials reports a missing-field error for each empty credential
func requireCredentials(email, password string) []httputil.FieldError {
	var errs []httputil.FieldError
	if email == "" {
		errs = append(errs, httputil.FieldError{Loc: []string{"body", "email"}, Msg: "field required", Type: "value_error.missing"})
	}
	if password == "" {
		errs = append(errs, httputil.FieldError{Loc: []string{"body", "password"}, Msg: "field required", Type: "value_error.missing"})
	}
	return errs
}
