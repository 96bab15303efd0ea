package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/redmonkez12/go-todo-client/internal/client"
	"github.com/redmonkez12/go-todo-client/internal/mockapi"
	"github.com/redmonkez12/go-todo-client/internal/session"
	"github.com/redmonkez12/go-todo-client/internal/task"
)

func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()
	api, err := mockapi.New(mockapi.Options{})
	if err != nil {
		t.Fatalf("new mock api: %v", err)
	}
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return srv
}

// useFileSession points the CLI at srv with a session file in a temp dir
func useFileSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session")
	t.Setenv("TODO_API_URL", srv.URL)
	t.Setenv("SESSION_STORE", "file")
	t.Setenv("SESSION_FILE", path)
	t.Setenv("SESSION_PASSPHRASE", "")
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("todo %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// listTasks reads the tasks directly with the session the CLI stored
func listTasks(t *testing.T, srv *httptest.Server, sessionPath string) []task.Task {
	t.Helper()
	c := client.New(srv.URL, session.New(session.NewFileStore(sessionPath, "")))
	tasks, err := c.GetTasks(context.Background())
	if err != nil {
		t.Fatalf("get tasks: %v", err)
	}
	return tasks
}

func TestCLITaskFlow(t *testing.T) {
	srv := newMockServer(t)
	sessionPath := useFileSession(t, srv)

	out := mustRun(t, "register", "--email", "a@example.com", "--password", "secret", "--name", "A")
	if !strings.Contains(out, "Registered and logged in as a@example.com") {
		t.Fatalf("unexpected register output %q", out)
	}

	out = mustRun(t, "status")
	if !strings.Contains(out, "Logged in: yes") || !strings.Contains(out, srv.URL) {
		t.Fatalf("unexpected status output %q", out)
	}

	out = mustRun(t, "ls")
	if !strings.Contains(out, "No tasks yet") {
		t.Fatalf("expected empty state, got %q", out)
	}

	mustRun(t, "add", "buy", "milk", "-d", "two litres")
	mustRun(t, "add", "walk dog")

	tasks := listTasks(t, srv, sessionPath)
	if len(tasks) != 2 || tasks[0].Title != "buy milk" || tasks[0].DescriptionText() != "two litres" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}

	out = mustRun(t, "tasks")
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "walk dog") {
		t.Fatalf("expected both tasks listed, got %q", out)
	}

	out = mustRun(t, "toggle", tasks[0].ID)
	if !strings.Contains(out, "buy milk is now done") {
		t.Fatalf("unexpected toggle output %q", out)
	}

	mustRun(t, "edit", tasks[1].ID, "--title", "walk the dog", "--done")
	out = mustRun(t, "show", tasks[1].ID)
	if !strings.Contains(out, "walk the dog") || !strings.Contains(out, "done") {
		t.Fatalf("unexpected show output %q", out)
	}

	out = mustRun(t, "rm", "--yes", tasks[0].ID, tasks[1].ID)
	if !strings.Contains(out, "Deleted 2 of 2 task(s)") {
		t.Fatalf("unexpected rm output %q", out)
	}
	if remaining := listTasks(t, srv, sessionPath); len(remaining) != 0 {
		t.Fatalf("expected no tasks left, got %+v", remaining)
	}
}

func TestCLIRemoveMissingTask(t *testing.T) {
	srv := newMockServer(t)
	useFileSession(t, srv)

	mustRun(t, "register", "--email", "a@example.com", "--password", "secret")
	mustRun(t, "add", "keep")

	_, err := runCLI(t, "rm", "-y", "no-such-id")
	if !client.IsNotFound(err) || err.Error() != "Failed to delete task" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCLILogoutThenUnauthorized(t *testing.T) {
	srv := newMockServer(t)
	useFileSession(t, srv)

	mustRun(t, "register", "--email", "a@example.com", "--password", "secret")
	mustRun(t, "logout")

	out := mustRun(t, "status")
	if !strings.Contains(out, "Logged in: no") {
		t.Fatalf("expected logged out status, got %q", out)
	}

	_, err := runCLI(t, "ls")
	if !client.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	var buf bytes.Buffer
	report(&buf, err)
	if !strings.Contains(buf.String(), "Failed to fetch tasks") || !strings.Contains(buf.String(), "todo login") {
		t.Fatalf("expected error and login hint, got %q", buf.String())
	}

	out = mustRun(t, "login", "--email", "a@example.com", "--password", "secret")
	if !strings.Contains(out, "Logged in as a@example.com") {
		t.Fatalf("unexpected login output %q", out)
	}
	mustRun(t, "ls")
}

func TestCLIBadLogin(t *testing.T) {
	srv := newMockServer(t)
	useFileSession(t, srv)

	_, err := runCLI(t, "login", "--email", "a@example.com", "--password", "wrong")
	if err == nil || err.Error() != "Incorrect email or password" {
		t.Fatalf("expected server detail, got %v", err)
	}
}

func TestCLIRedisSession(t *testing.T) {
	mr := miniredis.RunT(t)
	srv := newMockServer(t)

	t.Setenv("TODO_API_URL", srv.URL)
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_HOST", mr.Host())
	t.Setenv("REDIS_PORT", mr.Port())
	t.Setenv("SESSION_REDIS_PREFIX", "test:")

	mustRun(t, "register", "--email", "a@example.com", "--password", "secret")
	if !mr.Exists("test:" + session.TokenKey) {
		t.Fatalf("expected token stored in redis")
	}

	mustRun(t, "add", "from redis")
	out := mustRun(t, "ls")
	if !strings.Contains(out, "from redis") {
		t.Fatalf("expected task listed, got %q", out)
	}

	mustRun(t, "logout")
	if mr.Exists("test:" + session.TokenKey) {
		t.Fatalf("expected token removed from redis")
	}
}

func TestCLIAPIURLFlag(t *testing.T) {
	srv := newMockServer(t)
	useFileSession(t, srv)
	t.Setenv("TODO_API_URL", "http://127.0.0.1:1")

	out := mustRun(t, "status", "--api-url", srv.URL)
	if !strings.Contains(out, srv.URL) {
		t.Fatalf("expected flag to override env, got %q", out)
	}
}

func TestCLIInvalidStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "floppy")

	_, err := runCLI(t, "status")
	if err == nil || !strings.Contains(err.Error(), "SESSION_STORE") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestCLIEditCompletionFlags(t *testing.T) {
	srv := newMockServer(t)
	sessionPath := useFileSession(t, srv)

	mustRun(t, "register", "--email", "a@example.com", "--password", "secret")
	mustRun(t, "add", "flip me")
	id := listTasks(t, srv, sessionPath)[0].ID

	steps := []struct {
		flag string
		want bool
	}{
		{"--done", true},
		{"--done=false", false},
		{"--undone=false", true},
		{"--undone", false},
	}
	for _, step := range steps {
		mustRun(t, "edit", id, step.flag)
		if got := listTasks(t, srv, sessionPath)[0].Completed; got != step.want {
			t.Fatalf("edit %s: expected completed=%v, got %v", step.flag, step.want, got)
		}
	}
}

func TestCLIRemovePartialFailure(t *testing.T) {
	srv := newMockServer(t)
	sessionPath := useFileSession(t, srv)

	mustRun(t, "register", "--email", "a@example.com", "--password", "secret")
	mustRun(t, "add", "doomed")
	id := listTasks(t, srv, sessionPath)[0].ID

	out, err := runCLI(t, "rm", "-y", id, "no-such-id")
	if !client.IsNotFound(err) {
		t.Fatalf("expected not found for the missing id, got %v", err)
	}
	if !strings.Contains(out, "Deleted 1 of 2 task(s)") {
		t.Fatalf("expected the existing task deleted, got %q", out)
	}
	if remaining := listTasks(t, srv, sessionPath); len(remaining) != 0 {
		t.Fatalf("expected no tasks left, got %+v", remaining)
	}
}
