package ui

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/redmonkez12/go-todo-client/internal/task"
)

// Credentials collected by the login and register forms
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// RunLoginForm prompts for whichever of email and password are still empty.
// It returns without prompting when both are set.
func RunLoginForm(creds *Credentials) error {
	return runCredentialsForm(creds, false)
}

// RunRegisterForm is RunLoginForm plus an optional display name, asked only
// when the form is shown at all
func RunRegisterForm(creds *Credentials) error {
	return runCredentialsForm(creds, true)
}

func runCredentialsForm(creds *Credentials, withName bool) error {
	var fields []huh.Field
	if creds.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&creds.Email).
			Validate(validateEmail))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(required("password")))
	}
	// Nothing to ask when both credentials came from flags
	if len(fields) == 0 {
		return nil
	}
	if withName && creds.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Description("Optional").
			Value(&creds.Name))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin()).Run(); err != nil {
		return err
	}
	creds.Email = strings.TrimSpace(creds.Email)
	creds.Name = strings.TrimSpace(creds.Name)
	return nil
}

// RunTaskForm prompts for a title and description, prefilled with the
// current values. The title is validated the same way the client does.
func RunTaskForm(heading string, title, description *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(heading),
			huh.NewInput().
				Title("Title").
				CharLimit(task.MaxTitleLength).
				Value(title).
				Validate(func(s string) error {
					_, err := task.ValidateTitle(s)
					return err
				}),
			huh.NewText().
				Title("Description").
				Description("Optional").
				CharLimit(task.MaxDescriptionLength).
				Value(description),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return form.Run()
}

// Confirm asks a yes/no question, defaulting to no
func Confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// IsAborted reports whether the user cancelled a form
func IsAborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
