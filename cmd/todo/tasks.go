package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/redmonkez12/go-todo-client/internal/task"
	"github.com/redmonkez12/go-todo-client/internal/ui"
)

// maxParallelDeletes bounds the concurrent requests made by rm
const maxParallelDeletes = 4

func newTasksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"ls"},
		Short:   "List your tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.client.GetTasks(cmd.Context())
			if err != nil {
				return err
			}
			ui.PrintTasks(a.out, tasks)
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			description, _ := cmd.Flags().GetString("description")
			if title == "" {
				if err := ui.RunTaskForm("New task", &title, &description); err != nil {
					return err
				}
			}

			created, err := a.client.CreateTask(cmd.Context(), title, description)
			if err != nil {
				return err
			}
			ui.PrintSuccess(a.out, fmt.Sprintf("Created task %s", created.ID))
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "Task description")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ui.RenderTask(*t))
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, description or completion",
		Long:  "Only the given flags are sent. Without flags the current task is opened in a form.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			u := updateFromFlags(cmd)
			if u.IsEmpty() {
				current, err := a.client.GetTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				title, description := current.Title, current.DescriptionText()
				if err := ui.RunTaskForm("Edit task", &title, &description); err != nil {
					return err
				}
				u = task.Update{Title: &title, Description: &description}
			}

			updated, err := a.client.UpdateTask(cmd.Context(), id, u)
			if err != nil {
				return err
			}
			ui.PrintSuccess(a.out, fmt.Sprintf("Updated task %s", updated.ID))
			return nil
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().StringP("description", "d", "", "New description")
	cmd.Flags().Bool("done", false, "Mark as completed")
	cmd.Flags().Bool("undone", false, "Mark as not completed")
	cmd.MarkFlagsMutuallyExclusive("done", "undone")
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.client.ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "not done"
			if t.Completed {
				state = "done"
			}
			ui.PrintSuccess(a.out, fmt.Sprintf("%s is now %s", t.Title, state))
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete one or more tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := ui.Confirm(fmt.Sprintf("Delete %d task(s)?", len(args)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Aborted.")
					return nil
				}
			}

			// Every id is attempted; the first failure is reported once all finish
			var (
				mu      sync.Mutex
				deleted int
				g       errgroup.Group
			)
			g.SetLimit(maxParallelDeletes)
			for _, id := range args {
				g.Go(func() error {
					if err := a.client.DeleteTask(cmd.Context(), id); err != nil {
						a.logger.Warn("delete failed", "task_id", id, "error", err.Error())
						return err
					}
					mu.Lock()
					deleted++
					mu.Unlock()
					return nil
				})
			}
			err := g.Wait()

			if deleted > 0 {
				ui.PrintSuccess(a.out, fmt.Sprintf("Deleted %d of %d task(s)", deleted, len(args)))
			}
			return err
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	return cmd
}

// updateFromFlags builds an update from the flags the user actually set
func updateFromFlags(cmd *cobra.Command) task.Update {
	var u task.Update
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		u.Title = &title
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		u.Description = &description
	}
	switch {
	case flags.Changed("done"):
		done, _ := flags.GetBool("done")
		u.Completed = &done
	case flags.Changed("undone"):
		undone, _ := flags.GetBool("undone")
		completed := !undone
		u.Completed = &completed
	}
	return u
}
