// Package cli dispatches todo-store subcommands against a domain.TodoStore.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reuben-baek/todo-store/data"
	"github.com/reuben-baek/todo-store/domain"
)

// Runner holds the store and the output streams of one invocation.
type Runner struct {
	Store  domain.TodoStore
	Out    io.Writer
	ErrOut io.Writer
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return 0

	case "ls":
		return r.report(r.doList(ctx))

	case "add":
		if len(a) == 0 {
			return r.usage("usage: todo-store add <title...>")
		}
		return r.report(r.doAdd(ctx, strings.Join(a, " ")))

	case "get", "done", "undone", "rm", "exists":
		if len(a) != 1 {
			return r.usage(fmt.Sprintf("usage: todo-store %s <id>", cmd))
		}
		id, err := parseID(a[0])
		if err != nil {
			return r.usage(fmt.Sprintf("%s: %v", cmd, err))
		}
		switch cmd {
		case "get":
			return r.report(r.doGet(ctx, id))
		case "done":
			return r.report(r.doMark(ctx, id, true))
		case "undone":
			return r.report(r.doMark(ctx, id, false))
		case "rm":
			return r.report(r.doRemove(ctx, id))
		default:
			return r.report(r.doExists(ctx, id))
		}

	case "update":
		if len(a) < 2 {
			return r.usage("usage: todo-store update <id> <title...>")
		}
		id, err := parseID(a[0])
		if err != nil {
			return r.usage(fmt.Sprintf("update: %v", err))
		}
		return r.report(r.doUpdate(ctx, id, strings.Join(a[1:], " ")))
	}

	fmt.Fprintf(r.ErrOut, "unknown subcommand: %s\n\n", cmd)
	r.PrintHelp()
	return 2
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.Out, `todo-store - manage the todo store

Usage:
  todo-store [flags] <subcommand> [args]

Subcommands:
  add <title...>          Create a todo
  get <id>                Show one todo
  ls                      List all todos
  update <id> <title...>  Replace the title, keeping the completed flag
  done <id>               Mark a todo completed
  undone <id>             Mark a todo pending
  rm <id>                 Delete a todo
  exists <id>             Print true or false
`)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("not a valid id: %s", s)
	}
	return uint(id), nil
}

func (r *Runner) usage(msg string) int {
	fmt.Fprintln(r.ErrOut, msg)
	return 2
}

func (r *Runner) report(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, data.NotFoundError):
		fmt.Fprintln(r.ErrOut, "not found")
	default:
		fmt.Fprintln(r.ErrOut, err)
	}
	return 1
}

func (r *Runner) print(todo domain.Todo) {
	mark := " "
	if todo.Completed {
		mark = "x"
	}
	fmt.Fprintf(r.Out, "%d\t[%s]\t%s\n", todo.ID, mark, todo.Title)
}

func (r *Runner) doList(ctx context.Context) error {
	todos, err := r.Store.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, todo := range todos {
		r.print(todo)
	}
	return nil
}

func (r *Runner) doAdd(ctx context.Context, title string) error {
	created, err := r.Store.Create(ctx, domain.TodoInput{Title: title})
	if err != nil {
		return err
	}
	r.print(created)
	return nil
}

func (r *Runner) doGet(ctx context.Context, id uint) error {
	todo, err := r.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	r.print(todo)
	return nil
}

func (r *Runner) doUpdate(ctx context.Context, id uint, title string) error {
	current, err := r.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	updated, err := r.Store.Update(ctx, id, domain.TodoInput{Title: title, Completed: current.Completed})
	if err != nil {
		return err
	}
	r.print(updated)
	return nil
}

func (r *Runner) doMark(ctx context.Context, id uint, completed bool) error {
	current, err := r.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	updated, err := r.Store.Update(ctx, id, domain.TodoInput{Title: current.Title, Completed: completed})
	if err != nil {
		return err
	}
	r.print(updated)
	return nil
}

func (r *Runner) doRemove(ctx context.Context, id uint) error {
	return r.Store.Delete(ctx, id)
}

func (r *Runner) doExists(ctx context.Context, id uint) error {
	exists, err := r.Store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, exists)
	return nil
}
