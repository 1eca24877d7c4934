package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maiwenn-k/jot/internal/contact"
	"github.com/maiwenn-k/jot/internal/model"
	"github.com/maiwenn-k/jot/internal/store"
	"github.com/maiwenn-k/jot/internal/todo"
	"github.com/maiwenn-k/jot/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// Deps are the hydrated controllers the commands operate on.
type Deps struct {
	Todos    *todo.Controller
	Contacts *contact.Controller
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options, deps Deps) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "todo":
		return runTodo(a, opt, deps.Todos)

	case "contact":
		return runContact(a, deps.Contacts)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func runTodo(args []string, opt Options, c *todo.Controller) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "add":
		if len(a) == 0 {
			ui.Fail("usage: jot todo add <text...>")
			return 2
		}
		return doTodoAdd(c, strings.Join(a, " "))

	case "ls":
		filter := ""
		if len(a) > 0 {
			filter = a[0]
		}
		f, err := todo.ParseFilter(filter)
		if err != nil {
			ui.Fail("ls: " + err.Error())
			return 2
		}
		return doTodoList(c, opt, f, "")

	case "search":
		if len(a) == 0 {
			ui.Fail("usage: jot todo search <term...>")
			return 2
		}
		return doTodoList(c, opt, todo.FilterAll, strings.Join(a, " "))

	case "done":
		id, ok := parseID(a, "done")
		if !ok {
			return 2
		}
		return reportMutation(c.Toggle(id), "toggled")

	case "rm":
		id, ok := parseID(a, "rm")
		if !ok {
			return 2
		}
		return reportMutation(c.Delete(id), "removed")
	}

	ui.Fail("unknown todo subcommand: " + cmd)
	return 2
}

func runContact(args []string, c *contact.Controller) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "add":
		if len(a) < 3 {
			ui.Fail("usage: jot contact add <name> <email> <message...>")
			return 2
		}
		return doContactAdd(c, a[0], a[1], strings.Join(a[2:], " "))

	case "ls":
		return doContactList(c, strings.Join(a, " "))

	case "rm":
		id, ok := parseID(a, "rm")
		if !ok {
			return 2
		}
		return reportMutation(c.Delete(id), "removed")
	}

	ui.Fail("unknown contact subcommand: " + cmd)
	return 2
}

func PrintHelp() {
	fmt.Printf(`jot - todos and contact messages, kept locally

Usage:
  jot [flags] <group> <subcommand> [args]
  jot -tui

Todo subcommands:
  todo add <text...>              Add a new todo (1-200 characters)
  todo ls [all|active|completed]  List todos, optionally by status
  todo search <term...>           List todos matching a term
  todo done <id>                  Toggle completion for a todo
  todo rm <id>                    Remove a todo

Contact subcommands:
  contact add <name> <email> <message...>   Record a contact message
  contact ls [term...]                      List messages, optionally matching a term
  contact rm <id>                           Remove a message

Examples:
  jot todo add "Buy milk"
  jot todo ls active
  jot todo done 17
  jot contact add "Ada" ada@example.org "Please call me back about the order."
`)
}

// -------------- subcommand impls ----------------

func parseID(args []string, cmd string) (int64, bool) {
	if len(args) != 1 {
		ui.Fail("usage: jot ... " + cmd + " <id>")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		ui.Fail(cmd + ": not an id: " + args[0])
		return 0, false
	}
	return id, true
}

// reportMutation maps a controller outcome to output + exit code. Absent ids
// are no-ops upstream, so err here is persistence only.
func reportMutation(err error, okMsg string) int {
	if err != nil {
		var pe *store.PersistenceError
		if errors.As(err, &pe) {
			ui.Fail("save failed (change kept in memory): " + pe.Error())
			return 1
		}
		ui.Fail(err.Error())
		return 1
	}
	ui.OK(okMsg)
	return 0
}

func doTodoAdd(c *todo.Controller, text string) int {
	t, err := c.Add(text)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			ui.Fail("add: " + ve.Error())
			return 2
		}
		var pe *store.PersistenceError
		if errors.As(err, &pe) {
			ui.Fail("save failed (todo kept in memory): " + pe.Error())
			return 1
		}
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("added #%d", t.ID))
	return 0
}

func doTodoList(c *todo.Controller, opt Options, f todo.Filter, term string) int {
	items := c.List(f, term)
	total, completed := c.Counts()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, ui.Current().SymDone), completed,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), total-completed,
		ui.C(ui.Current().Accent, "Total"), total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(completed, total, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `jot todo add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doContactAdd(c *contact.Controller, name, email, message string) int {
	m, err := c.Submit(name, email, message)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			ui.Fail("add: " + ve.Error())
			return 2
		}
		var pe *store.PersistenceError
		if errors.As(err, &pe) {
			ui.Fail("save failed (message kept in memory): " + pe.Error())
			return 1
		}
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("recorded #%d", m.ID))
	return 0
}

func doContactList(c *contact.Controller, term string) int {
	msgs := c.List(strings.TrimSpace(term))

	header := fmt.Sprintf("%s  %s %d",
		ui.C(ui.Current().Title, "Messages"),
		ui.C(ui.Current().Accent, "Total"), c.Len(),
	)

	var lines []string
	lines = append(lines, header, "")
	if len(msgs) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "no messages"))
	}
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			ui.C(dimColor, fmt.Sprintf("#%d", m.ID)),
			ui.C(ui.Current().Accent, m.Name),
			ui.C(ui.Current().Muted, "<"+m.Email+">"),
		))
		lines = append(lines, "  "+ui.Truncate(m.Message, 76))
		lines = append(lines, "  "+ui.C(ui.Current().Muted, m.Timestamp.Format("2006-01-02 15:04")))
	}
	ui.Panel(lines)
	return 0
}

// -------------- rendering helpers --------------

const dimColor = "\033[2m"

func flatLines(items []model.Todo) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		if it.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(dimColor, fmt.Sprintf("#%d", it.ID)), ui.C(color, box), ui.Truncate(it.Text, 80)))
	}
	return out
}

func groupLines(items []model.Todo) []string {
	var pend, done []model.Todo
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
