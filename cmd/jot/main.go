package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maiwenn-k/jot/internal/cli"
	"github.com/maiwenn-k/jot/internal/config"
	"github.com/maiwenn-k/jot/internal/contact"
	"github.com/maiwenn-k/jot/internal/storage"
	"github.com/maiwenn-k/jot/internal/storage/filekv"
	"github.com/maiwenn-k/jot/internal/storage/memkv"
	"github.com/maiwenn-k/jot/internal/storage/sqlitekv"
	"github.com/maiwenn-k/jot/internal/store"
	"github.com/maiwenn-k/jot/internal/todo"
	"github.com/maiwenn-k/jot/internal/tui"
	"github.com/maiwenn-k/jot/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	interactive := flag.Bool("tui", false, "start the interactive interface")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	ui.SetColorForcing(false, *noColor)

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	ui.SetTheme(cfg.Theme)

	kv, cleanup, err := openStorage(cfg)
	if err != nil {
		ui.Fail("storage: " + err.Error())
		os.Exit(1)
	}
	defer cleanup()
	if cfg.Storage == config.BackendMemory {
		ui.Info("memory backend: nothing will be persisted")
	}

	todos := todo.New(kv, store.Options{})
	contacts := contact.New(kv, store.Options{})

	// A corrupt store degrades to empty; keep going after telling the user.
	if err := todos.Hydrate(); err != nil {
		ui.Fail("todos: " + err.Error())
	}
	if err := contacts.Hydrate(); err != nil {
		ui.Fail("contact messages: " + err.Error())
	}

	if *interactive {
		if err := tui.Run(todos, contacts); err != nil {
			ui.Fail(err.Error())
			os.Exit(1)
		}
		return
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{Group: *groupPending}, cli.Deps{
		Todos:    todos,
		Contacts: contacts,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	cleanup()
	os.Exit(code)
}

func openStorage(cfg config.Config) (storage.KV, func(), error) {
	switch cfg.Storage {
	case config.BackendSQLite:
		kv, err := sqlitekv.Open(cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	case config.BackendMemory:
		return memkv.New(), func() {}, nil
	default:
		return filekv.New(cfg.DataDir), func() {}, nil
	}
}
