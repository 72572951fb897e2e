package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/shoplist/internal/app"
	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/tui"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

// outputOptions picks how the list is printed after a command.
type outputOptions struct {
	JSON  bool
	Table bool
	Group bool
	Quiet bool
}

func addOutputFlags(cmd *cobra.Command, o *outputOptions) {
	pf := cmd.PersistentFlags()
	pf.BoolVar(&o.JSON, "json", false, "Output as JSON.")
	pf.BoolVar(&o.Table, "table", false, "Output as a plain table.")
	pf.BoolVar(&o.Group, "group", false, "Group output into to-buy and in-the-cart.")
	pf.BoolVarP(&o.Quiet, "quiet", "q", false, "Only report the change, don't print the list.")
}

func runList(e *env, cmd *cobra.Command) error {
	s, err := e.session()
	if err != nil {
		return err
	}
	return e.print(cmd, s, s.Rows())
}

func (e *env) print(cmd *cobra.Command, s *app.Session, rows []app.Row) error {
	w := cmd.OutOrStdout()
	switch {
	case e.out.JSON:
		return ui.JSON(w, rows)
	case e.out.Table:
		ui.Table(w, rows)
		return nil
	}
	checked, unchecked := s.Store().Stats()
	ui.Panel(w, ui.ListLines(rows, checked, unchecked, s.Config(), e.out.Group))
	return nil
}

// mutate applies actions in order to a freshly seeded session, then prints
// the resulting projection. The first failing action aborts the run.
func (e *env) mutate(cmd *cobra.Command, msg string, actions ...app.Action) error {
	s, err := e.session()
	if err != nil {
		return err
	}
	var rows []app.Row
	for _, a := range actions {
		if rows, err = s.Dispatch(a); err != nil {
			return err
		}
	}
	if rows == nil {
		rows = s.Rows()
	}
	if !e.out.JSON {
		ui.OK(msg)
	}
	if e.out.Quiet {
		return nil
	}
	return e.print(cmd, s, rows)
}

func addList(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the list",
		Example: `
shoplist ls
shoplist ls --sort created --filter unchecked
shoplist ls --search milk --json
`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(e, cmd)
		},
	}
	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an item (the name can be several words)",
		Example: `
shoplist add oat milk
`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				ui.Hint("warning: the new item has no name")
			}
			return e.mutate(cmd, "added", app.Add{Name: name})
		},
	}
	topLevel.AddCommand(cmd)
}

func addToggle(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "toggle <index>",
		Aliases: []string{"done", "check"},
		Short:   "Check or uncheck the item at a 1-based index",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex("toggle", args[0])
			if err != nil {
				return err
			}
			return e.mutate(cmd, "toggled", app.ToggleAt{Index: i})
		},
	}
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Remove the item at a 1-based index",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			return e.mutate(cmd, "removed", app.DeleteAt{Index: i})
		},
	}
	topLevel.AddCommand(cmd)
}

func addRename(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "rename <index> <name...>",
		Aliases: []string{"edit"},
		Short:   "Rename the item at a 1-based index",
		Args:    minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex("rename", args[0])
			if err != nil {
				return err
			}
			return e.mutate(cmd, "renamed", app.RenameAt{Index: i, Name: strings.Join(args[1:], " ")})
		},
	}
	topLevel.AddCommand(cmd)
}

func addDo(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "do <step>...",
		Short: "Apply several steps in order, then print the list",
		Long: `Each step is one quoted argument: "add NAME...", "toggle N", "rm N",
"rename N NAME...", "sort MODE", "filter FILTER" or "search TERM".

Indexes are 1-based store positions at the moment the step runs, so a
removal shifts every later index down by one.`,
		Example: `
shoplist do "toggle 3" "rm 1"
shoplist do "add eggs" "sort created"
`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions := make([]app.Action, 0, len(args))
			for _, step := range args {
				a, err := parseStep(step)
				if err != nil {
					return err
				}
				actions = append(actions, a)
			}
			return e.mutate(cmd, fmt.Sprintf("applied %d step(s)", len(actions)), actions...)
		},
	}
	topLevel.AddCommand(cmd)
}

func addUI(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.session()
			if err != nil {
				return err
			}
			return tui.Run(s)
		},
	}
	topLevel.AddCommand(cmd)
}

// parseStep turns one "do" step into an action.
func parseStep(step string) (app.Action, error) {
	fields := strings.Fields(step)
	if len(fields) == 0 {
		return nil, usagef("do: empty step")
	}
	verb, rest := fields[0], fields[1:]
	joined := strings.Join(rest, " ")

	switch verb {
	case "add":
		return app.Add{Name: joined}, nil
	case "toggle", "done", "check":
		if len(rest) != 1 {
			return nil, usagef("do: usage: toggle <index>")
		}
		i, err := parseIndex(verb, rest[0])
		return app.ToggleAt{Index: i}, err
	case "rm", "delete":
		if len(rest) != 1 {
			return nil, usagef("do: usage: rm <index>")
		}
		i, err := parseIndex(verb, rest[0])
		return app.DeleteAt{Index: i}, err
	case "rename", "edit":
		if len(rest) < 1 {
			return nil, usagef("do: usage: rename <index> <name...>")
		}
		i, err := parseIndex(verb, rest[0])
		return app.RenameAt{Index: i, Name: strings.Join(rest[1:], " ")}, err
	case "sort":
		m, err := model.ParseSortMode(joined)
		if err != nil {
			return nil, usageError{err}
		}
		return app.SetSort{Mode: m}, nil
	case "filter", "show":
		f, err := model.ParseCheckedFilter(joined)
		if err != nil {
			return nil, usageError{err}
		}
		return app.SetFilter{Filter: f}, nil
	case "search":
		return app.SetSearch{Term: joined}, nil
	}
	return nil, usagef("do: unknown step %q", verb)
}

// parseIndex converts a 1-based user index to a 0-based store index. Range
// checking is left to the store.
func parseIndex(op, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("%s: not a number: %s", op, s)
	}
	return n - 1, nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{fmt.Errorf("usage: shoplist %s", cmd.Use)}
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{fmt.Errorf("usage: shoplist %s", cmd.Use)}
		}
		return nil
	}
}
