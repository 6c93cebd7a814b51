package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/core/service"
)

// ToggleCommand returns the open-or-save dispatch command. It is the
// default action when the binary is invoked without a subcommand.
func ToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"t"},
		Usage:     "Open the named bookmark, or save one if it does not exist",
		ArgsUsage: "[NAME]",
		Action:    toggleAction,
	}
}

// SaveCommand returns the explicit save command.
func SaveCommand() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Aliases:   []string{"s"},
		Usage:     "Snapshot the current context under a name",
		ArgsUsage: "[NAME]",
		Action:    saveAction,
	}
}

// OpenCommand returns the explicit open command.
func OpenCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Aliases:   []string{"o"},
		Usage:     "Restore a stored bookmark",
		ArgsUsage: "[NAME]",
		Action:    openAction,
	}
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"d", "rm"},
		Usage:     "Remove a stored bookmark",
		ArgsUsage: "[NAME]",
		Action:    deleteAction,
	}
}

// RenameCommand returns the rename command.
func RenameCommand() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Aliases:   []string{"mv"},
		Usage:     "Relabel a stored bookmark, payload untouched",
		ArgsUsage: "[OLD NEW]",
		Action:    renameAction,
	}
}

func toggleAction(c *cli.Context) error {
	env := getEnv(c)
	name, err := resolveName(c, env, "Bookmark", false)
	if err != nil {
		return err
	}

	action, err := env.Manager.Toggle(c.Context, name)
	if err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	switch action {
	case service.ActionOpened:
		fmt.Fprintf(out, "Opened %s\n", name)
	case service.ActionSaved:
		fmt.Fprintf(out, "Saved %s\n", name)
	}
	return nil
}

func saveAction(c *cli.Context) error {
	env := getEnv(c)
	name, err := resolveName(c, env, "Save as", false)
	if err != nil {
		return err
	}

	if err := env.Manager.Save(c.Context, name, false); err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	fmt.Fprintf(out, "Saved %s\n", name)
	return nil
}

func openAction(c *cli.Context) error {
	env := getEnv(c)
	name, err := resolveName(c, env, "Open", true)
	if err != nil {
		return err
	}

	if err := env.Manager.Open(c.Context, name); err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	fmt.Fprintf(out, "Opened %s\n", name)
	return nil
}

func deleteAction(c *cli.Context) error {
	env := getEnv(c)
	name, err := resolveName(c, env, "Delete", true)
	if err != nil {
		return err
	}

	if err := env.Manager.Delete(c.Context, name); err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	fmt.Fprintf(out, "Deleted %s\n", name)
	return nil
}

func renameAction(c *cli.Context) error {
	env := getEnv(c)

	old := strings.TrimSpace(c.Args().Get(0))
	new := strings.TrimSpace(c.Args().Get(1))

	switch {
	case old == "":
		// No arguments: prompt for both.
		var err error
		if old, err = resolveName(c, env, "Rename", true); err != nil {
			return err
		}
		if new, err = promptName(c, env, "New name", nil, ""); err != nil {
			return err
		}
	case new == "":
		return domain.ErrMissingArgument.WithDetails("new name")
	}

	if err := env.Manager.Rename(c.Context, old, new); err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	fmt.Fprintf(out, "Renamed %s to %s\n", old, new)
	return nil
}

// resolveName returns the action's name argument, prompting when absent.
// The prompt default is the stack top: the next free slot, or with
// existing set the highest stored ordinal (no default when the stack is
// empty).
func resolveName(c *cli.Context, env *Env, label string, existing bool) (string, error) {
	if name := strings.TrimSpace(c.Args().First()); name != "" {
		return name, nil
	}

	def := ""
	top, ok, err := env.Manager.Top(c.Context, existing)
	if err != nil {
		return "", err
	}
	if ok {
		def = top.String()
	}

	names, err := env.Manager.Names(c.Context)
	if err != nil {
		return "", err
	}
	return promptName(c, env, label, names, def)
}

func promptName(c *cli.Context, env *Env, label string, candidates []string, def string) (string, error) {
	current, err := env.Manager.CurrentContext(c.Context)
	if err != nil {
		return "", err
	}

	p, err := prompterFor(c, env)
	if err != nil {
		return "", err
	}
	return p.ReadName(label, candidates, current, def)
}
