package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// PushCommand returns the stack push command.
func PushCommand() *cli.Command {
	return &cli.Command{
		Name:   "push",
		Usage:  "Snapshot the current context onto its bookmark stack",
		Action: pushAction,
	}
}

// PopCommand returns the stack pop command.
func PopCommand() *cli.Command {
	return &cli.Command{
		Name:   "pop",
		Usage:  "Restore and remove the top bookmark of the current context",
		Action: popAction,
	}
}

// ListCommand returns the listing command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List stored bookmarks",
		Action:  listAction,
	}
}

func pushAction(c *cli.Context) error {
	env := getEnv(c)
	name, err := env.Manager.Push(c.Context)
	if err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	fmt.Fprintf(out, "Pushed %s\n", name)
	return nil
}

func popAction(c *cli.Context) error {
	env := getEnv(c)
	name, err := env.Manager.Pop(c.Context)
	if err != nil {
		return err
	}

	_, out, _ := ioStreams(c)
	fmt.Fprintf(out, "Popped %s\n", name)
	return nil
}

func listAction(c *cli.Context) error {
	env := getEnv(c)
	entries, err := env.Manager.List(c.Context)
	if err != nil {
		return err
	}

	_, out, _ := ioStreams(c)

	rows := make([]listRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, listRow{
			Name:    e.Name,
			ID:      truncateID(e.ID),
			Buffers: e.Buffers,
			Created: time.UnixMilli(e.CreatedAt),
		})
	}
	return formatterFor(c, env).Format(out, rows)
}

type listRow struct {
	Name    string    `json:"name"`
	ID      string    `json:"id"`
	Buffers int       `json:"buffers"`
	Created time.Time `json:"created"`
}

func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:13] + "..."
}
