package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flume/internal/config"
	"github.com/aretw0/flume/internal/presentation/tui"
)

const guideMarkdown = `# Flume

Flume drains a chain of pull-based stages and renders the resulting value
stream as adaptive terminal tables.

## The chain

` + "```" + `
ls | where | table
` + "```" + `

- **ls** lazily walks the working directory and emits one {name, type}
  record per entry.
- **where** drops records whose configured field contains the configured
  substring (invert with --filter-invert).
- **table** buffers column-homogeneous pages (up to --page-cap rows or
  --page-timeout, whichever comes first) and fits each page to the terminal
  width.

## Cancellation

Ctrl+C sets a shared signal that every adapter polls before its next pull.
The pipeline stops at the next pull boundary; pages already rendered stay
on screen.

## Configuration

Flags, FLUME_* environment variables and an optional flume.yaml are merged,
in that order of precedence. Run ` + "`flume run --help`" + ` for the full list.
`

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show a rendered introduction to flume",
	RunE: func(cmd *cobra.Command, args []string) error {
		width := config.Config{}.ResolveWidth()
		render := tui.NewRenderer(width)
		out, err := render(guideMarkdown)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
