// Package cli wires configuration, signal handling and the stage chain
// behind the flume command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/aretw0/flume"
	"github.com/aretw0/flume/internal/config"
	"github.com/aretw0/flume/internal/logging"
	"github.com/aretw0/flume/internal/presentation/grid"
	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/stages"
	"github.com/aretw0/flume/pkg/table"
)

// RunOptions configures the 'run' command.
type RunOptions struct {
	// Root is the directory the source stage enumerates.
	Root string
	// Plain prints one display string per value instead of a table.
	Plain bool
	// Debug raises the log level.
	Debug bool
	// Flags is the command's flag set, bound into the config layer.
	Flags *pflag.FlagSet
	// Out is the rendering sink (default: stdout).
	Out io.Writer
}

// Execute builds the ls | where | table chain and drains it to completion.
// The first error anywhere in the chain tears the whole pipeline down; rows
// already flushed stay on screen.
func Execute(opts RunOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := config.Load(opts.Flags)
	if err != nil {
		return err
	}
	width := cfg.ResolveWidth()
	logger.Debug("configuration resolved",
		"width", width,
		"filter_field", cfg.FilterField,
		"filter_substring", cfg.FilterSubstring,
		"page_cap", cfg.PageCap,
		"page_timeout", cfg.PageTimeout,
	)

	sm := pipeline.NewSignalManager()
	defer sm.Stop()
	ctx := sm.Context()

	counter := pipeline.NewCounter(0)

	chain := []pipeline.Stage{stages.NewLs(opts.Root)}
	// An empty substring is contained in everything; treat it as "no
	// filter configured" rather than dropping every record.
	if cfg.FilterSubstring != "" {
		chain = append(chain, stages.NewFilter(stages.Predicate{
			Field:     cfg.FilterField,
			Substring: cfg.FilterSubstring,
			Invert:    cfg.FilterInvert,
		}))
	}
	if !opts.Plain {
		renderer := grid.New(out)
		chain = append(chain, table.NewStage(renderer.Render,
			table.WithWidth(width),
			table.WithPageCap(cfg.PageCap),
			table.WithPageTimeout(cfg.PageTimeout),
			table.WithLogger(logger),
		))
	}

	sink, err := flume.Chain(ctx, counter, sm.Interrupt(), chain...)
	if err != nil {
		return err
	}

	for {
		v, err := sink.Next(ctx)
		if err != nil {
			if errors.Is(err, pipeline.ErrCancelled) {
				return err
			}
			return fmt.Errorf("pipeline failed: %w", err)
		}
		if v == nil {
			break
		}
		if opts.Plain {
			fmt.Fprintln(out, v.String())
		}
	}

	logger.Debug("pipeline finished", "counter", counter.Load())
	return nil
}
