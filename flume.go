package flume

import (
	"context"
	"fmt"

	"github.com/aretw0/flume/pkg/pipeline"
)

// Version is the flume release version.
const Version = "0.1.0"

// Chain connects stages into one pipeline, interleaving a Runner adapter
// between every pair so control signals are executed before values travel
// further downstream. All adapters share the given counter and cancellation
// signal; opts apply to every adapter. The returned connector drains the
// whole chain: pull it until it yields nil.
func Chain(ctx context.Context, counter *pipeline.Counter, interrupt <-chan struct{}, stages ...pipeline.Stage) (pipeline.Connector, error) {
	return ChainWith(ctx, counter, interrupt, nil, stages...)
}

// ChainWith is Chain with adapter options.
func ChainWith(ctx context.Context, counter *pipeline.Counter, interrupt <-chan struct{}, opts []pipeline.RunnerOption, stages ...pipeline.Stage) (pipeline.Connector, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("chain needs at least one stage")
	}

	var upstream pipeline.Connector
	for i, stage := range stages {
		if err := stage.Connect(ctx, upstream); err != nil {
			return nil, fmt.Errorf("connecting stage %d: %w", i, err)
		}
		runner := pipeline.NewRunner(counter, interrupt, opts...)
		if err := runner.Connect(ctx, stage); err != nil {
			return nil, fmt.Errorf("connecting adapter %d: %w", i, err)
		}
		upstream = runner
	}
	return upstream, nil
}
