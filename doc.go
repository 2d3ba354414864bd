/*
Package flume is the streaming core of a pipeline-style shell: pull-based
stages that hand typed values downstream on demand, plus an adaptive table
renderer that lays heterogeneous records out within a terminal width budget.

# Concept

A chain alternates between two contracts. A Stage may emit control signals
or data values per pull; a Connector emits only data. The Runner adapter
sits between every pair of stages, executing signals (counter increments,
announcements) and forwarding values, while polling a shared cancellation
signal before each pull. Nothing is produced faster than the downstream
consumes it: backpressure is the pull protocol itself.

# Usage

Chain wires stages together with Runner adapters interleaved:

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/flume"
		"github.com/aretw0/flume/pkg/pipeline"
		"github.com/aretw0/flume/pkg/stages"
		"github.com/aretw0/flume/pkg/table"
	)

	func main() {
		ctx := context.Background()
		counter := pipeline.NewCounter(0)

		sink, err := flume.Chain(ctx, counter, nil,
			stages.NewLs("."),
			stages.NewFilter(stages.Predicate{Field: "name", Substring: "thirdparty"}),
			table.NewStage(myRenderFunc),
		)
		if err != nil {
			log.Fatal(err)
		}

		for {
			v, err := sink.Next(ctx)
			if err != nil {
				log.Fatal(err)
			}
			if v == nil {
				break
			}
		}
	}

The flume command wires this exact chain with a termenv grid renderer; see
cmd/flume.
*/
package flume
