package flume_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/flume"
	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/stages"
)

// ExampleChain wires a filesystem source to a filter and drains the chain by
// hand. Real callers usually attach a table stage as the sink instead of
// printing raw records.
func ExampleChain() {
	// 1. Stage a small directory tree to enumerate.
	dir, err := os.MkdirTemp("", "flume-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	for _, name := range []string{"app.txt", "debug.log", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			log.Fatal(err)
		}
	}

	// 2. Build the chain: ls feeding a filter that drops ".log" entries.
	ctx := context.Background()
	counter := pipeline.NewCounter(0)
	out, err := flume.Chain(ctx, counter, nil,
		stages.NewLs(dir),
		stages.NewFilter(stages.Predicate{Field: "name", Substring: ".log"}),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Pull until the chain reports end of stream.
	for {
		v, err := out.Next(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if v == nil {
			break
		}
		fmt.Println(v)
	}

	// Output:
	// {name: app.txt, type: File}
	// {name: notes.txt, type: File}
}
