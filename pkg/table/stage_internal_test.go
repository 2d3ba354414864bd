package table

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/value"
)

type slowFeed struct {
	remaining int
}

func (c *slowFeed) Connect(ctx context.Context, upstream pipeline.Stage) error {
	return nil
}

func (c *slowFeed) Next(ctx context.Context) (*value.Value, error) {
	if c.remaining == 0 {
		return nil, nil
	}
	c.remaining--
	v := value.Record(value.Field{Name: "n", Value: value.Text(fmt.Sprintf("%d", c.remaining))})
	return &v, nil
}

// The elapsed check runs every 100 pulls; a page older than the time budget
// flushes partially instead of waiting for the cap.
func TestTimeBudgetFlushesPartialPage(t *testing.T) {
	var pages []int
	s := NewStage(func(v *View) error {
		pages = append(pages, len(v.Entries))
		return nil
	}, WithWidth(80))
	if err := s.Connect(context.Background(), &slowFeed{remaining: 150}); err != nil {
		t.Fatal(err)
	}

	// Stub the clock: the first page starts at t0 and looks two seconds
	// old at its first interval check; the second page never reaches one.
	base := time.Unix(0, 0)
	calls := 0
	s.now = func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.Add(2 * time.Second)
	}

	out, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatal("sink should not yield values")
	}

	want := []int{100, 50}
	if len(pages) != len(want) {
		t.Fatalf("expected %v page sizes, got %v", want, pages)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Fatalf("page %d: expected %d rows, got %d", i, want[i], pages[i])
		}
	}
}
