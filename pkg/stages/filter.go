// Package stages provides the concrete pipeline stages shipped with flume:
// a filesystem source and a field-predicate filter.
package stages

import (
	"context"
	"strings"

	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/value"
)

// Predicate selects records by a substring test on one text field. With
// Invert false a record passes when the field does NOT contain Substring;
// Invert true flips the polarity.
type Predicate struct {
	Field     string
	Substring string
	Invert    bool
}

// Match reports whether v is a record whose configured field passes the
// test. Non-records, missing fields and non-text fields never match.
func (p Predicate) Match(v value.Value) bool {
	field, ok := v.Get(p.Field)
	if !ok {
		return false
	}
	text, ok := field.AsText()
	if !ok {
		return false
	}
	return strings.Contains(text, p.Substring) == p.Invert
}

// Filter passes through upstream records matching its predicate and
// silently drops everything else. It never emits control signals.
type Filter struct {
	pred     Predicate
	upstream pipeline.Connector
}

// NewFilter creates a filter stage with the given predicate.
func NewFilter(pred Predicate) *Filter {
	return &Filter{pred: pred}
}

// Connect wires the upstream connector.
func (f *Filter) Connect(ctx context.Context, upstream pipeline.Connector) error {
	f.upstream = upstream
	return nil
}

// Next pulls the upstream until a record matches, and returns nil when the
// upstream is exhausted. Upstream errors pass through untouched.
func (f *Filter) Next(ctx context.Context) (*pipeline.Output, error) {
	if f.upstream == nil {
		return nil, nil
	}

	for {
		v, err := f.upstream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		if f.pred.Match(*v) {
			return pipeline.FromValue(*v), nil
		}
	}
}
