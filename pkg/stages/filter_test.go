package stages_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/stages"
	"github.com/aretw0/flume/pkg/value"
)

// valuesConnector replays a fixed list of values, then reports end of stream.
type valuesConnector struct {
	values []value.Value
	err    error
}

func (c *valuesConnector) Connect(ctx context.Context, upstream pipeline.Stage) error {
	return nil
}

func (c *valuesConnector) Next(ctx context.Context) (*value.Value, error) {
	if c.err != nil {
		return nil, c.err
	}
	if len(c.values) == 0 {
		return nil, nil
	}
	v := c.values[0]
	c.values = c.values[1:]
	return &v, nil
}

func record(name string) value.Value {
	return value.Record(value.Field{Name: "name", Value: value.Text(name)})
}

func drain(t *testing.T, f *stages.Filter) []value.Value {
	t.Helper()
	var out []value.Value
	for {
		o, err := f.Next(context.Background())
		require.NoError(t, err)
		if o == nil {
			return out
		}
		v, ok := o.Value()
		require.True(t, ok, "filter only emits values")
		out = append(out, v)
	}
}

func TestFilterPredicate(t *testing.T) {
	t.Run("Drops Records Containing Substring", func(t *testing.T) {
		upstream := &valuesConnector{values: []value.Value{
			record("src/foo.rs"),
			record("thirdparty/bar.rs"),
		}}
		f := stages.NewFilter(stages.Predicate{Field: "name", Substring: "thirdparty"})
		require.NoError(t, f.Connect(context.Background(), upstream))

		out := drain(t, f)
		require.Len(t, out, 1)
		assert.Equal(t, "{name: src/foo.rs}", out[0].String())
	})

	t.Run("Invert Keeps Matches", func(t *testing.T) {
		upstream := &valuesConnector{values: []value.Value{
			record("src/foo.rs"),
			record("thirdparty/bar.rs"),
		}}
		f := stages.NewFilter(stages.Predicate{Field: "name", Substring: "thirdparty", Invert: true})
		require.NoError(t, f.Connect(context.Background(), upstream))

		out := drain(t, f)
		require.Len(t, out, 1)
		assert.Equal(t, "{name: thirdparty/bar.rs}", out[0].String())
	})

	t.Run("Drops Non-Records And Missing Fields", func(t *testing.T) {
		upstream := &valuesConnector{values: []value.Value{
			value.Text("plain text"),
			value.Record(value.Field{Name: "other", Value: value.Text("x")}),
			value.Record(value.Field{Name: "name", Value: value.Bool(true)}),
			record("keeper"),
		}}
		f := stages.NewFilter(stages.Predicate{Field: "name", Substring: "zzz"})
		require.NoError(t, f.Connect(context.Background(), upstream))

		out := drain(t, f)
		require.Len(t, out, 1)
		assert.Equal(t, "{name: keeper}", out[0].String())
	})
}

func TestFilterErrorPassThrough(t *testing.T) {
	boom := errors.New("upstream broke")
	f := stages.NewFilter(stages.Predicate{Field: "name"})
	require.NoError(t, f.Connect(context.Background(), &valuesConnector{err: boom}))

	_, err := f.Next(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFilterWithoutUpstream(t *testing.T) {
	f := stages.NewFilter(stages.Predicate{Field: "name"})
	o, err := f.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, o)
}
