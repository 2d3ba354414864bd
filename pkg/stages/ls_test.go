package stages_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flume/pkg/stages"
	"github.com/aretw0/flume/pkg/value"
)

func TestLsEmitsRecords(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "nested.txt"), []byte("y"), 0o644))

	ls := stages.NewLs(root)
	ctx := context.Background()
	require.NoError(t, ls.Connect(ctx, nil))

	rows := map[string]string{}
	for {
		out, err := ls.Next(ctx)
		require.NoError(t, err)
		if out == nil {
			break
		}
		v, ok := out.Value()
		require.True(t, ok, "ls only emits values")

		name, ok := v.Get("name")
		require.True(t, ok)
		kind, ok := v.Get("type")
		require.True(t, ok)

		assert.Equal(t, []string{"name", "type"}, v.Columns())

		nameText, _ := name.AsText()
		kindText, _ := kind.AsText()
		rows[nameText] = kindText
	}

	assert.Equal(t, map[string]string{
		"sub":                            "Dir",
		"top.txt":                        "File",
		filepath.Join("sub", "nested.txt"): "File",
	}, rows)
}

func TestLsSymlinkHasNoType(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "target.txt"), []byte("x"), 0o644))
	if err := os.Symlink("target.txt", filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported here: %v", err)
	}

	ls := stages.NewLs(root)
	ctx := context.Background()
	require.NoError(t, ls.Connect(ctx, nil))

	kinds := map[string]value.Kind{}
	for {
		out, err := ls.Next(ctx)
		require.NoError(t, err)
		if out == nil {
			break
		}
		v, ok := out.Value()
		require.True(t, ok)

		name, _ := v.Get("name")
		kind, _ := v.Get("type")
		nameText, _ := name.AsText()
		kinds[nameText] = kind.Kind()
	}

	// The link is neither a directory nor a regular file, so its type
	// cell is Nothing and displays as the empty string.
	assert.Equal(t, value.KindNothing, kinds["link"])
	assert.Equal(t, value.KindText, kinds["target.txt"])
}

func TestLsExhaustionIsPermanent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "only.txt"), nil, 0o644))

	ls := stages.NewLs(root)
	ctx := context.Background()
	require.NoError(t, ls.Connect(ctx, nil))

	out, err := ls.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)

	for i := 0; i < 3; i++ {
		out, err = ls.Next(ctx)
		require.NoError(t, err)
		assert.Nil(t, out)
	}
}

func TestLsWithoutConnect(t *testing.T) {
	ls := stages.NewLs(t.TempDir())
	out, err := ls.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, out, "Next before Connect is an empty stream")
}

func TestLsStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	ls := stages.NewLs(root)
	require.NoError(t, ls.Connect(ctx, nil))

	out, err := ls.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)

	// Cancelling the context lets the enumeration goroutine exit even
	// though nobody drains the remaining entries.
	cancel()
}
