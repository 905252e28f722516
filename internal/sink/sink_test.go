package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/niribar/config"
	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/pkg/niri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *projection.Tree {
	return &projection.Tree{Outputs: []projection.Output{{
		Name: "eDP-1",
		Workspaces: []projection.Workspace{
			{ID: 1, Index: 1, Name: niri.Ptr("main"), IsActive: true, Windows: []projection.Window{
				{ID: 7, IsFocused: true, Title: niri.Ptr("vim")},
			}},
			{ID: 2, Index: 2},
		},
	}}}
}

func TestJSONLines(t *testing.T) {
	tests := []struct {
		name     string
		envelope string
		pretty   string
		want     string
	}{
		{
			name:     "plain",
			envelope: config.EnvelopePlain,
			pretty:   config.PrettyNever,
			want: `{"eDP-1":[{"id":1,"index":1,"name":"main","is_active":true,"windows":[{"id":7,"is_focused":true,"title":"vim"}]},` +
				`{"id":2,"index":2,"name":null,"is_active":false,"windows":[]}]}` + "\n",
		},
		{
			name:     "outputs envelope",
			envelope: config.EnvelopeOutputs,
			pretty:   config.PrettyNever,
			want: `{"outputs":{"eDP-1":{"workspaces":[{"id":1,"index":1,"name":"main","is_active":true,"windows":[{"id":7,"is_focused":true,"title":"vim"}]},` +
				`{"id":2,"index":2,"name":null,"is_active":false,"windows":[]}]}}}` + "\n",
		},
		{
			name:   "defaults",
			pretty: config.PrettyAuto,
			want: `{"eDP-1":[{"id":1,"index":1,"name":"main","is_active":true,"windows":[{"id":7,"is_focused":true,"title":"vim"}]},` +
				`{"id":2,"index":2,"name":null,"is_active":false,"windows":[]}]}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s, err := NewJSONLines(&buf, tt.envelope, tt.pretty)
			require.NoError(t, err)

			require.NoError(t, s.Emit(sampleTree()))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONLinesOneLinePerDocument(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewJSONLines(&buf, config.EnvelopePlain, config.PrettyNever)
	require.NoError(t, err)

	require.NoError(t, s.Emit(sampleTree()))
	require.NoError(t, s.Emit(&projection.Tree{}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "{}", lines[1])
}

func TestJSONLinesPretty(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewJSONLines(&buf, config.EnvelopePlain, config.PrettyAlways)
	require.NoError(t, err)
	assert.True(t, s.Pretty())

	require.NoError(t, s.Emit(sampleTree()))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"eDP-1\": ["))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestJSONLinesAutoOnBuffer(t *testing.T) {
	s, err := NewJSONLines(&bytes.Buffer{}, config.EnvelopePlain, config.PrettyAuto)
	require.NoError(t, err)
	assert.False(t, s.Pretty(), "a buffer is never a terminal")
}

func TestJSONLinesRejectsBadOptions(t *testing.T) {
	_, err := NewJSONLines(&bytes.Buffer{}, "xml", config.PrettyNever)
	assert.Error(t, err)

	_, err = NewJSONLines(&bytes.Buffer{}, config.EnvelopePlain, "sometimes")
	assert.Error(t, err)
}

func TestChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewChannel(ctx, 1)
	tree := sampleTree()
	require.NoError(t, c.Emit(tree))

	select {
	case got := <-c.C():
		assert.Same(t, tree, got)
	case <-time.After(time.Second):
		t.Fatal("tree not delivered")
	}
}

func TestChannelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewChannel(ctx, 0)
	cancel()

	assert.ErrorIs(t, c.Emit(sampleTree()), context.Canceled)
}
