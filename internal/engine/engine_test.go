package engine

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"testing"

	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/pkg/niri"
	"github.com/grovetools/niribar/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	events []niri.Event
	end    error
}

func (s *sliceSource) Next(ctx context.Context) (niri.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.events) == 0 {
		if s.end != nil {
			return nil, s.end
		}
		return nil, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

type recordSink struct {
	docs []string
	err  error
}

func (r *recordSink) Emit(tree *projection.Tree) error {
	if r.err != nil {
		return r.err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	r.docs = append(r.docs, string(data))
	return nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func bootEvents() []niri.Event {
	return []niri.Event{
		&niri.WorkspacesChanged{Workspaces: []niri.Workspace{
			testutil.Workspace(2, "eDP-1", 2),
			testutil.Workspace(1, "eDP-1", 1),
		}},
		&niri.WorkspaceActivated{ID: 1, Focused: true},
		&niri.WindowsChanged{Windows: []niri.Window{testutil.Window(10, 1, "term")}},
		&niri.Unknown{Name: "OverviewOpenedOrClosed", Raw: json.RawMessage(`{"is_open":true}`)},
	}
}

func TestRunEmitsPerEvent(t *testing.T) {
	sink := &recordSink{}
	e := New(&sliceSource{events: bootEvents()}, sink, testLogger(), Options{})

	require.NoError(t, e.Run(context.Background()))
	require.Len(t, sink.docs, 4)

	assert.JSONEq(t, `{"eDP-1":[
		{"id":1,"index":1,"name":null,"is_active":false,"windows":[]},
		{"id":2,"index":2,"name":null,"is_active":false,"windows":[]}]}`, sink.docs[0])
	assert.JSONEq(t, `{"eDP-1":[
		{"id":1,"index":1,"name":null,"is_active":true,"windows":[{"id":10,"is_focused":false,"title":"term"}]},
		{"id":2,"index":2,"name":null,"is_active":false,"windows":[]}]}`, sink.docs[2])
	assert.Equal(t, sink.docs[2], sink.docs[3], "unknown events re-emit the same tree")
	assert.True(t, e.State().Synced())
}

func TestRunDedupe(t *testing.T) {
	sink := &recordSink{}
	e := New(&sliceSource{events: bootEvents()}, sink, testLogger(), Options{Dedupe: true})

	require.NoError(t, e.Run(context.Background()))
	assert.Len(t, sink.docs, 3)
}

func TestRunFatal(t *testing.T) {
	sink := &recordSink{}
	events := append(bootEvents(), &niri.WorkspaceActivated{ID: 99, Focused: true})
	e := New(&sliceSource{events: events}, sink, testLogger(), Options{})

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeReferentialIntegrity))
	assert.Len(t, sink.docs, 4, "documents before the failure are still emitted")
}

func TestRunDanglingWindowWhenSynced(t *testing.T) {
	sink := &recordSink{}
	events := append(bootEvents(), &niri.WindowOpenedOrChanged{Window: testutil.Window(11, 42, "ghost")})
	e := New(&sliceSource{events: events}, sink, testLogger(), Options{})

	err := e.Run(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeReferentialIntegrity))
}

func TestRunDanglingWindowWhileSyncing(t *testing.T) {
	sink := &recordSink{}
	events := []niri.Event{
		&niri.WindowsChanged{Windows: []niri.Window{testutil.Window(10, 1, "term")}},
		&niri.WorkspacesChanged{Workspaces: []niri.Workspace{testutil.Workspace(1, "eDP-1", 1)}},
	}
	e := New(&sliceSource{events: events}, sink, testLogger(), Options{})

	require.NoError(t, e.Run(context.Background()))
	require.Len(t, sink.docs, 2)
	assert.JSONEq(t, `{}`, sink.docs[0])
	assert.Contains(t, sink.docs[1], `"title":"term"`)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordSink{}
	e := New(&sliceSource{events: bootEvents()}, sink, testLogger(), Options{})
	assert.NoError(t, e.Run(ctx))
	assert.Empty(t, sink.docs)
}

func TestRunSourceError(t *testing.T) {
	boom := errors.Protocol("garbage frame", nil)
	e := New(&sliceSource{end: boom}, &recordSink{}, testLogger(), Options{})

	err := e.Run(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeProtocol))
}

func TestRunSinkError(t *testing.T) {
	closed := stderrors.New("broken pipe")
	e := New(&sliceSource{events: bootEvents()}, &recordSink{err: closed}, testLogger(), Options{})

	assert.ErrorIs(t, e.Run(context.Background()), closed)
}

func TestRunOverSocket(t *testing.T) {
	fake := testutil.StartFakeNiri(t, func(f *testutil.FakeNiri) {
		f.Events = []string{
			`{"WorkspacesChanged":{"workspaces":[{"id":1,"idx":1,"name":"web","output":"HDMI-A-1","is_urgent":false,"is_active":true,"is_focused":true,"active_window_id":null}]}}`,
			`{"WindowsChanged":{"windows":[{"id":5,"title":"firefox","app_id":"firefox","pid":100,"workspace_id":1,"is_focused":true,"is_floating":false,"is_urgent":false}]}}`,
			`{"WindowClosed":{"id":5}}`,
		}
	})

	client, err := niri.NewClient(fake.Path, testLogger())
	require.NoError(t, err)
	stream, err := client.EventStream(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	sink := &recordSink{}
	require.NoError(t, New(stream, sink, testLogger(), Options{}).Run(context.Background()))
	require.Len(t, sink.docs, 3)
	assert.JSONEq(t, `{"HDMI-A-1":[{"id":1,"index":1,"name":"web","is_active":true,
		"windows":[{"id":5,"is_focused":true,"title":"firefox"}]}]}`, sink.docs[1])
	assert.JSONEq(t, `{"HDMI-A-1":[{"id":1,"index":1,"name":"web","is_active":true,"windows":[]}]}`, sink.docs[2])
}
