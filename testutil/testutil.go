package testutil

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/grovetools/niribar/pkg/niri"
	"github.com/stretchr/testify/require"
)

// Workspace builds a workspace fixture. An empty output means "not placed".
func Workspace(id uint64, output string, idx uint8) niri.Workspace {
	ws := niri.Workspace{ID: id, Idx: idx}
	if output != "" {
		ws.Output = niri.Ptr(output)
	}
	return ws
}

// Window builds a tiled window fixture on the given workspace.
func Window(id, workspaceID uint64, title string) niri.Window {
	return niri.Window{
		ID:          id,
		Title:       niri.Ptr(title),
		WorkspaceID: niri.Ptr(workspaceID),
	}
}

// RandomString generates a random string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}

// SocketPath returns a short unix socket path that is removed after the test.
// t.TempDir can exceed the sun_path limit on some systems.
func SocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "niri")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, RandomString(6)+".sock")
}

// FakeNiri is a niri IPC server speaking the line-delimited JSON protocol.
// Each connection handles a single request.
type FakeNiri struct {
	Path string

	// Replies maps a request (its JSON text, e.g. `"Windows"`) to the raw reply line.
	Replies map[string]string
	// Events are written one per line after an EventStream handshake; the
	// connection is closed afterwards.
	Events []string
	// StreamReply overrides the EventStream handshake reply.
	StreamReply string

	mu       sync.Mutex
	requests []string
	listener net.Listener
}

// StartFakeNiri starts a fake server on a fresh socket path.
func StartFakeNiri(t *testing.T, configure func(*FakeNiri)) *FakeNiri {
	t.Helper()
	f := &FakeNiri{
		Path:        SocketPath(t),
		Replies:     map[string]string{},
		StreamReply: `{"Ok":"Handled"}`,
	}
	if configure != nil {
		configure(f)
	}

	l, err := net.Listen("unix", f.Path)
	require.NoError(t, err)
	f.listener = l
	t.Cleanup(func() { _ = l.Close() })

	go f.serve()
	return f
}

// Requests returns the requests received so far.
func (f *FakeNiri) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeNiri) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *FakeNiri) handle(conn net.Conn) {
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	req := strings.TrimSpace(line)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if req == `"EventStream"` {
		writeLine(conn, f.StreamReply)
		for _, ev := range f.Events {
			writeLine(conn, ev)
		}
		return
	}

	reply, ok := f.Replies[req]
	if !ok {
		msg, _ := json.Marshal("unknown request " + req)
		reply = `{"Err":` + string(msg) + `}`
	}
	writeLine(conn, reply)
}

func writeLine(conn net.Conn, s string) {
	_, _ = conn.Write([]byte(s + "\n"))
}
