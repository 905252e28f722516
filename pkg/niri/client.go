package niri

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/grovetools/niribar/errors"
	"github.com/sirupsen/logrus"
)

// SocketEnv is the environment variable niri exports with its IPC socket path.
const SocketEnv = "NIRI_SOCKET"

// maxLineSize bounds a single reply or event line. Full window lists on busy
// sessions run to a few hundred KiB.
const maxLineSize = 16 << 20

// Client talks to a niri IPC socket. Each request uses its own connection.
type Client struct {
	socket string
	dialer net.Dialer
	logger *logrus.Entry
}

// NewClient creates a client for the given socket path. An empty path falls
// back to $NIRI_SOCKET.
func NewClient(socket string, logger *logrus.Entry) (*Client, error) {
	if socket == "" {
		socket = os.Getenv(SocketEnv)
	}
	if socket == "" {
		return nil, errors.SocketNotFound("")
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{socket: socket, logger: logger.WithField("socket", socket)}, nil
}

// Socket returns the socket path this client connects to.
func (c *Client) Socket() string {
	return c.socket
}

// reply is the Result envelope every response is wrapped in.
type reply struct {
	Ok  json.RawMessage `json:"Ok"`
	Err *string         `json:"Err"`
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	if _, err := os.Stat(c.socket); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.SocketNotFound(c.socket)
		}
		return nil, errors.SocketConnect(c.socket, err)
	}
	conn, err := c.dialer.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return nil, errors.SocketConnect(c.socket, err)
	}
	return conn, nil
}

// request sends one request and reads its reply line. The returned reader is
// positioned after the reply, for requests that keep the connection open.
func (c *Client) request(ctx context.Context, name string) (net.Conn, *bufio.Scanner, json.RawMessage, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	// Unblock I/O when ctx ends before the reply arrives.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	req, _ := json.Marshal(name)
	if _, err := conn.Write(append(req, '\n')); err != nil {
		conn.Close()
		return nil, nil, nil, errors.SocketConnect(c.socket, err)
	}
	c.logger.WithField("request", name).Debug("Sent request")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	if !scanner.Scan() {
		conn.Close()
		if ctx.Err() != nil {
			return nil, nil, nil, ctx.Err()
		}
		err := scanner.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, nil, nil, errors.Protocol(fmt.Sprintf("no reply to %s", name), err)
	}

	var r reply
	if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
		conn.Close()
		return nil, nil, nil, errors.Protocol(fmt.Sprintf("malformed reply to %s", name), err)
	}
	if r.Err != nil {
		conn.Close()
		return nil, nil, nil, errors.RequestRejected(name, *r.Err)
	}
	if r.Ok == nil {
		conn.Close()
		return nil, nil, nil, errors.Protocol(fmt.Sprintf("empty reply to %s", name), nil)
	}
	return conn, scanner, r.Ok, nil
}

// Workspaces fetches the current workspace list.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var resp struct {
		Workspaces []Workspace `json:"Workspaces"`
	}
	if err := c.oneShot(ctx, "Workspaces", &resp); err != nil {
		return nil, err
	}
	return resp.Workspaces, nil
}

// Windows fetches the current window list.
func (c *Client) Windows(ctx context.Context) ([]Window, error) {
	var resp struct {
		Windows []Window `json:"Windows"`
	}
	if err := c.oneShot(ctx, "Windows", &resp); err != nil {
		return nil, err
	}
	return resp.Windows, nil
}

func (c *Client) oneShot(ctx context.Context, name string, into any) error {
	conn, _, ok, err := c.request(ctx, name)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := json.Unmarshal(ok, into); err != nil {
		return errors.Protocol(fmt.Sprintf("unexpected response to %s", name), err)
	}
	return nil
}

// EventStream switches a fresh connection into event stream mode.
func (c *Client) EventStream(ctx context.Context) (*EventStream, error) {
	conn, scanner, ok, err := c.request(ctx, "EventStream")
	if err != nil {
		return nil, err
	}

	var handled string
	if err := json.Unmarshal(ok, &handled); err != nil || handled != "Handled" {
		conn.Close()
		return nil, errors.Protocol(fmt.Sprintf("unexpected EventStream reply %s", ok), err)
	}
	c.logger.Info("Event stream opened")

	return &EventStream{conn: conn, scanner: scanner, logger: c.logger}, nil
}

// EventStream reads events from a connection in event stream mode. It is not
// restartable: once Next returns an error, open a new stream.
type EventStream struct {
	conn    net.Conn
	scanner *bufio.Scanner
	logger  *logrus.Entry

	closeOnce sync.Once
}

// Next blocks until the next event arrives. It returns io.EOF when the
// compositor closes the stream and ctx.Err() when ctx ends first.
func (s *EventStream) Next(ctx context.Context) (Event, error) {
	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	if !s.scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := s.scanner.Err(); err != nil {
			return nil, errors.Protocol("event stream read failed", err)
		}
		return nil, io.EOF
	}

	ev, err := DecodeEvent(s.scanner.Bytes())
	if err != nil {
		return nil, errors.Protocol("malformed event", err)
	}
	s.logger.WithField("event", ev.Kind()).Trace("Received event")
	return ev, nil
}

// Close closes the underlying connection.
func (s *EventStream) Close() error {
	var err error
	s.closeOnce.Do(func() { err = s.conn.Close() })
	return err
}
