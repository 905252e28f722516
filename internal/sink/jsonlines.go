// Package sink writes projected trees to their consumers.
package sink

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/grovetools/niribar/config"
	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/internal/projection"
	"github.com/mattn/go-isatty"
)

// JSONLines writes one JSON document per line. Consumers such as eww's
// deflisten read stdout line by line, so every document is written with a
// single Write call.
type JSONLines struct {
	mu       sync.Mutex
	w        io.Writer
	envelope string
	pretty   bool
}

// NewJSONLines creates a sink for w. envelope is config.EnvelopePlain or
// config.EnvelopeOutputs; pretty is one of the config.Pretty* modes.
func NewJSONLines(w io.Writer, envelope, pretty string) (*JSONLines, error) {
	switch envelope {
	case config.EnvelopePlain, config.EnvelopeOutputs:
	case "":
		envelope = config.EnvelopePlain
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown envelope: "+envelope)
	}

	s := &JSONLines{w: w, envelope: envelope}
	switch pretty {
	case config.PrettyAlways:
		s.pretty = true
	case config.PrettyNever:
	case config.PrettyAuto, "":
		s.pretty = isTerminal(w)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown pretty mode: "+pretty)
	}
	return s, nil
}

// Pretty reports whether documents are indented.
func (s *JSONLines) Pretty() bool {
	return s.pretty
}

// Emit writes tree as one document.
func (s *JSONLines) Emit(tree *projection.Tree) error {
	data, err := s.encode(tree)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode tree")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(data)
	return err
}

func (s *JSONLines) encode(tree *projection.Tree) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.envelope == config.EnvelopeOutputs {
		data, err = tree.MarshalEnvelope()
	} else {
		data, err = tree.MarshalJSON()
	}
	if err != nil {
		return nil, err
	}

	if s.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}
	return append(data, '\n'), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
