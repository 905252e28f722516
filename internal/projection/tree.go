// Package projection derives the display tree (output → workspace → window)
// from the flat reconciled model.
package projection

import (
	"bytes"
	"encoding/json"
)

// Tree is the projected view of the compositor, keyed by output name.
// Outputs, workspaces and windows are always held in sorted order.
type Tree struct {
	Outputs []Output

	// Dropped holds ids of tiled windows that pointed at a workspace missing from
	// the projection while the model was still syncing. Not serialized.
	Dropped []uint64
}

// Output is one monitor and its workspaces, sorted by workspace id.
type Output struct {
	Name       string
	Workspaces []Workspace
}

// Workspace is a workspace summary. Field order matches the emitted JSON.
type Workspace struct {
	ID       uint64   `json:"id"`
	Index    uint8    `json:"index"`
	Name     *string  `json:"name"`
	IsActive bool     `json:"is_active"`
	Windows  []Window `json:"windows"`
}

// Window is a tiled window summary.
type Window struct {
	ID        uint64  `json:"id"`
	IsFocused bool    `json:"is_focused"`
	Title     *string `json:"title"`
}

// Output returns the named output, or nil.
func (t *Tree) Output(name string) *Output {
	for i := range t.Outputs {
		if t.Outputs[i].Name == name {
			return &t.Outputs[i]
		}
	}
	return nil
}

// MarshalJSON renders {"<output>": [workspace, ...], ...} with keys in order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, out := range t.Outputs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeOutput(&buf, out.Name, out.Workspaces); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalEnvelope renders the layout older eww configs expect:
// {"outputs": {"<output>": {"workspaces": [...]}}}.
func (t *Tree) MarshalEnvelope() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"outputs":{`)
	for i, out := range t.Outputs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(out.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(`:{"workspaces":`)
		list, err := json.Marshal(workspaceList(out.Workspaces))
		if err != nil {
			return nil, err
		}
		buf.Write(list)
		buf.WriteByte('}')
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func writeOutput(buf *bytes.Buffer, name string, workspaces []Workspace) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	list, err := json.Marshal(workspaceList(workspaces))
	if err != nil {
		return err
	}
	buf.Write(list)
	return nil
}

// workspaceList makes sure empty lists serialize as [] rather than null.
func workspaceList(in []Workspace) []Workspace {
	out := make([]Workspace, len(in))
	for i, ws := range in {
		out[i] = ws
		if out[i].Windows == nil {
			out[i].Windows = []Window{}
		}
	}
	return out
}
