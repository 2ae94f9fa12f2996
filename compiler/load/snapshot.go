package load

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion is bumped whenever the snapshot layout changes.
const snapshotVersion = 1

type (
	snapshot struct {
		Version  int               `msgpack:"v"`
		Types    []*snapshotType   `msgpack:"types"`
		Settings map[string]string `msgpack:"settings,omitempty"`
	}

	snapshotType struct {
		Name    string           `msgpack:"name"`
		Extends string           `msgpack:"extends,omitempty"`
		Fields  []*snapshotField `msgpack:"fields"`
		Record  bool             `msgpack:"record,omitempty"`
		Values  []string         `msgpack:"values"`
		Enum    bool             `msgpack:"enum,omitempty"`
		DBBase  bool             `msgpack:"db_base,omitempty"`
	}

	snapshotField struct {
		Name string `msgpack:"name"`
		Type string `msgpack:"type"`
	}
)

// EncodeSnapshot encodes the model in a canonical msgpack form. Equal models
// always encode to equal bytes, so snapshots can be compared directly.
func EncodeSnapshot(m *Model) ([]byte, error) {
	return EncodeSnapshotWith(m, nil)
}

// EncodeSnapshotWith is like EncodeSnapshot, but also records the given
// generation settings, so a settings change alters the snapshot as well.
func EncodeSnapshotWith(m *Model, settings map[string]string) ([]byte, error) {
	s := &snapshot{Version: snapshotVersion, Settings: settings}
	for _, name := range m.Names() {
		d := m.defs[name]
		st := &snapshotType{
			Name:    d.Name,
			Extends: d.Extends,
			Record:  d.Fields != nil,
			Values:  d.Values,
			Enum:    d.Values != nil,
			DBBase:  d.Meta.DBBase,
		}
		for _, f := range d.Fields {
			st.Fields = append(st.Fields, &snapshotField{Name: f.Name, Type: f.Type.String()})
		}
		s.Types = append(s.Types, st)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("load: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot rebuilds a model from bytes produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Model, error) {
	m, _, err := DecodeSnapshotWith(data)
	return m, err
}

// DecodeSnapshotWith rebuilds the model and the settings recorded by
// EncodeSnapshotWith.
func DecodeSnapshotWith(data []byte) (*Model, map[string]string, error) {
	var s snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, nil, fmt.Errorf("load: unsupported snapshot version %d", s.Version)
	}
	m := NewModel()
	for _, st := range s.Types {
		d := &Definition{
			Name:    st.Name,
			Extends: st.Extends,
			Meta:    Meta{DBBase: st.DBBase},
		}
		if st.Record {
			d.Fields = make([]*Field, 0, len(st.Fields))
		}
		if st.Enum {
			d.Values = append([]string{}, st.Values...)
		}
		for _, sf := range st.Fields {
			t, err := parseCanonical(sf.Type)
			if err != nil {
				return nil, nil, fmt.Errorf("load: decode snapshot: type %s field %s: %w", st.Name, sf.Name, err)
			}
			d.Fields = append(d.Fields, &Field{Name: sf.Name, Type: t})
		}
		m.Add(d)
	}
	return m, s.Settings, nil
}

// parseCanonical parses the Type.String form back into a Type.
func parseCanonical(s string) (Type, error) {
	if rest, ok := strings.CutSuffix(s, "!"); ok {
		t, err := parseCanonical(rest)
		if err != nil {
			return nil, err
		}
		return Required{Type: t}, nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		t, err := parseCanonical(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return ArrayOf{Elem: t}, nil
	}
	if !isIdent(s) {
		return nil, fmt.Errorf("invalid type %q", s)
	}
	return Token(s), nil
}
