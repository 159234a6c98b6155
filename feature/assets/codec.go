package assets

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// ErrMissingTypeName is returned when a payload has no "typeName".
var ErrMissingTypeName = errors.New("asset payload has no typeName")

var registry = struct {
	sync.RWMutex
	factories map[string]func() Asset
}{factories: make(map[string]func() Asset)}

// Register binds a type name to a factory used by Decode.
// Registering the same name again replaces the factory.
func Register(typeName string, factory func() Asset) {
	registry.Lock()
	defer registry.Unlock()
	registry.factories[typeName] = factory
}

// Lookup returns the factory registered for a type name.
func Lookup(typeName string) (func() Asset, bool) {
	registry.RLock()
	defer registry.RUnlock()
	f, ok := registry.factories[typeName]
	return f, ok
}

// New returns an empty asset of the given type. Unregistered types yield
// a Generic asset.
func New(typeName string) Asset {
	if f, ok := Lookup(typeName); ok {
		a := f()
		a.Header().TypeName = typeName
		return a
	}
	return &Generic{Entity: Entity{TypeName: typeName}}
}

func init() {
	Register(TypeConnection, func() Asset { return &Connection{} })
	Register(TypeDatabase, func() Asset { return &Database{} })
	Register(TypeSchema, func() Asset { return &Schema{} })
	Register(TypeTable, func() Asset { return &Table{} })
	Register(TypeView, func() Asset { return &View{} })
	Register(TypeColumn, func() Asset { return &Column{} })
	Register(TypeGlossary, func() Asset { return &Glossary{} })
	Register(TypeGlossaryTerm, func() Asset { return &GlossaryTerm{} })
	Register(TypeTableauDashboard, func() Asset { return &TableauDashboard{} })
	Register(TypeReadme, func() Asset { return &Readme{} })
}

// Marshal encodes an asset in its wire envelope.
func Marshal(a Asset) ([]byte, error) {
	return json.Marshal(a)
}

// Decode decodes a single asset, choosing its Go type from "typeName".
func Decode(data []byte) (Asset, error) {
	var probe struct {
		TypeName string `json:"typeName"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to read asset type: %w", err)
	}
	if probe.TypeName == "" {
		return nil, ErrMissingTypeName
	}
	a := New(probe.TypeName)
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", probe.TypeName, err)
	}
	return a, nil
}

// DecodeList decodes a JSON array of assets of mixed types.
func DecodeList(data []byte) (List, error) {
	var l List
	if err := l.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return l, nil
}

// List is a heterogeneous asset list that decodes polymorphically.
type List []Asset

// UnmarshalJSON decodes each element through Decode.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(List, 0, len(raw))
	for i, r := range raw {
		a, err := Decode(r)
		if err != nil {
			return fmt.Errorf("asset %d: %w", i, err)
		}
		out = append(out, a)
	}
	*l = out
	return nil
}

// entityHeader drops Entity's methods so it can be embedded in envelopes.
type entityHeader Entity

type outboundEnvelope struct {
	entityHeader
	Attributes json.RawMessage `json:"attributes"`
}

type inboundEnvelope struct {
	entityHeader
	Attributes             json.RawMessage `json:"attributes"`
	RelationshipAttributes json.RawMessage `json:"relationshipAttributes"`
}

func marshalEntity(e *Entity, attrs any) ([]byte, error) {
	body, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	if len(e.NullFields) > 0 {
		fields := make(map[string]json.RawMessage)
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		for _, name := range e.NullFields {
			fields[name] = json.RawMessage("null")
		}
		if body, err = json.Marshal(fields); err != nil {
			return nil, err
		}
	}
	return json.Marshal(outboundEnvelope{entityHeader: entityHeader(*e), Attributes: body})
}

// unmarshalEntity fills the header and attribute set and returns the raw
// attributes object. Relationship attributes overlay plain attributes.
func unmarshalEntity(data []byte, e *Entity, attrs any) (json.RawMessage, error) {
	env := inboundEnvelope{entityHeader: entityHeader(*e)}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	*e = Entity(env.entityHeader)
	for _, part := range []json.RawMessage{env.Attributes, env.RelationshipAttributes} {
		if isEmptyJSON(part) {
			continue
		}
		if err := json.Unmarshal(part, attrs); err != nil {
			return nil, err
		}
	}
	return env.Attributes, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

var (
	commonKeysOnce sync.Once
	commonKeys     map[string]struct{}
)

// commonAttributeNames returns the JSON names of AssetAttributes fields.
func commonAttributeNames() map[string]struct{} {
	commonKeysOnce.Do(func() {
		commonKeys = make(map[string]struct{})
		t := reflect.TypeOf(AssetAttributes{})
		for i := 0; i < t.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if name != "" && name != "-" {
				commonKeys[name] = struct{}{}
			}
		}
	})
	return commonKeys
}
