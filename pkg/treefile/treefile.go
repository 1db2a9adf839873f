package treefile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Resolver supplies the Go values a tree document refers to by name.
type Resolver struct {
	// Components maps `component:` names to render functions.
	Components map[string]vdom.ComponentFunc

	// Actions maps event property values to handlers.
	Actions map[string]events.Handler
}

// Node keys.
const (
	keyTag       = "tag"
	keyComponent = "component"
	keyProps     = "props"
	keyChildren  = "children"
)

// Parse decodes a YAML or JSON tree document into a raw description
// suitable for vdom.Normalize.
func Parse(data []byte, res Resolver) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("V020").Wrap(err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	d := &decoder{res: res}
	return d.node(&doc)
}

// Decode reads and decodes a tree document.
func Decode(r io.Reader, res Resolver) (any, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.New("V020").Wrap(err)
	}
	return Parse(buf.Bytes(), res)
}

// DecodeFile reads and decodes the tree document at path.
func DecodeFile(path string, res Resolver) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("V020").WithDetail(path).Wrap(err)
	}
	return Parse(data, res)
}

type decoder struct {
	res Resolver
}

func (d *decoder) node(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.node(n.Content[0])
	case yaml.AliasNode:
		return d.node(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, syntaxError(n, "%v", err)
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.node(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return d.element(n)
	default:
		return nil, syntaxError(n, "unexpected node kind %d", n.Kind)
	}
}

// element decodes a {tag|component, props, children} mapping.
func (d *decoder) element(n *yaml.Node) (any, error) {
	desc := &vdom.Desc{}
	var tag, component string

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case keyTag:
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				return nil, syntaxError(val, "tag must be a non-empty string")
			}
			tag = val.Value
		case keyComponent:
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				return nil, syntaxError(val, "component must be a non-empty string")
			}
			component = val.Value
		case keyProps:
			props, err := d.props(val)
			if err != nil {
				return nil, err
			}
			desc.Props = props
		case keyChildren:
			children, err := d.node(val)
			if err != nil {
				return nil, err
			}
			if list, ok := children.([]any); ok {
				desc.Children = list
			} else {
				desc.Children = []any{children}
			}
		default:
			return nil, syntaxError(key, "unknown key %q", key.Value)
		}
	}

	switch {
	case tag != "" && component != "":
		return nil, syntaxError(n, "node has both tag %q and component %q", tag, component)
	case tag != "":
		desc.Type = tag
	case component != "":
		fn, ok := d.res.Components[component]
		if !ok {
			return nil, errors.New("V021").WithDetailf("line %d: component %q", n.Line, component)
		}
		desc.Type = fn
	default:
		return nil, syntaxError(n, "node needs a tag or a component")
	}
	return desc, nil
}

func (d *decoder) props(n *yaml.Node) (vdom.Props, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, syntaxError(n, "props must be a mapping")
	}
	props := make(vdom.Props, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]

		var v any
		if err := val.Decode(&v); err != nil {
			return nil, syntaxError(val, "%v", err)
		}
		if vdom.IsEventKey(key.Value) {
			name, ok := v.(string)
			if !ok {
				return nil, syntaxError(val, "%s must name an action", key.Value)
			}
			h, ok := d.res.Actions[name]
			if !ok {
				return nil, errors.New("V021").WithDetailf("line %d: action %q", val.Line, name)
			}
			v = h
		}
		props[key.Value] = v
	}
	return props, nil
}

func syntaxError(n *yaml.Node, format string, args ...any) error {
	return errors.New("V020").WithDetail(fmt.Sprintf("line %d: ", n.Line) + fmt.Sprintf(format, args...))
}
