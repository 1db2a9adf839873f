package htmlhost

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/vtree/pkg/host"
)

// propKind is the value type of an emulated native property.
type propKind uint8

const (
	propString propKind = iota
	propBool
	propNumber
)

// propSpec describes one native property and the attribute it reflects.
type propSpec struct {
	attr string
	kind propKind
}

// globalProps are settable on every element.
var globalProps = map[string]propSpec{
	"id":              {attr: "id", kind: propString},
	"className":       {attr: "class", kind: propString},
	"title":           {attr: "title", kind: propString},
	"lang":            {attr: "lang", kind: propString},
	"dir":             {attr: "dir", kind: propString},
	"hidden":          {attr: "hidden", kind: propBool},
	"tabIndex":        {attr: "tabindex", kind: propNumber},
	"accessKey":       {attr: "accesskey", kind: propString},
	"draggable":       {attr: "draggable", kind: propBool},
	"contentEditable": {attr: "contenteditable", kind: propString},
}

// tagProps are settable on specific elements.
var tagProps = map[string]map[string]propSpec{
	"input": {
		"value":       {attr: "value", kind: propString},
		"checked":     {attr: "checked", kind: propBool},
		"disabled":    {attr: "disabled", kind: propBool},
		"type":        {attr: "type", kind: propString},
		"name":        {attr: "name", kind: propString},
		"placeholder": {attr: "placeholder", kind: propString},
		"readOnly":    {attr: "readonly", kind: propBool},
		"required":    {attr: "required", kind: propBool},
		"multiple":    {attr: "multiple", kind: propBool},
		"autofocus":   {attr: "autofocus", kind: propBool},
	},
	"textarea": {
		"value":       {attr: "value", kind: propString},
		"disabled":    {attr: "disabled", kind: propBool},
		"name":        {attr: "name", kind: propString},
		"placeholder": {attr: "placeholder", kind: propString},
		"readOnly":    {attr: "readonly", kind: propBool},
		"required":    {attr: "required", kind: propBool},
	},
	"select": {
		"value":    {attr: "value", kind: propString},
		"disabled": {attr: "disabled", kind: propBool},
		"multiple": {attr: "multiple", kind: propBool},
		"name":     {attr: "name", kind: propString},
	},
	"option": {
		"value":    {attr: "value", kind: propString},
		"selected": {attr: "selected", kind: propBool},
		"disabled": {attr: "disabled", kind: propBool},
	},
	"button": {
		"disabled": {attr: "disabled", kind: propBool},
		"type":     {attr: "type", kind: propString},
		"name":     {attr: "name", kind: propString},
		"value":    {attr: "value", kind: propString},
	},
	"form": {
		"action": {attr: "action", kind: propString},
		"method": {attr: "method", kind: propString},
	},
	"a": {
		"href":   {attr: "href", kind: propString},
		"target": {attr: "target", kind: propString},
	},
	"img": {
		"src": {attr: "src", kind: propString},
		"alt": {attr: "alt", kind: propString},
	},
	"label": {
		"htmlFor": {attr: "for", kind: propString},
	},
	"details": {
		"open": {attr: "open", kind: propBool},
	},
}

func (w *Node) propSpec(key string) (propSpec, bool) {
	if spec, ok := globalProps[key]; ok {
		return spec, true
	}
	spec, ok := tagProps[w.Tag()][key]
	return spec, ok
}

// HasProperty reports whether key is a native property of this element.
func (w *Node) HasProperty(key string) bool {
	if w.Type() != host.ElementNode {
		return false
	}
	_, ok := w.propSpec(key)
	return ok
}

// Property returns the current value of a native property. Unset
// properties read from their reflected attribute, as in a browser.
func (w *Node) Property(key string) any {
	if v, ok := w.props[key]; ok {
		return v
	}
	spec, ok := w.propSpec(key)
	if !ok {
		return nil
	}
	raw, present := attr(w.n, spec.attr)
	switch spec.kind {
	case propBool:
		return present
	case propNumber:
		if !present {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0
		}
		return n
	default:
		return raw
	}
}

// SetProperty sets a native property and reflects it into its attribute.
// Keys that are not native properties are ignored.
func (w *Node) SetProperty(key string, value any) {
	spec, ok := w.propSpec(key)
	if !ok || w.Type() != host.ElementNode {
		return
	}
	if w.props == nil {
		w.props = make(map[string]any)
	}
	w.props[key] = value

	switch spec.kind {
	case propBool:
		if truthy(value) {
			setAttr(w.n, spec.attr, "")
		} else {
			removeAttr(w.n, spec.attr)
		}
	default:
		s := stringify(value)
		if s == "" {
			removeAttr(w.n, spec.attr)
		} else {
			setAttr(w.n, spec.attr, s)
		}
	}
	w.doc.log(host.Mutation{Op: host.MutSetProperty, Target: w.id, Key: key, Value: stringify(value)})
}

// forgetReflected drops cached property values backed by attribute key so
// later reads see the attribute.
func (w *Node) forgetReflected(key string) {
	if len(w.props) == 0 {
		return
	}
	for name := range w.props {
		if spec, ok := w.propSpec(name); ok && spec.attr == key {
			delete(w.props, name)
		}
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
