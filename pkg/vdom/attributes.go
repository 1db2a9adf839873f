package vdom

import (
	"sort"
	"strings"
)

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf creates an attribute or property with any key.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// ID sets the element id.
func ID(id string) Attr { return attr("id", id) }

// Class sets space-joined class names. Several Class arguments on one
// element accumulate.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf is Class(name) when on is true and nothing otherwise.
func ClassIf(on bool, name string) Attr {
	if !on {
		return Attr{}
	}
	return attr("class", name)
}

// Classes joins class names given as strings, string slices, or
// map[string]bool sets (enabled keys in sorted order). Empty names are
// skipped.
func Classes(parts ...any) Attr {
	var names []string
	add := func(s string) {
		if s != "" {
			names = append(names, s)
		}
	}
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			add(v)
		case []string:
			for _, s := range v {
				add(s)
			}
		case map[string]bool:
			keys := make([]string, 0, len(v))
			for k, on := range v {
				if on {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)
			for _, k := range keys {
				add(k)
			}
		}
	}
	return attr("class", strings.Join(names, " "))
}

func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets data-<key>.
func Data(key, value string) Attr { return attr("data-"+key, value) }

func Role(role string) Attr        { return attr("role", role) }
func AriaLabel(label string) Attr  { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr  { return attr("aria-hidden", hidden) }
func TitleAttr(title string) Attr  { return attr("title", title) }
func Href(url string) Attr         { return attr("href", url) }
func Target(target string) Attr    { return attr("target", target) }
func Type(t string) Attr           { return attr("type", t) }
func Name(name string) Attr        { return attr("name", name) }
func Placeholder(text string) Attr { return attr("placeholder", text) }
func Src(url string) Attr          { return attr("src", url) }
func Alt(text string) Attr         { return attr("alt", text) }
func Open(open bool) Attr          { return attr("open", open) }

// Native properties. The host keeps these in sync with their reflected
// attributes.

func TabIndex(index int) Attr     { return attr("tabIndex", index) }
func Hidden(hidden bool) Attr     { return attr("hidden", hidden) }
func Value(value string) Attr     { return attr("value", value) }
func Checked(checked bool) Attr   { return attr("checked", checked) }
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// For sets a label's htmlFor property.
func For(id string) Attr { return attr("htmlFor", id) }
