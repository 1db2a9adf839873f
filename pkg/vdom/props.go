package vdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// EventPrefix marks event handler properties.
const EventPrefix = "on"

// IsEventKey returns true if the key is an event handler (starts with "on").
// Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func IsEventKey(key string) bool {
	return len(key) > len(EventPrefix) && strings.EqualFold(key[:len(EventPrefix)], EventPrefix)
}

// EventName returns the lower-cased event type of an event key
// ("onClick" -> "click").
func EventName(key string) string {
	if !IsEventKey(key) {
		return ""
	}
	return strings.ToLower(key[len(EventPrefix):])
}

// PropsEqual compares two prop values for equality.
func PropsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	if reflect.TypeOf(a).Kind() == reflect.Func {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// PropToString converts a prop value to its attribute string form.
func PropToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
