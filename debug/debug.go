// Package debug provides the field-dump contract used by the rest of the
// module to render verbose log output without paying the formatting cost
// when logging is disabled.
package debug

import (
	"fmt"
	"sort"
	"strings"
)

// DebugStruct is the interface to signify that the struct has internal
// fields, which can be serialized by the .Fields method.
//
// Please notice that the .Fields method can return nil, and the caller
// must handle that.
type DebugStruct interface {
	Fields() map[string]any
}

// JoinDebugStructFields with comma, in a stable (sorted by key) order.
func JoinDebugStructFields(s DebugStruct) string {
	m := s.Fields()
	if m == nil {
		return ""
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]string, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, fmt.Sprintf("%s: %v", key, m[key]))
	}
	return strings.Join(fields, ", ")
}
