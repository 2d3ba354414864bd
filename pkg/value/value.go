// Package value defines the data model flowing through flume pipelines.
//
// A Value is a closed tagged union: plain scalars (Text, Bool, Nothing) and
// two compound shapes, Record and List. Record field order is significant:
// it is preserved on insertion and used verbatim as the display column order
// by the table renderer.
package value

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	// KindNothing is the absence of data. It displays as the empty string.
	KindNothing Kind = iota
	// KindText is a plain string scalar.
	KindText
	// KindBool is a boolean scalar.
	KindBool
	// KindRecord is an ordered field-name to Value mapping with unique keys.
	KindRecord
	// KindList is an ordered sequence of values.
	KindList
)

// Value is a single datum in the pipeline. The zero Value is Nothing.
type Value struct {
	kind   Kind
	text   string
	truth  bool
	record *orderedmap.OrderedMap[string, Value]
	list   []Value
}

// Field is a named record entry, used by the Record constructor.
type Field struct {
	Name  string
	Value Value
}

// Text returns a string scalar.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Bool returns a boolean scalar.
func Bool(b bool) Value {
	return Value{kind: KindBool, truth: b}
}

// Nothing returns the absent value.
func Nothing() Value {
	return Value{}
}

// List returns an ordered sequence of values.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Record returns a row-like value. Fields keep their insertion order; a
// repeated name overwrites the earlier value but keeps its original position,
// so keys stay unique.
func Record(fields ...Field) Value {
	om := orderedmap.New[string, Value]()
	for _, f := range fields {
		om.Set(f.Name, f.Value)
	}
	return Value{kind: KindRecord, record: om}
}

// Kind reports which variant this value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// AsText returns the string payload of a Text value.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsBool returns the payload of a Bool value.
func (v Value) AsBool() (bool, bool) {
	return v.truth, v.kind == KindBool
}

// Items returns the elements of a List value, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Get looks up a record field by name.
func (v Value) Get(name string) (Value, bool) {
	if v.kind != KindRecord {
		return Value{}, false
	}
	return v.record.Get(name)
}

// Columns returns the record field names in insertion order. Non-record
// values have no columns.
func (v Value) Columns() []string {
	if v.kind != KindRecord {
		return nil
	}
	cols := make([]string, 0, v.record.Len())
	for pair := v.record.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Key)
	}
	return cols
}

// SameColumns reports whether two values share a column signature: the same
// field names in the same order, where "no columns" is itself a signature.
func (v Value) SameColumns(other Value) bool {
	a, b := v.Columns(), other.Columns()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the value for display. Records render as {k: v, ...},
// lists as [a, b] and Nothing as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.truth)
	case KindRecord:
		var sb strings.Builder
		sb.WriteString("{")
		first := true
		for pair := v.record.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(pair.Key)
			sb.WriteString(": ")
			sb.WriteString(pair.Value.String())
		}
		sb.WriteString("}")
		return sb.String()
	case KindList:
		var sb strings.Builder
		sb.WriteString("[")
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.String())
		}
		sb.WriteString("]")
		return sb.String()
	default:
		return ""
	}
}
