package signature

import (
	"bytes"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// StyleMap is an insertion-ordered set of CSS properties keyed by their
// camelCase name. Order is part of the rendered output, so two maps with the
// same properties set in a different order serialize differently.
//
// A nil *StyleMap is a valid empty map for every read operation.
type StyleMap struct {
	props *orderedmap.OrderedMap[string, string]
}

// NewStyleMap builds a StyleMap from alternating name/value arguments.
// A trailing name without a value is ignored.
func NewStyleMap(pairs ...string) *StyleMap {
	s := &StyleMap{props: orderedmap.New[string, string]()}
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

func (s *StyleMap) init() {
	if s.props == nil {
		s.props = orderedmap.New[string, string]()
	}
}

// Set stores value under name. An existing property keeps its position.
// An empty value removes the property.
func (s *StyleMap) Set(name, value string) {
	s.init()
	if value == "" {
		s.props.Delete(name)
		return
	}
	s.props.Set(name, value)
}

// Get returns the value stored under name.
func (s *StyleMap) Get(name string) (string, bool) {
	if s == nil || s.props == nil {
		return "", false
	}
	return s.props.Get(name)
}

// Len returns the number of properties.
func (s *StyleMap) Len() int {
	if s == nil || s.props == nil {
		return 0
	}
	return s.props.Len()
}

// Each calls fn for every property in insertion order.
func (s *StyleMap) Each(fn func(name, value string)) {
	if s == nil || s.props == nil {
		return
	}
	for pair := s.props.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns an independent copy. Cloning nil yields an empty map.
func (s *StyleMap) Clone() *StyleMap {
	out := NewStyleMap()
	s.Each(out.Set)
	return out
}

// Merge returns a new map holding s with overrides applied on top: existing
// properties keep their position, new ones are appended in override order and
// empty override values remove the property. Neither input is modified.
//
// Set never stores an empty value, so removals only arrive through maps
// decoded from JSON ({"margin": ""}).
func (s *StyleMap) Merge(overrides *StyleMap) *StyleMap {
	out := s.Clone()
	overrides.Each(out.Set)
	return out
}

// InlineCSS renders the map as an inline style declaration list
// ("font-size:14px;color:#000;").
func (s *StyleMap) InlineCSS() string {
	var b strings.Builder
	s.Each(func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(CamelToKebab(name))
		b.WriteByte(':')
		b.WriteString(value)
		b.WriteByte(';')
	})
	return b.String()
}

// MarshalJSON writes the properties as a JSON object in insertion order.
func (s *StyleMap) MarshalJSON() ([]byte, error) {
	if s == nil || s.props == nil {
		return []byte("{}"), nil
	}
	return s.props.MarshalJSON()
}

// UnmarshalJSON reads a JSON object, keeping the document's key order.
func (s *StyleMap) UnmarshalJSON(data []byte) error {
	s.props = orderedmap.New[string, string]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	return s.props.UnmarshalJSON(data)
}

var upperCase = regexp.MustCompile("([A-Z])")

// CamelToKebab converts a camelCase property name to its CSS form
// (backgroundColor -> background-color).
func CamelToKebab(name string) string {
	return upperCase.ReplaceAllStringFunc(name, func(match string) string {
		return "-" + strings.ToLower(match)
	})
}
