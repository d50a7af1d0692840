package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a raw value for a style property. For example, with
//
//	textCOLOR: red
//
// a property value of "red" is set for key "textCOLOR". Keys are the
// abbreviated class families used by the class codec, values are the
// codec's tokens.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Property Groups --------------------------------------------------

// PropertyGroup is a collection of properties for a single breakpoint tier.
// A group may link to a parent group; lookups which do not find a key
// locally cascade to the parent. An element's override group links to its
// container's default group for the same tier.
type PropertyGroup struct {
	name      string
	Parent    *PropertyGroup
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	pg := &PropertyGroup{}
	pg.name = groupname
	return pg
}

// GroupFromMap creates a property group pre-filled from a raw table.
// Entries with empty values are skipped.
func GroupFromMap(groupname string, m map[string]string) *PropertyGroup {
	pg := NewPropertyGroup(groupname)
	for k, v := range m {
		if v != "" {
			pg.Set(k, Property(v))
		}
	}
	return pg
}

// Name returns the name of the property group.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	var b strings.Builder
	b.WriteString("[" + pg.name + "] =\n")
	for _, kv := range pg.Properties() {
		fmt.Fprintf(&b, "  %s = %s\n", kv.Key, kv.Value)
	}
	return b.String()
}

// Properties returns all local properties of a group, ordered by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// Len returns the number of local properties.
func (pg *PropertyGroup) Len() int {
	if pg == nil {
		return 0
	}
	return len(pg.propsDict)
}

// IsSet is a predicate wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg == nil || pg.propsDict == nil {
		return false
	}
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value. No cascading is performed.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg == nil || pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
func (pg *PropertyGroup) Set(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add a property's value. Does not overwrite an existing value, i.e., does nothing
// if a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	if _, exists := pg.propsDict[key]; !exists {
		pg.propsDict[key] = p
	}
}

// Cascade finds the nearest group, starting with pg, which has key set.
// It returns nil if neither pg nor any of its ancestors sets key.
func (pg *PropertyGroup) Cascade(key string) *PropertyGroup {
	it := pg
	for it != nil && !it.IsSet(key) {
		it = it.Parent
	}
	return it
}

// Lookup gets the value of a property, cascading to parent groups.
func (pg *PropertyGroup) Lookup(key string) (Property, bool) {
	g := pg.Cascade(key)
	if g == nil {
		return NullStyle, false
	}
	return g.Get(key)
}

// Flatten returns the effective properties of pg, i.e. all keys reachable
// in the cascade chain, each with the value of the nearest group setting it.
func (pg *PropertyGroup) Flatten() Properties {
	props := make(Properties)
	var chain []*PropertyGroup
	for it := pg; it != nil; it = it.Parent {
		chain = append(chain, it)
	}
	for i := len(chain) - 1; i >= 0; i-- { // farthest ancestor first
		for k, v := range chain[i].propsDict {
			if !v.IsEmpty() {
				props[k] = v
			}
		}
	}
	return props
}

// --- Resolved properties ----------------------------------------------

// Properties is a resolved, flat table of style properties for one tier.
type Properties map[string]Property

// Get returns the value for key.
func (props Properties) Get(key string) (Property, bool) {
	p, ok := props[key]
	return p, ok
}

// Keys returns the property keys in sorted order.
func (props Properties) Keys() []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map converts the properties to a raw string table.
func (props Properties) Map() map[string]string {
	m := make(map[string]string, len(props))
	for k, v := range props {
		m[k] = string(v)
	}
	return m
}
