package style

// ClassTable holds raw property tables per breakpoint tier. It is the shape
// of both a markdown container's per-tag defaults and a tag element's
// overrides. A nil table for a tier is legal and means "nothing set".
type ClassTable struct {
	Mobile  map[string]string `json:"mobile,omitempty"`
	Tablet  map[string]string `json:"tablet,omitempty"`
	Desktop map[string]string `json:"desktop,omitempty"`
}

// Tier returns the raw table for a breakpoint. The result must not be
// modified by clients.
func (ct *ClassTable) Tier(bp Breakpoint) map[string]string {
	if ct == nil {
		return nil
	}
	switch bp {
	case Tablet:
		return ct.Tablet
	case Desktop:
		return ct.Desktop
	}
	return ct.Mobile
}

func (ct *ClassTable) tierRef(bp Breakpoint) *map[string]string {
	switch bp {
	case Tablet:
		return &ct.Tablet
	case Desktop:
		return &ct.Desktop
	}
	return &ct.Mobile
}

// Set sets a property for a tier. Setting an empty value removes the key.
func (ct *ClassTable) Set(bp Breakpoint, key, value string) {
	if value == "" {
		ct.Delete(bp, key)
		return
	}
	m := ct.tierRef(bp)
	if *m == nil {
		*m = make(map[string]string)
	}
	(*m)[key] = value
}

// Delete removes a property from a tier.
func (ct *ClassTable) Delete(bp Breakpoint, key string) {
	m := ct.tierRef(bp)
	if *m == nil {
		return
	}
	delete(*m, key)
	if len(*m) == 0 {
		*m = nil
	}
}

// IsEmpty is true if no tier holds any property.
func (ct *ClassTable) IsEmpty() bool {
	return ct == nil || (len(ct.Mobile) == 0 && len(ct.Tablet) == 0 && len(ct.Desktop) == 0)
}

// Clone returns a deep copy of ct.
func (ct *ClassTable) Clone() *ClassTable {
	if ct == nil {
		return nil
	}
	return &ClassTable{
		Mobile:  cloneMap(ct.Mobile),
		Tablet:  cloneMap(ct.Tablet),
		Desktop: cloneMap(ct.Desktop),
	}
}

// Group creates a property group for one tier of the table.
func (ct *ClassTable) Group(bp Breakpoint) *PropertyGroup {
	return GroupFromMap(bp.String(), ct.Tier(bp))
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// --- Resolution -------------------------------------------------------

// Resolve computes the effective properties for a breakpoint tier, given a
// container's default table and an element's override table (both may be nil).
// An override for a key shadows the default for that key at that tier;
// there is no merging across tiers.
func Resolve(defaults, overrides *ClassTable, bp Breakpoint) Properties {
	return cascadeFor(defaults, overrides, bp).Flatten()
}

// ResolveProperty returns the effective value of a single property, and
// wether the property is set at all for the tier.
func ResolveProperty(defaults, overrides *ClassTable, bp Breakpoint, key string) (Property, bool) {
	p, ok := cascadeFor(defaults, overrides, bp).Lookup(key)
	if ok {
		tracer().P("key", key).Debugf("style: %s resolved to %q for %s", key, p, bp)
	}
	return p, ok
}

func cascadeFor(defaults, overrides *ClassTable, bp Breakpoint) *PropertyGroup {
	base := defaults.Group(bp)
	top := overrides.Group(bp)
	top.Parent = base
	return top
}
