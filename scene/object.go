package scene

// Object is a composite scene object, typically decoded from an OSP
// scene file. It carries free-form string parameters and the child
// assets (volumes, meshes, nested objects) the file references.
type Object struct {
	Name     string
	Params   map[string]string
	Children []Asset
}

// Kind implements Asset.
func (o *Object) Kind() Kind { return KindObject }

// Label implements Asset.
func (o *Object) Label() string {
	if o.Name != "" {
		return o.Name
	}
	return "object"
}

// Summary implements Asset.
func (o *Object) Summary() map[string]any {
	children := make([]map[string]any, 0, len(o.Children))
	for _, c := range o.Children {
		children = append(children, c.Summary())
	}
	return map[string]any{
		"kind":     KindObject.String(),
		"label":    o.Label(),
		"params":   o.Params,
		"children": children,
	}
}
