package graph

// Annotations is a per-node, tag-keyed store of transient metadata, kept
// separate from the node's immutable payload. Each tag holds at most one
// value; writing a tag never disturbs any other tag. Values are not
// guaranteed consistent across traversal runs, since a later traversal may
// overwrite what an earlier one wrote.
type Annotations struct {
	values map[string]any
}

// NewAnnotations creates an empty annotation store.
func NewAnnotations() *Annotations {
	return &Annotations{}
}

// Set stores value under tag, replacing any existing value for that tag.
func (a *Annotations) Set(tag string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	a.values[tag] = value
}

// Get returns the value stored under tag, or false if the tag is absent.
func (a *Annotations) Get(tag string) (any, bool) {
	v, ok := a.values[tag]
	return v, ok
}

// Remove deletes the value stored under tag, if any.
func (a *Annotations) Remove(tag string) {
	delete(a.values, tag)
}

// Len returns the number of tags with a stored value.
func (a *Annotations) Len() int { return len(a.values) }

// clone returns an independent store holding the same entries.
func (a *Annotations) clone() *Annotations {
	c := NewAnnotations()
	for tag, v := range a.values {
		c.Set(tag, v)
	}
	return c
}

// Annotation returns the value stored under tag on a's store if it has
// type T. A stored value of a different type is treated as absent.
func Annotation[T any](a *Annotations, tag string) (T, bool) {
	v, ok := a.Get(tag)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
