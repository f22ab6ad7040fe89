package graph

import "testing"

func TestAnnotationsSetGet(t *testing.T) {
	a := NewAnnotations()

	if _, ok := a.Get("chunk"); ok {
		t.Error("Get on empty store = ok, want absent")
	}

	a.Set("chunk", 12)
	v, ok := a.Get("chunk")
	if !ok || v.(int) != 12 {
		t.Errorf("Get(chunk) = %v, %v, want 12, true", v, ok)
	}
}

func TestAnnotationsLastWriteWins(t *testing.T) {
	a := NewAnnotations()
	a.Set("chunk", 1)
	a.Set("chunk", 2)

	v, _ := a.Get("chunk")
	if v.(int) != 2 {
		t.Errorf("Get(chunk) = %v, want 2", v)
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}
}

func TestAnnotationsTagsIndependent(t *testing.T) {
	a := NewAnnotations()
	a.Set("chunk", 1)
	a.Set("path", "x")

	a.Set("chunk", 9)
	if v, _ := a.Get("path"); v.(string) != "x" {
		t.Errorf("writing chunk disturbed path: got %v", v)
	}

	a.Remove("path")
	if _, ok := a.Get("chunk"); !ok {
		t.Error("removing path disturbed chunk")
	}
	if _, ok := a.Get("path"); ok {
		t.Error("path still present after Remove")
	}
}

func TestAnnotationTypedLookup(t *testing.T) {
	a := NewAnnotations()
	a.Set("chunk", 42)

	got, ok := Annotation[int](a, "chunk")
	if !ok || got != 42 {
		t.Errorf("Annotation[int] = %d, %v, want 42, true", got, ok)
	}

	if _, ok := Annotation[string](a, "chunk"); ok {
		t.Error("Annotation[string] on int value = ok, want absent")
	}
	if _, ok := Annotation[int](a, "missing"); ok {
		t.Error("Annotation on missing tag = ok, want absent")
	}
}
