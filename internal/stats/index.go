package stats

// ModuleIndex is a flattened view of the stats module tree. Nested modules
// appear in All alongside top-level ones; looking a nested identifier up
// resolves to its top-level parent, since that parent is what actually ends
// up in a chunk.
type ModuleIndex struct {
	order []*Module
	index map[string]*Module
}

// ModuleIndex builds the flattened module index for the document.
func (s *Stats) ModuleIndex() *ModuleIndex {
	ix := &ModuleIndex{index: make(map[string]*Module)}
	for i := range s.Modules {
		ix.add(&s.Modules[i], &s.Modules[i])
	}
	return ix
}

func (ix *ModuleIndex) add(m, top *Module) {
	for i := range m.Modules {
		ix.add(&m.Modules[i], top)
	}
	// A module concatenated into several parents shows up more than once;
	// the first occurrence wins.
	if _, ok := ix.index[m.Identifier]; ok {
		return
	}
	ix.index[m.Identifier] = top
	ix.order = append(ix.order, m)
}

// Query resolves a module identifier. Nested module identifiers yield the
// top-level module containing them.
func (ix *ModuleIndex) Query(id string) (*Module, bool) {
	m, ok := ix.index[id]
	return m, ok
}

// All returns every module in the document, nested ones before the module
// containing them, in document order.
func (ix *ModuleIndex) All() []*Module {
	return ix.order
}

// Chunk finds a chunk by id.
func (s *Stats) Chunk(id ChunkID) (*Chunk, bool) {
	for i := range s.Chunks {
		if s.Chunks[i].ID == id {
			return &s.Chunks[i], true
		}
	}
	return nil, false
}

// Entrypoint finds an entrypoint by name.
func (s *Stats) Entrypoint(name string) (Entrypoint, bool) {
	e, ok := s.Entrypoints[name]
	return e, ok
}
