package stats

import "strconv"

// ChunkID is webpack's numeric chunk identifier.
type ChunkID int

func (id ChunkID) String() string { return strconv.Itoa(int(id)) }

// Chunk is one entry of the stats chunks array. Parents, siblings and
// children describe the chunk group relations webpack derived from split
// points.
type Chunk struct {
	ID       ChunkID   `json:"id"`
	Entry    bool      `json:"entry"`
	Initial  bool      `json:"initial"`
	Files    []string  `json:"files"`
	Names    []string  `json:"names"`
	Origins  []Origin  `json:"origins"`
	Parents  []ChunkID `json:"parents"`
	Siblings []ChunkID `json:"siblings"`
	Children []ChunkID `json:"children"`
	Rendered bool      `json:"rendered"`
	Size     SizeBytes `json:"size"`
	Modules  []Module  `json:"modules"`
}

// ModuleIdentifiers returns the identifiers of the chunk's top-level modules.
func (c *Chunk) ModuleIdentifiers() []string {
	ids := make([]string, 0, len(c.Modules))
	for i := range c.Modules {
		ids = append(ids, c.Modules[i].Identifier)
	}
	return ids
}

// Origin describes a request that caused the chunk to exist.
type Origin struct {
	Loc              string  `json:"loc"`
	ModuleIdentifier string  `json:"moduleIdentifier"`
	ModuleID         *int64  `json:"moduleId"`
	ModuleName       string  `json:"moduleName"`
	Reasons          Reasons `json:"reasons"`
}
