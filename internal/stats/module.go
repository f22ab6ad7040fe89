package stats

import "encoding/json"

// Module is one entry of the stats modules array. Webpack nests concatenated
// modules under their parent's modules field; the nesting is preserved here
// and flattened by Stats.ModuleIndex.
type Module struct {
	Built        bool      `json:"built"`
	Cacheable    bool      `json:"cacheable"`
	Chunks       []ChunkID `json:"chunks"`
	ErrorCount   int       `json:"errors"`
	WarningCount int       `json:"warnings"`
	Failed       bool      `json:"failed"`
	Identifier   string    `json:"identifier"`
	Name         string    `json:"name"`
	Optional     bool      `json:"optional"`
	Prefetched   bool      `json:"prefetched"`
	Reasons      Reasons   `json:"reasons"`
	Size         SizeBytes `json:"size"`
	Modules      []Module  `json:"modules"`
}

// ChunkSet returns the ids of the chunks this module was placed in.
func (m *Module) ChunkSet() map[ChunkID]bool {
	set := make(map[ChunkID]bool, len(m.Chunks))
	for _, id := range m.Chunks {
		set[id] = true
	}
	return set
}

// IncludedNames returns the module's own name plus the names of every
// module concatenated into it, recursively.
func (m *Module) IncludedNames() []string {
	names := []string{m.Name}
	for i := range m.Modules {
		names = append(names, m.Modules[i].IncludedNames()...)
	}
	return names
}

// Reason records why a module was included: the importing module and the
// kind of dependency that pulled it in.
type Reason struct {
	Loc              string     `json:"loc"`
	Module           string     `json:"module"`
	ModuleID         *int64     `json:"moduleId"`
	ModuleName       string     `json:"moduleName"`
	ResolvedModule   string     `json:"resolvedModule"`
	ModuleIdentifier string     `json:"moduleIdentifier"`
	Type             ImportType `json:"type"`
	UserRequest      string     `json:"userRequest"`
}

// Reasons is a reason list with entries lacking a moduleIdentifier dropped
// at decode time. Webpack emits such entries for synthetic dependencies that
// cannot be tied back to a module, so they carry no edge information.
type Reasons []Reason

func (r *Reasons) UnmarshalJSON(data []byte) error {
	var raw []Reason
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kept := raw[:0]
	for _, reason := range raw {
		if reason.ModuleIdentifier == "" {
			continue
		}
		kept = append(kept, reason)
	}
	*r = kept
	return nil
}
