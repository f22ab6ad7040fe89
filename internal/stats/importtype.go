package stats

import "encoding/json"

// ImportType classifies why one module depends on another. Webpack records
// the dependency kind as a free-form string on each reason; the known values
// are mapped here and anything else decodes as ImportUnknown.
type ImportType int

const (
	// ImportEmpty means the reason carried no type at all.
	ImportEmpty ImportType = iota
	// ImportRequireContext is a require.context call.
	ImportRequireContext
	// ImportStatic is an ES module import statement or specifier use.
	ImportStatic
	// ImportDynamic is a deferred import() expression.
	ImportDynamic
	// ImportRequire covers the CommonJS require variants.
	ImportRequire
	// ImportCJSSelfExport is a CommonJS module referencing its own exports.
	ImportCJSSelfExport
	// ImportEntry means the module is a configured entrypoint.
	ImportEntry
	// ImportSideEffect is an ES import evaluated only for its side effects.
	ImportSideEffect
	// ImportExportImport is a re-export, `export { x } from "..."`.
	ImportExportImport
	// ImportModuleDecorator is webpack's module decorator runtime reference.
	ImportModuleDecorator
	// ImportURL is a `new URL(..., import.meta.url)` asset reference.
	ImportURL
	// ImportAMDRequire is an AMD require call.
	ImportAMDRequire
	// ImportUnknown is a reason type string this package does not know.
	ImportUnknown
)

var importTypeNames = map[string]ImportType{
	"require.context":                   ImportRequireContext,
	"import":                            ImportStatic,
	"harmony import specifier":          ImportStatic,
	"import()":                          ImportDynamic,
	"require":                           ImportRequire,
	"cjs require":                       ImportRequire,
	"cjs full require":                  ImportRequire,
	"cjs self exports reference":        ImportCJSSelfExport,
	"cjs export require":                ImportCJSSelfExport,
	"entry":                             ImportEntry,
	"harmony side effect evaluation":    ImportSideEffect,
	"harmony export imported specifier": ImportExportImport,
	"module decorator":                  ImportModuleDecorator,
	"new URL()":                         ImportURL,
	"amd require":                       ImportAMDRequire,
}

// ParseImportType maps a webpack reason type string to its ImportType.
// The second return is false when the string is not a known value.
func ParseImportType(s string) (ImportType, bool) {
	t, ok := importTypeNames[s]
	return t, ok
}

// Async reports whether this dependency kind loads its target outside the
// synchronous require graph, splitting the bundle at the edge.
func (t ImportType) Async() bool {
	switch t {
	case ImportRequireContext, ImportStatic, ImportDynamic:
		return true
	}
	return false
}

func (t ImportType) String() string {
	switch t {
	case ImportEmpty:
		return ""
	case ImportRequireContext:
		return "require.context"
	case ImportStatic:
		return "import"
	case ImportDynamic:
		return "import()"
	case ImportRequire:
		return "require"
	case ImportCJSSelfExport:
		return "cjs self exports reference"
	case ImportEntry:
		return "entry"
	case ImportSideEffect:
		return "harmony side effect evaluation"
	case ImportExportImport:
		return "harmony export imported specifier"
	case ImportModuleDecorator:
		return "module decorator"
	case ImportURL:
		return "new URL()"
	case ImportAMDRequire:
		return "amd require"
	}
	return "unknown"
}

func (t *ImportType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ImportEmpty
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseImportType(s)
	if !ok {
		*t = ImportUnknown
		return nil
	}
	*t = parsed
	return nil
}
