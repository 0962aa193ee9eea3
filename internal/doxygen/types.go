package doxygen

// Kind identifies one of the symbol kinds the reference page documents.
type Kind string

const (
	KindMacro    Kind = "define"
	KindStruct   Kind = "struct"
	KindEnum     Kind = "enum"
	KindTypedef  Kind = "typedef"
	KindFunction Kind = "function"
)

// Kinds is the fixed order in which symbol kinds are rendered.
var Kinds = []Kind{KindMacro, KindStruct, KindEnum, KindTypedef, KindFunction}

// SymbolList is an ordered list of symbol names in the order Doxygen
// emitted them. Duplicates are kept.
type SymbolList []string

// Symbols holds one SymbolList per kind.
type Symbols struct {
	Macros    SymbolList
	Structs   SymbolList
	Enums     SymbolList
	Typedefs  SymbolList
	Functions SymbolList
}

// List returns the list for kind, or nil for an unknown kind.
func (s *Symbols) List(kind Kind) SymbolList {
	switch kind {
	case KindMacro:
		return s.Macros
	case KindStruct:
		return s.Structs
	case KindEnum:
		return s.Enums
	case KindTypedef:
		return s.Typedefs
	case KindFunction:
		return s.Functions
	}
	return nil
}

// Add appends name to the list for kind. Unknown kinds are ignored and
// reported as false.
func (s *Symbols) Add(kind Kind, name string) bool {
	switch kind {
	case KindMacro:
		s.Macros = append(s.Macros, name)
	case KindStruct:
		s.Structs = append(s.Structs, name)
	case KindEnum:
		s.Enums = append(s.Enums, name)
	case KindTypedef:
		s.Typedefs = append(s.Typedefs, name)
	case KindFunction:
		s.Functions = append(s.Functions, name)
	default:
		return false
	}
	return true
}

// Len returns the total number of collected names.
func (s *Symbols) Len() int {
	return len(s.Macros) + len(s.Structs) + len(s.Enums) + len(s.Typedefs) + len(s.Functions)
}

// Result is everything one run extracts from a Doxygen XML directory.
type Result struct {
	Symbols Symbols
	Version string
}
