package manifest

// Kind identifies one directive keyword from a manifest file
type Kind string

// Directive kinds. These mirror the keywords accepted in manifest files.
const (
	Include          Kind = "include"
	Exclude          Kind = "exclude"
	RecursiveInclude Kind = "recursive-include"
	RecursiveExclude Kind = "recursive-exclude"
	GlobalInclude    Kind = "global-include"
	GlobalExclude    Kind = "global-exclude"
	Prune            Kind = "prune"
	Graft            Kind = "graft"
)

// Directive is one parsed manifest rule. The payload depends on the kind:
// recursive and subtree forms carry Dir, pattern forms carry Patterns.
// Line and Raw identify the source line for error reporting.
type Directive struct {
	Kind     Kind
	Dir      string   // recursive-include, recursive-exclude, prune, graft
	Patterns []string // literal paths for include/exclude, glob patterns otherwise
	Line     int
	Raw      string
}

// NeedsDir reports whether the directive kind takes a directory argument
func (k Kind) NeedsDir() bool {
	switch k {
	case RecursiveInclude, RecursiveExclude, Prune, Graft:
		return true
	}
	return false
}

// Valid reports whether the kind is a known directive keyword
func (k Kind) Valid() bool {
	switch k {
	case Include, Exclude, RecursiveInclude, RecursiveExclude,
		GlobalInclude, GlobalExclude, Prune, Graft:
		return true
	}
	return false
}
