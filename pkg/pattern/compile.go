package pattern

import (
	"github.com/crusader2000/sunpy/pkg/errors"
	"github.com/crusader2000/sunpy/pkg/manifest"
)

// Op tags what a compiled directive does to the candidate set
type Op int

const (
	// Add inserts matched paths into the candidate set
	Add Op = iota
	// Remove deletes matched paths from the candidate set
	Remove
)

func (o Op) String() string {
	if o == Add {
		return "add"
	}
	return "remove"
}

// Compiled is one directive turned into an executable predicate plus its
// operation tag. The predicate is pure and safe for concurrent use.
type Compiled struct {
	Op        Op
	Directive manifest.Directive
	match     func(path string) bool
}

// Matches reports whether the compiled directive matches a normalized
// tree path
func (c Compiled) Matches(path string) bool {
	return c.match(path)
}

// Compile turns one directive into a predicate and operation tag.
// Directory and literal arguments are validated here; any failure aborts
// compilation before a single rule is applied.
func Compile(d manifest.Directive) (Compiled, error) {
	c := Compiled{Op: opFor(d.Kind), Directive: d}

	switch d.Kind {
	case manifest.Include, manifest.Exclude:
		literals := make(map[string]bool, len(d.Patterns))
		for _, raw := range d.Patterns {
			if reason := checkRelative(raw); reason != "" {
				return Compiled{}, invalidPath(d, raw, reason)
			}
			literals[Normalize(raw)] = true
		}
		c.match = func(p string) bool { return literals[p] }

	case manifest.RecursiveInclude, manifest.RecursiveExclude:
		if reason := checkRelative(d.Dir); reason != "" {
			return Compiled{}, invalidPath(d, d.Dir, reason)
		}
		dir := Normalize(d.Dir)
		globs, err := compileGlobs(d)
		if err != nil {
			return Compiled{}, err
		}
		c.match = func(p string) bool {
			return underDir(dir, p) && matchAny(globs, basename(p))
		}

	case manifest.GlobalInclude, manifest.GlobalExclude:
		globs, err := compileGlobs(d)
		if err != nil {
			return Compiled{}, err
		}
		c.match = func(p string) bool { return matchAny(globs, basename(p)) }

	case manifest.Prune, manifest.Graft:
		if reason := checkRelative(d.Dir); reason != "" {
			return Compiled{}, invalidPath(d, d.Dir, reason)
		}
		dir := Normalize(d.Dir)
		c.match = func(p string) bool { return underDir(dir, p) }

	default:
		return Compiled{}, errors.Newf(errors.ErrInvalidDirective,
			"line %d: unknown directive %q", d.Line, string(d.Kind)).
			WithDetail("line", d.Line).
			WithDetail("directive", d.Raw)
	}

	return c, nil
}

// CompileAll compiles every directive in declaration order, failing fast
// on the first invalid one
func CompileAll(directives []manifest.Directive) ([]Compiled, error) {
	compiled := make([]Compiled, 0, len(directives))
	for _, d := range directives {
		c, err := Compile(d)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, c)
	}
	return compiled, nil
}

// opFor maps a directive kind to its candidate-set operation
func opFor(k manifest.Kind) Op {
	switch k {
	case manifest.Include, manifest.RecursiveInclude, manifest.GlobalInclude, manifest.Graft:
		return Add
	}
	return Remove
}

// compileGlobs compiles the directive's pattern set, converting syntax
// failures into PatternSyntax errors with line context
func compileGlobs(d manifest.Directive) ([]glob, error) {
	globs := make([]glob, 0, len(d.Patterns))
	for _, pat := range d.Patterns {
		g, err := compileGlob(pat)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternSyntax,
				"line %d: invalid pattern %q", d.Line, pat).
				WithDetail("line", d.Line).
				WithDetail("directive", d.Raw)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob, name string) bool {
	for _, g := range globs {
		if g.match(name) {
			return true
		}
	}
	return false
}

func invalidPath(d manifest.Directive, arg, reason string) error {
	return errors.Newf(errors.ErrInvalidDirective,
		"line %d: invalid path %q: %s", d.Line, arg, reason).
		WithDetail("line", d.Line).
		WithDetail("directive", d.Raw)
}
