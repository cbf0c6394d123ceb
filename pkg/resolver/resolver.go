package resolver

import (
	"sort"

	"github.com/crusader2000/sunpy/pkg/errors"
	"github.com/crusader2000/sunpy/pkg/logging"
	"github.com/crusader2000/sunpy/pkg/manifest"
	"github.com/crusader2000/sunpy/pkg/pattern"
	"github.com/rs/zerolog"
)

// Policy selects when global-exclude directives take effect
type Policy string

const (
	// PolicySequential applies every directive at its declared position
	PolicySequential Policy = "sequential"
	// PolicyDeferredGlobalExclude runs global-exclude directives as a
	// final pass after all other directives, regardless of position
	PolicyDeferredGlobalExclude Policy = "deferred-global-exclude"
)

// ParsePolicy validates a policy name from config or flags
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicySequential:
		return PolicySequential, nil
	case PolicyDeferredGlobalExclude:
		return PolicyDeferredGlobalExclude, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput,
		"unknown resolve policy %q (want %q or %q)",
		s, PolicySequential, PolicyDeferredGlobalExclude)
}

// DirectiveStat records what one directive did during resolution
type DirectiveStat struct {
	Directive manifest.Directive
	Op        pattern.Op
	Matched   int // paths in the tree the predicate matched
	Changed   int // paths actually added to or removed from the set
}

// Result is the outcome of one resolution run
type Result struct {
	// Files is the final file list, deduplicated and sorted
	Files []string
	// Stats holds one entry per directive in application order
	Stats []DirectiveStat
}

// Resolver applies compiled manifest directives against a file tree
// snapshot in declaration order. Each Resolve call owns its candidate
// set, so a single Resolver may serve concurrent runs over a shared
// FileTree.
type Resolver struct {
	policy Policy
	logger zerolog.Logger
}

// New creates a resolver with the given global-exclude policy
func New(policy Policy) *Resolver {
	return &Resolver{
		policy: policy,
		logger: logging.GetLogger("resolver"),
	}
}

// Resolve compiles directives and applies them to the tree, producing
// the final sorted file list. An empty tree yields an empty result, not
// an error.
func (r *Resolver) Resolve(tree *FileTree, directives []manifest.Directive) (*Result, error) {
	compiled, err := pattern.CompileAll(directives)
	if err != nil {
		return nil, err
	}

	ordered := r.applyPolicy(compiled)

	candidates := make(map[string]bool)
	stats := make([]DirectiveStat, 0, len(ordered))

	for _, c := range ordered {
		stat := DirectiveStat{Directive: c.Directive, Op: c.Op}
		for _, p := range tree.Paths() {
			if !c.Matches(p) {
				continue
			}
			stat.Matched++
			if c.Op == pattern.Add {
				if !candidates[p] {
					candidates[p] = true
					stat.Changed++
				}
			} else if candidates[p] {
				delete(candidates, p)
				stat.Changed++
			}
		}

		r.logger.Debug().
			Str("directive", c.Directive.Raw).
			Str("op", c.Op.String()).
			Int("matched", stat.Matched).
			Int("changed", stat.Changed).
			Int("candidates", len(candidates)).
			Msg("Applied directive")

		stats = append(stats, stat)
	}

	files := make([]string, 0, len(candidates))
	for p := range candidates {
		files = append(files, p)
	}
	sort.Strings(files)

	r.logger.Info().
		Int("directives", len(ordered)).
		Int("treeFiles", tree.Len()).
		Int("resolvedFiles", len(files)).
		Msg("Resolution complete")

	return &Result{Files: files, Stats: stats}, nil
}

// applyPolicy reorders compiled directives when the deferred policy is
// active: every global-exclude moves to the end, otherwise the original
// declaration order is kept. The reorder is stable on both halves.
func (r *Resolver) applyPolicy(compiled []pattern.Compiled) []pattern.Compiled {
	if r.policy != PolicyDeferredGlobalExclude {
		return compiled
	}

	ordered := make([]pattern.Compiled, 0, len(compiled))
	var deferred []pattern.Compiled
	for _, c := range compiled {
		if c.Directive.Kind == manifest.GlobalExclude {
			deferred = append(deferred, c)
			continue
		}
		ordered = append(ordered, c)
	}
	return append(ordered, deferred...)
}
