package resolver_test

import (
	"testing"

	"github.com/crusader2000/sunpy/pkg/errors"
	"github.com/crusader2000/sunpy/pkg/manifest"
	"github.com/crusader2000/sunpy/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, policy resolver.Policy, src string, treePaths []string) *resolver.Result {
	t.Helper()

	directives, err := manifest.ParseString(src)
	require.NoError(t, err)

	result, err := resolver.New(policy).Resolve(resolver.NewFileTree(treePaths), directives)
	require.NoError(t, err)
	return result
}

func TestResolve_ManifestExample(t *testing.T) {
	result := resolve(t, resolver.PolicySequential, `
recursive-include docs *
prune docs/_build
global-exclude *.pyc
`, []string{"docs/a.rst", "docs/_build/out.html", "docs/b.pyc"})

	assert.Equal(t, []string{"docs/a.rst"}, result.Files)
}

func TestResolve_OrderSensitivity(t *testing.T) {
	tree := []string{"a/b.txt"}

	t.Run("exclude_after_include_removes", func(t *testing.T) {
		result := resolve(t, resolver.PolicySequential,
			"include a/b.txt\nexclude a/b.txt\n", tree)
		assert.Empty(t, result.Files)
	})

	t.Run("include_after_exclude_retains", func(t *testing.T) {
		result := resolve(t, resolver.PolicySequential,
			"exclude a/b.txt\ninclude a/b.txt\n", tree)
		assert.Equal(t, []string{"a/b.txt"}, result.Files)
	})
}

func TestResolve_PruneRemovesSubtree(t *testing.T) {
	tree := []string{"a/x.txt", "a/b/y.txt", "a/b/c/z.txt", "a/d/w.txt"}

	result := resolve(t, resolver.PolicySequential,
		"recursive-include a *\nprune a/b\n", tree)

	assert.Equal(t, []string{"a/d/w.txt", "a/x.txt"}, result.Files)
}

func TestResolve_ReincludeAfterPrune(t *testing.T) {
	// Pruned paths carry no immunity: a later directive can add them back
	tree := []string{"a/b/y.txt"}

	result := resolve(t, resolver.PolicySequential,
		"recursive-include a *\nprune a/b\ninclude a/b/y.txt\n", tree)

	assert.Equal(t, []string{"a/b/y.txt"}, result.Files)
}

func TestResolve_Graft(t *testing.T) {
	tree := []string{"cextern/lib.c", "cextern/sub/h.h", "src/main.py"}

	result := resolve(t, resolver.PolicySequential, "graft cextern\n", tree)

	assert.Equal(t, []string{"cextern/lib.c", "cextern/sub/h.h"}, result.Files)
}

func TestResolve_GlobCorrectness(t *testing.T) {
	tree := []string{"sunpy/io/x.pyx", "cextern/y.pyx", "sunpy/io/x.pyx.bak"}

	result := resolve(t, resolver.PolicySequential, "global-include *.pyx\n", tree)

	assert.Equal(t, []string{"cextern/y.pyx", "sunpy/io/x.pyx"}, result.Files)
}

func TestResolve_EmptyTree(t *testing.T) {
	result := resolve(t, resolver.PolicySequential,
		"recursive-include docs *\n", nil)

	assert.Empty(t, result.Files)
	require.Len(t, result.Stats, 1)
	assert.Equal(t, 0, result.Stats[0].Matched)
}

func TestResolve_EmptyManifest(t *testing.T) {
	result := resolve(t, resolver.PolicySequential, "# nothing\n",
		[]string{"a.txt"})
	assert.Empty(t, result.Files)
}

func TestResolve_Idempotence(t *testing.T) {
	src := "graft sunpy\nglobal-exclude *.pyc\nprune sunpy/dev\n"
	tree := []string{"sunpy/a.py", "sunpy/a.pyc", "sunpy/dev/b.py", "sunpy/io/c.py"}

	first := resolve(t, resolver.PolicySequential, src, tree)
	second := resolve(t, resolver.PolicySequential, src, tree)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, []string{"sunpy/a.py", "sunpy/io/c.py"}, first.Files)
}

func TestResolve_OutputSortedAndDeduplicated(t *testing.T) {
	// Two overlapping adds must not duplicate paths
	tree := []string{"b.pyx", "a.pyx"}

	result := resolve(t, resolver.PolicySequential,
		"global-include *.pyx\ninclude a.pyx b.pyx\n", tree)

	assert.Equal(t, []string{"a.pyx", "b.pyx"}, result.Files)
}

func TestResolve_PolicyDeferredGlobalExclude(t *testing.T) {
	// A global-exclude declared before an include: sequential order lets
	// the include win, the deferred policy runs the exclude last
	src := "global-exclude *.pyc\ninclude keep.pyc\n"
	tree := []string{"keep.pyc"}

	sequential := resolve(t, resolver.PolicySequential, src, tree)
	assert.Equal(t, []string{"keep.pyc"}, sequential.Files)

	deferred := resolve(t, resolver.PolicyDeferredGlobalExclude, src, tree)
	assert.Empty(t, deferred.Files)
}

func TestResolve_Stats(t *testing.T) {
	result := resolve(t, resolver.PolicySequential,
		"recursive-include docs *\nprune docs/_build\n",
		[]string{"docs/a.rst", "docs/_build/x.html", "docs/_build/y.html"})

	require.Len(t, result.Stats, 2)
	assert.Equal(t, 3, result.Stats[0].Matched)
	assert.Equal(t, 3, result.Stats[0].Changed)
	assert.Equal(t, 2, result.Stats[1].Matched)
	assert.Equal(t, 2, result.Stats[1].Changed)
}

func TestResolve_CompileErrorAbortsRun(t *testing.T) {
	directives, err := manifest.ParseString("include ok.txt\nprune /abs\n")
	require.NoError(t, err)

	_, err = resolver.New(resolver.PolicySequential).
		Resolve(resolver.NewFileTree([]string{"ok.txt"}), directives)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirective))
}

func TestParsePolicy(t *testing.T) {
	p, err := resolver.ParsePolicy("sequential")
	require.NoError(t, err)
	assert.Equal(t, resolver.PolicySequential, p)

	p, err = resolver.ParsePolicy("deferred-global-exclude")
	require.NoError(t, err)
	assert.Equal(t, resolver.PolicyDeferredGlobalExclude, p)

	_, err = resolver.ParsePolicy("last-wins")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResolve_ConcurrentRunsShareTree(t *testing.T) {
	tree := resolver.NewFileTree([]string{"a.py", "b.pyc", "docs/c.rst"})
	directives, err := manifest.ParseString("graft docs\nglobal-include *.py\n")
	require.NoError(t, err)

	r := resolver.New(resolver.PolicySequential)
	done := make(chan []string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			result, err := r.Resolve(tree, directives)
			if err != nil {
				done <- nil
				return
			}
			done <- result.Files
		}()
	}

	for i := 0; i < 8; i++ {
		files := <-done
		assert.Equal(t, []string{"a.py", "docs/c.rst"}, files)
	}
}
