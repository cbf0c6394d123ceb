package manifest

import (
	"bufio"
	"io"
	"strings"

	"github.com/crusader2000/sunpy/pkg/errors"
	"github.com/crusader2000/sunpy/pkg/filesystem"
	"github.com/crusader2000/sunpy/pkg/logging"
)

// Parse reads manifest directives from r, one per line.
//
// Semantics:
// - tokens are whitespace-separated, the first selects the directive kind
// - blank lines and lines starting with "#" are ignored
// - any malformed line fails the whole parse (no partial result)
func Parse(r io.Reader) ([]Directive, error) {
	logger := logging.GetLogger("manifest.parse")

	s := bufio.NewScanner(r)
	var directives []Directive
	lineNo := 0

	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimRight(s.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		d, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}

	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestRead, "failed to scan manifest")
	}

	logger.Debug().Int("directives", len(directives)).Msg("Parsed manifest")
	return directives, nil
}

// ParseString parses directives from string input
func ParseString(src string) ([]Directive, error) {
	return Parse(strings.NewReader(src))
}

// Load reads and parses a manifest file through the filesystem abstraction
func Load(fsys filesystem.FS, path string) ([]Directive, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead,
			"failed to read manifest %s", path).WithDetail("path", path)
	}
	return Parse(strings.NewReader(string(data)))
}

// parseLine parses one non-blank, non-comment manifest line
func parseLine(line string, lineNo int) (Directive, error) {
	tokens := strings.Fields(line)
	kind := Kind(tokens[0])
	args := tokens[1:]

	if !kind.Valid() {
		return Directive{}, invalidf(lineNo, line, "unknown directive %q", tokens[0])
	}

	d := Directive{Kind: kind, Line: lineNo, Raw: line}

	switch kind {
	case Include, Exclude, GlobalInclude, GlobalExclude:
		if len(args) < 1 {
			return Directive{}, invalidf(lineNo, line, "%s needs at least one argument", kind)
		}
		d.Patterns = args

	case RecursiveInclude, RecursiveExclude:
		if len(args) < 2 {
			return Directive{}, invalidf(lineNo, line, "%s needs a directory and at least one pattern", kind)
		}
		d.Dir = args[0]
		d.Patterns = args[1:]

	case Prune, Graft:
		if len(args) != 1 {
			return Directive{}, invalidf(lineNo, line, "%s needs exactly one directory argument", kind)
		}
		d.Dir = args[0]
	}

	return d, nil
}

// invalidf builds an InvalidDirective error carrying the offending line
func invalidf(lineNo int, line string, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrInvalidDirective, "line %d: "+format,
		append([]interface{}{lineNo}, args...)...).
		WithDetail("line", lineNo).
		WithDetail("directive", line)
}
