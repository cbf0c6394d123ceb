package pattern

import (
	"path"
	"strings"
)

// Normalize cleans a manifest or tree path into canonical relative form:
// forward slashes, no ".", "..", or trailing separators.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return p
}

// checkRelative reports why p is not a valid relative path inside the
// packaging root, or "" if it is valid.
func checkRelative(p string) string {
	if p == "" {
		return "empty path"
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "\\") {
		return "absolute path"
	}
	if len(p) >= 2 && p[1] == ':' {
		return "absolute path"
	}

	cleaned := Normalize(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "path escapes the root"
	}
	return ""
}

// underDir reports whether p equals dir or lies in dir's subtree,
// comparing whole path segments. dir must be normalized; dir "." means
// the packaging root and matches every path.
func underDir(dir, p string) bool {
	if dir == "." {
		return true
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// basename returns the final path component using slash separator
func basename(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
