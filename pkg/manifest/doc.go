// Package manifest defines the directive model and line parser for
// MANIFEST.in-style packaging manifests.
package manifest
