// Package resolver turns a manifest and a source tree into the final
// file list for a source distribution.
//
// Resolution is a pure, bounded, in-memory computation: a FileTree
// snapshot is built once, each compiled directive is applied to a
// mutable candidate set in declaration order, and the set is returned
// sorted and deduplicated. A Prune or exclude appearing after an
// include removes previously added paths; a later include can re-add
// them. Pruned paths carry no special immunity.
package resolver
