// Package filesystem provides the read-only filesystem abstraction used
// throughout the codebase. Production code uses the OS implementation;
// tests use the in-memory implementation from pkg/testutil.
package filesystem
