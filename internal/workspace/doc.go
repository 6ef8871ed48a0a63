// Package workspace manages the ephemeral per-build directory tree: a copy
// of the template skeleton plus src/ and dist/ subtrees, removed
// unconditionally when the build finishes.
package workspace
