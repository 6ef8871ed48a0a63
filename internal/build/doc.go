// Package build contains the per-stage build steps: injecting the user's
// source into the workspace, invoking the external bundler and CSS
// processor, and composing the static HTML shell. Stages operate on a seeded
// workspace and write their outputs into its dist subtree.
package build
