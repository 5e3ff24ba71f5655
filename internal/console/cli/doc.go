// Package cli implements the interactive terminal console: the session gate
// prompt, the entity-screen REPL, and the field walks that feed drafts into
// the submission pipelines.
package cli
