// Package profile owns the persisted multi-provider profile document:
// its schema, atomic persistence, and CRUD over named profiles.
//
// The document lives at <config dir>/profiles.json and is read on every
// CLI invocation. Each mutation is a full read-modify-write; saves use
// a temp-file + rename so a concurrent reader sees either the old or
// the new document, never a torn write. There is no cross-process
// locking: concurrent mutations against a shared document are
// last-writer-wins, which is the accepted model for an interactive CLI.
// Callers needing strict isolation point AGX_CONFIG_DIR at a distinct
// directory.
package profile
