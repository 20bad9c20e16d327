// Package paths centralizes file system path resolution for agx.
//
// It resolves the agx configuration directory (honoring the
// AGX_CONFIG_DIR override used for test isolation), the XDG base
// directories, and the home directories and binaries of the supported
// AI coding agents.
package paths
