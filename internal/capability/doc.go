// Package capability selects and constructs the grammar checker and the
// sentence embedder named in configuration. Both binaries build their
// capabilities here once at startup and share them across requests.
package capability
