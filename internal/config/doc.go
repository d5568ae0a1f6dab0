// Package config loads grading settings from an optional YAML file and
// EXAMCHECKER_-prefixed environment variables, then validates them.
//
// Environment names are the upper-cased key path with dots replaced by
// underscores, e.g. EXAMCHECKER_EMBEDDING_PROVIDER overrides
// embedding.provider. Environment values win over the file.
package config
