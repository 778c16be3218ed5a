// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.verity/config.toml. Nested tables are flattened into
// dot-notation keys on load ("search.api_key") and nested again on save, so
// the file stays readable when edited by hand.
package file
