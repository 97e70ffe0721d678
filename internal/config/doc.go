// Package config defines the key/value configuration collaborator consulted
// by the locator: a per-service destroy-enable flag and an optional absolute
// path override for relative declaration paths. The concrete implementation
// is backed by viper; tests use the in-memory MapStore.
package config
