// Package app wires one locator instance together: logger, configuration
// store, module loader and registry, plus the run lifecycle around a service
// manifest. It is decoupled from any specific entrypoint like a CLI.
package app
