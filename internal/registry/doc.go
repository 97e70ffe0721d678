// Package registry holds the name→instance store and the operations around
// it: locate, lazy load, dependency-ordered eager load, guarded delete and
// coordinated destroy. One Registry instance owns its store, its priority
// relation and its collaborator set; nothing here is global.
package registry
