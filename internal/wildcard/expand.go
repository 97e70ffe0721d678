// Package wildcard expands one patterned service declaration into the
// concrete declarations matched by the filesystem. The walk is driven by the
// fsutil.Lister collaborator so it can be tested against any tree.
package wildcard

import (
	"path/filepath"
	"strings"

	"github.com/superhero/locator/internal/config"
	"github.com/superhero/locator/internal/declaration"
	"github.com/superhero/locator/internal/fsutil"
	"github.com/superhero/locator/internal/locerr"
)

// Marker is the wildcard marker recognized in names and paths.
const Marker = "*"

// moduleSuffixes are the recognized loadable module file suffixes, consulted
// when a pattern has no literal trailing segment.
var moduleSuffixes = []string{".hcl", ".json"}

// skipMarkers name file conventions that are never production modules. A file
// like a.test.hcl or b_test.json is silently skipped, not an error.
var skipMarkers = []string{".test", ".spec", "_test"}

// Expander expands declarations against a base directory, honoring per-name
// absolute path overrides from the configuration store.
type Expander struct {
	Lister  fsutil.Lister
	Store   config.Store
	BaseDir string
}

// Expand resolves the declaration's path and expands any wildcard markers.
// A declaration without markers passes through with only its path resolved.
// Expansion that matches nothing is an error: a declared pattern is a claim
// that services exist there.
func (e *Expander) Expand(decl declaration.ServiceDeclaration) ([]declaration.ServiceDeclaration, error) {
	path := e.ResolvePath(decl.Name, decl.Path)

	nameSegs := strings.Split(decl.Name, Marker)
	pathSegs := strings.Split(path, Marker)

	if len(nameSegs) != len(pathSegs) {
		return nil, locerr.New(locerr.CodeInvalidPath,
			"mismatched wildcard count between name %q and path %q", decl.Name, decl.Path)
	}

	if len(pathSegs) == 1 {
		return []declaration.ServiceDeclaration{{Name: decl.Name, Path: path, Uses: decl.Uses}}, nil
	}

	found, err := e.walk(nameSegs, pathSegs, decl.Uses)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, locerr.New(locerr.CodeInvalidPath,
			"no matching service found for %q at %q", decl.Name, decl.Path)
	}
	return found, nil
}

// frame is one pending position in the traversal: the accumulated name and
// path so far, and the index of the segment that follows the wildcard being
// filled. The accumulated path always names the directory to list next.
type frame struct {
	name string
	path string
	idx  int
}

// walk performs the depth-first traversal with an explicit worklist, splicing
// each matched entry between the accumulated strings and the next segments.
func (e *Expander) walk(nameSegs, pathSegs []string, uses []string) ([]declaration.ServiceDeclaration, error) {
	last := len(pathSegs) - 1
	stack := []frame{{name: nameSegs[0], path: pathSegs[0], idx: 1}}

	var found []declaration.ServiceDeclaration
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := e.Lister.List(fr.path)
		if err != nil {
			return nil, locerr.Wrap(locerr.CodeInvalidPath, err,
				"failed to read directory %q", fr.path)
		}

		nextName, nextPath := nameSegs[fr.idx], pathSegs[fr.idx]
		for _, entry := range entries {
			switch {
			case entry.IsDir:
				// A directory only matches when the pattern expects a
				// directory boundary here and a later wildcard remains.
				if fr.idx < last && strings.HasPrefix(nextPath, "/") {
					stack = append(stack, frame{
						name: fr.name + entry.Name + nextName,
						path: fr.path + entry.Name + nextPath,
						idx:  fr.idx + 1,
					})
				}

			case fr.idx == last:
				matched, ok := matchFile(entry.Name, nextPath)
				if !ok {
					continue
				}
				found = append(found, declaration.ServiceDeclaration{
					Name: fr.name + matched + nextName,
					Path: fr.path + entry.Name,
					Uses: uses,
				})
			}
		}
	}
	return found, nil
}

// matchFile applies the file acceptance predicate and returns the wildcard
// portion of the filename. With a literal trailing segment the filename must
// carry it as a suffix; without one the filename must be a recognized module
// file and not a test or spec artifact.
func matchFile(filename, trailing string) (string, bool) {
	if trailing != "" {
		if !strings.HasSuffix(filename, trailing) {
			return "", false
		}
		stem := strings.TrimSuffix(filename, trailing)
		if isSkipped(stem) {
			return "", false
		}
		return stem, true
	}

	for _, suffix := range moduleSuffixes {
		if !strings.HasSuffix(filename, suffix) {
			continue
		}
		if isSkipped(strings.TrimSuffix(filename, suffix)) {
			return "", false
		}
		return filename, true
	}
	return "", false
}

// isSkipped reports whether a filename stem carries a non-production marker.
func isSkipped(stem string) bool {
	for _, marker := range skipMarkers {
		if strings.HasSuffix(stem, marker) {
			return true
		}
	}
	return false
}

// ResolvePath turns a relative declaration path into a concrete one, using
// the configuration store's per-name override when present and the base
// directory otherwise. Absolute paths pass through untouched.
func (e *Expander) ResolvePath(name, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	rest := strings.TrimPrefix(path, "./")
	if override, ok := e.Store.FindPath(name); ok {
		return filepath.Join(override, rest)
	}
	base := e.BaseDir
	if base == "" {
		base = "."
	}
	return filepath.Join(base, rest)
}
