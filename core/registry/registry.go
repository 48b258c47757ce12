package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"scene-manager/scene"
)

// Category partitions the registry into independent tag namespaces.
type Category int

const (
	// ObjectFile loaders produce composite scene objects.
	ObjectFile Category = iota
	// VolumeFile loaders produce volumetric bricks.
	VolumeFile
	// TriangleMeshFile loaders produce triangle meshes.
	TriangleMeshFile
)

// String returns a stable name for the category.
func (c Category) String() string {
	switch c {
	case ObjectFile:
		return "object"
	case VolumeFile:
		return "volume"
	case TriangleMeshFile:
		return "mesh"
	default:
		return "unknown"
	}
}

// ParseCategory converts a category name back to its value.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "object":
		return ObjectFile, nil
	case "volume":
		return VolumeFile, nil
	case "mesh":
		return TriangleMeshFile, nil
	default:
		return 0, fmt.Errorf("unknown loader category %q", s)
	}
}

// Tag is the short, extension-like key identifying a file format.
type Tag string

// TagFromPath derives the tag for a file path from its extension.
// Returns an empty tag if the path has no extension.
func TagFromPath(path string) Tag {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return Tag(strings.ToLower(strings.TrimPrefix(ext, ".")))
}

// MaxReferenceDepth bounds how deep a chain of file references built
// through Sibling may go. Scene files nest a handful of levels at
// most; anything deeper is a wiring mistake or a reference loop.
const MaxReferenceDepth = 16

// Source describes the input handed to a loader. Either Reader or Path
// must be set; Params carries format parameters that do not live in the
// file itself (e.g. RAW volume dimensions).
type Source struct {
	// Path is the file's name, used for tag derivation, labeling, and
	// as the open target when Reader is nil.
	Path string
	// Reader, when set, is the content stream. The loader consumes it;
	// it is not rewound.
	Reader io.Reader
	// Params holds format parameters keyed by name.
	Params map[string]string
	// Resolve, when set, opens a sibling file referenced by the source
	// (e.g. the RAW brick an OSP file points at). Defaults to opening
	// the name relative to Path's directory on the local filesystem.
	Resolve func(name string) (io.ReadCloser, error)

	// visited is the chain of paths that led to this source. Sibling
	// maintains it to refuse reference loops.
	visited []string
}

// Open returns the content stream for the source.
func (s *Source) Open() (io.ReadCloser, error) {
	if s.Reader != nil {
		return io.NopCloser(s.Reader), nil
	}
	if s.Path == "" {
		return nil, errors.New("source has neither reader nor path")
	}
	return os.Open(s.Path)
}

// Sibling builds a source for a file referenced by this one, sharing
// the resolver and resolving relative names against Path's directory.
// It refuses reference loops and chains deeper than MaxReferenceDepth,
// so a scene file that references itself fails with an error instead
// of recursing forever.
func (s *Source) Sibling(name string, params map[string]string) (*Source, error) {
	sib := &Source{Path: name, Params: params, Resolve: s.Resolve}
	if s.Resolve == nil && !filepath.IsAbs(name) && s.Path != "" {
		sib.Path = filepath.Join(filepath.Dir(s.Path), name)
	}

	sib.visited = append(append([]string(nil), s.visited...), s.Path)
	if len(sib.visited) > MaxReferenceDepth {
		return nil, fmt.Errorf("reference chain from %q exceeds %d levels", s.Path, MaxReferenceDepth)
	}
	for _, seen := range sib.visited {
		if seen == sib.Path {
			return nil, fmt.Errorf("cyclic reference to %q", sib.Path)
		}
	}

	if s.Resolve != nil {
		rc, err := s.Resolve(name)
		if err != nil {
			return nil, err
		}
		sib.Reader = rc
	}
	return sib, nil
}

// Param returns a named parameter and whether it was present.
func (s *Source) Param(name string) (string, bool) {
	v, ok := s.Params[name]
	return v, ok
}

// Loader decodes one file into its in-memory representation.
type Loader interface {
	Load(ctx context.Context, src *Source) (scene.Asset, error)
}

// Factory produces a fresh loader instance.
type Factory func() Loader

// ErrUnknownLoader is returned by Lookup and Create when no factory is
// registered for a (category, tag) pair. Callers can treat it as an
// "unsupported file type" condition.
var ErrUnknownLoader = errors.New("unknown loader")

// DuplicateError reports a registration conflict for a (category, tag)
// pair. Registration rejects duplicates rather than overwriting.
type DuplicateError struct {
	Category Category
	Tag      Tag
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("loader already registered for %s file tag %q", e.Category, e.Tag)
}

// Registry holds, per category, the mapping from tag to factory.
// The zero value is not usable; call New.
type Registry struct {
	mu        sync.RWMutex
	factories map[Category]map[Tag]Factory
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[Category]map[Tag]Factory)}
}

// Register installs a factory under the given category and tag.
// Registering an already-taken pair returns a *DuplicateError and
// leaves the existing entry in place.
func (r *Registry) Register(cat Category, tag Tag, factory Factory) error {
	if tag == "" {
		return fmt.Errorf("cannot register empty tag for %s files", cat)
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for %s file tag %q", cat, tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byTag := r.factories[cat]
	if byTag == nil {
		byTag = make(map[Tag]Factory)
		r.factories[cat] = byTag
	}
	if _, exists := byTag[tag]; exists {
		return &DuplicateError{Category: cat, Tag: tag}
	}
	byTag[tag] = factory
	return nil
}

// Lookup returns the factory registered for the category and tag, or
// an error wrapping ErrUnknownLoader.
func (r *Registry) Lookup(cat Category, tag Tag) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[cat][tag]
	if !ok {
		return nil, fmt.Errorf("%w for %s file tag %q", ErrUnknownLoader, cat, tag)
	}
	return factory, nil
}

// Create looks up the factory, builds a loader, and runs it against
// the source. Loader errors are propagated unchanged.
func (r *Registry) Create(ctx context.Context, cat Category, tag Tag, src *Source) (scene.Asset, error) {
	factory, err := r.Lookup(cat, tag)
	if err != nil {
		return nil, err
	}
	return factory().Load(ctx, src)
}

// Tags returns the sorted tags registered under a category.
func (r *Registry) Tags(cat Category) []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]Tag, 0, len(r.factories[cat]))
	for tag := range r.factories[cat] {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Categories returns the categories that have at least one entry,
// in declaration order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]Category, 0, len(r.factories))
	for _, c := range []Category{ObjectFile, VolumeFile, TriangleMeshFile} {
		if len(r.factories[c]) > 0 {
			cats = append(cats, c)
		}
	}
	return cats
}
