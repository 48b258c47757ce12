// Package registry maps file-type tags to loader factories.
//
// The registry is partitioned into categories (object file, volume
// file, triangle-mesh file) so the same tag could mean different
// things in different categories. Each entry associates a short tag
// such as "osp", "raw", or "ply" with a factory that produces a fresh
// Loader for that format.
//
// # Lifecycle
//
// A Registry is constructed explicitly with New and populated once at
// startup (see the format package for the built-in registrations). It
// is never exposed as ambient package-level state; call sites receive
// the instance they should register against. Registration rejects
// duplicate (category, tag) pairs. Lookups after startup are read-only
// and safe for concurrent use.
//
// # Usage
//
//	reg := registry.New()
//	if err := format.RegisterBuiltins(reg); err != nil { ... }
//	asset, err := reg.Create(ctx, registry.VolumeFile, "raw", src)
package registry
