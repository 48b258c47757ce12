// Package format wires the built-in file-format loaders into a
// registry. Registration is an explicit call rather than an init()
// side effect, so the set of supported formats never depends on
// import order.
package format

import (
	"scene-manager/core/registry"
	"scene-manager/format/osp"
	"scene-manager/format/ply"
	"scene-manager/format/rawvol"
)

// RegisterBuiltins installs the built-in loaders:
//
//	object file   "osp"  OSP scene-object XML
//	volume file   "raw"  raw volume brick
//	mesh file     "ply"  PLY triangle mesh
//
// Calling it against a registry that already holds one of these pairs
// returns the registry's DuplicateError.
func RegisterBuiltins(reg *registry.Registry) error {
	entries := []struct {
		cat     registry.Category
		tag     registry.Tag
		factory registry.Factory
	}{
		{registry.ObjectFile, "osp", osp.New(reg)},
		{registry.VolumeFile, "raw", rawvol.New},
		{registry.TriangleMeshFile, "ply", ply.New},
	}
	for _, e := range entries {
		if err := reg.Register(e.cat, e.tag, e.factory); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCategory returns the category a tag conventionally belongs
// to, used when a caller has only a file name to go by.
func DefaultCategory(tag registry.Tag) (registry.Category, bool) {
	switch tag {
	case "osp":
		return registry.ObjectFile, true
	case "raw":
		return registry.VolumeFile, true
	case "ply":
		return registry.TriangleMeshFile, true
	default:
		return 0, false
	}
}
