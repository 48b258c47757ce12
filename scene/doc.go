// Package scene defines the in-memory representations produced by the
// format loaders: triangle meshes, volumetric bricks, and composite
// scene objects.
//
// # Asset Interface
//
// Every decoded file is exposed as an Asset, which reports its Kind
// (object, volume, or mesh), a human-readable label, and a Summary map
// suitable for JSON responses and CLI output.
//
// # Validation
//
// Each concrete type carries a Validate method that checks structural
// consistency (index bounds for meshes, payload size for volumes).
// Loaders are expected to call Validate before returning an asset, so
// consumers can rely on well-formed data.
package scene
