package scene

// Kind identifies the category of a decoded asset.
type Kind int

const (
	// KindObject is a composite scene object (typically from an OSP file).
	KindObject Kind = iota
	// KindVolume is a volumetric brick of scalar voxels.
	KindVolume
	// KindMesh is a triangle mesh.
	KindMesh
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindVolume:
		return "volume"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Asset is the common interface for everything a loader can produce.
type Asset interface {
	// Kind reports the asset category.
	Kind() Kind
	// Label returns a human-readable name for the asset.
	Label() string
	// Summary returns a flat description of the asset for reports and
	// API responses. Keys are stable; values are JSON-encodable.
	Summary() map[string]any
}
