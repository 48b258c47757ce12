package assets

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"scene-manager/core/registry"
	"scene-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Category prefixes inside the bucket.
const (
	PrefixScenes  = "scenes/"
	PrefixVolumes = "volumes/"
	PrefixMeshes  = "meshes/"
)

// PrefixFor returns the bucket prefix assets of a category live under.
func PrefixFor(cat registry.Category) string {
	switch cat {
	case registry.ObjectFile:
		return PrefixScenes
	case registry.VolumeFile:
		return PrefixVolumes
	case registry.TriangleMeshFile:
		return PrefixMeshes
	default:
		return ""
	}
}

// CategoryForKey derives the loader category from an object key's
// prefix.
func CategoryForKey(key string) (registry.Category, error) {
	switch {
	case strings.HasPrefix(key, PrefixScenes):
		return registry.ObjectFile, nil
	case strings.HasPrefix(key, PrefixVolumes):
		return registry.VolumeFile, nil
	case strings.HasPrefix(key, PrefixMeshes):
		return registry.TriangleMeshFile, nil
	default:
		return 0, fmt.Errorf("object key %q is outside the known category prefixes", key)
	}
}

// ObjectSummary describes one stored asset.
type ObjectSummary struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
	ETag string `json:"etag"`
}

// Recorder receives successful inspection reports, typically to keep a
// catalog in sync. Recording failures do not fail the inspection.
type Recorder interface {
	RecordInspection(ctx context.Context, report *InspectReport) error
}

// Service implements asset storage operations.
type Service struct {
	client   storage.Client
	bucket   string
	reg      *registry.Registry
	logger   *zap.Logger
	recorder Recorder
}

// NewService creates a new assets service.
func NewService(client storage.Client, bucket string, reg *registry.Registry, logger *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, reg: reg, logger: logger}
}

// SetRecorder attaches an inspection recorder.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// Upload stores an asset under its category prefix. The name's
// extension must match a loader registered for the category, so the
// bucket never holds files nothing can decode.
func (s *Service) Upload(ctx context.Context, cat registry.Category, name string, r io.Reader, size int64) (string, error) {
	if name == "" || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	tag := registry.TagFromPath(name)
	if _, err := s.reg.Lookup(cat, tag); err != nil {
		return "", fmt.Errorf("cannot store %q: %w", name, err)
	}

	key := PrefixFor(cat) + name
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{}); err != nil {
		return "", fmt.Errorf("failed to store %q: %w", key, err)
	}
	s.logger.Info("Asset stored", zap.String("key", key), zap.Int64("size", size))
	return key, nil
}

// Download returns the asset's content stream.
func (s *Service) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
}

// List returns the stored assets under a prefix; an empty prefix
// lists all category prefixes.
func (s *Service) List(ctx context.Context, prefix string) ([]ObjectSummary, error) {
	var out []ObjectSummary
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list assets: %w", info.Err)
		}
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		out = append(out, ObjectSummary{Key: info.Key, Size: info.Size, ETag: info.ETag})
	}
	return out, nil
}

// Delete removes an asset.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	s.logger.Info("Asset deleted", zap.String("key", key))
	return nil
}

// InspectReport bundles the decoded summary with object metadata.
type InspectReport struct {
	Key      string         `json:"key"`
	Category string         `json:"category"`
	Tag      string         `json:"tag"`
	Size     int64          `json:"size"`
	ETag     string         `json:"etag"`
	Asset    map[string]any `json:"asset"`
}

// Inspect streams the object through the loader registry and returns
// the decoded asset's summary. Loader params (RAW dimensions etc.)
// come from the caller.
func (s *Service) Inspect(ctx context.Context, key string, params map[string]string) (*InspectReport, error) {
	cat, err := CategoryForKey(key)
	if err != nil {
		return nil, err
	}
	tag := registry.TagFromPath(key)

	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", key, err)
	}

	rc, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", key, err)
	}
	defer rc.Close()

	src := &registry.Source{
		Path:   key,
		Reader: rc,
		Params: params,
		// Sibling references resolve against the bucket, relative to
		// the inspected object's directory.
		Resolve: func(name string) (io.ReadCloser, error) {
			sibling := name
			if !strings.Contains(name, "/") {
				sibling = path.Join(path.Dir(key), name)
			}
			return s.client.GetObject(ctx, s.bucket, sibling, minio.GetObjectOptions{})
		},
	}

	asset, err := s.reg.Create(ctx, cat, tag, src)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", key, err)
	}

	s.logger.Info("Asset inspected",
		zap.String("key", key),
		zap.String("category", cat.String()),
		zap.String("kind", asset.Kind().String()),
	)

	report := &InspectReport{
		Key:      key,
		Category: cat.String(),
		Tag:      string(tag),
		Size:     stat.Size,
		ETag:     stat.ETag,
		Asset:    asset.Summary(),
	}

	if s.recorder != nil {
		if err := s.recorder.RecordInspection(ctx, report); err != nil {
			s.logger.Warn("Failed to record inspection", zap.String("key", key), zap.Error(err))
		}
	}

	return report, nil
}
