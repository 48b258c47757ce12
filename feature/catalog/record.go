package catalog

import (
	"context"
	"strings"

	"scene-manager/feature/assets"
	"scene-manager/feature/catalog/models"
)

// RecordInspection implements assets.Recorder: every successful
// inspection creates or refreshes the asset's catalog record.
func (s *Service) RecordInspection(ctx context.Context, report *assets.InspectReport) error {
	rec := models.Record{
		Key:      report.Key,
		Category: report.Category,
		Tag:      report.Tag,
		Size:     report.Size,
		Checksum: strings.Trim(report.ETag, `"`),
	}
	if label, ok := report.Asset["label"].(string); ok {
		rec.Label = label
	}
	if triangles, ok := report.Asset["triangles"].(int); ok {
		rec.Triangles = triangles
	}
	if voxels, ok := report.Asset["voxels"].(int64); ok {
		rec.Voxels = voxels
	}
	return s.Index(ctx, &rec)
}
