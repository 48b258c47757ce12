package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"scene-manager/core/database"
	"scene-manager/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ReconcileReport summarizes a reconciliation run.
type ReconcileReport struct {
	Objects          int      `json:"objects"`
	Records          int      `json:"records"`
	MissingInCatalog []string `json:"missing_in_catalog"`
	MissingInStorage []string `json:"missing_in_storage"`
	Indexed          int      `json:"indexed"`
	Pruned           int      `json:"pruned"`
}

// Reconcile compares the storage bucket against the catalog table.
// Objects without a record are reported as missing from the catalog;
// records whose object is gone are reported as missing from storage.
// With fix set, the former are indexed from listing metadata and the
// latter deleted.
func (s *Service) Reconcile(ctx context.Context, fix bool) (*ReconcileReport, error) {
	if err := s.preflight(ctx); err != nil {
		return nil, err
	}

	objects := make(map[string]minio.ObjectInfo)
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %q: %w", s.bucket, info.Err)
		}
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		objects[info.Key] = info
	}

	var records []models.Record
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog records: %w", err)
	}
	recorded := make(map[string]models.Record, len(records))
	for _, rec := range records {
		recorded[rec.Key] = rec
	}

	report := &ReconcileReport{Objects: len(objects), Records: len(records)}
	for key := range objects {
		if _, ok := recorded[key]; !ok {
			report.MissingInCatalog = append(report.MissingInCatalog, key)
		}
	}
	for key := range recorded {
		if _, ok := objects[key]; !ok {
			report.MissingInStorage = append(report.MissingInStorage, key)
		}
	}
	sort.Strings(report.MissingInCatalog)
	sort.Strings(report.MissingInStorage)

	if !fix {
		return report, nil
	}

	for _, key := range report.MissingInCatalog {
		info := objects[key]
		rec := recordFromListing(key, info)
		if err := s.Index(ctx, &rec); err != nil {
			return report, err
		}
		report.Indexed++
	}
	for _, key := range report.MissingInStorage {
		if err := s.Delete(ctx, recorded[key].ID); err != nil {
			return report, err
		}
		s.logger.Info("Stale catalog record pruned", zap.String("key", key))
		report.Pruned++
	}

	return report, nil
}

// preflight verifies the catalog table carries the columns reconcile
// reads and writes, so a half-migrated schema fails loudly instead of
// silently dropping data.
func (s *Service) preflight(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	missing, err := database.MissingColumns(db, models.Record{}.TableName(), models.RequiredColumns)
	if err != nil {
		return fmt.Errorf("failed to inspect catalog schema: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("catalog table is missing columns %v, run migrations first", missing)
	}
	return nil
}

func recordFromListing(key string, info minio.ObjectInfo) models.Record {
	rec := models.Record{
		Key:      key,
		Size:     info.Size,
		Checksum: strings.Trim(info.ETag, `"`),
	}
	if i := strings.IndexByte(key, '/'); i > 0 {
		switch key[:i] {
		case "scenes":
			rec.Category = "object"
		case "volumes":
			rec.Category = "volume"
		case "meshes":
			rec.Category = "mesh"
		}
	}
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		rec.Tag = strings.ToLower(key[i+1:])
	}
	return rec
}
