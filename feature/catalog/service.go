package catalog

import (
	"context"
	"errors"
	"fmt"

	"scene-manager/core/storage"
	"scene-manager/feature/catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("catalog record not found")

// Service implements catalog operations.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, bucket: bucket, logger: logger}
}

// Migrate creates or updates the catalog table.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&models.Record{}); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// Index creates or refreshes the record for an object key.
func (s *Service) Index(ctx context.Context, rec *models.Record) error {
	if rec.Key == "" {
		return fmt.Errorf("catalog record needs an object key")
	}

	var existing models.Record
	err := s.db.WithContext(ctx).Where("object_key = ?", rec.Key).First(&existing).Error
	switch {
	case err == nil:
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update catalog record for %q: %w", rec.Key, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec.ID = uuid.NewString()
		if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create catalog record for %q: %w", rec.Key, err)
		}
	default:
		return fmt.Errorf("failed to look up catalog record for %q: %w", rec.Key, err)
	}

	s.logger.Info("Asset indexed", zap.String("key", rec.Key), zap.String("id", rec.ID))
	return nil
}

// List returns catalog records, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var records []models.Record
	err := s.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog records: %w", err)
	}
	return records, nil
}

// Get fetches one record by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	var rec models.Record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog record %q: %w", id, err)
	}
	return &rec, nil
}

// Delete removes one record by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Record{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete catalog record %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
