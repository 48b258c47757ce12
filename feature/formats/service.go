package formats

import (
	"scene-manager/core/registry"

	"go.uber.org/zap"
)

// Service reads the registry for reporting.
type Service struct {
	reg    *registry.Registry
	logger *zap.Logger
}

// NewService creates a new formats service.
func NewService(reg *registry.Registry, logger *zap.Logger) *Service {
	return &Service{reg: reg, logger: logger}
}

// Formats returns the registered tags per category name.
func (s *Service) Formats() map[string][]string {
	out := make(map[string][]string)
	for _, cat := range s.reg.Categories() {
		tags := s.reg.Tags(cat)
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, string(t))
		}
		out[cat.String()] = names
	}
	return out
}

// Supports reports whether a tag is registered under a category.
func (s *Service) Supports(cat registry.Category, tag registry.Tag) bool {
	_, err := s.reg.Lookup(cat, tag)
	return err == nil
}
