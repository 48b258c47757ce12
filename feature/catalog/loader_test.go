package catalog

import (
	"testing"

	"scene-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	t.Run("Disabled Without Database", func(t *testing.T) {
		feature := NewFeature(nil, new(mocks.Client), bucket, zap.NewNop())
		assert.Equal(t, "catalog", feature.Name())
		assert.False(t, feature.IsEnabled())
		assert.Nil(t, feature.Service())
	})

	t.Run("Enabled With Database", func(t *testing.T) {
		svc, _, _ := setupService(t)
		feature := NewFeature(svc.db, new(mocks.Client), bucket, zap.NewNop())
		assert.True(t, feature.IsEnabled())
		assert.NotNil(t, feature.Service())
	})
}
