package catalog

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"scene-manager/core/storage/mocks"
	"scene-manager/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const bucket = "scenes"

func setupService(t *testing.T) (*Service, sqlmock.Sqlmock, *mocks.Client) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	client := new(mocks.Client)
	return NewService(gormDB, client, bucket, zap.NewNop()), sqlMock, client
}

func recordColumns() []string {
	return []string{
		"id", "object_key", "category", "tag", "size",
		"checksum", "label", "triangles", "voxels",
		"created_at", "updated_at",
	}
}

func recordRow(id, key string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, key, "mesh", "ply", int64(42), "abc", "bunny", 1, int64(0), now, now}
}

func TestService_List(t *testing.T) {
	svc, sqlMock, _ := setupService(t)

	rows := sqlmock.NewRows(recordColumns()).
		AddRow(recordRow("id-1", "meshes/bunny.ply")...).
		AddRow(recordRow("id-2", "meshes/dragon.ply")...)
	sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets`").WillReturnRows(rows)

	records, err := svc.List(context.Background(), 10, 0)
	assert.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "meshes/bunny.ply", records[0].Key)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		rows := sqlmock.NewRows(recordColumns()).AddRow(recordRow("id-1", "meshes/bunny.ply")...)
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets` WHERE id = \\?").WillReturnRows(rows)

		rec, err := svc.Get(context.Background(), "id-1")
		require.NoError(t, err)
		assert.Equal(t, "meshes/bunny.ply", rec.Key)
		assert.Equal(t, "bunny", rec.Label)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets` WHERE id = \\?").
			WillReturnRows(sqlmock.NewRows(recordColumns()))

		_, err := svc.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Deletes", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		sqlMock.ExpectExec("DELETE FROM `scene_assets` WHERE id = \\?").
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, svc.Delete(context.Background(), "id-1"))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		sqlMock.ExpectExec("DELETE FROM `scene_assets` WHERE id = \\?").
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), ErrNotFound)
	})
}

func TestService_Index(t *testing.T) {
	t.Run("Creates New Record", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets` WHERE object_key = \\?").
			WillReturnRows(sqlmock.NewRows(recordColumns()))
		sqlMock.ExpectExec("INSERT INTO `scene_assets`").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := models.Record{Key: "meshes/bunny.ply", Category: "mesh", Tag: "ply", Size: 42}
		err := svc.Index(context.Background(), &rec)
		assert.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Updates Existing Record", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		rows := sqlmock.NewRows(recordColumns()).AddRow(recordRow("id-1", "meshes/bunny.ply")...)
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets` WHERE object_key = \\?").WillReturnRows(rows)
		sqlMock.ExpectExec("UPDATE `scene_assets` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := models.Record{Key: "meshes/bunny.ply", Category: "mesh", Tag: "ply", Size: 99}
		err := svc.Index(context.Background(), &rec)
		assert.NoError(t, err)
		assert.Equal(t, "id-1", rec.ID)
	})

	t.Run("Rejects Empty Key", func(t *testing.T) {
		svc, _, _ := setupService(t)
		err := svc.Index(context.Background(), &models.Record{})
		assert.ErrorContains(t, err, "object key")
	})
}

func expectPreflight(sqlMock sqlmock.Sqlmock) {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, col := range models.RequiredColumns {
		rows.AddRow(col, "varchar(64)", "NO", "", nil, "")
	}
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `scene_assets`").WillReturnRows(rows)
}

func listingChannel(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key, Size: 42, ETag: `"abc"`}
	}
	close(ch)
	return ch
}

func TestService_Reconcile(t *testing.T) {
	t.Run("Reports Drift", func(t *testing.T) {
		svc, sqlMock, client := setupService(t)

		expectPreflight(sqlMock)
		client.On("ListObjects", mock.Anything, bucket, mock.Anything).
			Return(listingChannel("meshes/bunny.ply", "volumes/brick.raw"))

		rows := sqlmock.NewRows(recordColumns()).
			AddRow(recordRow("id-1", "meshes/bunny.ply")...).
			AddRow(recordRow("id-2", "meshes/gone.ply")...)
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets`").WillReturnRows(rows)

		report, err := svc.Reconcile(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Objects)
		assert.Equal(t, 2, report.Records)
		assert.Equal(t, []string{"volumes/brick.raw"}, report.MissingInCatalog)
		assert.Equal(t, []string{"meshes/gone.ply"}, report.MissingInStorage)
		assert.Zero(t, report.Indexed)
		assert.Zero(t, report.Pruned)
	})

	t.Run("Fix Indexes And Prunes", func(t *testing.T) {
		svc, sqlMock, client := setupService(t)

		expectPreflight(sqlMock)
		client.On("ListObjects", mock.Anything, bucket, mock.Anything).
			Return(listingChannel("volumes/brick.raw"))

		rows := sqlmock.NewRows(recordColumns()).
			AddRow(recordRow("id-2", "meshes/gone.ply")...)
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets`").WillReturnRows(rows)

		// Index the unrecorded object.
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets` WHERE object_key = \\?").
			WillReturnRows(sqlmock.NewRows(recordColumns()))
		sqlMock.ExpectExec("INSERT INTO `scene_assets`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Prune the stale record.
		sqlMock.ExpectExec("DELETE FROM `scene_assets` WHERE id = \\?").
			WithArgs("id-2").
			WillReturnResult(sqlmock.NewResult(0, 1))

		report, err := svc.Reconcile(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Indexed)
		assert.Equal(t, 1, report.Pruned)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Fails On Incomplete Schema", func(t *testing.T) {
		svc, sqlMock, _ := setupService(t)

		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "varchar(36)", "NO", "PRI", nil, "")
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `scene_assets`").WillReturnRows(rows)

		_, err := svc.Reconcile(context.Background(), false)
		assert.ErrorContains(t, err, "missing columns")
	})
}

func TestRecordFromListing(t *testing.T) {
	rec := recordFromListing("volumes/brick.raw", minio.ObjectInfo{Size: 64, ETag: `"deadbeef"`})
	assert.Equal(t, "volume", rec.Category)
	assert.Equal(t, "raw", rec.Tag)
	assert.Equal(t, int64(64), rec.Size)
	assert.Equal(t, "deadbeef", rec.Checksum)
}
