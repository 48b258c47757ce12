package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGetTableColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "VARCHAR(36)", "NO", "PRI", nil, "").
		AddRow("object_key", "varchar(512)", "NO", "UNI", nil, "")

	mock.ExpectQuery("SHOW COLUMNS FROM `scene_assets`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "scene_assets")
	assert.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "varchar(36)", columns[0].Type)
}

func TestMissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(36)", "NO", "PRI", nil, "").
		AddRow("tag", "varchar(16)", "NO", "", nil, "")

	mock.ExpectQuery("SHOW COLUMNS FROM `scene_assets`").WillReturnRows(rows)

	missing, err := MissingColumns(db, "scene_assets", []string{"id", "tag", "checksum"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"checksum"}, missing)
}
