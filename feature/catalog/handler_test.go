package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_Reconcile(t *testing.T) {
	t.Run("GET Is Report Only", func(t *testing.T) {
		svc, sqlMock, client := setupService(t)
		app := fiber.New()
		NewHandler(svc).RegisterRoutes(app)

		expectPreflight(sqlMock)
		client.On("ListObjects", mock.Anything, bucket, mock.Anything).
			Return(listingChannel("volumes/brick.raw"))
		rows := sqlmock.NewRows(recordColumns()).
			AddRow(recordRow("id-2", "meshes/gone.ply")...)
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets`").WillReturnRows(rows)

		// A fix param on the GET route must not trigger repairs.
		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/reconcile?fix=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report ReconcileReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, []string{"volumes/brick.raw"}, report.MissingInCatalog)
		assert.Zero(t, report.Indexed)
		assert.Zero(t, report.Pruned)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("POST Applies Repairs", func(t *testing.T) {
		svc, sqlMock, client := setupService(t)
		app := fiber.New()
		NewHandler(svc).RegisterRoutes(app)

		expectPreflight(sqlMock)
		client.On("ListObjects", mock.Anything, bucket, mock.Anything).
			Return(listingChannel("volumes/brick.raw"))
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets`").
			WillReturnRows(sqlmock.NewRows(recordColumns()))
		sqlMock.ExpectQuery("SELECT \\* FROM `scene_assets` WHERE object_key = \\?").
			WillReturnRows(sqlmock.NewRows(recordColumns()))
		sqlMock.ExpectExec("INSERT INTO `scene_assets`").
			WillReturnResult(sqlmock.NewResult(0, 1))

		resp, err := app.Test(httptest.NewRequest("POST", "/catalog/reconcile", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report ReconcileReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 1, report.Indexed)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
