package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessform-client/internal/dto"
	"assessform-client/internal/pkg/serverutils"
	"assessform-client/internal/repository/filestore"
)

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	store := filestore.NewResponseFileStore(dir)
	NewResponseController(store).RegisterRoutes(app)
	NewUploadController(store).RegisterRoutes(app)
	return app, dir
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestSaveCompanyAfterExplicitCompletionConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	res := postJSON(t, app, "/responses", dto.SaveResponseRequest{
		CompanyID:           "ACME",
		FormType:            "company",
		Responses:           map[string]string{"c1": "Acme Corp"},
		ExplicitlyCompleted: true,
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var saved dto.SaveResponseResult
	decodeBody(t, res, &saved)
	assert.True(t, saved.ExplicitlyCompleted)
	assert.False(t, saved.InProgress)

	res = postJSON(t, app, "/responses", dto.SaveResponseRequest{
		CompanyID: "ACME",
		FormType:  "company",
		Responses: map[string]string{"c1": "Acme Corp", "c2": "25"},
	})
	require.Equal(t, fiber.StatusConflict, res.StatusCode)

	var errRes dto.ErrorResponse
	decodeBody(t, res, &errRes)
	assert.Equal(t, "Company questionnaire already completed", errRes.Error)
}

func TestSaveEmployeeAssignsSequentialIdentities(t *testing.T) {
	app, _ := newTestApp(t)

	for want := 0; want < 2; want++ {
		res := postJSON(t, app, "/responses", dto.SaveResponseRequest{
			CompanyID:     "ACME",
			FormType:      "employee",
			Responses:     map[string]string{"e1": "Site engineer"},
			IsNewEmployee: true,
		})
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		var saved dto.SaveResponseResult
		decodeBody(t, res, &saved)
		require.NotNil(t, saved.EmployeeID)
		assert.Equal(t, want, *saved.EmployeeID)
	}
}

func TestUploadPutRejectsEscapingKey(t *testing.T) {
	app, dir := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPut, "/uploads/put?key=..%2Foutside.txt", bytes.NewReader([]byte("x")))
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "outside.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadPutStoresUnderKey(t *testing.T) {
	app, dir := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPut, "/uploads/put?key=uploads%2FACME%2Fe4%2Fcert.pdf", bytes.NewReader([]byte("%PDF-1.4")))
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "ACME", "e4", "cert.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}
