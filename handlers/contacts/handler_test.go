package contacts

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"crm-backend/models"
	"crm-backend/testutils"
	"crm-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)
	utils.Logger.SetOutput(io.Discard)
	utils.Logger.SetLevel(logrus.PanicLevel)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestCreateContact_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contacts" (.+) RETURNING (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("11111111-1111-1111-1111-111111111111"))
	mock.ExpectCommit()

	// Notification consultative après la création
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("22222222-2222-2222-2222-222222222222"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/contacts", CreateContact)

	payload := map[string]string{
		"nom":       "Martin",
		"prenom":    "Pierre",
		"telephone": "0123456789",
		"regime":    "Senior",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/contacts", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "0123456789", body["telephone"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContact_MissingPhone(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/contacts", CreateContact)

	payload := map[string]string{
		"nom":    "Martin",
		"prenom": "Pierre",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/contacts", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Contains(t, body["error"], "Field validation for 'Telephone' failed")
}

func TestCreateContact_DuplicatePhoneReturnsConflict(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contacts" (.+) RETURNING (.+)`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_contacts_telephone"})
	mock.ExpectRollback()

	r := testutils.SetupTestRouter()
	r.POST("/contacts", CreateContact)

	payload := map[string]string{
		"nom":       "Martin",
		"prenom":    "Pierre",
		"telephone": "0123456789",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/contacts", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Contains(t, body["error"], "existe déjà")
	// Aucune notification ne doit partir pour une création refusée
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContact_NotificationFailureDoesNotFailCreate(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contacts" (.+) RETURNING (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("11111111-1111-1111-1111-111111111111"))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING (.+)`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	r := testutils.SetupTestRouter()
	r.POST("/contacts", CreateContact)

	payload := map[string]string{
		"nom":       "Martin",
		"prenom":    "Pierre",
		"telephone": "0123456789",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/contacts", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContact_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY "contacts"\."id" LIMIT \$2`).
		WithArgs("unknown-id", 1).
		WillReturnRows(mock.NewRows([]string{"id"}))

	r := testutils.SetupTestRouter()
	r.PUT("/contacts/:id", UpdateContact)

	payload := map[string]string{
		"nom":       "Martin",
		"prenom":    "Pierre",
		"telephone": "0123456789",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPut, "/contacts/unknown-id", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteContact_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "contacts" WHERE id = \$1`).
		WithArgs("11111111-1111-1111-1111-111111111111").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/contacts/:id", DeleteContact)

	req, _ := http.NewRequest(http.MethodDelete, "/contacts/11111111-1111-1111-1111-111111111111", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContact_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "contacts" WHERE id = \$1`).
		WithArgs("unknown-id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/contacts/:id", DeleteContact)

	req, _ := http.NewRequest(http.MethodDelete, "/contacts/unknown-id", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetContactStats(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE date_creation >= NOW\(\) - INTERVAL '7 days'`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT\((.+)\)\) FROM "contrats_clients"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE statut IN \(\$1,\$2\)`).
		WithArgs(models.StatutContacteNRP, models.StatutARecycler).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE date_creation >= NOW\(\) - INTERVAL '30 days'`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(20))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE statut = \$1 AND date_creation >= NOW\(\) - INTERVAL '30 days'`).
		WithArgs(models.StatutClientGagne).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT source, COUNT\(\*\) as nombre FROM "contacts" WHERE date_creation >= NOW\(\) - INTERVAL '30 days' GROUP BY source ORDER BY nombre DESC`).
		WillReturnRows(mock.NewRows([]string{"source", "nombre"}).
			AddRow(string(models.SourceFacebook), 12).
			AddRow(string(models.SourceTikTok), 8))

	r := testutils.SetupTestRouter()
	r.GET("/contacts/stats", GetContactStats)

	req, _ := http.NewRequest(http.MethodGet, "/contacts/stats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var stats models.ContactStats
	json.Unmarshal(resp.Body.Bytes(), &stats)
	assert.Equal(t, int64(5), stats.NouveauxLeads)
	assert.Equal(t, int64(8), stats.ClientsActifs)
	assert.Equal(t, int64(3), stats.LeadsNRP)
	assert.Equal(t, int64(25), stats.TauxConversion)
	assert.Len(t, stats.RepartitionSource, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
