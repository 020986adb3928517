package taches

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"crm-backend/models"
	"crm-backend/testutils"
	"crm-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestGetTaches_DerivesUrgency(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	overdue := time.Now().Add(-48 * time.Hour)
	upcoming := time.Now().Add(72 * time.Hour)

	rows := mock.NewRows([]string{"id", "contact_id", "description", "date_echeance", "statut", "date_creation", "nom", "prenom", "telephone"}).
		AddRow("t1", "c1", "Rappeler pour devis mutuelle", overdue, models.TacheAFaire, time.Now(), "Martin", "Sophie", "0612345678").
		AddRow("t2", "c2", "Envoyer la proposition habitation", upcoming, models.TacheAFaire, time.Now(), "Dubois", "Paul", "0698765432")

	mock.ExpectQuery(`SELECT taches\.\*, contacts\.nom, contacts\.prenom, contacts\.telephone FROM "taches" JOIN contacts ON taches\.contact_id = contacts\.id WHERE taches\.statut = \$1 ORDER BY taches\.date_echeance ASC`).
		WithArgs(models.TacheAFaire).
		WillReturnRows(rows)

	r := testutils.SetupTestRouter()
	r.GET("/taches", GetTaches)

	req, _ := http.NewRequest(http.MethodGet, "/taches", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Len(t, body, 2)
	assert.Equal(t, true, body[0]["urgente"])
	assert.Equal(t, false, body[1]["urgente"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTaches_FilterByStatut(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT taches\.\*, contacts\.nom, contacts\.prenom, contacts\.telephone FROM "taches" JOIN contacts ON taches\.contact_id = contacts\.id WHERE taches\.statut = \$1 ORDER BY taches\.date_echeance ASC`).
		WithArgs(models.TacheTerminee).
		WillReturnRows(mock.NewRows([]string{"id"}))

	r := testutils.SetupTestRouter()
	r.GET("/taches", GetTaches)

	req, _ := http.NewRequest(http.MethodGet, "/taches?statut=Terminée", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTache_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	contactID := "11111111-1111-1111-1111-111111111111"

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY "contacts"\."id" LIMIT \$2`).
		WithArgs(contactID, 1).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(contactID))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "taches" (.+) RETURNING (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("22222222-2222-2222-2222-222222222222"))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("33333333-3333-3333-3333-333333333333"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/taches", CreateTache)

	payload := map[string]string{
		"contact_id":  contactID,
		"description": "Rappeler pour devis mutuelle",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/taches", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, models.TacheAFaire, body["statut"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTache_ContactNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY "contacts"\."id" LIMIT \$2`).
		WithArgs("99999999-9999-9999-9999-999999999999", 1).
		WillReturnRows(mock.NewRows([]string{"id"}))

	r := testutils.SetupTestRouter()
	r.POST("/taches", CreateTache)

	payload := map[string]string{
		"contact_id":  "99999999-9999-9999-9999-999999999999",
		"description": "Relance",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/taches", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTache_KeepsStatutWhenOmitted(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	tacheID := "22222222-2222-2222-2222-222222222222"

	mock.ExpectQuery(`SELECT \* FROM "taches" WHERE id = \$1 ORDER BY "taches"\."id" LIMIT \$2`).
		WithArgs(tacheID, 1).
		WillReturnRows(mock.NewRows([]string{"id", "contact_id", "description", "statut"}).
			AddRow(tacheID, "c1", "Rappeler pour devis mutuelle", models.TacheAFaire))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "taches" SET (.+) WHERE "id" = \$4`).
		WithArgs(sqlmock.AnyArg(), "Rappeler pour devis auto", models.TacheAFaire, tacheID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PUT("/taches/:id", UpdateTache)

	payload := map[string]string{
		"description": "Rappeler pour devis auto",
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPut, "/taches/"+tacheID, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, models.TacheAFaire, body["statut"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTache_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "taches" WHERE id = \$1 ORDER BY "taches"\."id" LIMIT \$2`).
		WithArgs("unknown-id", 1).
		WillReturnRows(mock.NewRows([]string{"id"}))

	r := testutils.SetupTestRouter()
	r.PUT("/taches/:id", UpdateTache)

	payload := map[string]string{
		"description": "Relance",
		"statut":      models.TacheTerminee,
	}
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPut, "/taches/unknown-id", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteTache_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "taches" WHERE id = \$1`).
		WithArgs("22222222-2222-2222-2222-222222222222").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/taches/:id", DeleteTache)

	req, _ := http.NewRequest(http.MethodDelete, "/taches/22222222-2222-2222-2222-222222222222", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
