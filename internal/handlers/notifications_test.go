package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fallguard/internal/models"
)

func createIncident(t *testing.T, env *testEnv, fields map[string]string) int64 {
	t.Helper()

	rec := postAlert(t, env.router, fields, [][]byte{[]byte("before"), []byte("fall")})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IncidentID int64 `json:"incidentId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.IncidentID
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func putStatus(env *testEnv, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestUpdateNotification_StatusReflectedOnNextGet(t *testing.T) {
	env := newTestEnv(t)
	id := createIncident(t, env, alertFields())

	rec := putStatus(env, "/notifications/"+jsonID(id), `{"status":"reviewed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])

	listRec := httptest.NewRecorder()
	env.router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	var list []models.Incident
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusReviewed, list[0].Status)
}

func TestUpdateNotification_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	rec := putStatus(env, "/notifications/98765", `{"status":"reviewed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNotification_MissingStatus(t *testing.T) {
	env := newTestEnv(t)
	id := createIncident(t, env, alertFields())

	for _, body := range []string{`{}`, ``, `{"status":""}`} {
		rec := putStatus(env, "/notifications/"+jsonID(id), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestListNotifications_Filters(t *testing.T) {
	env := newTestEnv(t)

	first := alertFields()
	first["user_id"] = "alice"
	createIncident(t, env, first)

	second := alertFields()
	second["user_id"] = "bob"
	second["track_id"] = "6"
	createIncident(t, env, second)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications?userId=bob", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Incident
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].UserID)
	assert.Equal(t, 6, list[0].TrackID)
}

func TestListNotifications_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
