package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/internal/server/storage"
	"github.com/iudanet/notesync/internal/server/storage/sqlite"
	"github.com/iudanet/notesync/pkg/api"
)

func newEntityHandler(t *testing.T) (*EntityHandler, *sqlite.Storage) {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	h := NewEntityHandler(setupTestLogger(), s)
	h.now = func() time.Time { return time.UnixMilli(9000) }
	return h, s
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(WithUser(r.Context(), userID, "Ada"))
}

func postMutation(t *testing.T, h *EntityHandler, userID string, req api.MutationRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/mutations", bytes.NewReader(body)), userID)
	w := httptest.NewRecorder()
	h.Mutate(w, r)
	return w
}

func noteMutation(id, entityID string, ts int64) api.MutationRequest {
	return api.MutationRequest{
		ID:         id,
		EntityID:   entityID,
		EntityType: "note",
		Operation:  "update",
		UpdatedAt:  ts,
		Entity: &api.Entity{
			ID:        entityID,
			Type:      "note",
			Data:      json.RawMessage(`{"title":"Lecture 1"}`),
			UpdatedAt: ts,
		},
	}
}

func TestEntityHandler_MutateAndList(t *testing.T) {
	h, _ := newEntityHandler(t)

	w := postMutation(t, h, "u1", noteMutation("m1", "n1", 100))
	require.Equal(t, http.StatusOK, w.Code)

	var ack api.MutationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ack))
	assert.Equal(t, "m1", ack.ID)
	assert.True(t, ack.Applied)
	assert.Equal(t, int64(100), ack.UpdatedAt)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/entities/note", nil)
	r = mux.SetURLVars(authed(r, "u1"), map[string]string{"type": "note"})
	lw := httptest.NewRecorder()
	h.List(lw, r)
	require.Equal(t, http.StatusOK, lw.Code)

	var list api.EntitiesResponse
	require.NoError(t, json.NewDecoder(lw.Body).Decode(&list))
	assert.Equal(t, "note", list.Type)
	assert.Equal(t, int64(9000), list.ServerTime)
	require.Len(t, list.Entities, 1)
	assert.Equal(t, "n1", list.Entities[0].ID)
	assert.JSONEq(t, `{"title":"Lecture 1"}`, string(list.Entities[0].Data))
}

func TestEntityHandler_MutateConflict(t *testing.T) {
	h, _ := newEntityHandler(t)

	require.Equal(t, http.StatusOK, postMutation(t, h, "u1", noteMutation("m1", "n1", 200)).Code)

	w := postMutation(t, h, "u1", noteMutation("m2", "n1", 100))
	require.Equal(t, http.StatusOK, w.Code)

	var ack api.MutationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ack))
	assert.False(t, ack.Applied)
	assert.Equal(t, int64(200), ack.UpdatedAt)
}

func TestEntityHandler_MutateDelete(t *testing.T) {
	h, s := newEntityHandler(t)
	require.Equal(t, http.StatusOK, postMutation(t, h, "u1", noteMutation("m1", "n1", 100)).Code)

	w := postMutation(t, h, "u1", api.MutationRequest{
		ID: "m2", EntityID: "n1", EntityType: "note", Operation: "delete", UpdatedAt: 150,
	})
	require.Equal(t, http.StatusOK, w.Code)

	_, err := s.GetEntity(context.Background(), "u1", models.EntityTypeNote, "n1")
	assert.ErrorIs(t, err, storage.ErrEntryNotFound)
}

func TestEntityHandler_MutateBadRequests(t *testing.T) {
	h, _ := newEntityHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "unknown type", body: `{"id":"m","entityId":"x","entityType":"password","operation":"delete"}`},
		{name: "unknown operation", body: `{"id":"m","entityId":"x","entityType":"note","operation":"merge"}`},
		{name: "missing entity", body: `{"id":"m","entityId":"x","entityType":"note","operation":"create"}`},
		{name: "entity of other type", body: `{"id":"m","entityId":"x","entityType":"note","operation":"create","entity":{"id":"x","type":"nope"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/mutations", bytes.NewBufferString(tt.body)), "u1")
			w := httptest.NewRecorder()
			h.Mutate(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

// failingStorage возвращает ошибку на любой вызов
type failingStorage struct{}

func (failingStorage) ListEntities(context.Context, string, models.EntityType) ([]*models.Entity, error) {
	return nil, errors.New("disk full")
}

func (failingStorage) GetEntity(context.Context, string, models.EntityType, string) (*models.Entity, error) {
	return nil, errors.New("disk full")
}

func (failingStorage) ApplyMutation(context.Context, string, *storage.Mutation) (*storage.MutationResult, error) {
	return nil, errors.New("disk full")
}

func TestEntityHandler_StorageErrors(t *testing.T) {
	h := NewEntityHandler(setupTestLogger(), failingStorage{})

	w := postMutation(t, h, "u1", noteMutation("m1", "n1", 100))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	r := mux.SetURLVars(authed(httptest.NewRequest(http.MethodGet, "/api/v1/entities/note", nil), "u1"), map[string]string{"type": "note"})
	lw := httptest.NewRecorder()
	h.List(lw, r)
	assert.Equal(t, http.StatusInternalServerError, lw.Code)
}

func TestEntityHandler_Unauthorized(t *testing.T) {
	h, _ := newEntityHandler(t)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/entities/note", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.Mutate(w, httptest.NewRequest(http.MethodPost, "/api/v1/mutations", bytes.NewBufferString("{}")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEntityHandler_ListUnknownType(t *testing.T) {
	h, _ := newEntityHandler(t)

	r := mux.SetURLVars(authed(httptest.NewRequest(http.MethodGet, "/api/v1/entities/secret", nil), "u1"), map[string]string{"type": "secret"})
	w := httptest.NewRecorder()
	h.List(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
