package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/internal/server/storage"
	"github.com/iudanet/notesync/pkg/api"
)

// maxMutationBody ограничивает размер тела POST /mutations
const maxMutationBody = 16 << 20

// EntityHandler serves the remote persistence API.
type EntityHandler struct {
	logger  *slog.Logger
	storage storage.EntityStorage
	now     func() time.Time
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(logger *slog.Logger, storage storage.EntityStorage) *EntityHandler {
	return &EntityHandler{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// List обрабатывает GET /api/v1/entities/{type}
// Возвращает полный снимок сущностей одного типа
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entityType, err := models.ParseEntityType(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "unknown entity type", err.Error())
		return
	}

	entities, err := h.storage.ListEntities(ctx, userID, entityType)
	if err != nil {
		h.logger.Error("failed to list entities", "error", err, "user_id", userID, "entity_type", entityType)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	resp := api.EntitiesResponse{
		Type:       string(entityType),
		Entities:   make([]api.Entity, 0, len(entities)),
		ServerTime: h.now().UnixMilli(),
	}
	for _, e := range entities {
		resp.Entities = append(resp.Entities, *api.EntityFromModel(e))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
	h.logger.Debug("entities listed", "user_id", userID, "entity_type", entityType, "count", len(entities))
}

// Mutate обрабатывает POST /api/v1/mutations
// Применяет одно изменение из очереди клиента (идемпотентно по id)
func (h *EntityHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req api.MutationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMutationBody)).Decode(&req); err != nil {
		h.logger.Warn("failed to decode mutation", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	m, err := mutationFromRequest(&req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid mutation", err.Error())
		return
	}

	res, err := h.storage.ApplyMutation(ctx, userID, m)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidMutation) {
			writeError(w, h.logger, http.StatusBadRequest, "invalid mutation", err.Error())
			return
		}
		h.logger.Error("failed to apply mutation", "error", err, "user_id", userID, "mutation_id", req.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	if !res.Applied {
		h.logger.Info("mutation superseded by newer copy",
			"user_id", userID,
			"entity_type", m.EntityType,
			"entity_id", m.EntityID,
			"pushed_at", m.UpdatedAt,
			"stored_at", res.UpdatedAt,
		)
	}

	writeJSON(w, h.logger, http.StatusOK, api.MutationResponse{
		ID:        req.ID,
		Applied:   res.Applied,
		UpdatedAt: res.UpdatedAt,
	})
}

func mutationFromRequest(req *api.MutationRequest) (*storage.Mutation, error) {
	entityType, err := models.ParseEntityType(req.EntityType)
	if err != nil {
		return nil, err
	}

	m := &storage.Mutation{
		ID:         req.ID,
		EntityID:   req.EntityID,
		EntityType: entityType,
		Operation:  models.Operation(req.Operation),
		UpdatedAt:  req.UpdatedAt,
	}
	if req.Entity != nil {
		if m.Entity, err = req.Entity.Model(); err != nil {
			return nil, err
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
