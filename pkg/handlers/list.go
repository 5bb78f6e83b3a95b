package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"taskmanager/pkg/auth"
	"taskmanager/pkg/list"
)

const (
	typeError    string = "error"
	typeMessage  string = "message"
	muxVarListID string = "list_id"
	muxVarTaskID string = "task_id"
)

type TitleForm struct {
	Title string `json:"title"`
}

type ListHandler struct {
	Service list.ServiceInterface
	Logger  *slog.Logger
}

func NewListHandler(service list.ServiceInterface, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(w, r)
	if !ok {
		return
	}

	lists, err := h.Service.GetAll(identity.UserID)
	if err != nil {
		h.writeListError(w, "GetLists", err)
		return
	}

	writeJSON(w, h.Logger, lists)
}

func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req TitleForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	identity, ok := getIdentityFromContext(w, r)
	if !ok {
		return
	}

	newList, err := h.Service.Create(req.Title, identity.UserID)
	if err != nil {
		h.writeListError(w, "CreateList", err)
		return
	}

	if ok := writeJSON(w, h.Logger, newList); ok {
		h.Logger.Info("new list created", "user", identity.UserID, "list", newList.ID)
	}
}

func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	listID, identity, ok := listRequestParams(w, r)
	if !ok {
		return
	}

	foundList, err := h.Service.GetByID(listID, identity.UserID)
	if err != nil {
		h.writeListError(w, "GetList", err)
		return
	}

	writeJSON(w, h.Logger, foundList)
}

func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	listID, identity, ok := listRequestParams(w, r)
	if !ok {
		return
	}

	var upd list.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	updated, err := h.Service.Update(listID, identity.UserID, upd)
	if err != nil {
		h.writeListError(w, "UpdateList", err)
		return
	}

	if ok := writeJSON(w, h.Logger, updated); ok {
		h.Logger.Info("list updated", "user", identity.UserID, "list", listID)
	}
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	listID, identity, ok := listRequestParams(w, r)
	if !ok {
		return
	}

	deleted, err := h.Service.Delete(listID, identity.UserID)
	if err != nil {
		h.writeListError(w, "DeleteList", err)
		return
	}

	if ok := writeJSON(w, h.Logger, deleted); ok {
		h.Logger.Info("list deleted", "user", identity.UserID, "list", listID)
	}
}

// writeListError hides ownership mismatches behind the same 404 a missing
// list produces.
func (h *ListHandler) writeListError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, list.ErrNotFound) {
		writeError(w, http.StatusNotFound, typeMessage, list.ErrNotFound.Error())
		return
	}
	h.Logger.Error(op, "error", err.Error())
	writeError(w, http.StatusInternalServerError, typeError, "internal error")
}

func listRequestParams(w http.ResponseWriter, r *http.Request) (string, *auth.Identity, bool) {
	vars := mux.Vars(r)

	listID, ok := vars[muxVarListID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid list id")
		return "", nil, false
	}

	identity, ok := getIdentityFromContext(w, r)
	if !ok {
		return "", nil, false
	}

	return listID, identity, true
}

func getIdentityFromContext(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return nil, false
	}
	return identity, true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}
