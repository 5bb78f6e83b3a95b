package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"taskmanager/pkg/auth"
	"taskmanager/pkg/list"
	"taskmanager/pkg/task"
)

type TaskHandler struct {
	Service task.ServiceInterface
	Logger  *slog.Logger
}

func NewTaskHandler(service task.ServiceInterface, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	listID, identity, ok := listRequestParams(w, r)
	if !ok {
		return
	}

	tasks, err := h.Service.GetAll(listID, identity.UserID)
	if err != nil {
		h.writeTaskError(w, "GetTasks", err)
		return
	}

	writeJSON(w, h.Logger, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	listID, identity, ok := listRequestParams(w, r)
	if !ok {
		return
	}

	var req TitleForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	newTask, err := h.Service.Create(req.Title, listID, identity.UserID)
	if err != nil {
		h.writeTaskError(w, "CreateTask", err)
		return
	}

	if ok := writeJSON(w, h.Logger, newTask); ok {
		h.Logger.Info("new task created", "user", identity.UserID, "list", listID, "task", newTask.ID)
	}
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	listID, taskID, identity, ok := taskRequestParams(w, r)
	if !ok {
		return
	}

	foundTask, err := h.Service.GetByID(taskID, listID, identity.UserID)
	if err != nil {
		h.writeTaskError(w, "GetTask", err)
		return
	}

	writeJSON(w, h.Logger, foundTask)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	listID, taskID, identity, ok := taskRequestParams(w, r)
	if !ok {
		return
	}

	var upd task.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	updated, err := h.Service.Update(taskID, listID, identity.UserID, upd)
	if err != nil {
		h.writeTaskError(w, "UpdateTask", err)
		return
	}

	if ok := writeJSON(w, h.Logger, updated); ok {
		h.Logger.Info("task updated", "user", identity.UserID, "list", listID, "task", taskID)
	}
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	listID, taskID, identity, ok := taskRequestParams(w, r)
	if !ok {
		return
	}

	deleted, err := h.Service.Delete(taskID, listID, identity.UserID)
	if err != nil {
		h.writeTaskError(w, "DeleteTask", err)
		return
	}

	if ok := writeJSON(w, h.Logger, deleted); ok {
		h.Logger.Info("task deleted", "user", identity.UserID, "list", listID, "task", taskID)
	}
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, list.ErrNotFound):
		writeError(w, http.StatusNotFound, typeMessage, list.ErrNotFound.Error())
	case errors.Is(err, task.ErrNotFound):
		writeError(w, http.StatusNotFound, typeMessage, task.ErrNotFound.Error())
	default:
		h.Logger.Error(op, "error", err.Error())
		writeError(w, http.StatusInternalServerError, typeError, "internal error")
	}
}

func taskRequestParams(w http.ResponseWriter, r *http.Request) (string, string, *auth.Identity, bool) {
	listID, identity, ok := listRequestParams(w, r)
	if !ok {
		return "", "", nil, false
	}

	taskID, ok := mux.Vars(r)[muxVarTaskID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid task id")
		return "", "", nil, false
	}

	return listID, taskID, identity, true
}
