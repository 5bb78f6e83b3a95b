package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"taskmanager/pkg/auth"
	"taskmanager/pkg/user"
)

type CredentialsForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserHandler struct {
	Service user.ServiceInterface
	Logger  *slog.Logger
}

type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

func NewUserHandler(service user.ServiceInterface, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	authResult, err := h.Service.Signup(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, user.ErrEmailTaken) {
			h.Logger.Error("signup", "error", err.Error())
			writeError(w, http.StatusInternalServerError, typeError, "internal error")
			return
		}
		if ok := WriteResp(w, h.Logger, map[string]any{
			"errors": []FieldError{
				{
					Location: "body",
					Param:    "email",
					Value:    req.Email,
					Msg:      "already exists",
				},
			},
		}, http.StatusUnprocessableEntity); ok {
			h.Logger.Error("signup", "error", err.Error(), "email", req.Email)
		}
		return
	}

	h.writeAuth(w, authResult, "signup")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	authResult, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, user.ErrInvalidCredentials) {
			h.Logger.Error("login", "error", err.Error())
			writeError(w, http.StatusInternalServerError, typeError, "internal error")
			return
		}
		// One message for unknown email and wrong password alike.
		if ok := WriteResp(w, h.Logger, map[string]any{
			"message": "invalid email or password",
		}, http.StatusUnauthorized); ok {
			h.Logger.Error("login", "error", "unauthorized")
		}
		return
	}

	h.writeAuth(w, authResult, "login")
}

// AccessToken reissues a short-lived token for a caller already identified by
// the refresh-session gate.
func (h *UserHandler) AccessToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(w, r)
	if !ok {
		return
	}

	accessToken, err := h.Service.NewAccessToken(identity.UserID)
	if err != nil {
		h.Logger.Error("access token reissue", "error", err.Error())
		writeError(w, http.StatusInternalServerError, typeError, "internal error")
		return
	}

	w.Header().Set(auth.HeaderAccessToken, accessToken)
	if ok := writeJSON(w, h.Logger, map[string]string{"accessToken": accessToken}); ok {
		h.Logger.Info("access token reissue", "user", identity.UserID)
	}
}

// writeAuth echoes both credentials in headers and the user in the body; the
// body never carries the password hash.
func (h *UserHandler) writeAuth(w http.ResponseWriter, a *user.Auth, action string) {
	w.Header().Set(auth.HeaderAccessToken, a.AccessToken)
	w.Header().Set(auth.HeaderRefreshToken, a.RefreshToken)

	if ok := writeJSON(w, h.Logger, a.User); ok {
		h.Logger.Info(action, "user", a.User.ID)
	}
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
