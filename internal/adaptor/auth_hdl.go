package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service     usecase.AuthService
	userService usecase.UserService
	log         *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, userService usecase.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:     service,
		userService: userService,
		log:         log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	resp, err := h.userService.GetProfile(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, h.log, err, "me")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
