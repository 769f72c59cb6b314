package adaptor

import (
	"net/http"

	"movie-review/internal/usecase"
	"movie-review/pkg/apperror"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Review *ReviewHandler
	Movie  *MovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, service.User, log),
		User:   NewUserHandler(service.Review, log),
		Review: NewReviewHandler(service.Review, log),
		Movie:  NewMovieHandler(service.Movie, log),
	}
}

// writeServiceError maps a service error onto the response envelope.
// Anything that is not an *apperror.Error is reported as a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Type == apperror.TypeInternal {
		log.Error("Request failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Type {
	case apperror.TypeExternal:
		log.Error("Upstream failure", zap.String("operation", operation), zap.Error(err))
	default:
		log.Debug("Request rejected",
			zap.String("operation", operation),
			zap.String("type", string(appErr.Type)),
			zap.String("message", appErr.Message),
		)
	}

	utils.ResponseAppError(w, appErr)
}

// decodeBody reads the JSON body into dst. It returns false after writing a
// 400 when the body is malformed or has a wrongly typed field.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	fieldErrs, err := utils.DecodeJSON(r, dst)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if len(fieldErrs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", fieldErrs)
		return false
	}
	return true
}

// callerID returns the authenticated user id set by the auth middleware,
// or "" when the request carries none.
func callerID(r *http.Request) string {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return ""
	}
	return userID.String()
}
