package api

import (
	stderrors "errors"
	"net/http"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/games"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/quiz"
	"github.com/vytor/eduplay/internal/services"
)

type errorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// toAppError maps engine errors onto AppErrors. Anything unrecognized becomes
// an internal error.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stderrors.Is(err, quiz.ErrUnknownSubject):
		return &apperrors.AppError{Code: apperrors.ErrCodeNotFound, Message: err.Error(), Status: http.StatusNotFound, Err: err}
	case stderrors.Is(err, quiz.ErrOptionOutOfRange), stderrors.Is(err, games.ErrInvalidLetter):
		return &apperrors.AppError{Code: apperrors.ErrCodeBadRequest, Message: err.Error(), Status: http.StatusBadRequest, Err: err}
	case stderrors.Is(err, quiz.ErrNotInProgress), stderrors.Is(err, games.ErrNoRound):
		return apperrors.NewConflictError(err.Error(), err)
	}
	return apperrors.NewInternalError(err)
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := toAppError(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	body := errorBody{Code: appErr.Code, Message: appErr.Message}
	if appErr.Code == apperrors.ErrCodeUnauthorized {
		body.Redirect = services.LoginPath
	}
	writeJSON(w, r, appErr.Status, errorResponse{Error: body})
}
