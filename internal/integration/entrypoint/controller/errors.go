package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// respondError writes the HTTP response for an error returned by a use case.
func respondError(ctx *gin.Context, err error) {
	var coded domainerror.CodedError
	if !errors.As(err, &coded) {
		slog.Error("Unhandled error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Kind:  string(domainerror.KindInternal),
		})
		return
	}

	response := dto.ErrorResponse{
		Error: coded.ErrorMessage(),
		Code:  coded.ErrorCode(),
		Kind:  string(coded.Kind()),
	}

	var insufficient *domainerror.InsufficientFundsError
	if errors.As(err, &insufficient) {
		available := insufficient.Available
		response.Available = &available
	}

	status := statusForError(err, coded.Kind())
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "code", response.Code, "error", err)
	}
	ctx.JSON(status, response)
}

// statusForError maps an error kind to an HTTP status code.
func statusForError(err error, kind domainerror.Kind) int {
	switch {
	case errors.Is(err, domainerror.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, domainerror.ErrRateLimited):
		return http.StatusTooManyRequests
	}

	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindUnauthorized:
		return http.StatusUnauthorized
	case domainerror.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domainerror.KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requireUser returns the authenticated user's ID or writes a 401 response.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
			Kind:  string(domainerror.KindUnauthorized),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a UUID path parameter or writes a 400 response with code.
func parseIDParam(ctx *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + " format",
			Code:  code,
			Kind:  string(domainerror.KindValidation),
		})
		return uuid.Nil, false
	}
	return id, true
}

// badRequest writes a 400 validation response.
func badRequest(ctx *gin.Context, code, message string, err error) {
	response := dto.ErrorResponse{
		Error: message,
		Code:  code,
		Kind:  string(domainerror.KindValidation),
	}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}
