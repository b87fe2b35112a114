package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/recurring"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// RecurringController handles on-demand recurring processing.
type RecurringController struct {
	processNowUseCase *recurring.ProcessNowUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(processNowUseCase *recurring.ProcessNowUseCase) *RecurringController {
	return &RecurringController{processNowUseCase: processNowUseCase}
}

// ProcessNow handles POST /recurring/process requests.
// Only the caller's templates are materialized.
func (c *RecurringController) ProcessNow(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.processNowUseCase.Execute(ctx.Request.Context(), recurring.ProcessNowInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProcessNowResponse{Summary: *output.Summary})
}
