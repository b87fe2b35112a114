package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/scenario"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// ScenarioController handles savings projections.
type ScenarioController struct {
	calculateUseCase *scenario.CalculateUseCase
}

// NewScenarioController creates a new scenario controller instance.
func NewScenarioController(calculateUseCase *scenario.CalculateUseCase) *ScenarioController {
	return &ScenarioController{calculateUseCase: calculateUseCase}
}

// Calculate handles POST /scenarios/calculate requests.
func (c *ScenarioController) Calculate(ctx *gin.Context) {
	if _, ok := requireUser(ctx); !ok {
		return
	}

	var req dto.ScenarioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidScenarioAmount), "Invalid request body", err)
		return
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), req.ToScenarioInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScenarioResponse(output))
}
