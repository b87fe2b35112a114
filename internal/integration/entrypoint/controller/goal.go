package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/usecase/goal"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// GoalUseCases groups the use cases served by GoalController.
type GoalUseCases struct {
	List                 *goal.ListGoalsUseCase
	Create               *goal.CreateGoalUseCase
	Get                  *goal.GetGoalUseCase
	Update               *goal.UpdateGoalUseCase
	Delete               *goal.DeleteGoalUseCase
	AddAmount            *goal.AddAmountUseCase
	RemoveAmount         *goal.RemoveAmountUseCase
	RegenerateMilestones *goal.RegenerateMilestonesUseCase
	UpdateMilestone      *goal.UpdateMilestoneUseCase
	TransactionHistory   *goal.GetTransactionHistoryUseCase
}

// GoalController handles goal and milestone endpoints.
type GoalController struct {
	useCases GoalUseCases
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(useCases GoalUseCases) *GoalController {
	return &GoalController{useCases: useCases}
}

const missingGoalFields = string(domainerror.ErrCodeMissingGoalFields)

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.List.Execute(ctx.Request.Context(), goal.ListGoalsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
// Milestones are generated from the pace or the custom count.
func (c *GoalController) Create(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingGoalFields, "Invalid request body", err)
		return
	}

	targetDate, err := dto.ParseOptionalDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, missingGoalFields, "Invalid target_date", err)
		return
	}

	output, err := c.useCases.Create.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:               userID,
		Name:                 req.Name,
		TargetAmount:         req.TargetAmount,
		TargetDate:           targetDate,
		MilestonePace:        valueobject.MilestonePace(req.MilestonePace),
		CustomMilestoneCount: req.CustomMilestoneCount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.Get.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingGoalFields, "Invalid request body", err)
		return
	}

	targetDate, err := dto.ParseOptionalDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, missingGoalFields, "Invalid target_date", err)
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:          goalID,
		UserID:          userID,
		Name:            req.Name,
		TargetAmount:    req.TargetAmount,
		TargetDate:      targetDate,
		ClearTargetDate: req.ClearTargetDate,
	}
	if req.Status != nil {
		status := entity.GoalStatus(*req.Status)
		input.Status = &status
	}

	if _, err := c.useCases.Update.Execute(ctx.Request.Context(), input); err != nil {
		respondError(ctx, err)
		return
	}

	// Respond with the milestones attached
	output, err := c.useCases.Get.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
// Saved money flows back to the wallets it came from.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.Delete.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeleteGoalResponse(output))
}

// AddAmount handles POST /goals/:id/add requests.
func (c *GoalController) AddAmount(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.GoalTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingGoalFields, "Invalid request body", err)
		return
	}

	// The email is optional; without it no notification is queued
	email, _ := middleware.GetUserEmailFromContext(ctx)

	output, err := c.useCases.AddAmount.Execute(ctx.Request.Context(), goal.AddAmountInput{
		UserID:    userID,
		UserEmail: email,
		GoalID:    goalID,
		WalletID:  uuid.MustParse(req.WalletID),
		Amount:    req.Amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAddAmountResponse(output))
}

// RemoveAmount handles POST /goals/:id/remove requests.
func (c *GoalController) RemoveAmount(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.GoalTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingGoalFields, "Invalid request body", err)
		return
	}

	output, err := c.useCases.RemoveAmount.Execute(ctx.Request.Context(), goal.RemoveAmountInput{
		UserID:   userID,
		GoalID:   goalID,
		WalletID: uuid.MustParse(req.WalletID),
		Amount:   req.Amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RemoveAmountResponse{Goal: dto.ToGoalResponse(output.Goal)})
}

// RegenerateMilestones handles POST /goals/:id/milestones/regenerate requests.
func (c *GoalController) RegenerateMilestones(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.RegenerateMilestonesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingGoalFields, "Invalid request body", err)
		return
	}

	output, err := c.useCases.RegenerateMilestones.Execute(ctx.Request.Context(), goal.RegenerateMilestonesInput{
		UserID:               userID,
		GoalID:               goalID,
		MilestonePace:        valueobject.MilestonePace(req.MilestonePace),
		CustomMilestoneCount: req.CustomMilestoneCount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// UpdateMilestone handles PATCH /goals/:id/milestones/:milestoneId requests.
func (c *GoalController) UpdateMilestone(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	milestoneID, ok := parseIDParam(ctx, "milestoneId", missingGoalFields)
	if !ok {
		return
	}

	// Parse request body
	var req dto.UpdateMilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingGoalFields, "Invalid request body", err)
		return
	}

	targetDate, err := dto.ParseOptionalDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, missingGoalFields, "Invalid target_date", err)
		return
	}

	output, err := c.useCases.UpdateMilestone.Execute(ctx.Request.Context(), goal.UpdateMilestoneInput{
		UserID:          userID,
		GoalID:          goalID,
		MilestoneID:     milestoneID,
		Name:            req.Name,
		Advice:          req.Advice,
		TargetDate:      targetDate,
		ClearTargetDate: req.ClearTargetDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMilestoneResponse(output.Milestone))
}

// TransactionHistory handles GET /goals/:id/transactions requests.
// Amounts in the response are running totals starting from the opening amount.
func (c *GoalController) TransactionHistory(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	input := goal.GetTransactionHistoryInput{UserID: userID, GoalID: goalID}

	// Parse date filters
	if value := ctx.Query("startDate"); value != "" {
		startDate, err := dto.ParseDate(value)
		if err != nil {
			badRequest(ctx, string(domainerror.ErrCodeInvalidDateRange), "Invalid startDate", err)
			return
		}
		input.StartDate = &startDate
	}
	if value := ctx.Query("endDate"); value != "" {
		endDate, err := dto.ParseDate(value)
		if err != nil {
			badRequest(ctx, string(domainerror.ErrCodeInvalidDateRange), "Invalid endDate", err)
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.useCases.TransactionHistory.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalHistoryResponse(output))
}

// goalRequest resolves the calling user and the :id goal parameter.
func (c *GoalController) goalRequest(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	goalID, ok := parseIDParam(ctx, "id", missingGoalFields)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, goalID, true
}
