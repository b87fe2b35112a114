package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

const missingTransactionFields = string(domainerror.ErrCodeMissingTransactionFields)

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	// Parse date filters
	if value := ctx.Query("startDate"); value != "" {
		startDate, err := dto.ParseDate(value)
		if err != nil {
			badRequest(ctx, missingTransactionFields, "Invalid startDate", err)
			return
		}
		input.StartDate = &startDate
	}
	if value := ctx.Query("endDate"); value != "" {
		endDate, err := dto.ParseDate(value)
		if err != nil {
			badRequest(ctx, missingTransactionFields, "Invalid endDate", err)
			return
		}
		input.EndDate = &endDate
	}

	// Parse reference filters
	if value := ctx.Query("walletId"); value != "" {
		walletID, err := uuid.Parse(value)
		if err != nil {
			badRequest(ctx, missingTransactionFields, "Invalid walletId", err)
			return
		}
		input.WalletID = &walletID
	}
	if value := ctx.Query("categoryId"); value != "" {
		categoryID, err := uuid.Parse(value)
		if err != nil {
			badRequest(ctx, missingTransactionFields, "Invalid categoryId", err)
			return
		}
		input.CategoryID = &categoryID
	}
	if value := ctx.Query("type"); value != "" {
		txnType := entity.TransactionType(value)
		input.Type = &txnType
	}

	// Parse pagination
	if value := ctx.Query("page"); value != "" {
		if page, err := strconv.Atoi(value); err == nil {
			input.Page = page
		}
	}
	if value := ctx.Query("limit"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
// A recurring request with a frequency stores a template that the scheduler materializes.
func (c *TransactionController) Create(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingTransactionFields, "Invalid request body", err)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, missingTransactionFields, "Invalid date", err)
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Name:        req.Name,
		Type:        entity.TransactionType(req.Type),
		Amount:      req.Amount,
		Date:        date,
		CategoryID:  uuid.MustParse(req.CategoryID),
		WalletID:    uuid.MustParse(req.WalletID),
		IsRecurring: req.IsRecurring,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	}
	if req.Frequency != nil {
		frequency := valueobject.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse transaction ID from URL
	transactionID, ok := parseIDParam(ctx, "id", missingTransactionFields)
	if !ok {
		return
	}

	// Parse request body
	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, missingTransactionFields, "Invalid request body", err)
		return
	}

	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, missingTransactionFields, "Invalid date", err)
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Name:          req.Name,
		Amount:        req.Amount,
		Date:          date,
		IsRecurring:   req.IsRecurring,
		Description:   req.Description,
		ReceiptURL:    req.ReceiptURL,
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		input.CategoryID = &categoryID
	}
	if req.WalletID != nil {
		walletID := uuid.MustParse(*req.WalletID)
		input.WalletID = &walletID
	}
	if req.Frequency != nil {
		frequency := valueobject.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse transaction ID from URL
	transactionID, ok := parseIDParam(ctx, "id", missingTransactionFields)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
