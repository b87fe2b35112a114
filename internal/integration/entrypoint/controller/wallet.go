package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/wallet"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// WalletController handles wallet endpoints.
type WalletController struct {
	listUseCase   *wallet.ListWalletsUseCase
	getUseCase    *wallet.GetWalletUseCase
	createUseCase *wallet.CreateWalletUseCase
	updateUseCase *wallet.UpdateWalletUseCase
	deleteUseCase *wallet.DeleteWalletUseCase
}

// NewWalletController creates a new wallet controller instance.
func NewWalletController(
	listUseCase *wallet.ListWalletsUseCase,
	getUseCase *wallet.GetWalletUseCase,
	createUseCase *wallet.CreateWalletUseCase,
	updateUseCase *wallet.UpdateWalletUseCase,
	deleteUseCase *wallet.DeleteWalletUseCase,
) *WalletController {
	return &WalletController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /wallets requests.
func (c *WalletController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), wallet.ListWalletsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletListResponse(output))
}

// Get handles GET /wallets/:id requests.
func (c *WalletController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	walletID, ok := parseIDParam(ctx, "id", string(domainerror.ErrCodeMissingWalletFields))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), wallet.GetWalletInput{
		UserID:   userID,
		WalletID: walletID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletResponse(output.Wallet))
}

// Create handles POST /wallets requests.
func (c *WalletController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.CreateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingWalletFields), "Invalid request body", err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), wallet.CreateWalletInput{
		UserID:         userID,
		Name:           req.Name,
		Category:       entity.WalletCategory(req.Category),
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToWalletResponse(output.Wallet))
}

// Update handles PATCH /wallets/:id requests.
func (c *WalletController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	walletID, ok := parseIDParam(ctx, "id", string(domainerror.ErrCodeMissingWalletFields))
	if !ok {
		return
	}

	// Parse request body
	var req dto.UpdateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingWalletFields), "Invalid request body", err)
		return
	}

	input := wallet.UpdateWalletInput{
		UserID:   userID,
		WalletID: walletID,
		Name:     req.Name,
	}
	if req.Category != nil {
		category := entity.WalletCategory(*req.Category)
		input.Category = &category
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletResponse(output.Wallet))
}

// Delete handles DELETE /wallets/:id requests.
// The wallet's transactions are soft-deleted with it.
func (c *WalletController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	walletID, ok := parseIDParam(ctx, "id", string(domainerror.ErrCodeMissingWalletFields))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), wallet.DeleteWalletInput{
		UserID:   userID,
		WalletID: walletID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
