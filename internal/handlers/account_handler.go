package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/api"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetUserAccounts lists a user's accounts with their balances
// @Summary     List accounts
// @Description List the authenticated user's accounts; balances include every transaction
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       userId path int true "User ID"
// @Success     200 {array}  api.AccountDTO "Accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Another user's accounts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/FinanceAccount/GetAllFinanceAccounts/{userId} [get]
func (h *AccountHandler) GetUserAccounts(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := requireSelf(c, userID); err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.accountService.GetUserAccounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapAll(accounts, accountDTO))
}

// GetAccountByID returns one account with its balance
// @Summary     Get account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       userId    path int true "User ID"
// @Param       accountId path int true "Account ID"
// @Success     200 {object} api.AccountDTO "Account"
// @Failure     403 {object} ErrorResponse "Another user's account"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/FinanceAccount/{userId}/{accountId} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := requireSelf(c, userID); err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "accountId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountDTO(account))
}

// CreateAccount opens an account; Ammount is taken as the opening balance
// @Summary     Create account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.AccountDTO true "Account details"
// @Success     201 {object} api.AccountDTO "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Another user's account"
// @Router      /api/FinanceAccount/AddFinanceAccount [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req api.AccountDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.UserID != 0 && req.UserID != userID {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	account, err := h.accountService.CreateAccount(userID, accountInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, accountDTO(account))
}

// UpdateAccount renames an account or changes its currency or description
// @Summary     Update account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.AccountDTO true "Account details"
// @Success     200 {object} api.AccountDTO "Account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/FinanceAccount/UpdateFinanceAccount [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req api.AccountDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID < 1 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, map[string]string{"id": "is required"}))
		return
	}

	account, err := h.accountService.UpdateAccount(userID, req.ID, accountInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountDTO(account))
}

// DeleteAccount removes an account and its transactions
// @Summary     Delete account
// @Tags        accounts
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/FinanceAccount/DeleteFinanceAccount/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
