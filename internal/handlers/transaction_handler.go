package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/api"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetAccountTransactions lists an account's transactions, most recent first
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       accountId path int true "Account ID"
// @Success     200 {array}  api.TransactionDTO "Transactions"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /api/Transaction/AllTransactions/{accountId} [get]
func (h *TransactionHandler) GetAccountTransactions(c *gin.Context) {
	h.list(c, false)
}

// GetCategoryTransactions lists an account's transactions in one category
// @Summary     List transactions by category
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       accountId  path int true "Account ID"
// @Param       categoryId path int true "Category ID"
// @Success     200 {array}  api.TransactionDTO "Transactions"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /api/Transaction/AllTransactions/{accountId}/{categoryId} [get]
func (h *TransactionHandler) GetCategoryTransactions(c *gin.Context) {
	h.list(c, true)
}

func (h *TransactionHandler) list(c *gin.Context, byCategory bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "accountId")
	if err != nil {
		respondWithError(c, err)
		return
	}
	var categoryID *int64
	if byCategory {
		id, err := parsePathID(c, "categoryId")
		if err != nil {
			respondWithError(c, err)
			return
		}
		categoryID = &id
	}

	transactions, err := h.transactionService.GetAccountTransactions(userID, accountID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapAll(transactions, transactionDTO))
}

// GetTransactionByID returns one transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} api.TransactionDTO "Transaction"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/Transaction/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionDTO(transaction))
}

// CreateTransaction records a transaction
// @Summary     Create transaction
// @Description Amount is unsigned; Type must match the category's type
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.TransactionDTO true "Transaction details"
// @Success     201 {object} api.TransactionDTO "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or category type mismatch"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /api/Transaction/AddTransaction [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req api.TransactionDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	in, err := transactionInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transactionDTO(transaction))
}

// UpdateTransaction replaces a transaction's fields
// @Summary     Update transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.TransactionDTO true "Transaction details"
// @Success     200 {object} api.TransactionDTO "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input or category type mismatch"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/Transaction/UpdateTransaction [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req api.TransactionDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID < 1 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, map[string]string{"id": "is required"}))
		return
	}
	in, err := transactionInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, req.ID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionDTO(transaction))
}

// DeleteTransaction removes a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/Transaction/DeleteTransaction/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
