package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/api"
	"budgetplanner/internal/services"
)

// ReportHandler serves per-category totals.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// AllCategoryReport returns one total per category used on the account
// @Summary     Category report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       accountId path int true "Account ID"
// @Success     200 {array}  api.ReportEntryDTO "Totals"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /api/Report/AllCategoryReport/{accountId} [get]
func (h *ReportHandler) AllCategoryReport(c *gin.Context) {
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

	lines, err := h.reportService.CategoryTotals(userID, accountID, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries := make([]api.ReportEntryDTO, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, reportEntryDTO(line))
	}
	c.JSON(http.StatusOK, entries)
}

// CategoryReport returns the total of one category on the account as a single
// object
// @Summary     Single category report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       accountId  path int true "Account ID"
// @Param       categoryId path int true "Category ID"
// @Success     200 {object} api.ReportEntryDTO "Total"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /api/Report/{accountId}/{categoryId} [get]
func (h *ReportHandler) CategoryReport(c *gin.Context) {
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
	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	lines, err := h.reportService.CategoryTotals(userID, accountID, &categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry := api.ReportEntryDTO{CategoryID: categoryID}
	if len(lines) > 0 {
		entry = reportEntryDTO(lines[0])
	}
	c.JSON(http.StatusOK, entry)
}
