package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analysisHandler handles HTTP requests for ledger analysis and entry listing.
type analysisHandler struct {
	reconService portssvc.ReconSvcFacade
}

// newAnalysisHandler creates a new analysisHandler.
func newAnalysisHandler(rs portssvc.ReconSvcFacade) *analysisHandler {
	return &analysisHandler{reconService: rs}
}

// registerAnalysisRoutes registers routes related to ledger analysis.
func registerAnalysisRoutes(rg *gin.RouterGroup, reconService portssvc.ReconSvcFacade) {
	h := newAnalysisHandler(reconService)

	rg.GET("/clients/:clientID/ledgers/:ledgerType/analysis", h.analyzeLedger)
	rg.GET("/clients/:clientID/ledgers/:ledgerType/entries", h.listEntries)
}

// analyzeLedger godoc
// @Summary Analyze a stored ledger
// @Description Runs the three anomaly-classification passes over the client's stored entries of one ledger type.
// @Tags analysis
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   ledgerType path string true "Ledger type (CLIENT, SUPPLIER, MISC)"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} map[string]string "Invalid ledger type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to analyze ledger"
// @Security BearerAuth
// @Router /clients/{clientID}/ledgers/{ledgerType}/analysis [get]
func (h *analysisHandler) analyzeLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	ledgerType := domain.LedgerType(strings.ToUpper(c.Param("ledgerType")))
	if !ledgerType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger type: " + c.Param("ledgerType")})
		return
	}

	entries, result, err := h.reconService.AnalyzeStored(c.Request.Context(), clientID, ledgerType)
	if err != nil {
		logger.Error("Failed to analyze ledger", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalysisResponse(ledgerType, entries, result))
}

// listEntries godoc
// @Summary List stored ledger entries
// @Description Returns one keyset page of the client's stored entries of one ledger type.
// @Tags analysis
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   ledgerType path string true "Ledger type (CLIENT, SUPPLIER, MISC)"
// @Param   limit query int false "Page size" default(100)
// @Param   token query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid ledger type or token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /clients/{clientID}/ledgers/{ledgerType}/entries [get]
func (h *analysisHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	ledgerType := domain.LedgerType(strings.ToUpper(c.Param("ledgerType")))
	if !ledgerType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger type: " + c.Param("ledgerType")})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	token := c.Query("token")

	entries, nextToken, err := h.reconService.ListEntriesPage(c.Request.Context(), clientID, ledgerType, token, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list ledger entries", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: entries, NextToken: nextToken})
}
