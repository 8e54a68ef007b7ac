package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// justificationHandler handles HTTP requests for AI-drafted texts.
type justificationHandler struct {
	justificationService portssvc.JustificationSvcFacade
	reconService         portssvc.ReconSvcFacade
}

// newJustificationHandler creates a new justificationHandler.
func newJustificationHandler(js portssvc.JustificationSvcFacade, rs portssvc.ReconSvcFacade) *justificationHandler {
	return &justificationHandler{
		justificationService: js,
		reconService:         rs,
	}
}

// registerJustificationRoutes registers routes related to AI drafts.
func registerJustificationRoutes(rg *gin.RouterGroup, justificationService portssvc.JustificationSvcFacade, reconService portssvc.ReconSvcFacade) {
	h := newJustificationHandler(justificationService, reconService)

	rg.POST("/clients/:clientID/entries/:entryID/justification", h.draftJustification)
	rg.POST("/clients/:clientID/ledgers/:ledgerType/suggestions", h.draftSuggestions)
}

// draftJustification godoc
// @Summary Draft a justification message for a payment entry
// @Description Sanitizes the entry's fields and asks the text provider for a draft. The draft is never sent anywhere; a collaborator reviews it first.
// @Tags justification
// @Accept json
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.DraftJustificationRequest true "Entry fields"
// @Success 200 {object} dto.JustificationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Text provider failed"
// @Security BearerAuth
// @Router /clients/{clientID}/entries/{entryID}/justification [post]
func (h *justificationHandler) draftJustification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	entryID := c.Param("entryID")

	var req dto.DraftJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DraftJustification", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry := domain.LedgerEntry{
		EntryID:     entryID,
		ClientID:    clientID,
		LedgerType:  domain.LedgerType(req.LedgerType),
		Date:        req.Date,
		Description: req.Description,
		Credit:      req.Amount,
		Reference:   req.Reference,
	}

	draft, err := h.justificationService.DraftJustification(c.Request.Context(), entry, req.ClientName)
	if err != nil {
		logger.Error("Text provider failed to draft justification", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to draft justification"})
		return
	}

	c.JSON(http.StatusOK, dto.JustificationResponse{EntryID: entryID, Draft: draft})
}

// draftSuggestions godoc
// @Summary Draft remediation hints for a ledger's flagged entries
// @Description Analyzes the stored ledger, then asks the text provider for remediation hints over the flagged entries only.
// @Tags justification
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   ledgerType path string true "Ledger type (CLIENT, SUPPLIER, MISC)"
// @Success 200 {object} dto.SuggestionsResponse
// @Failure 400 {object} map[string]string "Invalid ledger type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Text provider failed"
// @Security BearerAuth
// @Router /clients/{clientID}/ledgers/{ledgerType}/suggestions [post]
func (h *justificationHandler) draftSuggestions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	ledgerType := domain.LedgerType(strings.ToUpper(c.Param("ledgerType")))
	if !ledgerType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger type: " + c.Param("ledgerType")})
		return
	}

	entries, result, err := h.reconService.AnalyzeStored(c.Request.Context(), clientID, ledgerType)
	if err != nil {
		logger.Error("Failed to analyze ledger for suggestions", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze ledger"})
		return
	}

	badges := result.Badges()
	flagged := make([]domain.LedgerEntry, 0, len(badges))
	for _, e := range entries {
		if _, ok := badges[e.EntryID]; ok {
			flagged = append(flagged, e)
		}
	}

	suggestions, err := h.justificationService.DraftSuggestions(c.Request.Context(), flagged)
	if err != nil {
		logger.Error("Text provider failed to draft suggestions", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to draft suggestions"})
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	c.JSON(http.StatusOK, dto.SuggestionsResponse{Suggestions: suggestions})
}
