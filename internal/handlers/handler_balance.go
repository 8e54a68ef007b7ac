package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler handles HTTP requests for the tiered balance cache.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers routes related to balance snapshots.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/clients/:clientID/balance", h.getBalance)
	rg.PUT("/clients/:clientID/balance", h.saveBalance)
	rg.DELETE("/clients/:clientID/balance", h.clearBalance)
	rg.POST("/cache/migrate", h.migrateCache)
}

// getBalance godoc
// @Summary Get a cached balance snapshot
// @Description Reads the balance snapshot for (client, period) through the cache tiers.
// @Tags balance
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   period query string false "Period YYYY-MM, empty for full ledger"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Failure 500 {object} map[string]string "Failed to read balance"
// @Security BearerAuth
// @Router /clients/{clientID}/balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	period := c.Query("period")

	snapshot, err := h.balanceService.GetBalance(c.Request.Context(), clientID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Balance snapshot not found"})
			return
		}
		logger.Error("Failed to read balance", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(snapshot))
}

// saveBalance godoc
// @Summary Save a balance snapshot
// @Description Writes the snapshot through every reachable cache tier. Balance is recomputed server-side as debit minus credit.
// @Tags balance
// @Accept json
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   snapshot body dto.SaveBalanceRequest true "Snapshot totals"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save balance"
// @Security BearerAuth
// @Router /clients/{clientID}/balance [put]
func (h *balanceHandler) saveBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.SaveBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	snapshot := domain.BalanceSnapshot{
		ClientID:    clientID,
		Period:      req.Period,
		TotalDebit:  req.TotalDebit,
		TotalCredit: req.TotalCredit,
		EntryCount:  req.EntryCount,
	}
	if err := h.balanceService.SaveBalance(c.Request.Context(), snapshot); err != nil {
		logger.Error("Failed to save balance", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save balance"})
		return
	}

	saved, err := h.balanceService.GetBalance(c.Request.Context(), clientID, req.Period)
	if err != nil {
		logger.Error("Failed to read back saved balance", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save balance"})
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(saved))
}

// clearBalance godoc
// @Summary Clear a cached balance snapshot
// @Description Removes (client, period) from every reachable tier, best-effort.
// @Tags balance
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   period query string false "Period YYYY-MM, empty for full ledger"
// @Success 204 "Cleared"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /clients/{clientID}/balance [delete]
func (h *balanceHandler) clearBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	period := c.Query("period")

	if err := h.balanceService.ClearBalance(c.Request.Context(), clientID, period); err != nil {
		logger.Warn("Balance clear was partial", slog.String("client_id", clientID), slog.String("error", err.Error()))
	}
	c.Status(http.StatusNoContent)
}

// migrateCache godoc
// @Summary Migrate session-tier snapshots to the database tier
// @Description Copies every valid session-tier snapshot into the database tier. Per-key failures are logged and counted, not fatal.
// @Tags balance
// @Produce json
// @Success 200 {object} dto.MigrationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Migration could not run"
// @Security BearerAuth
// @Router /cache/migrate [post]
func (h *balanceHandler) migrateCache(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.balanceService.Migrate(c.Request.Context())
	if err != nil {
		logger.Error("Cache migration could not run", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration could not run"})
		return
	}

	c.JSON(http.StatusOK, dto.MigrationResponse{
		Scanned:  report.Scanned,
		Migrated: report.Migrated,
		Skipped:  report.Skipped,
		Failed:   report.Failed,
	})
}
