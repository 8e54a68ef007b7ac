package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/fidura/compta_recon_app/internal/platform/config"
	"github.com/fidura/compta_recon_app/internal/utils/spreadsheet"
	"github.com/gin-gonic/gin"
)

// importHandler handles HTTP requests for ledger imports.
type importHandler struct {
	importService portssvc.ImportSvcFacade
	maxUploadSize int64
	maxImportRows int
}

// newImportHandler creates a new importHandler.
func newImportHandler(is portssvc.ImportSvcFacade, cfg *config.Config) *importHandler {
	return &importHandler{
		importService: is,
		maxUploadSize: int64(cfg.MaxUploadSizeMB) << 20,
		maxImportRows: cfg.MaxImportRows,
	}
}

// registerImportRoutes registers routes related to ledger imports.
func registerImportRoutes(rg *gin.RouterGroup, cfg *config.Config, importService portssvc.ImportSvcFacade) {
	h := newImportHandler(importService, cfg)

	rg.POST("/clients/:clientID/imports/:ledgerType", h.importLedger)
}

// importLedger godoc
// @Summary Import a ledger batch
// @Description Ingests an xlsx/csv file (multipart) or pre-parsed JSON rows for one client and ledger type. Rows are normalized, deduplicated against the client's stored entries, and the survivors persisted.
// @Tags imports
// @Accept json,mpfd
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   ledgerType path string true "Ledger type (CLIENT, SUPPLIER, MISC)"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to import ledger"
// @Security BearerAuth
// @Router /clients/{clientID}/imports/{ledgerType} [post]
func (h *importHandler) importLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	ledgerType := domain.LedgerType(strings.ToUpper(c.Param("ledgerType")))
	if !ledgerType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger type: " + c.Param("ledgerType")})
		return
	}

	logger = logger.With(slog.String("client_id", clientID), slog.String("ledger_type", string(ledgerType)))

	rows, ok := h.readRows(c, logger)
	if !ok {
		return
	}
	if len(rows) > h.maxImportRows {
		logger.Warn("Import batch over row limit", slog.Int("rows", len(rows)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import batch exceeds row limit"})
		return
	}

	summary, err := h.importService.ImportRows(c.Request.Context(), clientID, ledgerType, rows)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingClientID) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Import rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Import conflicted with existing entries", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Import conflicts with existing entries"})
		} else {
			logger.Error("Failed to import ledger batch", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import ledger"})
		}
		return
	}

	logger.Info("Ledger batch imported",
		slog.Int("received", summary.Received),
		slog.Int("inserted", summary.Inserted),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("rejected", len(summary.Rejected)),
	)
	c.JSON(http.StatusOK, dto.ToImportResponse(*summary))
}

// readRows extracts raw rows from either an uploaded spreadsheet or a JSON
// body. Responds with the error itself when the input cannot be read.
func (h *importHandler) readRows(c *gin.Context, logger *slog.Logger) ([]domain.RawRow, bool) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			logger.Warn("Missing file in multipart import", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'file' form field"})
			return nil, false
		}
		if fileHeader.Size > h.maxUploadSize {
			logger.Warn("Upload over size limit", slog.Int64("size", fileHeader.Size))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file exceeds size limit"})
			return nil, false
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return nil, false
		}
		defer func() { _ = file.Close() }()

		rows, err := spreadsheet.Read(fileHeader.Filename, file)
		if err != nil {
			logger.Warn("Failed to parse uploaded spreadsheet", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse spreadsheet: " + err.Error()})
			return nil, false
		}
		return rows, true
	}

	var req dto.ImportRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for import", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return nil, false
	}
	rows := make([]domain.RawRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = domain.RawRow(r)
	}
	return rows, true
}
