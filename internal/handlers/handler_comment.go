package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commentHandler handles HTTP requests for entry comment threads.
type commentHandler struct {
	commentService portssvc.CommentSvcFacade
}

// newCommentHandler creates a new commentHandler.
func newCommentHandler(cs portssvc.CommentSvcFacade) *commentHandler {
	return &commentHandler{commentService: cs}
}

// registerCommentRoutes registers routes related to entry comments.
func registerCommentRoutes(rg *gin.RouterGroup, commentService portssvc.CommentSvcFacade) {
	h := newCommentHandler(commentService)

	comments := rg.Group("/clients/:clientID/entries/:entryID/comments")
	{
		comments.POST("", h.createComment)
		comments.GET("", h.listComments)
		comments.DELETE("/:commentID", h.deleteComment)
	}
}

// createComment godoc
// @Summary Add a comment to an entry
// @Description Appends one message to the entry's comment thread.
// @Tags comments
// @Accept json
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   entryID path string true "Entry ID"
// @Param   comment body dto.CreateCommentRequest true "Comment details"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create comment"
// @Security BearerAuth
// @Router /clients/{clientID}/entries/{entryID}/comments [post]
func (h *commentHandler) createComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	entryID := c.Param("entryID")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Omitted author means the authenticated collaborator is writing.
	if req.Author == "" {
		collaboratorID, ok := middleware.GetCollaboratorIDFromContext(c)
		if !ok {
			logger.Warn("Comment without author and no authenticated collaborator")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Author is required"})
			return
		}
		req.Author = collaboratorID
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), clientID, entryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating comment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create comment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// listComments godoc
// @Summary List an entry's comment thread
// @Description Returns the entry's comments, oldest first.
// @Tags comments
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list comments"
// @Security BearerAuth
// @Router /clients/{clientID}/entries/{entryID}/comments [get]
func (h *commentHandler) listComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	entryID := c.Param("entryID")

	comments, err := h.commentService.ListComments(c.Request.Context(), clientID, entryID)
	if err != nil {
		logger.Error("Failed to list comments", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCommentResponse(comments))
}

// deleteComment godoc
// @Summary Delete a comment
// @Description Removes one comment from an entry's thread.
// @Tags comments
// @Produce json
// @Param   clientID path string true "Client ID"
// @Param   entryID path string true "Entry ID"
// @Param   commentID path string true "Comment ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Comment not found"
// @Failure 500 {object} map[string]string "Failed to delete comment"
// @Security BearerAuth
// @Router /clients/{clientID}/entries/{entryID}/comments/{commentID} [delete]
func (h *commentHandler) deleteComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	entryID := c.Param("entryID")
	commentID := c.Param("commentID")

	err := h.commentService.DeleteComment(c.Request.Context(), clientID, entryID, commentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		logger.Error("Failed to delete comment", slog.String("comment_id", commentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.Status(http.StatusNoContent)
}
