package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CommentService ---
type MockCommentService struct {
	mock.Mock
}

var _ portssvc.CommentSvcFacade = (*MockCommentService)(nil)

func (m *MockCommentService) CreateComment(ctx context.Context, clientID, entryID string, req dto.CreateCommentRequest) (*domain.LedgerComment, error) {
	args := m.Called(ctx, clientID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerComment), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, clientID, entryID string) ([]domain.LedgerComment, error) {
	args := m.Called(ctx, clientID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerComment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, clientID, entryID, commentID string) error {
	args := m.Called(ctx, clientID, entryID, commentID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CommentHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockCommentService
	jwtSecret   string
}

func (suite *CommentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidations()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, "recon-test"))

	suite.mockService = new(MockCommentService)

	v1 := suite.router.Group("/api/v1")
	registerCommentRoutes(v1, suite.mockService)
}

func (suite *CommentHandlerTestSuite) generateTestToken(collaboratorID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "recon-test",
		Subject:   collaboratorID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CommentHandlerTestSuite) doRequest(method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("collab-7"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CommentHandlerTestSuite) TestCreateComment_AuthorDefaultsToCollaborator() {
	payload := []byte(`{"ledgerType":"CLIENT","authorType":"COLLABORATOR","content":"Relance envoyée"}`)
	created := &domain.LedgerComment{
		CommentID:  "c-1",
		EntryID:    "e-1",
		ClientID:   "client-1",
		LedgerType: domain.ClientLedger,
		Author:     "collab-7",
		AuthorType: domain.AuthorCollaborator,
		Content:    "Relance envoyée",
		Priority:   domain.PriorityNormal,
		CreatedAt:  time.Now().UTC(),
	}

	suite.mockService.On("CreateComment", mock.Anything, "client-1", "e-1",
		mock.MatchedBy(func(req dto.CreateCommentRequest) bool {
			return req.Author == "collab-7"
		})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/clients/client-1/entries/e-1/comments", payload)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.CommentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("collab-7", body.Author)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CommentHandlerTestSuite) TestCreateComment_ExplicitAuthorKept() {
	payload := []byte(`{"ledgerType":"CLIENT","author":"Mme Durand","authorType":"CLIENT","content":"Paiement prévu vendredi"}`)
	created := &domain.LedgerComment{
		CommentID:  "c-2",
		EntryID:    "e-1",
		ClientID:   "client-1",
		LedgerType: domain.ClientLedger,
		Author:     "Mme Durand",
		AuthorType: domain.AuthorClient,
		Content:    "Paiement prévu vendredi",
		Priority:   domain.PriorityNormal,
		CreatedAt:  time.Now().UTC(),
	}

	suite.mockService.On("CreateComment", mock.Anything, "client-1", "e-1",
		mock.MatchedBy(func(req dto.CreateCommentRequest) bool {
			return req.Author == "Mme Durand"
		})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/clients/client-1/entries/e-1/comments", payload)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CommentHandlerTestSuite) TestCreateComment_Unauthorized() {
	payload := []byte(`{"ledgerType":"CLIENT","authorType":"COLLABORATOR","content":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients/client-1/entries/e-1/comments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommentHandlerTestSuite) TestListComments_Success() {
	comments := []domain.LedgerComment{
		{CommentID: "c-1", EntryID: "e-1", ClientID: "client-1", Author: "collab-7", Content: "Vu avec le client"},
	}
	suite.mockService.On("ListComments", mock.Anything, "client-1", "e-1").Return(comments, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/clients/client-1/entries/e-1/comments", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.CommentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("c-1", body[0].CommentID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CommentHandlerTestSuite) TestDeleteComment_NotFound() {
	suite.mockService.On("DeleteComment", mock.Anything, "client-1", "e-1", "c-9").Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/clients/client-1/entries/e-1/comments/c-9", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestCommentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CommentHandlerTestSuite))
}
