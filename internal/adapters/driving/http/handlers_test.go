package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// Mock services for testing

type mockAuthService struct {
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	refreshTokenFn  func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	logoutFn        func(ctx context.Context, token string) error
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if m.refreshTokenFn != nil {
		return m.refreshTokenFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID string) error {
	return nil
}

type mockUserService struct {
	needsSetupFn func(ctx context.Context) (bool, error)
	setupFn      func(ctx context.Context, email, name, password string) (*domain.UserSummary, error)
	createFn     func(ctx context.Context, email, name, password string, role domain.Role) (*domain.UserSummary, error)
	getFn        func(ctx context.Context, id string) (*domain.UserSummary, error)
	listFn       func(ctx context.Context) ([]*domain.UserSummary, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockUserService) NeedsSetup(ctx context.Context) (bool, error) {
	if m.needsSetupFn != nil {
		return m.needsSetupFn(ctx)
	}
	return false, errors.New("not implemented")
}

func (m *mockUserService) Setup(ctx context.Context, email, name, password string) (*domain.UserSummary, error) {
	if m.setupFn != nil {
		return m.setupFn(ctx, email, name, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Create(ctx context.Context, email, name, password string, role domain.Role) (*domain.UserSummary, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, name, password, role)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) List(ctx context.Context) ([]*domain.UserSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

type mockIngestService struct {
	ingestFn func(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Document, error)
}

func (m *mockIngestService) Ingest(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Document, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, originalName, size, r)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIngestService) IngestPath(ctx context.Context, path string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}

type mockDocumentService struct {
	getFn       func(ctx context.Context, id string) (*domain.Document, error)
	listFn      func(ctx context.Context, limit, offset int) ([]*domain.Document, error)
	countFn     func(ctx context.Context) (int, error)
	deleteFn    func(ctx context.Context, id string) error
	summarizeFn func(ctx context.Context, id string, maxLength int) (*domain.DocumentSummary, error)
}

func (m *mockDocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDocumentService) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDocumentService) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, errors.New("not implemented")
}

func (m *mockDocumentService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockDocumentService) Summarize(ctx context.Context, id string, maxLength int) (*domain.DocumentSummary, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, id, maxLength)
	}
	return nil, errors.New("not implemented")
}

type mockPageService struct {
	pageInfoFn func(ctx context.Context, documentID string) (*domain.PageInfo, error)
	getPageFn  func(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error)
}

func (m *mockPageService) PageInfo(ctx context.Context, documentID string) (*domain.PageInfo, error) {
	if m.pageInfoFn != nil {
		return m.pageInfoFn(ctx, documentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPageService) GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	if m.getPageFn != nil {
		return m.getPageFn(ctx, documentID, pageNumber)
	}
	return nil, errors.New("not implemented")
}

type mockAnnotationService struct {
	addFn              func(ctx context.Context, documentID string, input domain.AnnotationInput) (*domain.Annotation, error)
	listByPageFn       func(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error)
	listByDocumentFn   func(ctx context.Context, documentID string) ([]*domain.Annotation, error)
	deleteFn           func(ctx context.Context, documentID, annotationID string) error
	renderPageFn       func(ctx context.Context, documentID string, pageNumber int) ([]domain.Segment, error)
	resolveSelectionFn func(ctx context.Context, documentID string, pageNumber int, selected string, startHint int) (domain.Span, error)
}

func (m *mockAnnotationService) Add(ctx context.Context, documentID string, input domain.AnnotationInput) (*domain.Annotation, error) {
	if m.addFn != nil {
		return m.addFn(ctx, documentID, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnnotationService) ListByPage(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error) {
	if m.listByPageFn != nil {
		return m.listByPageFn(ctx, documentID, pageNumber)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnnotationService) ListByDocument(ctx context.Context, documentID string) ([]*domain.Annotation, error) {
	if m.listByDocumentFn != nil {
		return m.listByDocumentFn(ctx, documentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnnotationService) Delete(ctx context.Context, documentID, annotationID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, documentID, annotationID)
	}
	return errors.New("not implemented")
}

func (m *mockAnnotationService) RenderPage(ctx context.Context, documentID string, pageNumber int) ([]domain.Segment, error) {
	if m.renderPageFn != nil {
		return m.renderPageFn(ctx, documentID, pageNumber)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnnotationService) ResolveSelection(ctx context.Context, documentID string, pageNumber int, selected string, startHint int) (domain.Span, error) {
	if m.resolveSelectionFn != nil {
		return m.resolveSelectionFn(ctx, documentID, pageNumber, selected, startHint)
	}
	return domain.Span{}, errors.New("not implemented")
}

type mockSearchService struct {
	searchFn   func(ctx context.Context, query string) ([]*domain.Document, error)
	advancedFn func(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error)
}

func (m *mockSearchService) Search(ctx context.Context, query string) ([]*domain.Document, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSearchService) Advanced(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error) {
	if m.advancedFn != nil {
		return m.advancedFn(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

type mockChatService struct {
	chatFn func(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}

func (m *mockChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

type mockAnalyticsService struct {
	trendsFn   func(ctx context.Context) (*domain.Trends, error)
	timelineFn func(ctx context.Context) ([]domain.TimelineBucket, error)
}

func (m *mockAnalyticsService) Trends(ctx context.Context) (*domain.Trends, error) {
	if m.trendsFn != nil {
		return m.trendsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnalyticsService) Timeline(ctx context.Context) ([]domain.TimelineBucket, error) {
	if m.timelineFn != nil {
		return m.timelineFn(ctx)
	}
	return nil, errors.New("not implemented")
}

// Health endpoints

func TestHealthHandler(t *testing.T) {
	server := &Server{version: "test"}

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	server.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("expected status 'ok', got %s", response["status"])
	}
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func TestReadyHandler(t *testing.T) {
	server := &Server{db: &mockPinger{}, redisClient: &mockPinger{}}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestReadyHandler_DatabaseDown(t *testing.T) {
	server := &Server{db: &mockPinger{err: errors.New("connection refused")}}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestVersionHandler(t *testing.T) {
	server := &Server{version: "1.2.3"}

	req := httptest.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()

	server.handleVersion(rr, req)

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["version"] != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %s", response["version"])
	}
}

// Authentication handlers

func TestHandleLogin_Success(t *testing.T) {
	expiresAt := time.Now().Add(1 * time.Hour)
	mockAuth := &mockAuthService{
		authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
			if req.Email == "test@example.com" && req.Password == "password123" {
				return &domain.LoginResponse{
					Token:        "test-token",
					RefreshToken: "refresh-token",
					ExpiresAt:    expiresAt,
					User: &domain.UserSummary{
						ID:    "user-1",
						Email: "test@example.com",
						Name:  "Test User",
						Role:  domain.RoleAdmin,
					},
				}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}

	server := &Server{authService: mockAuth}

	body, _ := json.Marshal(domain.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var response domain.LoginResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Token != "test-token" {
		t.Errorf("expected token 'test-token', got %s", response.Token)
	}
	if response.User.Email != "test@example.com" {
		t.Errorf("expected email 'test@example.com', got %s", response.User.Email)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	mockAuth := &mockAuthService{
		authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	server := &Server{authService: mockAuth}

	body, _ := json.Marshal(domain.LoginRequest{Email: "wrong@example.com", Password: "wrongpass"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "invalid credentials" {
		t.Errorf("expected error 'invalid credentials', got %s", response["error"])
	}
}

func TestHandleLogin_InvalidJSON(t *testing.T) {
	server := &Server{authService: &mockAuthService{}}

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString("not json"))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleRefresh_InvalidToken(t *testing.T) {
	mockAuth := &mockAuthService{
		refreshTokenFn: func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
			return nil, domain.ErrSessionNotFound
		},
	}

	server := &Server{authService: mockAuth}

	body, _ := json.Marshal(domain.RefreshRequest{RefreshToken: "stale"})
	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleRefresh(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleLogout_WithToken(t *testing.T) {
	var loggedOut string
	mockAuth := &mockAuthService{
		logoutFn: func(ctx context.Context, token string) error {
			loggedOut = token
			return nil
		},
	}

	server := &Server{authService: mockAuth}

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rr := httptest.NewRecorder()

	server.handleLogout(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if loggedOut != "session-token" {
		t.Errorf("expected logout of 'session-token', got %q", loggedOut)
	}
}

// Setup handlers

func TestHandleSetupStatus(t *testing.T) {
	mockUsers := &mockUserService{
		needsSetupFn: func(ctx context.Context) (bool, error) { return true, nil },
	}

	server := &Server{userService: mockUsers}

	req := httptest.NewRequest("GET", "/api/v1/setup", nil)
	rr := httptest.NewRecorder()

	server.handleSetupStatus(rr, req)

	var response map[string]bool
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response["needs_setup"] {
		t.Error("expected needs_setup true")
	}
}

func TestHandleSetup_Success(t *testing.T) {
	mockUsers := &mockUserService{
		setupFn: func(ctx context.Context, email, name, password string) (*domain.UserSummary, error) {
			return &domain.UserSummary{ID: "user-1", Email: email, Name: name, Role: domain.RoleAdmin}, nil
		},
	}

	server := &Server{userService: mockUsers}

	body, _ := json.Marshal(setupRequest{Email: "admin@example.org", Name: "Admin", Password: "s3cret"})
	req := httptest.NewRequest("POST", "/api/v1/setup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSetup(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}

	var response domain.UserSummary
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", response.Role)
	}
}

func TestHandleSetup_AlreadyComplete(t *testing.T) {
	mockUsers := &mockUserService{
		setupFn: func(ctx context.Context, email, name, password string) (*domain.UserSummary, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	server := &Server{userService: mockUsers}

	body, _ := json.Marshal(setupRequest{Email: "admin@example.org", Name: "Admin", Password: "s3cret"})
	req := httptest.NewRequest("POST", "/api/v1/setup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSetup(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rr.Code)
	}
}

// File handlers

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload_Success(t *testing.T) {
	mockIngest := &mockIngestService{
		ingestFn: func(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Document, error) {
			return &domain.Document{ID: "doc-1", OriginalName: originalName}, nil
		},
	}

	server := &Server{ingestService: mockIngest}

	body, contentType := multipartBody(t, "report.txt", "annual report contents")
	req := httptest.NewRequest("POST", "/api/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	server.handleUpload(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}

	var response domain.Document
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.OriginalName != "report.txt" {
		t.Errorf("expected original name 'report.txt', got %s", response.OriginalName)
	}
}

func TestHandleUpload_UnsupportedType(t *testing.T) {
	mockIngest := &mockIngestService{
		ingestFn: func(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Document, error) {
			return nil, domain.ErrUnsupportedType
		},
	}

	server := &Server{ingestService: mockIngest}

	body, contentType := multipartBody(t, "image.png", "binary")
	req := httptest.NewRequest("POST", "/api/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	server.handleUpload(rr, req)

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected status 415, got %d", rr.Code)
	}
}

func TestHandleUpload_MissingFile(t *testing.T) {
	server := &Server{ingestService: &mockIngestService{}}

	req := httptest.NewRequest("POST", "/api/v1/files", bytes.NewBufferString(""))
	rr := httptest.NewRecorder()

	server.handleUpload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleListFiles(t *testing.T) {
	mockDocs := &mockDocumentService{
		listFn: func(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
			if limit != 2 || offset != 4 {
				t.Errorf("expected limit 2 offset 4, got %d %d", limit, offset)
			}
			return []*domain.Document{{ID: "doc-1"}, {ID: "doc-2"}}, nil
		},
		countFn: func(ctx context.Context) (int, error) { return 10, nil },
	}

	server := &Server{documentService: mockDocs}

	req := httptest.NewRequest("GET", "/api/v1/files?limit=2&offset=4", nil)
	rr := httptest.NewRecorder()

	server.handleListFiles(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var response fileListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Documents) != 2 || response.Total != 10 {
		t.Errorf("unexpected listing: %d docs, total %d", len(response.Documents), response.Total)
	}
}

func TestHandleGetFile_NotFound(t *testing.T) {
	mockDocs := &mockDocumentService{
		getFn: func(ctx context.Context, id string) (*domain.Document, error) {
			return nil, domain.ErrNotFound
		},
	}

	server := &Server{documentService: mockDocs}

	req := httptest.NewRequest("GET", "/api/v1/files/missing", nil)
	req.SetPathValue("id", "missing")
	rr := httptest.NewRecorder()

	server.handleGetFile(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleSummarize(t *testing.T) {
	mockDocs := &mockDocumentService{
		summarizeFn: func(ctx context.Context, id string, maxLength int) (*domain.DocumentSummary, error) {
			if maxLength != 300 {
				t.Errorf("expected max length 300, got %d", maxLength)
			}
			return &domain.DocumentSummary{DocumentID: id, Summary: "Short summary."}, nil
		},
	}

	server := &Server{documentService: mockDocs}

	req := httptest.NewRequest("GET", "/api/v1/files/doc-1/summary?max_length=300", nil)
	req.SetPathValue("id", "doc-1")
	rr := httptest.NewRecorder()

	server.handleSummarize(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

// Page handlers

func TestHandlePageInfo(t *testing.T) {
	mockPages := &mockPageService{
		pageInfoFn: func(ctx context.Context, documentID string) (*domain.PageInfo, error) {
			return &domain.PageInfo{TotalPages: 5, Estimated: true}, nil
		},
	}

	server := &Server{pageService: mockPages}

	req := httptest.NewRequest("GET", "/api/v1/files/doc-1/pages", nil)
	req.SetPathValue("id", "doc-1")
	rr := httptest.NewRecorder()

	server.handlePageInfo(rr, req)

	var response domain.PageInfo
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.TotalPages != 5 || !response.Estimated {
		t.Errorf("unexpected page info: %+v", response)
	}
}

func TestHandleGetPage(t *testing.T) {
	mockPages := &mockPageService{
		getPageFn: func(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
			return &domain.Page{DocumentID: documentID, PageNumber: pageNumber, Content: "page text"}, nil
		},
	}

	server := &Server{pageService: mockPages}

	req := httptest.NewRequest("GET", "/api/v1/files/doc-1/pages/3", nil)
	req.SetPathValue("id", "doc-1")
	req.SetPathValue("page", "3")
	rr := httptest.NewRecorder()

	server.handleGetPage(rr, req)

	var response domain.Page
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.PageNumber != 3 || response.Content != "page text" {
		t.Errorf("unexpected page: %+v", response)
	}
}

func TestHandleGetPage_BadNumber(t *testing.T) {
	server := &Server{pageService: &mockPageService{}}

	req := httptest.NewRequest("GET", "/api/v1/files/doc-1/pages/three", nil)
	req.SetPathValue("id", "doc-1")
	req.SetPathValue("page", "three")
	rr := httptest.NewRecorder()

	server.handleGetPage(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleRenderPage(t *testing.T) {
	mockAnnotations := &mockAnnotationService{
		renderPageFn: func(ctx context.Context, documentID string, pageNumber int) ([]domain.Segment, error) {
			return []domain.Segment{
				{Text: "plain "},
				{Text: "highlighted", Highlighted: true, AnnotationID: "ann-1", Color: "#ffeb3b"},
			}, nil
		},
	}

	server := &Server{annotationService: mockAnnotations}

	req := httptest.NewRequest("GET", "/api/v1/files/doc-1/pages/1/render", nil)
	req.SetPathValue("id", "doc-1")
	req.SetPathValue("page", "1")
	rr := httptest.NewRecorder()

	server.handleRenderPage(rr, req)

	var response []domain.Segment
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 2 || !response[1].Highlighted {
		t.Errorf("unexpected segments: %+v", response)
	}
}

func TestHandleResolveSelection(t *testing.T) {
	mockAnnotations := &mockAnnotationService{
		resolveSelectionFn: func(ctx context.Context, documentID string, pageNumber int, selected string, startHint int) (domain.Span, error) {
			if selected != "community health" || startHint != 42 {
				t.Errorf("unexpected resolve args: %q %d", selected, startHint)
			}
			return domain.Span{StartIndex: 40, EndIndex: 56}, nil
		},
	}

	server := &Server{annotationService: mockAnnotations}

	body, _ := json.Marshal(resolveRequest{Text: "community health", StartHint: 42})
	req := httptest.NewRequest("POST", "/api/v1/files/doc-1/pages/1/resolve", bytes.NewBuffer(body))
	req.SetPathValue("id", "doc-1")
	req.SetPathValue("page", "1")
	rr := httptest.NewRecorder()

	server.handleResolveSelection(rr, req)

	var response domain.Span
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.StartIndex != 40 || response.EndIndex != 56 {
		t.Errorf("unexpected span: %+v", response)
	}
}

func TestHandleResolveSelection_NotFound(t *testing.T) {
	mockAnnotations := &mockAnnotationService{
		resolveSelectionFn: func(ctx context.Context, documentID string, pageNumber int, selected string, startHint int) (domain.Span, error) {
			return domain.Span{}, domain.ErrSelectionNotFound
		},
	}

	server := &Server{annotationService: mockAnnotations}

	body, _ := json.Marshal(resolveRequest{Text: "missing text"})
	req := httptest.NewRequest("POST", "/api/v1/files/doc-1/pages/1/resolve", bytes.NewBuffer(body))
	req.SetPathValue("id", "doc-1")
	req.SetPathValue("page", "1")
	rr := httptest.NewRecorder()

	server.handleResolveSelection(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

// Annotation handlers

func TestHandleAddAnnotation(t *testing.T) {
	mockAnnotations := &mockAnnotationService{
		addFn: func(ctx context.Context, documentID string, input domain.AnnotationInput) (*domain.Annotation, error) {
			return &domain.Annotation{
				ID:         "ann-1",
				DocumentID: documentID,
				PageNumber: input.PageNumber,
				Position:   input.Position,
				Color:      domain.DefaultHighlightColor,
			}, nil
		},
	}

	server := &Server{annotationService: mockAnnotations}

	body, _ := json.Marshal(domain.AnnotationInput{
		PageNumber: 2,
		Position:   domain.Position{StartIndex: 10, EndIndex: 20, Page: 2},
	})
	req := httptest.NewRequest("POST", "/api/v1/files/doc-1/annotations", bytes.NewBuffer(body))
	req.SetPathValue("id", "doc-1")
	rr := httptest.NewRecorder()

	server.handleAddAnnotation(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}

	var response domain.Annotation
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Color != domain.DefaultHighlightColor {
		t.Errorf("expected default color, got %s", response.Color)
	}
}

func TestHandleAddAnnotation_InvalidRange(t *testing.T) {
	mockAnnotations := &mockAnnotationService{
		addFn: func(ctx context.Context, documentID string, input domain.AnnotationInput) (*domain.Annotation, error) {
			return nil, domain.ErrInvalidRange
		},
	}

	server := &Server{annotationService: mockAnnotations}

	body, _ := json.Marshal(domain.AnnotationInput{
		PageNumber: 1,
		Position:   domain.Position{StartIndex: 500, EndIndex: 400, Page: 1},
	})
	req := httptest.NewRequest("POST", "/api/v1/files/doc-1/annotations", bytes.NewBuffer(body))
	req.SetPathValue("id", "doc-1")
	rr := httptest.NewRecorder()

	server.handleAddAnnotation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleDeleteAnnotation_NotFound(t *testing.T) {
	mockAnnotations := &mockAnnotationService{
		deleteFn: func(ctx context.Context, documentID, annotationID string) error {
			return domain.ErrNotFound
		},
	}

	server := &Server{annotationService: mockAnnotations}

	req := httptest.NewRequest("DELETE", "/api/v1/files/doc-1/annotations/missing", nil)
	req.SetPathValue("id", "doc-1")
	req.SetPathValue("annotationID", "missing")
	rr := httptest.NewRecorder()

	server.handleDeleteAnnotation(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

// Search handlers

func TestHandleSearch_MissingQuery(t *testing.T) {
	server := &Server{searchService: &mockSearchService{}}

	req := httptest.NewRequest("GET", "/api/v1/search", nil)
	rr := httptest.NewRecorder()

	server.handleSearch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleSearch_Success(t *testing.T) {
	mockSearch := &mockSearchService{
		searchFn: func(ctx context.Context, query string) ([]*domain.Document, error) {
			if query != "literacy" {
				t.Errorf("expected query 'literacy', got %q", query)
			}
			return []*domain.Document{{ID: "doc-1"}}, nil
		},
	}

	server := &Server{searchService: mockSearch}

	req := httptest.NewRequest("GET", "/api/v1/search?q=literacy", nil)
	rr := httptest.NewRecorder()

	server.handleSearch(rr, req)

	var response []*domain.Document
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 1 {
		t.Errorf("expected 1 document, got %d", len(response))
	}
}

func TestHandleAdvancedSearch(t *testing.T) {
	mockSearch := &mockSearchService{
		advancedFn: func(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error) {
			if filter.Year != "2021" || filter.ProgramArea != "education" {
				t.Errorf("unexpected filter: %+v", filter)
			}
			return []*domain.Document{{ID: "doc-1"}}, nil
		},
	}

	server := &Server{searchService: mockSearch}

	body, _ := json.Marshal(domain.SearchFilter{Year: "2021", ProgramArea: "education"})
	req := httptest.NewRequest("POST", "/api/v1/search/advanced", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleAdvancedSearch(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

// Chat handler

func TestHandleChat(t *testing.T) {
	mockChat := &mockChatService{
		chatFn: func(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
			return &domain.ChatResponse{Response: "You have **3 documents**."}, nil
		},
	}

	server := &Server{chatService: mockChat}

	body, _ := json.Marshal(domain.ChatRequest{Message: "how many documents do we have?"})
	req := httptest.NewRequest("POST", "/api/v1/chat", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleChat(rr, req)

	var response domain.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Response == "" {
		t.Error("expected non-empty chat response")
	}
}

// Analytics handlers

func TestHandleTrends(t *testing.T) {
	mockAnalytics := &mockAnalyticsService{
		trendsFn: func(ctx context.Context) (*domain.Trends, error) {
			return &domain.Trends{
				PopularTags: []domain.TagCount{{Tag: "education", Count: 4}},
			}, nil
		},
	}

	server := &Server{analyticsService: mockAnalytics}

	req := httptest.NewRequest("GET", "/api/v1/analytics/trends", nil)
	rr := httptest.NewRecorder()

	server.handleTrends(rr, req)

	var response domain.Trends
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.PopularTags) != 1 {
		t.Errorf("expected 1 popular tag, got %d", len(response.PopularTags))
	}
}

func TestHandleTimeline(t *testing.T) {
	mockAnalytics := &mockAnalyticsService{
		timelineFn: func(ctx context.Context) ([]domain.TimelineBucket, error) {
			return []domain.TimelineBucket{{Year: 2021, Month: 6, Count: 2, TotalSize: 2048}}, nil
		},
	}

	server := &Server{analyticsService: mockAnalytics}

	req := httptest.NewRequest("GET", "/api/v1/analytics/timeline", nil)
	rr := httptest.NewRecorder()

	server.handleTimeline(rr, req)

	var response []domain.TimelineBucket
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 1 || response[0].Count != 2 {
		t.Errorf("unexpected timeline: %+v", response)
	}
}
