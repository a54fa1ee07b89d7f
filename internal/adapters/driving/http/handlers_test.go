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
	"strings"
	"testing"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// Mock services for testing

type mockAuthService struct {
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	refreshTokenFn  func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	logoutFn        func(ctx context.Context, sessionID string) error
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

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID string) error {
	return nil
}

type mockUserService struct {
	setupFn  func(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error)
	createFn func(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockUserService) Setup(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error) {
	if m.setupFn != nil {
		return m.setupFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) List(ctx context.Context) ([]*domain.User, error) {
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

type mockSearchService struct {
	searchFn func(ctx context.Context, ownerID, query string) ([]domain.SearchResult, error)
}

func (m *mockSearchService) Search(ctx context.Context, ownerID, query string) ([]domain.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, ownerID, query)
	}
	return nil, errors.New("not implemented")
}

type mockDocumentService struct {
	getFn           func(ctx context.Context, ownerID, id string) (*domain.Document, error)
	getWithChunksFn func(ctx context.Context, ownerID, id string) (*domain.DocumentWithChunks, error)
	listFn          func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error)
	countFn         func(ctx context.Context, ownerID string) (int, error)
	downloadFn      func(ctx context.Context, ownerID, id string) (io.ReadCloser, *domain.Document, error)
	deleteFn        func(ctx context.Context, ownerID, id string) error
}

func (m *mockDocumentService) Get(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDocumentService) GetWithChunks(ctx context.Context, ownerID, id string) (*domain.DocumentWithChunks, error) {
	if m.getWithChunksFn != nil {
		return m.getWithChunksFn(ctx, ownerID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDocumentService) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, limit, offset)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDocumentService) Count(ctx context.Context, ownerID string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, ownerID)
	}
	return 0, errors.New("not implemented")
}

func (m *mockDocumentService) Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *domain.Document, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, ownerID, id)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockDocumentService) Delete(ctx context.Context, ownerID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, id)
	}
	return errors.New("not implemented")
}

type mockIngestService struct {
	ingestFn func(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error)
}

func (m *mockIngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

type mockLifecycleService struct {
	sweepFn func(ctx context.Context) (*driving.SweepReport, error)
}

func (m *mockLifecycleService) SweepExpiries(ctx context.Context) (*driving.SweepReport, error) {
	if m.sweepFn != nil {
		return m.sweepFn(ctx)
	}
	return nil, errors.New("not implemented")
}

// Helpers

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), authContextKey, &domain.AuthContext{
		UserID:    "user-1",
		Email:     "test@example.com",
		Role:      domain.RoleMember,
		SessionID: "session-1",
	})
	return req.WithContext(ctx)
}

// Health endpoints

func TestHandleHealth(t *testing.T) {
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

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandleReady(t *testing.T) {
	server := &Server{
		db: pingerFunc(func(ctx context.Context) error { return nil }),
	}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleReady_DatabaseDown(t *testing.T) {
	server := &Server{
		db: pingerFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
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

// Auth endpoints

func TestHandleLogin_InvalidJSON(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString("invalid json"))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return nil, domain.ErrInvalidCredentials
			},
		},
	}

	body, _ := json.Marshal(domain.LoginRequest{Email: "a@b.c", Password: "wrong"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return &domain.LoginResponse{Token: "jwt-token"}, nil
			},
		},
	}

	body, _ := json.Marshal(domain.LoginRequest{Email: "a@b.c", Password: "secret123"})
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
	if response.Token != "jwt-token" {
		t.Errorf("expected token 'jwt-token', got %s", response.Token)
	}
}

func TestHandleLogout_UsesSessionID(t *testing.T) {
	var loggedOut string
	server := &Server{
		authService: &mockAuthService{
			logoutFn: func(ctx context.Context, sessionID string) error {
				loggedOut = sessionID
				return nil
			},
		},
	}

	req := authedRequest("POST", "/api/v1/auth/logout", nil)
	rr := httptest.NewRecorder()

	server.handleLogout(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if loggedOut != "session-1" {
		t.Errorf("expected session-1 to be logged out, got %q", loggedOut)
	}
}

func TestHandleSetup_AlreadyComplete(t *testing.T) {
	server := &Server{
		userService: &mockUserService{
			setupFn: func(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error) {
				return nil, domain.ErrAlreadyExists
			},
		},
	}

	body, _ := json.Marshal(driving.SetupRequest{Email: "a@b.c", Password: "secret123", Name: "Admin"})
	req := httptest.NewRequest("POST", "/api/v1/setup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSetup(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rr.Code)
	}
}

// Search endpoint

func TestHandleSearch_Unauthenticated(t *testing.T) {
	server := &Server{}

	body, _ := json.Marshal(searchRequest{Query: "payment"})
	req := httptest.NewRequest("POST", "/api/v1/search", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSearch(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleSearch_InvalidJSON(t *testing.T) {
	server := &Server{}

	req := authedRequest("POST", "/api/v1/search", bytes.NewBufferString("invalid json"))
	rr := httptest.NewRecorder()

	server.handleSearch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleSearch_ScopesToCaller(t *testing.T) {
	var gotOwner, gotQuery string
	server := &Server{
		searchService: &mockSearchService{
			searchFn: func(ctx context.Context, ownerID, query string) ([]domain.SearchResult, error) {
				gotOwner, gotQuery = ownerID, query
				return []domain.SearchResult{
					{
						DocumentID:   "doc-1",
						ContractName: "Service Agreement",
						Content:      "Contract: Service Agreement",
						Type:         domain.ResultTypeDocument,
					},
				}, nil
			},
		},
	}

	body, _ := json.Marshal(searchRequest{Query: "service"})
	req := authedRequest("POST", "/api/v1/search", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSearch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotOwner != "user-1" {
		t.Errorf("expected search scoped to user-1, got %q", gotOwner)
	}
	if gotQuery != "service" {
		t.Errorf("expected query 'service', got %q", gotQuery)
	}

	var response searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Count != 1 {
		t.Fatalf("expected 1 result, got %d", response.Count)
	}

	// Highlight spans must reassemble to the content
	var rebuilt strings.Builder
	matched := false
	for _, span := range response.Results[0].Highlights {
		rebuilt.WriteString(span.Text)
		if span.Matched {
			matched = true
		}
	}
	if rebuilt.String() != "Contract: Service Agreement" {
		t.Errorf("highlight spans do not reassemble content: %q", rebuilt.String())
	}
	if !matched {
		t.Error("expected at least one matched span")
	}
}

func TestHandleSearch_BlankQueryIsEmptyResult(t *testing.T) {
	server := &Server{
		searchService: &mockSearchService{
			searchFn: func(ctx context.Context, ownerID, query string) ([]domain.SearchResult, error) {
				return nil, nil
			},
		},
	}

	body, _ := json.Marshal(searchRequest{Query: "   "})
	req := authedRequest("POST", "/api/v1/search", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSearch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var response searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Count != 0 || len(response.Results) != 0 {
		t.Errorf("expected empty result set, got %d", response.Count)
	}
}

// Document endpoints

func newUploadRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for filename, content := range files {
		fw, err := mw.CreateFormFile("files", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := authedRequest("POST", "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleUploadDocuments(t *testing.T) {
	var gotReq driving.IngestRequest
	server := &Server{
		ingestService: &mockIngestService{
			ingestFn: func(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
				gotReq = req
				return &driving.IngestResult{
					Document:   &domain.Document{ID: "doc-1", ContractName: "nda"},
					ChunkCount: 2,
				}, nil
			},
		},
	}

	req := newUploadRequest(t,
		map[string]string{"parties": "Acme Corp, Beta LLC", "risk": "High"},
		map[string]string{"nda.txt": "some contract text"})
	rr := httptest.NewRecorder()

	server.handleUploadDocuments(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	if gotReq.OwnerID != "user-1" {
		t.Errorf("expected owner user-1, got %q", gotReq.OwnerID)
	}
	if gotReq.Filename != "nda.txt" {
		t.Errorf("expected filename nda.txt, got %q", gotReq.Filename)
	}
	if gotReq.Parties != "Acme Corp, Beta LLC" {
		t.Errorf("expected parties to be forwarded, got %q", gotReq.Parties)
	}
	if gotReq.Risk != domain.RiskHigh {
		t.Errorf("expected risk High, got %q", gotReq.Risk)
	}

	var response uploadResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Files) != 1 {
		t.Fatalf("expected 1 file result, got %d", len(response.Files))
	}
	if response.Files[0].Result == nil || response.Files[0].Result.ChunkCount != 2 {
		t.Error("expected ingest result with 2 chunks")
	}
}

func TestHandleUploadDocuments_PartialFailure(t *testing.T) {
	server := &Server{
		ingestService: &mockIngestService{
			ingestFn: func(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
				if req.Filename == "bad.bin" {
					return nil, domain.ErrInvalidInput
				}
				return &driving.IngestResult{
					Document: &domain.Document{ID: "doc-1"},
				}, nil
			},
		},
	}

	req := newUploadRequest(t, nil, map[string]string{
		"good.txt": "fine",
		"bad.bin":  "\x00\x01",
	})
	rr := httptest.NewRecorder()

	server.handleUploadDocuments(rr, req)

	// One success keeps the batch a 201
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	var response uploadResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Files) != 2 {
		t.Fatalf("expected 2 file results, got %d", len(response.Files))
	}

	failures := 0
	for _, f := range response.Files {
		if f.Error != "" {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failures)
	}
}

func TestHandleUploadDocuments_NoFiles(t *testing.T) {
	server := &Server{}

	req := newUploadRequest(t, map[string]string{"parties": "Acme"}, nil)
	rr := httptest.NewRecorder()

	server.handleUploadDocuments(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleUploadDocuments_BadExpiry(t *testing.T) {
	server := &Server{}

	req := newUploadRequest(t,
		map[string]string{"expiry_at": "31/12/2026"},
		map[string]string{"a.txt": "text"})
	rr := httptest.NewRecorder()

	server.handleUploadDocuments(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleListDocuments(t *testing.T) {
	var gotLimit, gotOffset int
	server := &Server{
		docService: &mockDocumentService{
			listFn: func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error) {
				gotLimit, gotOffset = limit, offset
				return []*domain.Document{{ID: "doc-1", UserID: ownerID}}, nil
			},
			countFn: func(ctx context.Context, ownerID string) (int, error) {
				return 42, nil
			},
		},
	}

	req := authedRequest("GET", "/api/v1/documents?limit=10&offset=20", nil)
	rr := httptest.NewRecorder()

	server.handleListDocuments(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("expected limit=10 offset=20, got limit=%d offset=%d", gotLimit, gotOffset)
	}

	var response documentListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Total != 42 {
		t.Errorf("expected total 42, got %d", response.Total)
	}
	if len(response.Documents) != 1 {
		t.Errorf("expected 1 document, got %d", len(response.Documents))
	}
}

func TestHandleGetDocument_NotFound(t *testing.T) {
	server := &Server{
		docService: &mockDocumentService{
			getFn: func(ctx context.Context, ownerID, id string) (*domain.Document, error) {
				return nil, domain.ErrNotFound
			},
		},
	}

	req := authedRequest("GET", "/api/v1/documents/doc-404", nil)
	req.SetPathValue("id", "doc-404")
	rr := httptest.NewRecorder()

	server.handleGetDocument(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleDownloadDocument(t *testing.T) {
	server := &Server{
		docService: &mockDocumentService{
			downloadFn: func(ctx context.Context, ownerID, id string) (io.ReadCloser, *domain.Document, error) {
				doc := &domain.Document{
					ID:       id,
					Filename: "contract.pdf",
					FileType: "application/pdf",
					FileSize: 8,
				}
				return io.NopCloser(strings.NewReader("pdfbytes")), doc, nil
			},
		},
	}

	req := authedRequest("GET", "/api/v1/documents/doc-1/download", nil)
	req.SetPathValue("id", "doc-1")
	rr := httptest.NewRecorder()

	server.handleDownloadDocument(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("expected Content-Type application/pdf, got %s", rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "contract.pdf") {
		t.Errorf("expected filename in Content-Disposition, got %s", rr.Header().Get("Content-Disposition"))
	}
	if rr.Body.String() != "pdfbytes" {
		t.Errorf("expected file body to be streamed, got %q", rr.Body.String())
	}
}

func TestHandleDeleteDocument(t *testing.T) {
	var deletedID string
	server := &Server{
		docService: &mockDocumentService{
			deleteFn: func(ctx context.Context, ownerID, id string) error {
				deletedID = id
				return nil
			},
		},
	}

	req := authedRequest("DELETE", "/api/v1/documents/doc-1", nil)
	req.SetPathValue("id", "doc-1")
	rr := httptest.NewRecorder()

	server.handleDeleteDocument(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if deletedID != "doc-1" {
		t.Errorf("expected doc-1 to be deleted, got %q", deletedID)
	}
}

// Admin endpoints

func TestHandleSweepExpiries(t *testing.T) {
	server := &Server{
		lifecycleService: &mockLifecycleService{
			sweepFn: func(ctx context.Context) (*driving.SweepReport, error) {
				return &driving.SweepReport{Expired: 3, RenewalDue: 5}, nil
			},
		},
	}

	req := authedRequest("POST", "/api/v1/admin/sweep", nil)
	rr := httptest.NewRecorder()

	server.handleSweepExpiries(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var report driving.SweepReport
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Expired != 3 || report.RenewalDue != 5 {
		t.Errorf("unexpected report: %+v", report)
	}
}

// Helper functions

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"foo": "bar"})

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "invalid input")

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "invalid input" {
		t.Errorf("expected error 'invalid input', got %s", response["error"])
	}
}
