package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogoutAll godoc
// @Summary      Logout everywhere
// @Description  Invalidate every session of the current user
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /auth/logout-all [post]
func (s *Server) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	_ = s.authService.LogoutAll(r.Context(), authCtx.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Setup endpoints (no auth required, one-time use)

// handleSetupStatus godoc
// @Summary      Setup status
// @Description  Reports whether the initial admin account still needs to be created
// @Tags         Setup
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /setup [get]
func (s *Server) handleSetupStatus(w http.ResponseWriter, r *http.Request) {
	needed, err := s.userService.NeedsSetup(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check setup status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"needs_setup": needed})
}

type setupRequest struct {
	Email    string `json:"email" example:"admin@example.org"`
	Name     string `json:"name" example:"Admin"`
	Password string `json:"password" example:"s3cret"`
}

// handleSetup godoc
// @Summary      Initial setup
// @Description  Create the initial admin user. This endpoint can only be called once when no users exist.
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      setupRequest  true  "Admin user details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Setup already complete"
// @Failure      500      {object}  ErrorResponse  "Setup failed"
// @Router       /setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Setup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case domain.ErrAlreadyExists:
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleListUsers godoc
// @Summary      List all users
// @Description  Get a list of all users (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

type createUserRequest struct {
	Email    string      `json:"email" example:"member@example.org"`
	Name     string      `json:"name" example:"Member"`
	Password string      `json:"password" example:"s3cret"`
	Role     domain.Role `json:"role" example:"member" enums:"admin,member"`
}

// handleCreateUser godoc
// @Summary      Create user
// @Description  Create a new user (admin only)
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      createUserRequest  true  "User details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      409      {object}  ErrorResponse  "User already exists"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Create(r.Context(), req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		switch err {
		case domain.ErrAlreadyExists:
			writeError(w, http.StatusConflict, "user already exists")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleDeleteUser godoc
// @Summary      Delete user
// @Description  Delete a user by ID (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Missing user ID"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// File endpoints

// handleUpload godoc
// @Summary      Upload document
// @Description  Upload a file for text extraction and auto-tagging. Accepts pdf, doc, docx, txt, rtf and csv up to 10MB.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Document file"
// @Success      201   {object}  domain.Document
// @Failure      400   {object}  ErrorResponse  "Missing file or file too large"
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      403   {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      415   {object}  ErrorResponse  "Unsupported file type"
// @Failure      500   {object}  ErrorResponse  "Upload failed"
// @Router       /files [post]
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	doc, err := s.ingestService.Ingest(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedType):
			writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// fileListResponse is a paginated document listing
type fileListResponse struct {
	Documents []*domain.Document `json:"documents"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// handleListFiles godoc
// @Summary      List documents
// @Description  List uploaded documents, newest first
// @Tags         Files
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  fileListResponse
// @Failure      401     {object}  ErrorResponse  "Unauthorized"
// @Failure      500     {object}  ErrorResponse  "Internal server error"
// @Router       /files [get]
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	docs, err := s.documentService.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	total, err := s.documentService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, fileListResponse{
		Documents: docs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	})
}

// handleGetFile godoc
// @Summary      Get document
// @Description  Get a document by ID including its extracted text and tags
// @Tags         Files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id} [get]
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documentService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get document")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleDeleteFile godoc
// @Summary      Delete document
// @Description  Delete a document with its pages, annotations and stored file (admin only)
// @Tags         Files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id} [delete]
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.documentService.Delete(r.Context(), r.PathValue("id")); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete document")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSummarize godoc
// @Summary      Summarize document
// @Description  Produce a sentence-boundary summary of the extracted text
// @Tags         Files
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "Document ID"
// @Param        max_length  query     int     false  "Maximum summary length in characters"
// @Success      200         {object}  domain.DocumentSummary
// @Failure      401         {object}  ErrorResponse  "Unauthorized"
// @Failure      404         {object}  ErrorResponse  "Document not found"
// @Failure      500         {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/summary [get]
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	maxLength := queryInt(r, "max_length", 0)

	summary, err := s.documentService.Summarize(r.Context(), r.PathValue("id"), maxLength)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to summarize document")
		}
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Page endpoints

// handlePageInfo godoc
// @Summary      Get page info
// @Description  Report the document's page count and whether it is estimated
// @Tags         Pages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.PageInfo
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/pages [get]
func (s *Server) handlePageInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.pageService.PageInfo(r.Context(), r.PathValue("id"))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get page info")
		}
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// handleGetPage godoc
// @Summary      Get page content
// @Description  Get one page of the document's extracted text. Pages past the end return empty content.
// @Tags         Pages
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Document ID"
// @Param        page  path      int     true  "Page number (1-based)"
// @Success      200   {object}  domain.Page
// @Failure      400   {object}  ErrorResponse  "Invalid page number"
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "Document not found"
// @Failure      500   {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/pages/{page} [get]
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := pathInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page number")
		return
	}

	page, err := s.pageService.GetPage(r.Context(), r.PathValue("id"), pageNumber)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid page number")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get page")
		}
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleRenderPage godoc
// @Summary      Render page with highlights
// @Description  Split the page content into plain and highlighted segments. Concatenating segment texts reproduces the page exactly.
// @Tags         Pages
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Document ID"
// @Param        page  path      int     true  "Page number (1-based)"
// @Success      200   {array}   domain.Segment
// @Failure      400   {object}  ErrorResponse  "Invalid page number"
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "Document not found"
// @Failure      500   {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/pages/{page}/render [get]
func (s *Server) handleRenderPage(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := pathInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page number")
		return
	}

	segments, err := s.annotationService.RenderPage(r.Context(), r.PathValue("id"), pageNumber)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to render page")
		}
		return
	}

	if segments == nil {
		segments = []domain.Segment{}
	}
	writeJSON(w, http.StatusOK, segments)
}

type resolveRequest struct {
	Text      string `json:"text" example:"community health"`
	StartHint int    `json:"startHint" example:"1204"`
}

// handleResolveSelection godoc
// @Summary      Resolve selection to offsets
// @Description  Map selected text back to character offsets in the page content. Repeated occurrences are disambiguated with the start hint.
// @Tags         Pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string          true  "Document ID"
// @Param        page     path      int             true  "Page number (1-based)"
// @Param        request  body      resolveRequest  true  "Selected text and hint"
// @Success      200      {object}  domain.Span
// @Failure      400      {object}  ErrorResponse  "Invalid request"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Document or selection not found"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/pages/{page}/resolve [post]
func (s *Server) handleResolveSelection(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := pathInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page number")
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	span, err := s.annotationService.ResolveSelection(r.Context(), r.PathValue("id"), pageNumber, req.Text, req.StartHint)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		case domain.ErrSelectionNotFound:
			writeError(w, http.StatusNotFound, "selection not found in page")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "selected text is required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to resolve selection")
		}
		return
	}

	writeJSON(w, http.StatusOK, span)
}

// Annotation endpoints

// handleAddAnnotation godoc
// @Summary      Add annotation
// @Description  Create a highlight over a span of page text. The page content is frozen on first use so stored offsets stay valid.
// @Tags         Annotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Document ID"
// @Param        request  body      domain.AnnotationInput  true  "Annotation"
// @Success      201      {object}  domain.Annotation
// @Failure      400      {object}  ErrorResponse  "Invalid input or range"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Document not found"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/annotations [post]
func (s *Server) handleAddAnnotation(w http.ResponseWriter, r *http.Request) {
	var input domain.AnnotationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	annotation, err := s.annotationService.Add(r.Context(), r.PathValue("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		case errors.Is(err, domain.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "annotation range is outside the page content")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid annotation input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add annotation")
		}
		return
	}

	writeJSON(w, http.StatusCreated, annotation)
}

// handleListAnnotations godoc
// @Summary      List document annotations
// @Description  List every annotation on a document, ordered by page then creation
// @Tags         Annotations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {array}   domain.Annotation
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/annotations [get]
func (s *Server) handleListAnnotations(w http.ResponseWriter, r *http.Request) {
	annotations, err := s.annotationService.ListByDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to list annotations")
		}
		return
	}

	if annotations == nil {
		annotations = []*domain.Annotation{}
	}
	writeJSON(w, http.StatusOK, annotations)
}

// handleListPageAnnotations godoc
// @Summary      List page annotations
// @Description  List a page's annotations in creation order
// @Tags         Annotations
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Document ID"
// @Param        page  path      int     true  "Page number (1-based)"
// @Success      200   {array}   domain.Annotation
// @Failure      400   {object}  ErrorResponse  "Invalid page number"
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "Document not found"
// @Failure      500   {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/pages/{page}/annotations [get]
func (s *Server) handleListPageAnnotations(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := pathInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page number")
		return
	}

	annotations, err := s.annotationService.ListByPage(r.Context(), r.PathValue("id"), pageNumber)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to list annotations")
		}
		return
	}

	if annotations == nil {
		annotations = []*domain.Annotation{}
	}
	writeJSON(w, http.StatusOK, annotations)
}

// handleDeleteAnnotation godoc
// @Summary      Delete annotation
// @Description  Remove a single annotation from a document
// @Tags         Annotations
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true  "Document ID"
// @Param        annotationID  path      string  true  "Annotation ID"
// @Success      200           {object}  StatusResponse
// @Failure      401           {object}  ErrorResponse  "Unauthorized"
// @Failure      404           {object}  ErrorResponse  "Annotation not found"
// @Failure      500           {object}  ErrorResponse  "Internal server error"
// @Router       /files/{id}/annotations/{annotationID} [delete]
func (s *Server) handleDeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	err := s.annotationService.Delete(r.Context(), r.PathValue("id"), r.PathValue("annotationID"))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "annotation not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete annotation")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Search endpoints

// handleSearch godoc
// @Summary      Search documents
// @Description  Free-text substring search over names, extracted text and tags
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search query"
// @Success      200  {array}   domain.Document
// @Failure      400  {object}  ErrorResponse  "Missing query"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Search failed"
// @Router       /search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	docs, err := s.searchService.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleAdvancedSearch godoc
// @Summary      Advanced search
// @Description  Combine free text with year, program-area and donor filters
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.SearchFilter  true  "Search filters"
// @Success      200      {array}   domain.Document
// @Failure      400      {object}  ErrorResponse  "Invalid request or empty filter"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Search failed"
// @Router       /search/advanced [post]
func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var filter domain.SearchFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	docs, err := s.searchService.Advanced(r.Context(), filter)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "at least one filter is required")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// Chat endpoint

// handleChat godoc
// @Summary      Chat about the corpus
// @Description  Answer a natural-language question about the uploaded documents. Answers are built from the corpus only.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.ChatRequest  true  "Chat message"
// @Success      200      {object}  domain.ChatResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request or empty message"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Chat failed"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.chatService.Chat(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "message is required")
		default:
			writeError(w, http.StatusInternalServerError, "chat failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Analytics endpoints

// handleTrends godoc
// @Summary      Corpus trends
// @Description  Popular tags, yearly stats and common keywords across the corpus
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Trends
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /analytics/trends [get]
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.analyticsService.Trends(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute trends")
		return
	}

	writeJSON(w, http.StatusOK, trends)
}

// handleTimeline godoc
// @Summary      Upload timeline
// @Description  Uploads grouped by calendar month
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.TimelineBucket
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /analytics/timeline [get]
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.analyticsService.Timeline(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build timeline")
		return
	}

	if buckets == nil {
		buckets = []domain.TimelineBucket{}
	}
	writeJSON(w, http.StatusOK, buckets)
}

// Helpers

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.PathValue(name))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
