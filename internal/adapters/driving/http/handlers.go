package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
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
// @Description  Returns readiness; verifies database and queue connectivity
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "task queue unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Log in
// @Description  Validates credentials and returns a session token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/refresh [post]
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
// @Summary      Log out
// @Tags         Auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if err := s.authService.Logout(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleChangePassword godoc
// @Summary      Change password
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  domain.ChangePasswordRequest  true  "Old and new password"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/auth/password [post]
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.authService.ChangePassword(r.Context(), authCtx.UserID, req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "new password does not meet requirements")
		default:
			writeError(w, http.StatusInternalServerError, "password change failed")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetMe godoc
// @Summary      Get current user
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.UserSummary
// @Router       /api/v1/me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Setup endpoint

// SetupRequest creates the first admin account
// @Description First-run admin account creation
type SetupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// handleSetup godoc
// @Summary      First-run setup
// @Description  Creates the initial admin account. Only works while no users exist.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      SetupRequest  true  "Admin account"
// @Success      201      {object}  domain.UserSummary
// @Failure      403      {object}  ErrorResponse
// @Router       /api/v1/setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	existing, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "setup failed")
		return
	}
	if len(existing) > 0 {
		writeError(w, http.StatusForbidden, "setup already completed")
		return
	}

	var req SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Create(r.Context(), driving.CreateUserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid account details")
			return
		}
		writeError(w, http.StatusInternalServerError, "setup failed")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// User endpoints

// handleProvisionUser godoc
// @Summary      Provision user from identity provider
// @Description  Webhook target for identity-provider user events. Idempotent per external ID.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      driving.ProvisionUserRequest  true  "Identity event"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/webhooks/users [post]
func (s *Server) handleProvisionUser(w http.ResponseWriter, r *http.Request) {
	if s.webhookSecret != "" && r.Header.Get("X-Webhook-Secret") != s.webhookSecret {
		writeError(w, http.StatusUnauthorized, "invalid webhook secret")
		return
	}

	var req driving.ProvisionUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Provision(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "external_id and email are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "provisioning failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleListUsers godoc
// @Summary      List users
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.UserSummary
// @Router       /api/v1/users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// handleCreateUser godoc
// @Summary      Create user
// @Tags         Users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      driving.CreateUserRequest  true  "New user"
// @Success      201      {object}  domain.UserSummary
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req driving.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "email already in use")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid user details")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleDeleteUser godoc
// @Summary      Delete user
// @Tags         Users
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Project endpoints

// handleListProjects godoc
// @Summary      List projects
// @Tags         Projects
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Project
// @Router       /api/v1/projects [get]
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	projects, err := s.projectService.List(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// handleCreateProject godoc
// @Summary      Create project
// @Description  Creates a project together with its default retrieval settings
// @Tags         Projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      driving.CreateProjectRequest  true  "New project"
// @Success      201      {object}  domain.Project
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/projects [post]
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := s.projectService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "project name is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// handleGetProject godoc
// @Summary      Get project
// @Tags         Projects
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Project ID"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/projects/{id} [get]
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	project, err := s.projectService.Get(r.Context(), authCtx.UserID, id)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// handleDeleteProject godoc
// @Summary      Delete project
// @Tags         Projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/projects/{id} [delete]
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	if _, err := s.projectService.Delete(r.Context(), authCtx.UserID, id); err != nil {
		writeProjectError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Settings endpoints

// handleGetSettings godoc
// @Summary      Get retrieval settings
// @Tags         Settings
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Project ID"
// @Success      200  {object}  domain.RetrievalSettings
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/projects/{id}/settings [get]
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")

	// Ownership check via project lookup
	if _, err := s.projectService.Get(r.Context(), authCtx.UserID, projectID); err != nil {
		writeProjectError(w, err)
		return
	}

	settings, err := s.settingsService.Get(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "settings not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings godoc
// @Summary      Update retrieval settings
// @Description  Applies a partial update; the merged record is validated before saving
// @Tags         Settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                                   true  "Project ID"
// @Param        request  body      driving.UpdateRetrievalSettingsRequest  true  "Fields to change"
// @Success      200      {object}  domain.RetrievalSettings
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/projects/{id}/settings [put]
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")

	if _, err := s.projectService.Get(r.Context(), authCtx.UserID, projectID); err != nil {
		writeProjectError(w, err)
		return
	}

	var req driving.UpdateRetrievalSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := s.settingsService.Update(r.Context(), projectID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSettings):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "settings not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Document endpoints

// handleListDocuments godoc
// @Summary      List project documents
// @Tags         Files
// @Security     BearerAuth
// @Produce      json
// @Param        id  path     string  true  "Project ID"
// @Success      200  {array}  domain.ProjectDocument
// @Router       /api/v1/projects/{id}/files [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")

	docs, err := s.documentService.List(r.Context(), authCtx.UserID, projectID)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// handleCreateUploadURL godoc
// @Summary      Request presigned upload URL
// @Description  Records the document with status "uploading" and returns a presigned PUT URL
// @Tags         Files
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Project ID"
// @Param        request  body      driving.UploadURLRequest  true  "File metadata"
// @Success      201      {object}  driving.UploadURLResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/projects/{id}/files/upload-url [post]
func (s *Server) handleCreateUploadURL(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")

	var req driving.UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.documentService.CreateUploadURL(r.Context(), authCtx.UserID, projectID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "filename is required")
			return
		}
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ConfirmUploadRequest marks an uploaded object as ready for ingestion
// @Description Upload confirmation
type ConfirmUploadRequest struct {
	StorageKey string `json:"storage_key"`
}

// handleConfirmUpload godoc
// @Summary      Confirm upload
// @Description  Transitions the document to "queued" and enqueues ingestion
// @Tags         Files
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Project ID"
// @Param        request  body      ConfirmUploadRequest  true  "Storage key"
// @Success      200      {object}  domain.ProjectDocument
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/projects/{id}/files/confirm [post]
func (s *Server) handleConfirmUpload(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")

	var req ConfirmUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.documentService.ConfirmUpload(r.Context(), authCtx.UserID, projectID, req.StorageKey)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// AddURLRequest registers a web page for ingestion
// @Description Web page registration
type AddURLRequest struct {
	URL string `json:"url"`
}

// handleAddURL godoc
// @Summary      Add URL document
// @Description  Registers a web page as a project document and enqueues ingestion
// @Tags         Files
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Project ID"
// @Param        request  body      AddURLRequest  true  "Page URL"
// @Success      201      {object}  domain.ProjectDocument
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/projects/{id}/files/url [post]
func (s *Server) handleAddURL(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")

	var req AddURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.documentService.AddURL(r.Context(), authCtx.UserID, projectID, req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// handleDeleteDocument godoc
// @Summary      Delete document
// @Description  Removes the document row, its stored object (best-effort), and its indexed chunks
// @Tags         Files
// @Security     BearerAuth
// @Param        id     path  string  true  "Project ID"
// @Param        docID  path  string  true  "Document ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/projects/{id}/files/{docID} [delete]
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	projectID := r.PathValue("id")
	documentID := r.PathValue("docID")

	if _, err := s.documentService.Delete(r.Context(), authCtx.UserID, projectID, documentID); err != nil {
		writeProjectError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Chat endpoints

// handleCreateChat godoc
// @Summary      Create chat
// @Tags         Chats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      driving.CreateChatRequest  true  "New chat"
// @Success      201      {object}  domain.Chat
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/chats [post]
func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chat, err := s.chatService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, chat)
}

// handleGetChat godoc
// @Summary      Get chat
// @Tags         Chats
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Chat ID"
// @Success      200  {object}  domain.Chat
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/chats/{id} [get]
func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	chat, err := s.chatService.Get(r.Context(), authCtx.UserID, id)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chat)
}

// handleListChatMessages godoc
// @Summary      List chat messages
// @Tags         Chats
// @Security     BearerAuth
// @Produce      json
// @Param        id  path     string  true  "Chat ID"
// @Success      200  {array}  domain.ChatMessage
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/chats/{id}/messages [get]
func (s *Server) handleListChatMessages(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	messages, err := s.chatService.ListMessages(r.Context(), authCtx.UserID, id)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// handleDeleteChat godoc
// @Summary      Delete chat
// @Tags         Chats
// @Security     BearerAuth
// @Param        id  path  string  true  "Chat ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/chats/{id} [delete]
func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	if _, err := s.chatService.Delete(r.Context(), authCtx.UserID, id); err != nil {
		writeProjectError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Ask endpoint

// handleAsk godoc
// @Summary      Ask a question
// @Description  Runs retrieval over the project's documents, builds a grounded prompt, and returns the generated answer with citations
// @Tags         Chats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      driving.AskRequest  true  "Question"
// @Success      200      {object}  domain.AnswerRecord
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /api/v1/ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req driving.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The caller identity comes from the session, never the body
	req.UserID = GetAuthContext(r.Context()).UserID

	answer, err := s.askService.Ask(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "project_id and question are required")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "project not found")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "access denied")
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "generation is not configured")
		case errors.Is(err, domain.ErrUpstream):
			writeError(w, http.StatusBadGateway, "upstream service failed")
		default:
			writeError(w, http.StatusInternalServerError, "failed to answer question")
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// writeProjectError maps the shared ownership/lookup error shapes
func writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid request")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
