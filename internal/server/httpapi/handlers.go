package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/auth"
)

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: "security"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "Username, password, and email are required")
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.audit.Append(r.Context(), audit.EventLoginSuccess, user.ID,
		map[string]any{"action": "registration"}, r.RemoteAddr)

	s.writeJSON(w, http.StatusOK, registerResponse{
		Message:  "User registered successfully",
		Username: user.Username,
		Status:   "success",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	s.audit.Append(r.Context(), audit.EventLoginAttempt, "",
		map[string]any{"username": req.Username}, r.RemoteAddr)

	user, err := s.users.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			// One reason for both unknown user and bad password; the
			// response must not allow username enumeration.
			s.audit.Append(r.Context(), audit.EventLoginFailure, "",
				map[string]any{"username": req.Username, "reason": "invalid_credentials"}, r.RemoteAddr)
			s.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, common.ErrForbidden):
			s.audit.Append(r.Context(), audit.EventLoginFailure, "",
				map[string]any{"username": req.Username, "reason": "account_disabled"}, r.RemoteAddr)
			s.writeError(w, http.StatusForbidden, "Account disabled")
		default:
			s.writeServiceError(w, r, err)
		}
		return
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.audit.Append(r.Context(), audit.EventLoginSuccess, user.ID, nil, r.RemoteAddr)

	s.writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    loginUser{Username: user.Username, Email: user.Email},
		Status:  "success",
	})
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request, userID string) {

	var req dataRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Data == "" {
		s.writeError(w, http.StatusBadRequest, "Data to encrypt is required")
		return
	}

	ciphertext, err := s.envelope.Encrypt([]byte(req.Data))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.audit.Append(r.Context(), audit.EventEncryptionOp, userID,
		map[string]any{"operation": "encrypt", "data_length": len(req.Data)}, r.RemoteAddr)

	// The envelope key never travels on this path; it is provisioned
	// out of band at startup.
	s.writeJSON(w, http.StatusOK, encryptResponse{
		EncryptedData: base64.StdEncoding.EncodeToString(ciphertext),
		Status:        "success",
	})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request, userID string) {

	var req dataRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Data == "" {
		s.writeError(w, http.StatusBadRequest, "Encrypted data is required")
		return
	}

	ciphertext, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid encrypted data encoding")
		return
	}

	plaintext, err := s.envelope.Decrypt(ciphertext)
	if err != nil {
		// Tampered, truncated or foreign ciphertext; no detail leaks.
		s.writeError(w, http.StatusInternalServerError, "Decryption failed")
		return
	}

	s.audit.Append(r.Context(), audit.EventEncryptionOp, userID,
		map[string]any{"operation": "decrypt", "data_length": len(plaintext)}, r.RemoteAddr)

	s.writeJSON(w, http.StatusOK, decryptResponse{
		DecryptedData: string(plaintext),
		Status:        "success",
	})
}

func (s *Server) handleCreateProtocol(w http.ResponseWriter, r *http.Request, userID string) {

	var req createProtocolRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Protocol name is required")
		return
	}

	protocol, err := s.protocols.Create(r.Context(), userID,
		req.Name, req.EncryptionAlgorithm, req.KeyLength, req.AuthenticationMethod, req.BypassSecurity)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.writeError(w, http.StatusConflict, "Protocol already exists")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.audit.Append(r.Context(), audit.EventProtocolUsage, userID,
		map[string]any{"protocol_id": protocol.ID, "action": "create", "bypass_security": protocol.BypassSecurity}, r.RemoteAddr)

	s.writeJSON(w, http.StatusOK, createProtocolResponse{
		ProtocolID: protocol.ID,
		Protocol:   protocol,
		Status:     "success",
	})
}

func (s *Server) handleApplyProtocol(w http.ResponseWriter, r *http.Request, userID string) {

	protocolID := r.PathValue("id")

	var req dataRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	secured, protocol, err := s.protocols.Apply(r.Context(), protocolID, userID, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "Protocol not found")
		case errors.Is(err, common.ErrForbidden):
			s.audit.Append(r.Context(), audit.EventUnauthorizedAccess, userID,
				map[string]any{"reason": "not_owner", "protocol_id": protocolID}, r.RemoteAddr)
			s.writeError(w, http.StatusForbidden, "Access denied")
		case errors.Is(err, common.ErrValidation):
			s.writeError(w, http.StatusBadRequest, "Data to secure is required")
		default:
			s.writeServiceError(w, r, err)
		}
		return
	}

	s.audit.Append(r.Context(), audit.EventProtocolUsage, userID,
		map[string]any{"protocol_id": protocolID, "action": "apply", "data_length": len(req.Data)}, r.RemoteAddr)

	s.writeJSON(w, http.StatusOK, applyProtocolResponse{
		ProtocolID:      protocolID,
		SecuredData:     secured,
		ProtocolDetails: protocol,
		Status:          "success",
	})
}

func (s *Server) handleSecurityLogs(w http.ResponseWriter, r *http.Request, userID string) {

	logs, err := s.audit.QueryByUser(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, securityLogsResponse{
		UserID:       userID,
		SecurityLogs: logs,
		LogCount:     len(logs),
		Status:       "success",
	})
}

func (s *Server) handleListProtocols(w http.ResponseWriter, r *http.Request, userID string) {

	list, err := s.protocols.ListByOwner(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, protocolListResponse{
		UserID:        userID,
		Protocols:     list,
		ProtocolCount: len(list),
		Status:        "success",
	})
}
