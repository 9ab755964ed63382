package httpapi

import (
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/protocols"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type registerResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
	Status  string    `json:"status"`
}

type loginUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type dataRequest struct {
	Data string `json:"data"`
}

type encryptResponse struct {
	EncryptedData string `json:"encrypted_data"`
	Status        string `json:"status"`
}

type decryptResponse struct {
	DecryptedData string `json:"decrypted_data"`
	Status        string `json:"status"`
}

type createProtocolRequest struct {
	Name                 string `json:"name"`
	EncryptionAlgorithm  string `json:"encryption_algorithm"`
	KeyLength            int    `json:"key_length"`
	AuthenticationMethod string `json:"authentication_method"`
	BypassSecurity       bool   `json:"bypass_security"`
}

type createProtocolResponse struct {
	ProtocolID string              `json:"protocol_id"`
	Protocol   *protocols.Protocol `json:"protocol"`
	Status     string              `json:"status"`
}

type applyProtocolResponse struct {
	ProtocolID      string              `json:"protocol_id"`
	SecuredData     string              `json:"secured_data"`
	ProtocolDetails *protocols.Protocol `json:"protocol_details"`
	Status          string              `json:"status"`
}

type securityLogsResponse struct {
	UserID       string         `json:"user_id"`
	SecurityLogs []*audit.Event `json:"security_logs"`
	LogCount     int            `json:"log_count"`
	Status       string         `json:"status"`
}

type protocolListResponse struct {
	UserID        string              `json:"user_id"`
	Protocols     []*protocols.Protocol `json:"protocols"`
	ProtocolCount int                 `json:"protocol_count"`
	Status        string              `json:"status"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type errorResponse struct {
	Error string `json:"error"`
}
