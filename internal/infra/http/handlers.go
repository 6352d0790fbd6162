package http

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"licentia/internal/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type subjectRequest struct {
	UserID string `json:"user_id"`
}

type issueResponse struct {
	Token     string `json:"token"`
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

type checkResponse struct {
	Revoked bool   `json:"revoked"`
	Message string `json:"message"`
}

type publicKeyResponse struct {
	PublicKey string `json:"public_key"`
	Format    string `json:"format"`
}

func (s *Server) handleIssue(c *gin.Context) {
	if s.issuer == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if req.UserID == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id is required")
		return
	}
	signed, _, err := s.issuer.Issue(c.Request.Context(), req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	days := s.cfg.TrialDurationDays
	if days == 0 {
		days = int(s.issuer.Duration.Hours() / 24)
	}
	c.JSON(http.StatusOK, issueResponse{
		Token:     string(signed.Token),
		Signature: hex.EncodeToString(signed.Signature),
		Message:   fmt.Sprintf("Trial issued for %s (%d days)", req.UserID, days),
	})
}

func (s *Server) handleCheck(c *gin.Context) {
	if s.revocations == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	userID := c.Query("user_id")
	if userID == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id is required")
		return
	}
	revoked, err := s.revocations.IsRevoked(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	message := fmt.Sprintf("User %s is active", userID)
	if revoked {
		message = fmt.Sprintf("User %s has been revoked", userID)
		_ = s.revocations.Events.EmitDenied(c.Request.Context(), userID, "revoked", nil)
	}
	c.JSON(http.StatusOK, checkResponse{Revoked: revoked, Message: message})
}

func (s *Server) handleRevoke(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	if s.revocations == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if req.UserID == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id is required")
		return
	}
	if err := s.revocations.Revoke(c.Request.Context(), req.UserID, ""); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Trial revoked for %s", req.UserID),
	})
}

func (s *Server) handleUnrevoke(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	if s.revocations == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if req.UserID == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id is required")
		return
	}
	if err := s.revocations.Unrevoke(c.Request.Context(), req.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Trial revocation cleared for %s", req.UserID),
	})
}

type grantSummary struct {
	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
	Signature string `json:"signature"`
}

func (s *Server) handleListGrants(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	if s.grants == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	userID := c.Query("user_id")
	if userID == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id is required")
		return
	}
	grants, err := s.grants.ListBySubject(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]grantSummary, 0, len(grants))
	for _, g := range grants {
		out = append(out, grantSummary{
			IssuedAt:  g.IssuedAt.UTC().Format(time.RFC3339),
			ExpiresAt: g.ExpiresAt.UTC().Format(time.RFC3339),
			Signature: hex.EncodeToString(g.Signature),
		})
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "grants": out})
}

func (s *Server) handlePublicKey(c *gin.Context) {
	if s.signer == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, publicKeyResponse{
		PublicKey: hex.EncodeToString(s.signer.PublicKey()),
		Format:    "ed25519",
	})
}

// requireAdmin gates mutation endpoints behind X-Admin-Key when a key
// is configured; an unconfigured key leaves them open.
func (s *Server) requireAdmin(c *gin.Context) bool {
	if s.adminAPIKey == "" {
		return true
	}
	key := c.GetHeader("X-Admin-Key")
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminAPIKey)) != 1 {
		writeError(c, fmt.Errorf("%w: invalid admin key", domain.ErrUnauthorized))
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, domain.ErrAuthorityUnavailable):
		status, code = http.StatusServiceUnavailable, "AUTHORITY_UNAVAILABLE"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	}
	writeErrorCode(c, status, code, err.Error())
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
