package http

import (
	"errors"
	"net/http"

	"claimtrust/internal/domain"

	"github.com/gin-gonic/gin"
)

// Callers supplying very large evidence lists are cut off here so the
// deepfake fan-out stays bounded.
const maxEvidenceItems = 50

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusRequest struct {
	Status   string `json:"status"`
	Reviewer string `json:"reviewer,omitempty"`
}

type claimRecordResponse struct {
	ClaimID   string                     `json:"claimId"`
	Status    domain.ReviewStatus        `json:"status"`
	Reviewer  string                     `json:"reviewer,omitempty"`
	CreatedAt string                     `json:"createdAt"`
	UpdatedAt string                     `json:"updatedAt"`
	Result    domain.ClaimVerifyResponse `json:"result"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleVerifyClaim(c *gin.Context) {
	if !s.enforceRateLimit(c, "claims:verify") {
		return
	}
	var req domain.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid json body")
		return
	}
	if !req.ClaimType.Valid() {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_CLAIM_TYPE", "unrecognized claim type")
		return
	}
	if len(req.Evidence) > maxEvidenceItems {
		writeErrorCode(c, http.StatusBadRequest, "TOO_MUCH_EVIDENCE", "evidence list exceeds limit")
		return
	}

	resp := s.claims.Verify(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetClaim(c *gin.Context) {
	if !s.enforceRateLimit(c, "claims:read") {
		return
	}
	record, err := s.claims.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			writeErrorCode(c, http.StatusNotFound, "CLAIM_NOT_FOUND", "claim not found")
			return
		}
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "failed to load claim")
		return
	}
	c.JSON(http.StatusOK, buildRecordResponse(*record))
}

func (s *Server) handleSetStatus(c *gin.Context) {
	if !s.enforceRateLimit(c, "claims:review") {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid json body")
		return
	}
	err := s.claims.SetStatus(c.Request.Context(), c.Param("id"), domain.ReviewStatus(req.Status), req.Reviewer)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"claimId": c.Param("id"), "status": req.Status})
	case errors.Is(err, domain.ErrInvalidStatus):
		writeErrorCode(c, http.StatusBadRequest, "INVALID_STATUS", "status must be approved, rejected, or needs_review")
	case errors.Is(err, domain.ErrClaimNotFound):
		writeErrorCode(c, http.StatusConflict, "CLAIM_NOT_FOUND", "claim not found")
	default:
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "failed to update status")
	}
}

func buildRecordResponse(record domain.ClaimRecord) claimRecordResponse {
	return claimRecordResponse{
		ClaimID:   record.ClaimID,
		Status:    record.Status,
		Reviewer:  record.Reviewer,
		CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: record.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Result:    record.Response,
	}
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: message})
}
