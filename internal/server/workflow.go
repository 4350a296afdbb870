package server

import (
	"net/http"

	workflowdomain "github.com/auroradigital/billingdesk/internal/workflow/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"invoices": s.workflowSvc.List()})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	record, found := s.workflowSvc.Get(c.Param("id"))
	if !found {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SubmitInvoice sends the current draft into the approval queue. A
// draft that fails validation never reaches the queue; on success the
// editor resets with a fresh invoice number.
func (s *Server) SubmitInvoice(c *gin.Context) {
	if issues := s.form.Validate(); len(issues) > 0 {
		AbortWithError(c, draftValidationError(issues))
		return
	}

	record := s.workflowSvc.Submit(c.Request.Context(), s.form.State(), actorRole(c))
	s.form.Reset(c.Request.Context())
	c.JSON(http.StatusCreated, record)
}

type setApprovalStatusRequest struct {
	ApprovalStatus workflowdomain.ApprovalStatus `json:"approvalStatus"`
}

// SetApprovalStatus records the CEO's verdict on a pending submission.
// Approved and Rejected are terminal; anything other than a transition
// out of the awaiting state is a conflict.
func (s *Server) SetApprovalStatus(c *gin.Context) {
	var req setApprovalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	switch req.ApprovalStatus {
	case workflowdomain.ApprovalApproved, workflowdomain.ApprovalRejected, workflowdomain.ApprovalNeedsEdits:
	default:
		AbortWithError(c, newValidationError("approvalStatus", "invalid_status", "unknown approval status"))
		return
	}

	id := c.Param("id")
	if _, found := s.workflowSvc.Get(id); !found {
		AbortWithError(c, ErrNotFound)
		return
	}

	record, ok := s.workflowSvc.SetApprovalStatus(c.Request.Context(), id, req.ApprovalStatus)
	if !ok {
		AbortWithError(c, ErrConflict)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ResubmitInvoice files the current draft as a revision of a
// submission that came back needing edits.
func (s *Server) ResubmitInvoice(c *gin.Context) {
	if issues := s.form.Validate(); len(issues) > 0 {
		AbortWithError(c, draftValidationError(issues))
		return
	}

	id := c.Param("id")
	if _, found := s.workflowSvc.Get(id); !found {
		AbortWithError(c, ErrNotFound)
		return
	}

	record, ok := s.workflowSvc.Resubmit(c.Request.Context(), id, s.form.State(), actorRole(c))
	if !ok {
		AbortWithError(c, ErrConflict)
		return
	}

	s.form.Reset(c.Request.Context())
	c.JSON(http.StatusCreated, record)
}
