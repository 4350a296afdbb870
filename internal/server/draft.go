package server

import (
	"io"
	"net/http"

	"github.com/auroradigital/billingdesk/internal/invoice/draft"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":  s.form.State(),
		"totals": s.form.Totals(),
	})
}

// ApplyDraftOp dispatches one draft mutation. The payload is the op
// envelope: {"type": "...", ...fields}. Mutations that reference an
// unknown client, service, or line are silent no-ops, so the response
// always carries the resulting state.
func (s *Server) ApplyDraftOp(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	op, err := draft.DecodeOp(raw)
	if err != nil {
		AbortWithError(c, newValidationError("type", "unknown_op", "unknown draft op"))
		return
	}

	s.form.Apply(c.Request.Context(), op)
	c.JSON(http.StatusOK, gin.H{
		"state":  s.form.State(),
		"totals": s.form.Totals(),
	})
}

func (s *Server) GetDraftTotals(c *gin.Context) {
	c.JSON(http.StatusOK, s.form.Totals())
}

func (s *Server) ValidateDraft(c *gin.Context) {
	issues := s.form.Validate()
	c.JSON(http.StatusOK, gin.H{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}

func (s *Server) RegenerateInvoiceNumber(c *gin.Context) {
	number := s.form.RegenerateInvoiceNumber()
	c.JSON(http.StatusOK, gin.H{"invoiceNumber": number})
}

func (s *Server) ResetDraft(c *gin.Context) {
	state := s.form.Reset(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"state": state})
}
