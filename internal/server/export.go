package server

import (
	"fmt"
	"io"
	"net/http"

	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/auroradigital/billingdesk/internal/invoice/draft"
	"github.com/auroradigital/billingdesk/internal/invoice/render"
	workflowdomain "github.com/auroradigital/billingdesk/internal/workflow/domain"
	"github.com/gin-gonic/gin"
)

// ExportDraft renders the live draft as json, html, or pdf.
func (s *Server) ExportDraft(c *gin.Context) {
	s.exportFormState(c, s.form.State())
}

// ExportArchiveEntry renders a frozen archive snapshot.
func (s *Server) ExportArchiveEntry(c *gin.Context) {
	stored, found := s.archive.Load(c.Param("id"))
	if !found {
		AbortWithError(c, ErrNotFound)
		return
	}
	s.exportFormState(c, stored.FormState)
}

// ExportInvoice renders a ledger record. Submitted records keep line
// items but not the full bill-to snapshot, so the client is resolved
// from the directory at export time.
func (s *Server) ExportInvoice(c *gin.Context) {
	record, found := s.workflowSvc.Get(c.Param("id"))
	if !found {
		AbortWithError(c, ErrNotFound)
		return
	}

	org, err := s.directory.Organization(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeExport(c, render.BuildDocument(org, s.recordFormState(c, record)))
}

func (s *Server) exportFormState(c *gin.Context, state invoicedomain.FormState) {
	org, err := s.directory.Organization(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.writeExport(c, render.BuildDocument(org, state))
}

func (s *Server) recordFormState(c *gin.Context, record workflowdomain.InvoiceRecord) invoicedomain.FormState {
	state := invoicedomain.FormState{
		ClientSelectionID: record.ClientID,
		Currency:          record.Currency,
		LineItems:         record.LineItems,
		Meta: invoicedomain.Meta{
			InvoiceNumber: record.InvoiceNumber,
			IssueDate:     record.IssueDate,
			DueDate:       record.DueDate,
			ProjectName:   record.Engagement,
		},
		AdditionalNote: record.Notes,
	}

	if profile, found, err := s.directory.GetClient(c.Request.Context(), record.ClientID); err == nil && found {
		state.Client = draft.ClientDetailsFromProfile(profile)
	}
	return state
}

func (s *Server) writeExport(c *gin.Context, doc render.Document) {
	switch c.Param("format") {
	case "json":
		c.JSON(http.StatusOK, doc)
	case "html":
		html, err := s.renderer.RenderHTML(doc)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	case "pdf":
		reader, err := s.pdfProvider.GenerateInvoice(c.Request.Context(), doc)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		payload, err := io.ReadAll(reader)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.InvoiceNumber+".pdf"))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		AbortWithError(c, newValidationError("format", "invalid_format", "format must be json, html, or pdf"))
	}
}
