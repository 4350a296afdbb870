// Package pdf generates printable invoice documents.
package pdf

import (
	"context"
	"io"

	"github.com/auroradigital/billingdesk/internal/invoice/render"
)

// Provider turns a resolved invoice document into a PDF stream.
type Provider interface {
	GenerateInvoice(ctx context.Context, doc render.Document) (io.Reader, error)
}
