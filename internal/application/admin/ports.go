package admin

import (
	"context"
	"mime/multipart"

	"github.com/shopspring/decimal"
)

// ImageStore es el contrato mínimo que necesita el admin para el ciclo de vida
// de las imágenes de producto. Lo implementa images.Store.
type ImageStore interface {
	SaveMultipart(fh *multipart.FileHeader) (string, error)
	Delete(name string) error
}

// CatalogRowForPDF fila ya resuelta (nombres de marca/categoría) para el export.
type CatalogRowForPDF struct {
	Name     string
	Brand    string
	Category string
	Price    decimal.Decimal
	Stock    int
}

// CatalogPDFGenerator genera el PDF del catálogo. Lo implementa pdf.MarotoCatalogGenerator.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, shopName string, rows []CatalogRowForPDF) ([]byte, error)
}
