// Package pdf implementa el export del catálogo de productos en PDF
// (tabla Producto | Marca | Categoría | Precio | Stock) usando Maroto v2.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tienda-api/internal/application/admin"
)

var _ admin.CatalogPDFGenerator = (*MarotoCatalogGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCatalogGenerator implementa admin.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct{}

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// GenerateCatalogPDF genera el PDF del catálogo y devuelve sus bytes.
func (g *MarotoCatalogGenerator) GenerateCatalogPDF(
	_ context.Context,
	shopName string,
	rows []admin.CatalogRowForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo de productos", true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shopName, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y fecha + total de productos (der).
func headerRow(shopName string, total int) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(14).Add(
		col.New(8).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Catálogo de productos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Top: 1, Align: align.Right,
			}),
			text.New(fmt.Sprintf("Productos: %d", total), props.Text{
				Size: 9, Top: 6, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: encabezado de la tabla con fondo de color.
func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5}

	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(4).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Marca", header)),
		col.New(2).Add(text.New("Categoría", header)),
		col.New(2).Add(text.New("Precio", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5, Align: align.Right,
		})),
		col.New(2).Add(text.New("Stock", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5, Align: align.Right,
		})),
	)
}

// tableRows: una fila por producto.
func tableRows(rows []admin.CatalogRowForPDF) []core.Row {
	cell := props.Text{Size: 8, Top: 1.5}
	right := props.Text{Size: 8, Top: 1.5, Align: align.Right}

	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(6).Add(
			col.New(4).Add(text.New(r.Name, cell)),
			col.New(2).Add(text.New(r.Brand, cell)),
			col.New(2).Add(text.New(r.Category, cell)),
			col.New(2).Add(text.New("$ "+r.Price.StringFixed(2), right)),
			col.New(2).Add(text.New(fmt.Sprintf("%d", r.Stock), right)),
		))
	}
	return out
}
