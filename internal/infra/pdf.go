package infra

// pdf.go — PDF generation using go-pdf/fpdf.
// Two documents come out of here:
//   - payment receipts (A5), one per pago, attached to the receipt email
//   - account statements (A4), the full amortization table of a plan
//
// Output files land under storagePath and are served by the API as
// downloads or attached by the email worker.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/go-pdf/fpdf"
)

// ReciboDatos carries the labels the receipt needs beyond the Pago row.
type ReciboDatos struct {
	Empresa  string
	Cliente  string
	Proyecto string
	Terreno  string
	// SaldoPendiente is the plan's remaining balance after this payment.
	SaldoPendiente string
}

// GenerateReciboPDF renders an A5 payment receipt and returns its path.
func GenerateReciboPDF(pago *model.Pago, datos ReciboDatos, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", pago.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, datos.Empresa, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Recibo de Pago", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	lineas := [][2]string{
		{"Recibo:", pago.ID.String()},
		{"Fecha:", pago.FechaPago.Format("02/01/2006")},
		{"Cliente:", datos.Cliente},
		{"Proyecto:", datos.Proyecto},
		{"Lote:", datos.Terreno},
		{"Metodo de pago:", pago.MetodoPago},
	}
	if pago.ReferenciaPago != nil {
		lineas = append(lineas, [2]string{"Referencia:", *pago.ReferenciaPago})
	}
	for _, l := range lineas {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 6, l[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-35, 6, l[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	desglose := [][2]string{
		{"A capital:", "$" + pago.MontoACapital.StringFixed(2)},
		{"A interes:", "$" + pago.MontoAInteres.StringFixed(2)},
		{"A mora:", "$" + pago.MontoAMora.StringFixed(2)},
	}
	for _, l := range desglose {
		pdf.CellFormat(contentW-40, 5, l[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, l[1], "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW-40, 8, "TOTAL PAGADO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "$"+pago.MontoPagado.StringFixed(2), "", 1, "R", false, 0, "")

	if datos.SaldoPendiente != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-40, 5, "Saldo pendiente del plan:", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, "$"+datos.SaldoPendiente, "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Este recibo no requiere firma.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateEstadoCuentaPDF renders the full amortization table of a plan as
// an A4 account statement and returns its path.
func GenerateEstadoCuentaPDF(plan *model.PlanPago, rows []model.Amortizacion, datos ReciboDatos, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("estado_cuenta_%s.pdf", plan.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, datos.Empresa, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "Estado de Cuenta", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	encabezado := [][2]string{
		{"Cliente:", datos.Cliente},
		{"Proyecto:", datos.Proyecto},
		{"Lote:", datos.Terreno},
		{"Monto financiado:", "$" + plan.MontoFinanciado.StringFixed(2)},
		{"Total pagado:", "$" + plan.TotalPagado.StringFixed(2)},
		{"Saldo pendiente:", "$" + plan.TotalPendiente.StringFixed(2)},
		{"Avance:", plan.PorcentajeAvance.StringFixed(2) + "%"},
	}
	for _, l := range encabezado {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(42, 5, l[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-42, 5, l[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)

	// Table header
	cols := []struct {
		w     float64
		label string
		align string
	}{
		{10, "#", "C"},
		{24, "Vence", "C"},
		{26, "Capital", "R"},
		{26, "Interes", "R"},
		{26, "Cuota", "R"},
		{26, "Pagado", "R"},
		{26, "Saldo", "R"},
		{22, "Estado", "C"},
	}
	pdf.SetFont("Helvetica", "B", 8)
	for _, c := range cols {
		pdf.CellFormat(c.w, 6, c.label, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i := range rows {
		a := &rows[i]
		valores := []string{
			fmt.Sprintf("%d", a.NumeroAmortizacion),
			a.FechaVencimiento.Format("02/01/2006"),
			a.MontoCapital.StringFixed(2),
			a.MontoInteres.StringFixed(2),
			a.MontoTotal.StringFixed(2),
			a.MontoPagado.StringFixed(2),
			a.SaldoPendiente.StringFixed(2),
			a.Estado,
		}
		for j, v := range valores {
			pdf.CellFormat(cols[j].w, 5, v, "", 0, cols[j].align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
