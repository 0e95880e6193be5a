package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const DefaultTitle = "TERMO DE RESPONSABILIDADE"

var (
	columnWidths  = []float64{40, 62, 38, 30}
	columnHeaders = []string{"Nº de Série", "Marca/Modelo", "Estado", "Valor"}
)

// WritePDF lays out the view on A4 pages and writes the document to w.
func WritePDF(view DocumentView, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(view.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(view.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(28, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, tr(value), "", "L", false)
	}
	field("Colaborador:", view.SignerName)
	field("CPF:", view.CPF)
	field("RG:", view.RG)
	field("Endereço:", view.Address)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range columnHeaders {
		pdf.CellFormat(columnWidths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range view.Items {
		cells := []string{row.Serial, row.MakeModel, row.Condition, row.Value}
		for i, c := range cells {
			align := "L"
			if i == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(columnWidths[i], 7, tr(fit(pdf, c, columnWidths[i])), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	label := columnWidths[0] + columnWidths[1] + columnWidths[2]
	pdf.CellFormat(label, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(columnWidths[3], 7, tr(view.Total), "1", 1, "R", true, 0, "")
	pdf.Ln(6)

	if view.Body != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(view.Body), "", "J", false)
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Assinatura eletrônica"), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	field("Data:", view.SignedAt)
	field("IP:", view.ClientAddress)
	field("Navegador:", view.ClientAgent)
	pdf.SetFont("Courier", "", 8)
	pdf.MultiCell(0, 5, "SHA-256: "+view.Hash, "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fit truncates text so it stays inside one table cell.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	const padding = 2
	if pdf.GetStringWidth(text) <= width-padding {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-padding {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
