package infra

// pdf.go — recibo (sale receipt) generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style documents with business header,
// sale data, quantity/price line, bold total and payment method.
// The output file is saved to storagePath/recibo_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"crmgas/internal/model"

	"github.com/go-pdf/fpdf"
)

// ReciboGenerator renders sale receipts to disk.
type ReciboGenerator struct {
	storagePath string
}

func NewReciboGenerator(storagePath string) *ReciboGenerator {
	return &ReciboGenerator{storagePath: storagePath}
}

// Gerar renders the receipt PDF for a venda and returns the file path.
func (g *ReciboGenerator) Gerar(venda *model.Venda) (string, error) {
	if err := os.MkdirAll(g.storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 74, Ht: 105}, // A7
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "CRM Gás & Água", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Venda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venda %s", venda.ID.String()[:8]), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venda.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if venda.Cliente != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+venda.Cliente.Nome, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Item line ─────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	nome := ""
	if venda.Produto != nil {
		nome = venda.Produto.Nome
	}
	if len(nome) > 22 {
		nome = nome[:21] + "…"
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1, 5, nome, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", venda.Quantidade), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "R$ "+venda.ValorTotal.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total and payment ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+venda.ValorTotal.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Forma de pagamento:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, venda.FormaPagamento, "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Obrigado pela preferência!", "", 1, "C", false, 0, "")

	path := filepath.Join(g.storagePath, fmt.Sprintf("recibo_%s.pdf", venda.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("pdf: write recibo: %w", err)
	}
	return path, nil
}
