// Package report renders the printable service-ticket receipt.
package report

import (
	"bytes"
	"fmt"
	"time"

	"oficina-desk/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// Receipt renders a ticket with its line items as a PDF. Totals are
// computed for display only; the authoritative value is server-side.
func Receipt(chamado *models.Chamado, itens []models.ItemChamado) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Ordem de Servico", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Chamado #%d - %s", chamado.ID, time.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Cliente", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	if chamado.Cliente != nil {
		pdf.CellFormat(95, 7, fmt.Sprintf("Nome: %s", chamado.Cliente.Nome), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Telefone: %s", chamado.Cliente.Telefone), "RB", 1, "L", false, 0, "")
		pdf.CellFormat(190, 7, fmt.Sprintf("Endereco: %s", chamado.Cliente.Endereco), "LRB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(190, 7, fmt.Sprintf("Cliente #%d", chamado.ClienteID), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Servico", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Aparelho: %s", chamado.Aparelho), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", chamado.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Problema: %s", chamado.Descricao), "LRB", 1, "L", false, 0, "")
	if chamado.DataPrevista != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Previsao: %s", chamado.DataPrevista), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Itens", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 7, "Descricao", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qtd", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Valor Unit.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var total float64
	for _, item := range itens {
		pdf.CellFormat(100, 7, item.Descricao, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantidade), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("R$ %.2f", item.ValorUnitario), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("R$ %.2f", item.ValorTotal()), "1", 1, "R", false, 0, "")
		total += item.ValorTotal()
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(155, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("R$ %.2f", total), "1", 1, "R", true, 0, "")

	if chamado.Observacao != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Observacoes", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, chamado.Observacao, "LRB", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
