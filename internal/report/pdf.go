package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

// PDF renders lb as a single-table A4 document.
func PDF(lb *workflow.Leaderboard) ([]byte, error) {
	if lb == nil {
		return nil, fmt.Errorf("invalid leaderboard")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(lb.Title, true)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 10, tr(lb.Title), "", 1, "L", false, 0, "")
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 102, 204)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(108, 117, 125)
	lines := []string{
		fmt.Sprintf("Goal: %s %s", amount(lb.GoalType, lb.GoalTarget), lb.GoalType),
		fmt.Sprintf("Progress: %s (%s)", amount(lb.GoalType, lb.Progress), lb.Status),
		fmt.Sprintf("Window: %s", window(lb)),
		fmt.Sprintf("Generated: %s", lb.GeneratedAt.Format("2006-01-02 15:04 MST")),
	}
	for _, l := range lines {
		pdf.CellFormat(0, 6, l, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	widths := []float64{18, 82, 35, 20, 25}
	headers := []string{"Rank", "Participant", "Contribution", "Sales", "Share"}
	aligns := []string{"C", "L", "R", "R", "R"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 102, 204)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(33, 37, 41)
	for i, e := range lb.Entries {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(248, 249, 250)
		}
		cells := []string{
			fmt.Sprintf("%d", e.Rank),
			tr(e.Name),
			amount(lb.GoalType, e.Contribution),
			fmt.Sprintf("%d", e.Sales),
			fmt.Sprintf("%.1f%%", e.SharePercent),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 7, c, "1", 0, aligns[j], true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
