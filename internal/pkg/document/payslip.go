// Package document renders payslips as PDF and tabular exports as XLSX.
package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Payslip holds the values printed on a salary slip.
type Payslip struct {
	Company     string
	Mois        string
	EmployeNom  string
	Matricule   string
	Poste       string
	Departement string

	SalaireBase      float64
	Primes           float64
	HeuresSup        float64
	MontantHeuresSup float64
	Deductions       float64
	JoursAbsence     float64
	RetenueAbsences  float64
	SalaireNet       float64

	Statut       string
	DatePaiement *time.Time
	GeneratedAt  time.Time
}

// RenderPayslip returns the PDF bytes of p.
func RenderPayslip(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Bulletin de paie "+p.Mois), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(p.Company))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, tr("Bulletin de paie - "+p.Mois))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range [][2]string{
		{"Employé", p.EmployeNom},
		{"Matricule", p.Matricule},
		{"Poste", p.Poste},
		{"Département", p.Departement},
	} {
		if line[1] == "" {
			continue
		}
		pdf.CellFormat(45, 7, tr(line[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(110, 8, tr("Rubrique"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, tr("Montant"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label  string
		amount float64
	}{
		{"Salaire de base", p.SalaireBase},
		{"Primes", p.Primes},
		{fmt.Sprintf("Heures supplémentaires (%s h)", formatQuantity(p.HeuresSup)), p.MontantHeuresSup},
		{"Déductions", -p.Deductions},
		{fmt.Sprintf("Retenue absences (%s j)", formatQuantity(p.JoursAbsence)), -p.RetenueAbsences},
	}
	for _, row := range rows {
		pdf.CellFormat(110, 8, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, FormatAmount(row.amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(110, 9, tr("Salaire net"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 9, FormatAmount(p.SalaireNet), "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	status := "Statut : " + p.Statut
	if p.DatePaiement != nil {
		status += " le " + p.DatePaiement.Format("02/01/2006")
	}
	pdf.Cell(0, 6, tr(status))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Généré le "+p.GeneratedAt.Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatAmount prints an amount with two decimals and space separated thousands.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return sign + b.String() + "," + frac
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
