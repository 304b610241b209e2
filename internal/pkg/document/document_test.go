package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{999, "999,00"},
		{1000, "1 000,00"},
		{270000, "270 000,00"},
		{1234567.891, "1 234 567,89"},
		{-30000, "-30 000,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
}

func TestRenderPayslip(t *testing.T) {
	paid := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	out, err := RenderPayslip(Payslip{
		Company:         "SGRH",
		Mois:            "2024-01",
		EmployeNom:      "Camara Aïssata",
		Matricule:       "EMP00001",
		SalaireBase:     300000,
		JoursAbsence:    3,
		RetenueAbsences: 30000,
		SalaireNet:      270000,
		Statut:          "Payé",
		DatePaiement:    &paid,
		GeneratedAt:     paid,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderXLSX(t *testing.T) {
	out, err := RenderXLSX(
		Sheet{
			Name:    "Pointages",
			Headers: []string{"Matricule", "Date", "Statut"},
			Rows: [][]any{
				{"EMP00001", "2024-01-10", "Retard"},
				{"EMP00002", "2024-01-10", "Présent"},
			},
		},
		Sheet{Name: "Résumé", Headers: []string{"Total"}, Rows: [][]any{{2}}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Pointages", "Résumé"}, f.GetSheetList())

	v, err := f.GetCellValue("Pointages", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Retard", v)

	rows, err := f.GetRows("Pointages")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRenderXLSX_NoSheet(t *testing.T) {
	_, err := RenderXLSX()
	assert.Error(t, err)
}
