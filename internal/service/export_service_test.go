package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whittech/estimator/internal/testutil"
	"github.com/xuri/excelize/v2"
)

func TestExportService_PDFAndExcel(t *testing.T) {
	env := newTestEnv(t)
	svc := NewExportService(env.projects, env.items, env.settings)
	ctx := context.Background()
	p := env.createProject(t, "Export Job", testutil.WithTerms(8, 5))

	li := testutil.NewTestLineItem(p.ID, "Camera install",
		testutil.WithQuantity(4),
		testutil.WithMaterial(250, 10),
		testutil.WithLabor(2, 85, 0),
		testutil.WithOverheadProfit(10, 10),
	)
	require.NoError(t, env.items.Create(ctx, li))

	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "proposal.pdf")
	require.NoError(t, svc.ExportPDF(ctx, p.ID, pdfPath))
	pdfData, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfData, []byte("%PDF")))

	xlsxPath := filepath.Join(dir, "proposal.xlsx")
	require.NoError(t, svc.ExportExcel(ctx, p.ID, xlsxPath))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	desc, err := f.GetCellValue(f.GetSheetName(0), "B6")
	require.NoError(t, err)
	assert.Contains(t, desc, "Camera install")
}

func TestExportService_UnknownProject(t *testing.T) {
	env := newTestEnv(t)
	svc := NewExportService(env.projects, env.items, env.settings)

	err := svc.ExportPDF(context.Background(), 404, filepath.Join(t.TempDir(), "out.pdf"))
	assert.Error(t, err)
}
