package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Lịch sử báo giá"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService renders the order history as spreadsheets
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

func exportHeaders(withProfit bool) []string {
	headers := []string{"Ngày", "Số Đơn", "Khách Hàng", "SĐT", "Tổng Cộng"}
	if withProfit {
		headers = append(headers, "Lợi Nhuận")
	}
	return headers
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CSV writes one row per order with a BOM so spreadsheet apps detect UTF-8.
// The profit column is only included when withProfit is set.
func (s *ExportService) CSV(snaps []*OrderSnapshot, withProfit bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders(withProfit)); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, snap := range snaps {
		o := snap.Order
		row := []string{
			sanitizeCell(o.Date), sanitizeCell(o.OrderNo), sanitizeCell(o.CustomerName), sanitizeCell(o.Phone),
			formatPlain(snap.Totals.GrandTotal),
		}
		if withProfit {
			row = append(row, formatPlain(snap.Totals.Profit))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX writes the same columns as CSV into a workbook with a bold header row
// and numeric money cells.
func (s *ExportService) XLSX(snaps []*OrderSnapshot, withProfit bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E7FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	headers := exportHeaders(withProfit)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(exportSheetName, "A1", lastCol+"1", headerStyle)

	for r, snap := range snaps {
		row := r + 2
		o := snap.Order
		values := []interface{}{
			sanitizeCell(o.Date), sanitizeCell(o.OrderNo), sanitizeCell(o.CustomerName), sanitizeCell(o.Phone),
			snap.Totals.GrandTotal,
		}
		if withProfit {
			values = append(values, snap.Totals.Profit)
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(exportSheetName, cell, v)
		}
		start, _ := excelize.CoordinatesToCellName(5, row)
		end, _ := excelize.CoordinatesToCellName(len(headers), row)
		f.SetCellStyle(exportSheetName, start, end, moneyStyle)
	}

	f.SetColWidth(exportSheetName, "A", "B", 14)
	f.SetColWidth(exportSheetName, "C", "C", 28)
	f.SetColWidth(exportSheetName, "D", lastCol, 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell defuses values a spreadsheet would evaluate as a formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
