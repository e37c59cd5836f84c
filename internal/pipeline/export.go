package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"kondate/internal"
)

func ExportStockXLSX(items []internal.StockItem, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"vendor", "name", "unit", "quantity", "updated_at"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, item.Vendor)
		set(2, item.Name)
		set(3, item.Unit)
		set(4, item.Quantity)
		set(5, derefString(item.UpdatedAt))
	}

	return saveXLSX(f, outputPath)
}

func ExportDeliverySetXLSX(doc internal.DeliveryDocument, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"slip_no", "vendor", "slip_date", "delivery_date", "slip_total", "comment",
		"item_no", "code", "name", "spec", "unit_price", "delivery_qty", "delivery_unit", "order_qty", "order_unit",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	r := 1
	for _, slip := range doc.Slips {
		rows := slip.Items
		if len(rows) == 0 {
			rows = []internal.SlipItem{{}}
		}
		for _, item := range rows {
			r++
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(sheet, cell, value)
			}
			set(1, slip.SlipNo)
			set(2, derefString(slip.Vendor))
			set(3, derefString(slip.SlipDate))
			set(4, derefString(slip.DeliveryDate))
			set(5, derefFloat(slip.Total))
			set(6, derefString(slip.Comment))
			set(7, derefInt(item.No))
			set(8, derefString(item.Code))
			set(9, item.Name)
			set(10, derefString(item.Spec))
			set(11, item.UnitPrice)
			set(12, item.DeliveryQty)
			set(13, item.DeliveryUnit)
			set(14, derefFloat(item.OrderQty))
			set(15, derefString(item.OrderUnit))
		}
	}

	return saveXLSX(f, outputPath)
}

func saveXLSX(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
