// Package xlsx lee y genera planillas de conteo físico de inventario.
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// Encabezados de la planilla de conteo.
const (
	colProductID = "product_id"
	colName      = "nombre"
	colUnit      = "unidad"
	colSystem    = "stock_sistema"
	colCounted   = "contado"
)

// ParseStockCount lee la hoja activa. Requiere las columnas product_id y contado;
// unidad es opcional. Las filas sin cantidad contada se omiten.
func ParseStockCount(r io.Reader) ([]stock.CountLine, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.Invalid("no se pudo leer el archivo (no es .xlsx o está dañado)")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, domain.Invalid("la planilla no tiene filas de conteo")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idCol, okID := idx[colProductID]
	countCol, okCount := idx[colCounted]
	if !okID || !okCount {
		return nil, domain.Invalid("faltan columnas obligatorias %q y %q", colProductID, colCounted)
	}
	unitCol, hasUnit := idx[colUnit]

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var lines []stock.CountLine
	for n, row := range rows[1:] {
		id := cell(row, idCol)
		raw := cell(row, countCol)
		if id == "" || raw == "" {
			continue
		}
		counted, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
		if err != nil {
			return nil, domain.Invalid("fila %d: cantidad %q no es un número", n+2, raw)
		}
		ln := stock.CountLine{ProductID: id, Counted: counted}
		if hasUnit {
			ln.Unit = cell(row, unitCol)
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		return nil, domain.Invalid("la planilla no tiene cantidades contadas")
	}
	return lines, nil
}

// StockCountTemplate genera la planilla para el conteo con el stock actual de cada producto.
func StockCountTemplate(products []*entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	header := []interface{}{colProductID, colName, colUnit, colSystem, colCounted}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range products {
		row := []interface{}{p.ID, p.Name, string(p.BaseUnit), p.Stock.String(), ""}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
