// Package catalogio reads and writes the catalog as an xlsx workbook with
// one sheet per entity kind and one per association table.
package catalogio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetStores        = "Stores"
	SheetProducts      = "Products"
	SheetTags          = "Tags"
	SheetStoreProducts = "StoreProducts"
	SheetProductTags   = "ProductTags"
)

var headers = map[string][]interface{}{
	SheetStores:        {"id", "name", "currency"},
	SheetProducts:      {"id", "name", "shelfLife"},
	SheetTags:          {"id", "name"},
	SheetStoreProducts: {"storeId", "productId", "price"},
	SheetProductTags:   {"productId", "tagId"},
}

var sheetOrder = []string{SheetStores, SheetProducts, SheetTags, SheetStoreProducts, SheetProductTags}

// Catalog is the full content of a workbook. Ids are the ids of the system
// that wrote it; Import remaps them.
type Catalog struct {
	Stores        []dto.StoreDTO
	Products      []dto.ProductDTO
	Tags          []dto.TagDTO
	StoreProducts []dto.StoreProductDTO
	ProductTags   []dto.ProductTagDTO
}

// Write encodes cat as an xlsx workbook.
func Write(w io.Writer, cat Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it instead of leaving it empty
	if err := f.SetSheetName(f.GetSheetName(0), SheetStores); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, sheet := range sheetOrder[1:] {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	rows := map[string][][]interface{}{}
	for _, s := range cat.Stores {
		rows[SheetStores] = append(rows[SheetStores], []interface{}{s.ID, s.Name, s.Currency})
	}
	for _, p := range cat.Products {
		rows[SheetProducts] = append(rows[SheetProducts], []interface{}{p.ID, p.Name, p.ShelfLife})
	}
	for _, t := range cat.Tags {
		rows[SheetTags] = append(rows[SheetTags], []interface{}{t.ID, t.Name})
	}
	for _, sp := range cat.StoreProducts {
		rows[SheetStoreProducts] = append(rows[SheetStoreProducts], []interface{}{sp.StoreID, sp.ProductID, sp.Price.StringFixed(2)})
	}
	for _, pt := range cat.ProductTags {
		rows[SheetProductTags] = append(rows[SheetProductTags], []interface{}{pt.ProductID, pt.TagID})
	}

	for _, sheet := range sheetOrder {
		if err := writeSheet(f, sheet, rows[sheet]); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	all := append([][]interface{}{headers[sheet]}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Read decodes a workbook written by Write. Missing sheets read as empty;
// the first row of each sheet is the header and is skipped.
func Read(r io.Reader) (Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var cat Catalog

	err = eachRow(f, SheetStores, 2, func(row []string) error {
		id, err := parseUint(row[0])
		if err != nil {
			return err
		}
		cat.Stores = append(cat.Stores, dto.StoreDTO{ID: id, Name: row[1], Currency: cellAt(row, 2)})
		return nil
	})
	if err != nil {
		return Catalog{}, err
	}

	err = eachRow(f, SheetProducts, 2, func(row []string) error {
		id, err := parseUint(row[0])
		if err != nil {
			return err
		}
		shelfLife := 0
		if raw := cellAt(row, 2); raw != "" {
			if shelfLife, err = strconv.Atoi(raw); err != nil {
				return fmt.Errorf("invalid shelfLife %q", raw)
			}
		}
		cat.Products = append(cat.Products, dto.ProductDTO{ID: id, Name: row[1], ShelfLife: shelfLife})
		return nil
	})
	if err != nil {
		return Catalog{}, err
	}

	err = eachRow(f, SheetTags, 2, func(row []string) error {
		id, err := parseUint(row[0])
		if err != nil {
			return err
		}
		cat.Tags = append(cat.Tags, dto.TagDTO{ID: id, Name: row[1]})
		return nil
	})
	if err != nil {
		return Catalog{}, err
	}

	err = eachRow(f, SheetStoreProducts, 2, func(row []string) error {
		storeID, err := parseUint(row[0])
		if err != nil {
			return err
		}
		productID, err := parseUint(row[1])
		if err != nil {
			return err
		}
		price := decimal.Zero
		if raw := cellAt(row, 2); raw != "" {
			if price, err = decimal.NewFromString(raw); err != nil {
				return fmt.Errorf("invalid price %q", raw)
			}
		}
		cat.StoreProducts = append(cat.StoreProducts, dto.StoreProductDTO{StoreID: storeID, ProductID: productID, Price: price})
		return nil
	})
	if err != nil {
		return Catalog{}, err
	}

	err = eachRow(f, SheetProductTags, 2, func(row []string) error {
		productID, err := parseUint(row[0])
		if err != nil {
			return err
		}
		tagID, err := parseUint(row[1])
		if err != nil {
			return err
		}
		cat.ProductTags = append(cat.ProductTags, dto.ProductTagDTO{ProductID: productID, TagID: tagID})
		return nil
	})
	if err != nil {
		return Catalog{}, err
	}

	return cat, nil
}

// eachRow calls fn for every data row with at least minCols cells. Blank
// rows are skipped; shorter rows are an error.
func eachRow(f *excelize.File, sheet string, minCols int, fn func(row []string) error) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
		if len(row) < minCols {
			return fmt.Errorf("sheet %s row %d: expected at least %d columns, got %d", sheet, i+1, minCols, len(row))
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseUint(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(v), nil
}
