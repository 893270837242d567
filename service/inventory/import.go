package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"tillpoint/core/cache"
	inventoryRepo "tillpoint/model/repository/inventory"
)

// ImportOptions configures a stock import run.
type ImportOptions struct {
	LocationID uint
	BatchSize  int
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Applied   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

// ImportStockCSV reads rows of `sku,quantity` from r and applies each as a
// stock receipt at opts.LocationID. Unknown SKUs and bad quantities are
// skipped with a warning; valid rows are applied in one transaction per batch.
func ImportStockCSV(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	skuCol, qtyCol := -1, -1
	for i, h := range headers {
		switch h {
		case "sku":
			skuCol = i
		case "quantity", "qty":
			qtyCol = i
		}
	}
	if skuCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("CSV must contain 'sku' and 'quantity' columns")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}

	result := &ImportResult{TotalRows: len(rows)}

	skus := make([]string, 0, len(rows))
	for _, row := range rows {
		if skuCol < len(row) {
			if sku := strings.TrimSpace(row[skuCol]); sku != "" {
				skus = append(skus, sku)
			}
		}
	}
	skuToID := lookupSKUs(db, skus, opts.BatchSize)

	type receipt struct {
		productID uint
		qty       int
	}
	receipts := make([]receipt, 0, len(rows))
	for ri, row := range rows {
		sku := ""
		if skuCol < len(row) {
			sku = strings.TrimSpace(row[skuCol])
		}
		if sku == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: empty sku, skipping", ri+2))
			continue
		}
		productID, ok := skuToID[sku]
		if !ok {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: unknown sku %q, skipping", ri+2, sku))
			continue
		}
		qtyRaw := ""
		if qtyCol < len(row) {
			qtyRaw = strings.TrimSpace(row[qtyCol])
		}
		qty, err := strconv.Atoi(qtyRaw)
		if err != nil || qty <= 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: quantity %q is not a positive integer, skipping", ri+2, qtyRaw))
			continue
		}
		receipts = append(receipts, receipt{productID: productID, qty: qty})
	}

	for i := 0; i < len(receipts); i += opts.BatchSize {
		end := i + opts.BatchSize
		if end > len(receipts) {
			end = len(receipts)
		}
		chunk := receipts[i:end]
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, rc := range chunk {
				if err := inventoryRepo.UpsertIncrement(tx, rc.productID, opts.LocationID, rc.qty); err != nil {
					return fmt.Errorf("apply receipt for product %d: %w", rc.productID, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		result.Applied += len(chunk)
	}

	cache.GetInstance().DeleteByTag("stock")
	result.TotalTime = time.Since(start)
	return result, nil
}

// lookupSKUs batch-queries existing SKUs and returns a sku to product_id map.
func lookupSKUs(db *gorm.DB, skus []string, batchSize int) map[string]uint {
	type skuRow struct {
		ProductID uint   `gorm:"column:product_id"`
		SKU       string `gorm:"column:sku"`
	}
	var existing []skuRow
	for i := 0; i < len(skus); i += batchSize {
		end := i + batchSize
		if end > len(skus) {
			end = len(skus)
		}
		var chunk []skuRow
		db.Table("product").Select("product_id, sku").Where("sku IN ?", skus[i:end]).Find(&chunk)
		existing = append(existing, chunk...)
	}
	m := make(map[string]uint, len(existing))
	for _, e := range existing {
		m[e.SKU] = e.ProductID
	}
	return m
}
