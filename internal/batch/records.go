package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one (product_id, review_text) pair to drive through the API.
type Record struct {
	ProductID  string `json:"product_id"`
	ReviewText string `json:"review_text"`
}

// FixtureRecords is the built-in demo batch: twelve reviews spanning the
// three sentiment classes.
var FixtureRecords = []Record{
	{"SKU-1001", "Absolutely love this product, works perfectly and arrived early!"},
	{"SKU-1001", "Excellent build quality, would definitely buy again."},
	{"SKU-1002", "Terrible experience, it broke after two days and support ignored me."},
	{"SKU-1002", "Worst purchase I have made this year, complete waste of money."},
	{"SKU-1003", "It does what the box says. Nothing more, nothing less."},
	{"SKU-1003", "Arrived on time. Standard packaging."},
	{"SKU-1004", "Great value for the price, very happy with it."},
	{"SKU-1004", "Disappointing battery life, drains far too quickly."},
	{"SKU-1005", "The manual is average but the device itself is fantastic."},
	{"SKU-1005", "Meh. It is a cable. It carries electricity."},
	{"SKU-1006", "Superb customer service and a wonderful product overall."},
	{"SKU-1006", "Awful smell out of the box and the finish scratches easily."},
}

// LoadCSV reads records from a CSV file with a header row containing
// product_id and review_text columns, in any order.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	idIdx, textIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "product_id":
			idIdx = i
		case "review_text":
			textIdx = i
		}
	}
	if textIdx == -1 {
		return nil, fmt.Errorf("CSV header must contain a review_text column, got %v", header)
	}

	var out []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if textIdx >= len(row) {
			return nil, fmt.Errorf("CSV row %d has no review_text column", len(out)+2)
		}
		rec := Record{ReviewText: row[textIdx]}
		if idIdx >= 0 && idIdx < len(row) {
			rec.ProductID = strings.TrimSpace(row[idIdx])
		}
		out = append(out, rec)
	}
	return out, nil
}
