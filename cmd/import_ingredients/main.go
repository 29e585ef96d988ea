// Command import_ingredients loads a supplier price list into the ingredient
// catalog. It accepts a CSV export (name, unit, cost per unit, supplier,
// description) or a PDF price sheet whose lines read like
// "Bread Flour 1.50 / kg". Existing ingredients are matched by name per owner
// and have their live price updated; recipe version snapshots are unaffected.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"github.com/OGThorhunter/craved-artisan-sub018/internal/config"
	"github.com/OGThorhunter/craved-artisan-sub018/internal/db"
	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

var (
	cleanWhitespace  = regexp.MustCompile(`\s+`)
	priceLinePattern = regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)?)\s*(?:/|per)\s*([A-Za-z]+)$`)
)

type priceRecord struct {
	Name        string
	Unit        string
	CostPerUnit float64
	Supplier    string
	Description string
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: import_ingredients <price-list.csv|price-list.pdf> <owner-email>")
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path, ownerEmail string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("price list path must not be empty")
	}
	if strings.TrimSpace(ownerEmail) == "" {
		return fmt.Errorf("owner email must not be empty")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate price list: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var owner models.User
	if err := database.Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(ownerEmail))).First(&owner).Error; err != nil {
		return fmt.Errorf("resolve owner %q: %w", ownerEmail, err)
	}

	records, err := readPriceList(path)
	if err != nil {
		return fmt.Errorf("read price list: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no usable rows found in %s", path)
	}

	imported := 0
	updated := 0
	for _, record := range records {
		created, err := upsertIngredient(database, owner.ID, record)
		if err != nil {
			return fmt.Errorf("upsert %q: %w", record.Name, err)
		}
		if created {
			imported++
		} else {
			updated++
		}
	}

	fmt.Printf("imported %d new ingredients, updated %d existing\n", imported, updated)
	return nil
}

func upsertIngredient(database *gorm.DB, ownerID uint, record priceRecord) (bool, error) {
	var created bool
	err := database.Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		err := tx.Where("owner_id = ? AND name = ?", ownerID, record.Name).First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]any{
				"unit":          record.Unit,
				"cost_per_unit": record.CostPerUnit,
			}
			if record.Supplier != "" {
				updates["supplier"] = record.Supplier
			}
			if record.Description != "" {
				updates["description"] = record.Description
			}
			return tx.Model(&existing).Updates(updates).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(&models.Ingredient{
				Name:        record.Name,
				Description: record.Description,
				Unit:        record.Unit,
				CostPerUnit: record.CostPerUnit,
				Supplier:    record.Supplier,
				OwnerID:     ownerID,
			}).Error
		default:
			return err
		}
	})
	return created, err
}

func readPriceList(path string) ([]priceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported price list format %q", filepath.Ext(path))
	}
}

func readCSV(path string) ([]priceRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	records := make([]priceRecord, 0, len(rows))
	for idx, row := range rows {
		if len(row) < 3 {
			continue
		}
		name := normalizeName(row[0])
		if name == "" || (idx == 0 && strings.EqualFold(name, "name")) {
			continue
		}
		cost, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || cost < 0 {
			continue
		}
		record := priceRecord{
			Name:        name,
			Unit:        strings.TrimSpace(row[1]),
			CostPerUnit: cost,
		}
		if len(row) > 3 {
			record.Supplier = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			record.Description = strings.TrimSpace(row[4])
		}
		if record.Unit == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func readPDF(path string) ([]priceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := extractTextFromPDF(data)
	if err != nil {
		return nil, err
	}
	return parsePriceLines(text), nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func parsePriceLines(text string) []priceRecord {
	var records []priceRecord
	for _, line := range strings.Split(text, "\n") {
		line = normalizeName(line)
		if line == "" {
			continue
		}
		match := priceLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		cost, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}
		records = append(records, priceRecord{
			Name:        normalizeName(match[1]),
			Unit:        strings.ToLower(match[3]),
			CostPerUnit: cost,
		})
	}
	return records
}

func normalizeName(value string) string {
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}
