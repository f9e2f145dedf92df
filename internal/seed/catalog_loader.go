package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

// LoadItems ingests the CSV into the items table, ignoring duplicates.
// Expected columns: code, name, type, unit_contains_value, unit_contains_unit,
// min_quantity. An empty unit_contains_value means a single-unit item.
func LoadItems(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load item catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read catalog header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start catalog transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT INTO items (code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (code) DO NOTHING`)
	if err != nil {
		log.Printf("unable to prepare item insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read catalog row: %v", err)
			continue
		}
		if len(record) < 6 {
			continue
		}
		code := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		itemType := strings.TrimSpace(record[2])
		if code == "" || name == "" {
			continue
		}
		if !domain.ValidItemType(itemType) {
			itemType = domain.TypeOther
		}

		var (
			hasContains   bool
			containsValue *int64
			containsUnit  *string
		)
		if raw := strings.TrimSpace(record[3]); raw != "" {
			value, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Printf("item %s: bad unit_contains_value %q: %v", code, raw, err)
				continue
			}
			unit := strings.TrimSpace(record[4])
			if unit == "" {
				unit = domain.DefaultSubUnit(itemType)
			}
			if err := stock.ValidateUnitContains(true, &domain.UnitContains{Value: value, Unit: unit}); err != nil {
				log.Printf("item %s: %v", code, err)
				continue
			}
			hasContains = true
			containsValue = &value
			containsUnit = &unit
		}

		minQuantity, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
		if err != nil || minQuantity < 0 {
			minQuantity = 0
		}

		if _, err := stmt.Exec(code, name, itemType, hasContains, containsValue, containsUnit, minQuantity); err != nil {
			log.Printf("unable to insert item %s: %v", code, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit catalog seed: %v", err)
	} else {
		log.Printf("seeded item catalog with %d rows", rows)
	}
}
