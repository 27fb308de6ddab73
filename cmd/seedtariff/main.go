// Command seedtariff converts the tariff master-data Excel workbook into a
// SQL seed file. Reads the Categories, Sides, Bases, Currencies, Modes,
// Providers, and Service_Types sheets.
// Usage: go run ./cmd/seedtariff
// Output: db/seeds/master_data.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultTenantID = "00000000-0000-0000-0000-000000000001"

type namedRow struct {
	name string
}

type providerRow struct {
	name  string
	modes []string
}

type serviceTypeRow struct {
	mode string
	name string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "Tariff Master Data.xlsx"
	outPath := "db/seeds/master_data.sql"

	tenantID := os.Getenv("CARGOQUOTE_SEED_TENANT_ID")
	if tenantID == "" {
		tenantID = defaultTenantID
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	categories, err := parseNamedSheet(f, "Categories")
	if err != nil {
		return err
	}
	sides, err := parseNamedSheet(f, "Sides")
	if err != nil {
		return err
	}
	bases, err := parseNamedSheet(f, "Bases")
	if err != nil {
		return err
	}
	currencies, err := parseNamedSheet(f, "Currencies")
	if err != nil {
		return err
	}
	modes, err := parseNamedSheet(f, "Modes")
	if err != nil {
		return err
	}
	providers, err := parseProviderSheet(f)
	if err != nil {
		return err
	}
	serviceTypes, err := parseServiceTypeSheet(f)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(format string, args ...any) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	w("-- Tariff master data seed generated from the Excel workbook.")
	w("-- Run: make seed-tariff")
	w("BEGIN;")
	w("")

	writeNamedInserts(out, "charge_categories", tenantID, categories)
	writeNamedInserts(out, "charge_sides", tenantID, sides)
	writeNamedInserts(out, "charge_bases", tenantID, bases)
	writeNamedInserts(out, "currencies", tenantID, currencies)
	writeNamedInserts(out, "transport_modes", tenantID, modes)

	for _, p := range providers {
		w("INSERT INTO providers (id, tenant_id, name) VALUES (gen_random_uuid(), '%s', '%s') ON CONFLICT (tenant_id, name) DO NOTHING;",
			tenantID, escapeSQL(p.name))
	}
	w("")

	for _, st := range serviceTypes {
		w(`INSERT INTO service_types (id, tenant_id, mode_id, name)
SELECT gen_random_uuid(), '%s', tm.id, '%s'
FROM transport_modes tm
WHERE tm.tenant_id = '%s' AND lower(tm.name) = lower('%s')
ON CONFLICT (tenant_id, mode_id, name) DO NOTHING;`,
			tenantID, escapeSQL(st.name), tenantID, escapeSQL(st.mode))
	}
	w("")

	for _, p := range providers {
		for _, mode := range p.modes {
			w(`INSERT INTO provider_modes (tenant_id, provider_id, mode_id)
SELECT '%s', pr.id, tm.id
FROM providers pr, transport_modes tm
WHERE pr.tenant_id = '%s' AND pr.name = '%s'
  AND tm.tenant_id = '%s' AND lower(tm.name) = lower('%s')
ON CONFLICT (provider_id, mode_id) DO NOTHING;`,
				tenantID, tenantID, escapeSQL(p.name), tenantID, escapeSQL(mode))
		}
	}

	w("")
	w("COMMIT;")

	log.Printf("Generated master data seed in %s (%d categories, %d providers, %d service types)",
		outPath, len(categories), len(providers), len(serviceTypes))
	return nil
}

// parseNamedSheet reads a single-column sheet of names, skipping the header
// row and blanks.
func parseNamedSheet(f *excelize.File, sheet string) ([]namedRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	seen := make(map[string]bool)
	var out []namedRow
	for i := 1; i < len(rows); i++ {
		name := strings.TrimSpace(cellVal(rows[i], 0))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, namedRow{name: name})
	}
	return out, nil
}

// parseProviderSheet reads the Providers sheet.
// Columns: A=name, B=comma-separated modes the carrier services.
func parseProviderSheet(f *excelize.File) ([]providerRow, error) {
	rows, err := f.GetRows("Providers")
	if err != nil {
		return nil, fmt.Errorf("read sheet Providers: %w", err)
	}

	var out []providerRow
	for i := 1; i < len(rows); i++ {
		name := strings.TrimSpace(cellVal(rows[i], 0))
		if name == "" {
			continue
		}
		var modes []string
		for _, m := range strings.Split(cellVal(rows[i], 1), ",") {
			if m = strings.TrimSpace(m); m != "" {
				modes = append(modes, m)
			}
		}
		out = append(out, providerRow{name: name, modes: modes})
	}
	return out, nil
}

// parseServiceTypeSheet reads the Service_Types sheet.
// Columns: A=mode, B=service type name (tier).
func parseServiceTypeSheet(f *excelize.File) ([]serviceTypeRow, error) {
	rows, err := f.GetRows("Service_Types")
	if err != nil {
		return nil, fmt.Errorf("read sheet Service_Types: %w", err)
	}

	var out []serviceTypeRow
	for i := 1; i < len(rows); i++ {
		mode := strings.TrimSpace(cellVal(rows[i], 0))
		name := strings.TrimSpace(cellVal(rows[i], 1))
		if mode == "" || name == "" {
			continue
		}
		out = append(out, serviceTypeRow{mode: mode, name: name})
	}
	return out, nil
}

func writeNamedInserts(out *os.File, table, tenantID string, rows []namedRow) {
	for _, r := range rows {
		fmt.Fprintf(out,
			"INSERT INTO %s (id, tenant_id, name) VALUES (gen_random_uuid(), '%s', '%s') ON CONFLICT (tenant_id, name) DO NOTHING;\n",
			table, tenantID, escapeSQL(r.name))
	}
	fmt.Fprintln(out)
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
