package refdata

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePriceFile(t *testing.T, dir string, year int, rows string) {
	t.Helper()
	content := "Datum;von;Zeitzone von;bis;Zeitzone bis;Spotmarktpreis in ct/kWh\n" + rows
	name := filepath.Join(dir, fmt.Sprintf("Spotmarktpreis%d.csv", year))
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test price file: %v", err)
	}
}

func TestLoadSkipsMissingYears(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, 2023, "01.01.2023;00:00;MEZ;01:00;MEZ;12,50\n")

	ref := Load(discardLogger(), dir, []int{2022, 2023}, 6.72)

	if ref.HasYear(2022) {
		t.Errorf("year without file must not be loaded")
	}
	if !ref.HasYear(2023) {
		t.Errorf("expected 2023 to be loaded")
	}

	years := ref.Years()
	if len(years) != 1 || years[0] != 2023 {
		t.Errorf("Years() expected [2023], got %v", years)
	}

	_, err := ref.PricesForYear(2022)
	if !errors.Is(err, ErrYearMissing) {
		t.Errorf("PricesForYear(2022) expected ErrYearMissing, got %v", err)
	}
}

func TestLoadSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "Spotmarktpreis2023.csv")
	if err := os.WriteFile(name, []byte("not;the;expected;layout\n1;2;3;4\n"), 0o644); err != nil {
		t.Fatalf("writing test price file: %v", err)
	}

	ref := Load(discardLogger(), dir, []int{2023}, 6.72)
	if ref.HasYear(2023) {
		t.Errorf("broken file must degrade to missing year, not load")
	}
}

func TestLoadAttachesBaselines(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, 2024, "15.02.2024;10:00;MEZ;11:00;MEZ;5,00\n")

	ref := Load(discardLogger(), dir, []int{2024}, 6.72)
	points, err := ref.PricesForYear(2024)
	if err != nil {
		t.Fatalf("PricesForYear() unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}

	p := points[0]
	if p.MarketValueMonthly != monthlyMarketValues[2024][1] {
		t.Errorf("february point expected monthly market value %v, got %v",
			monthlyMarketValues[2024][1], p.MarketValueMonthly)
	}
	if p.MarketValueYearly != yearlyMarketValues[2024] {
		t.Errorf("expected yearly market value %v, got %v", yearlyMarketValues[2024], p.MarketValueYearly)
	}
	if p.ReferenceValue != 6.72 {
		t.Errorf("expected reference value 6.72, got %v", p.ReferenceValue)
	}
}

func TestBaselinesForUnknownYear(t *testing.T) {
	if _, ok := BaselinesFor(1999, 6.72); ok {
		t.Errorf("BaselinesFor(1999) expected no table")
	}
}
