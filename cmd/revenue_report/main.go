package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/pv-revenue-go/config"
	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/refdata"
	"github.com/angas/pv-revenue-go/report"
	"github.com/angas/pv-revenue-go/revenue"
	"github.com/angas/pv-revenue-go/types"
)

// Prints the yearly revenue comparison on the console, either for the
// bundled example datasets or for one uploaded-style xlsx file.
func main() {
	w := os.Stdout
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to config file")
	xlsxPath := flag.String("file", "", "xlsx production file instead of the example datasets")
	name := flag.String("name", "", "project name for the xlsx file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	years := append(cnfg.Data.GetYears(), cnfg.Data.GetForecastYear())
	ref := refdata.Load(logger, cnfg.Data.Dir, years, cnfg.Data.GetReferenceValue())

	projects := dataset.LoadExamples(logger, cnfg.Data.Dir)
	if *xlsxPath != "" {
		f, err := os.Open(*xlsxPath)
		if err != nil {
			logger.Error("failed to open production file", slog.Any("error", err))
			os.Exit(1)
		}
		projectName := *name
		if projectName == "" {
			projectName = strings.TrimSuffix(filepath.Base(*xlsxPath), filepath.Ext(*xlsxPath))
		}
		project, err := dataset.FromXLSX(f, projectName)
		f.Close()
		if err != nil {
			logger.Error("failed to read production file", slog.Any("error", err))
			os.Exit(1)
		}
		projects = []types.Project{project}
	}

	builder := report.NewBuilder(logger, ref, cnfg.Data.GetForecastYear())
	summary, err := builder.Build(projects)
	if err != nil {
		logger.Error("no results", slog.Any("error", err))
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Projekt\tModell")
	for _, col := range summary.Columns {
		fmt.Fprintf(tw, "\t%s", col)
	}
	fmt.Fprintln(tw)

	models := []struct {
		label string
		value func(r revenue.YearResult) float64
	}{
		{report.ModelSpot, func(r revenue.YearResult) float64 { return r.SpotMarket }},
		{report.ModelMarketValue, func(r revenue.YearResult) float64 { return r.MarketValue }},
		{report.ModelPremium, func(r revenue.YearResult) float64 { return r.MarketPremium }},
	}

	for _, row := range summary.Rows {
		for _, m := range models {
			fmt.Fprintf(tw, "%s\t%s", row.Project, m.label)
			for _, col := range summary.Columns {
				if result, ok := row.Results[col]; ok {
					fmt.Fprintf(tw, "\t%.2f", m.value(result))
				} else {
					fmt.Fprintf(tw, "\t-")
				}
			}
			fmt.Fprintln(tw)
		}
	}
	tw.Flush()
}
