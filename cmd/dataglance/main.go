// Command dataglance analyzes a CSV file: it detects the business domain,
// maps columns to canonical fields, profiles the data, and answers business
// questions, either through built-in analysis modules or the LLM-backed
// insight client.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dataglance/dataglance/internal/analysis"
	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/config"
	"github.com/dataglance/dataglance/internal/dataset"
	"github.com/dataglance/dataglance/internal/engine"
	"github.com/dataglance/dataglance/internal/insight"
	"github.com/dataglance/dataglance/internal/llm"
	"github.com/dataglance/dataglance/internal/store"
)

var (
	filePath    = flag.String("file", "", "Path to CSV file to analyze (required)")
	questionID  = flag.String("question", "", "Answer a question by id (see the plan output for ids)")
	askText     = flag.String("ask", "", "Ask a free-form question about the data")
	sqlQuery    = flag.String("sql", "", "Run a read-only SQL query against the data (table name: data)")
	listQueries = flag.Bool("queries", false, "Print suggested SQL queries for the dataset and exit")
	catalogPath = flag.String("catalog", "", "Path to YAML catalog override (overrides config)")
	asJSON      = flag.Bool("json", false, "Print the analysis plan as JSON")
)

func main() {
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *filePath, err)
	}
	ds, err := dataset.FromCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *filePath, err)
	}

	ctx := context.Background()

	if *sqlQuery != "" || *listQueries {
		runSQL(ctx, ds)
		return
	}

	cat := catalog.FromFileOrDefault(cfg.Catalog.Path)

	gen, err := llm.NewGenerator(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	insights := insight.NewClient(gen, cfg.Insight)
	eng := engine.New(cat, insights, cfg.Mapper.FuzzyThreshold)

	plan := eng.CreatePlan(ctx, ds)

	switch {
	case *questionID != "":
		printResult(eng.Answer(ctx, ds, plan, *questionID))
	case *askText != "":
		printResult(eng.Ask(ctx, ds, plan, *askText))
	default:
		printPlan(plan)
	}
}

func runSQL(ctx context.Context, ds *dataset.Dataset) {
	st, err := store.Open()
	if err != nil {
		log.Fatalf("Failed to open SQL store: %v", err)
	}
	defer st.Close()

	if err := st.LoadDataset(ctx, ds); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	if *listQueries {
		for _, q := range store.GenerateQueries(ds) {
			fmt.Printf("%-30s %s\n", q.ID, q.Query)
		}
		return
	}

	result, err := st.Query(ctx, *sqlQuery)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	printTable(result.Columns, result.Rows)
}

func printPlan(plan *engine.AnalysisPlan) {
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			log.Fatalf("Failed to encode plan: %v", err)
		}
		return
	}

	fmt.Printf("Domain:      %s (confidence %.2f)\n", plan.Domain, plan.Confidence)
	fmt.Printf("Tier:        %s\n", plan.Tier)
	fmt.Printf("Session:     %s\n\n", plan.SessionID)

	fmt.Println("Column mapping:")
	for field, col := range plan.Mapping {
		fmt.Printf("  %-12s -> %s\n", field, col)
	}

	fmt.Println("\nCapabilities:")
	for _, c := range plan.Capabilities {
		fmt.Printf("  %s\n", c)
	}

	fmt.Println("\nQuestions:")
	for _, q := range plan.Questions {
		status := "available"
		if !q.Available {
			status = fmt.Sprintf("needs %v", q.MissingFields)
		}
		fmt.Printf("  %-20s %-10s %s\n", q.ID, status, q.Text)
	}

	if plan.Profile != nil {
		fmt.Printf("\nData quality: %d/100\n", plan.Profile.Quality.Score)
		for _, issue := range plan.Profile.Quality.Issues {
			fmt.Printf("  issue: %s\n", issue)
		}
		for _, fact := range plan.Profile.QuickFacts {
			fmt.Printf("  %s\n", fact)
		}
	}

	if len(plan.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range plan.Recommendations {
			fmt.Printf("  %s\n", r)
		}
	}

	fmt.Printf("\nInstant insights:\n%s\n", plan.InstantInsights)
}

func printResult(result *analysis.Result) {
	fmt.Println(result.Summary)
	if result.Table != nil {
		fmt.Println()
		printTable(result.Table.Columns, result.Table.Rows)
	}
}

func printTable(columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) && len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}
	for i, c := range columns {
		fmt.Printf("%-*s  ", widths[i], c)
	}
	fmt.Println()
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) {
				fmt.Printf("%-*s  ", widths[i], v)
			}
		}
		fmt.Println()
	}
}
