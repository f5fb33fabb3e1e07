// Command genmock writes a seeded synthetic heritage fixture for the file
// data source and prints the numbers test assertions are written against.
//
// Usage:
//
//	go run ./cmd/genmock -seed 42 -out data/mock/synthetic_tables.json
package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/couchcryptid/heritage-explorer/internal/analytics"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/source"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", 42, "synthetic generator seed")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	tables := source.NewSynthetic(*seed).Generate()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := source.WriteFixture(*out, tables); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %s (seed %d)", *out, *seed)

	printStats(tables)
	return nil
}

type labelCount struct {
	label string
	count int
}

func sortedCounts(m map[string]int) []labelCount {
	out := make([]labelCount, 0, len(m))
	for k, v := range m {
		out = append(out, labelCount{k, v})
	}
	slices.SortFunc(out, func(a, b labelCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})
	return out
}

func printCounts(title string, m map[string]int) {
	fmt.Printf("%s:", title)
	for _, c := range sortedCounts(m) {
		fmt.Printf(" %s=%d", c.label, c.count)
	}
	fmt.Println()
}

func printStats(t domain.Tables) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows: art_forms=%d, tourism=%d, sites=%d, festivals=%d\n",
		len(t.ArtForms), len(t.Tourism), len(t.Sites), len(t.Festivals))

	risk := map[string]int{}
	category := map[string]int{}
	for _, a := range t.ArtForms {
		risk[string(a.RiskLevel)]++
		category[a.Category]++
	}
	printCounts("By risk", risk)
	printCounts("By category", category)

	unesco := map[string]int{}
	for _, s := range t.Sites {
		unesco[string(s.UNESCOStatus)]++
	}
	printCounts("By UNESCO status", unesco)

	printTourismCoverage(t.Tourism)
	printScores(t)
}

func printTourismCoverage(tourism []domain.TourismRecord) {
	sites := map[string]int{}
	var first, last time.Time
	for _, r := range tourism {
		sites[r.Site]++
		if !r.Date.Set {
			continue
		}
		if first.IsZero() || r.Date.Value.Before(first) {
			first = r.Date.Value
		}
		if r.Date.Value.After(last) {
			last = r.Date.Value
		}
	}
	fmt.Printf("\nTourism: %d sites, %s to %s\n", len(sites), first.Format("2006-01"), last.Format("2006-01"))
}

// printScores runs the same ingestion the service does, so the numbers
// match what the API returns for this seed.
func printScores(raw domain.Tables) {
	t, report := domain.Ingest(context.Background(), raw, domain.IngestOptions{})
	fmt.Printf("Ingest fills: %v, clamped: %d\n", report.Filled, report.Clamped)

	index := analytics.HeritageIndex(t.ArtForms, t.Sites, t.Festivals)
	fmt.Println("\nTop heritage index:")
	for _, s := range index[:min(5, len(index))] {
		fmt.Printf("  %-18s %.2f (arts=%d sites=%d festivals=%d)\n", s.State, s.Index, s.ArtForms, s.Sites, s.Festivals)
	}

	gems := analytics.HiddenGems(t.Sites, t.Tourism)
	fmt.Printf("\nHidden gems: %d\n", len(gems))
	for _, g := range gems[:min(3, len(gems))] {
		fmt.Printf("  #%d %s (%s) potential=%.3f\n", g.VisitRank, g.SiteName, g.State, g.Potential)
	}

	summary := analytics.Summarize(t)
	fmt.Printf("\nTotal visitors: %d, UNESCO sites: %d, endangered art forms: %d\n",
		summary.Stats.TotalVisitors, summary.Stats.UNESCOSites, summary.Stats.EndangeredArtForms)
}
