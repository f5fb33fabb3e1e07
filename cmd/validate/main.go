// Command validate performs data integrity checks over a heritage fixture:
// row counts, enum domains, score ranges, state coverage, join coverage and
// the invariants of the derived scores. It finishes with the breakdowns
// used when eyeballing a new fixture.
//
// Usage:
//
//	go run ./cmd/validate -file data/mock/heritage_tables.json
package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/analytics"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/source"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "data/mock/heritage_tables.json", "path to the JSON fixture")
	flag.Parse()

	os.Exit(run(*file))
}

func run(path string) int {
	fmt.Println("=== Heritage Data Integrity Validation ===")
	fmt.Println()

	raw, err := source.ReadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	tables, report := domain.Ingest(context.Background(), raw, domain.IngestOptions{})

	phases := validate(raw, tables, report)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d art forms, %d tourism, %d sites, %d festivals\n",
		len(raw.ArtForms), len(raw.Tourism), len(raw.Sites), len(raw.Festivals))
	fmt.Printf("Ingest repairs: filled=%v clamped=%d undated_tourism=%d\n",
		report.Filled, report.Clamped, report.UndatedTourism)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	printBreakdowns(tables)

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validate(raw, tables domain.Tables, report domain.IngestReport) []*phase {
	return []*phase{
		validateCounts(raw),
		validateEnums(tables),
		validateRanges(tables),
		validateStates(report),
		validateJoins(tables),
		validateScores(tables),
	}
}

// ── Phase 1: Row counts ──

func validateCounts(t domain.Tables) *phase {
	p := &phase{name: "Phase 1: Row counts"}
	for name, n := range map[string]int{
		domain.TableArtForms:  len(t.ArtForms),
		domain.TableTourism:   len(t.Tourism),
		domain.TableSites:     len(t.Sites),
		domain.TableFestivals: len(t.Festivals),
	} {
		if n == 0 {
			p.errorf("%s: no rows", name)
		}
	}
	return p
}

// ── Phase 2: Enum domains ──
// Runs after ingestion, so case differences are already canonicalised and
// anything left is an unknown value.

func validateEnums(t domain.Tables) *phase {
	p := &phase{name: "Phase 2: Enum domains"}
	for i, a := range t.ArtForms {
		if !slices.Contains([]domain.RiskLevel{domain.RiskSafe, domain.RiskVulnerable, domain.RiskEndangered}, a.RiskLevel) {
			p.errorf("art_forms[%d] %s: unknown risk level %q", i, a.ArtForm, a.RiskLevel)
		}
	}
	for i, s := range t.Sites {
		if !slices.Contains([]domain.UNESCOStatus{domain.UNESCOInscribed, domain.UNESCOTentative, domain.UNESCONone}, s.UNESCOStatus) {
			p.errorf("sites[%d] %s: unknown UNESCO status %q", i, s.SiteName, s.UNESCOStatus)
		}
		if !slices.Contains([]domain.ConservationStatus{
			domain.ConservationExcellent, domain.ConservationGood, domain.ConservationFair, domain.ConservationPoor,
		}, s.ConservationStatus) {
			p.errorf("sites[%d] %s: unknown conservation status %q", i, s.SiteName, s.ConservationStatus)
		}
	}
	for i, f := range t.Festivals {
		if f.Month == 0 {
			p.errorf("festivals[%d] %s: month missing or outside 1-12", i, f.Festival)
		}
	}
	return p
}

// ── Phase 3: Score ranges ──

func validateRanges(t domain.Tables) *phase {
	p := &phase{name: "Phase 3: Score ranges"}
	check := func(label string, v float64) {
		if v < 0 || v > 1 {
			p.errorf("%s = %g outside [0,1]", label, v)
		}
	}
	for _, r := range t.Tourism {
		check(r.Site+" sustainability_score", r.SustainabilityScore)
		check(r.Site+" crowding_index", r.CrowdingIndex)
	}
	for _, s := range t.Sites {
		check(s.SiteName+" accessibility_score", s.AccessibilityScore)
		check(s.SiteName+" current_utilization", s.CurrentUtilization)
		check(s.SiteName+" digital_presence_score", s.DigitalPresenceScore.Or(-1))
	}
	for _, f := range t.Festivals {
		check(f.Festival+" cultural_significance_score", f.CulturalSignificanceScore)
		check(f.Festival+" tourism_potential_score", f.TourismPotentialScore)
	}
	return p
}

// ── Phase 4: State coverage ──

func validateStates(report domain.IngestReport) *phase {
	p := &phase{name: "Phase 4: State coverage"}
	for _, s := range report.UnknownStates {
		p.errorf("state %q has no centroid; rows placed at the national centroid", s)
	}
	return p
}

// ── Phase 5: Join coverage ──
// Tourism rows join to sites by name; unmatched rows never reach hidden
// gems or sustainable recommendations.

func validateJoins(t domain.Tables) *phase {
	p := &phase{name: "Phase 5: Join coverage"}
	sites := map[string]bool{}
	for _, s := range t.Sites {
		sites[s.SiteName] = true
	}
	seen := map[string]bool{}
	for _, r := range t.Tourism {
		if !sites[r.Site] && !seen[r.Site] {
			p.errorf("tourism site %q has no heritage site row", r.Site)
		}
		seen[r.Site] = true
	}
	return p
}

// ── Phase 6: Derived scores ──

func validateScores(t domain.Tables) *phase {
	p := &phase{name: "Phase 6: Derived score invariants"}
	for _, s := range analytics.HeritageIndex(t.ArtForms, t.Sites, t.Festivals) {
		if s.Index < 0 || s.Index > 100 {
			p.errorf("heritage index %s = %g outside [0,100]", s.State, s.Index)
		}
	}
	for _, m := range analytics.SustainabilityMetrics(t.Tourism) {
		if m.Overall < 0 || m.Overall > 1 {
			p.errorf("overall sustainability %s = %g outside [0,1]", m.Site, m.Overall)
		}
	}
	for _, g := range analytics.HiddenGems(t.Sites, t.Tourism) {
		if !g.ConservationStatus.WellPreserved() || g.Utilization >= 0.5 {
			p.errorf("hidden gem %s fails the conservation or utilization filter", g.SiteName)
		}
	}
	return p
}

// ── Breakdowns ──

func printBreakdowns(t domain.Tables) {
	fmt.Println("\n=== Breakdowns ===")

	risk := map[string]int{}
	for _, a := range t.ArtForms {
		risk[string(a.RiskLevel)]++
	}
	printCounts("Risk levels", risk)

	unesco := map[string]int{}
	for _, s := range t.Sites {
		unesco[string(s.UNESCOStatus)]++
	}
	printCounts("UNESCO status", unesco)

	perState := map[string]int{}
	for _, s := range t.Sites {
		perState[s.State]++
	}
	printCounts("Sites per state", perState)
}

func printCounts(title string, m map[string]int) {
	type labelCount struct {
		label string
		count int
	}
	rows := make([]labelCount, 0, len(m))
	for k, v := range m {
		rows = append(rows, labelCount{k, v})
	}
	slices.SortFunc(rows, func(a, b labelCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})
	fmt.Printf("%s:\n", title)
	for _, r := range rows {
		fmt.Printf("  %-20s %d\n", r.label, r.count)
	}
}
