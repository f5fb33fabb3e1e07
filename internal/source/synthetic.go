package source

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// Synthetic generates plausible heritage tables from a seed. The same seed
// always yields the same tables.
type Synthetic struct {
	seed uint64
}

// NewSynthetic returns a generator for seed.
func NewSynthetic(seed uint64) *Synthetic {
	return &Synthetic{seed: seed}
}

// Load generates a fresh copy of the tables.
func (s *Synthetic) Load(_ context.Context) (domain.Tables, Provenance, error) {
	return s.Generate(), uniform(KindSynthetic), nil
}

type artCategory struct {
	name  string
	forms []string
}

var artCategories = []artCategory{
	{"Dance", []string{"Kathakali", "Bharatanatyam", "Kathak", "Odissi", "Kuchipudi", "Manipuri", "Mohiniyattam", "Sattriya", "Bhangra", "Garba", "Ghoomar", "Bihu"}},
	{"Music", []string{"Hindustani Classical", "Carnatic", "Folk Songs", "Qawwali", "Baul", "Lavani", "Rabindra Sangeet"}},
	{"Craft", []string{"Pottery", "Weaving", "Embroidery", "Wood Carving", "Metal Work", "Jewelry Making", "Painting"}},
	{"Painting", []string{"Madhubani", "Warli", "Pattachitra", "Miniature", "Tanjore", "Kalamkari", "Phad"}},
	{"Theatre", []string{"Yakshagana", "Kathputli", "Bhand Pather", "Nautanki", "Tamasha", "Therukoothu"}},
}

var siteTypes = []string{"Temple", "Monument", "Palace", "Fort", "Museum", "Heritage Village"}

var festivalNames = []string{
	"Diwali", "Holi", "Durga Puja", "Ganesh Chaturthi", "Onam", "Pongal",
	"Bihu", "Navratri", "Baisakhi", "Makar Sankranti", "Rath Yatra",
	"Hornbill Festival", "Pushkar Fair", "Kumbh Mela", "Desert Festival",
}

type landmark struct {
	name, state, kind string
	year              int
}

// landmarks carry tourism statistics, so their names must match a site row.
var landmarks = []landmark{
	{"Taj Mahal", "Uttar Pradesh", "Monument", 1653},
	{"Red Fort", "Delhi", "Fort", 1648},
	{"Qutub Minar", "Delhi", "Monument", 1199},
	{"Gateway of India", "Maharashtra", "Monument", 1924},
	{"Hawa Mahal", "Rajasthan", "Palace", 1799},
	{"Mysore Palace", "Karnataka", "Palace", 1912},
	{"Charminar", "Telangana", "Monument", 1591},
	{"Victoria Memorial", "West Bengal", "Museum", 1921},
	{"Meenakshi Temple", "Tamil Nadu", "Temple", 1623},
	{"Golden Temple", "Punjab", "Temple", 1604},
	{"Konark Sun Temple", "Odisha", "Temple", 1250},
	{"Khajuraho Temples", "Madhya Pradesh", "Temple", 950},
	{"Ajanta Caves", "Maharashtra", "Monument", -200},
	{"Ellora Caves", "Maharashtra", "Monument", 600},
	{"Hampi", "Karnataka", "Heritage Village", 1336},
	{"Fatehpur Sikri", "Uttar Pradesh", "Fort", 1571},
	{"Jaisalmer Fort", "Rajasthan", "Fort", 1156},
	{"Udaipur City Palace", "Rajasthan", "Palace", 1559},
}

var (
	riskLevels    = []domain.RiskLevel{domain.RiskSafe, domain.RiskVulnerable, domain.RiskEndangered}
	unescoStatus  = []domain.UNESCOStatus{domain.UNESCOInscribed, domain.UNESCOTentative, domain.UNESCONone}
	conservations = []domain.ConservationStatus{domain.ConservationExcellent, domain.ConservationGood, domain.ConservationFair, domain.ConservationPoor}
)

const (
	tourismFirstYear = 2020
	tourismLastYear  = 2024
	// genericTourismShare is the fraction of generated sites that also get
	// tourism statistics.
	genericTourismShare = 0.25
)

// Generate builds all four tables. Coordinates are left unset so ingestion
// places rows at their state centroid.
func (s *Synthetic) Generate() domain.Tables {
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	g := generator{rng: rng}

	var t domain.Tables
	t.ArtForms = g.artForms()
	t.Sites = g.sites()
	t.Tourism = g.tourism(t.Sites)
	t.Festivals = g.festivals()
	return t
}

type generator struct {
	rng *rand.Rand
}

func (g generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func pick[T any](g generator, items []T) T {
	return items[g.rng.IntN(len(items))]
}

func (g generator) artForms() []domain.ArtForm {
	var out []domain.ArtForm
	for _, state := range domain.States {
		for range g.between(3, 8) {
			cat := pick(g, artCategories)
			out = append(out, domain.ArtForm{
				State:            state,
				ArtForm:          pick(g, cat.forms),
				Category:         cat.name,
				Practitioners:    g.between(100, 5000),
				RiskLevel:        pick(g, riskLevels),
				AgeYears:         g.between(100, 2000),
				UNESCORecognized: g.rng.IntN(2) == 1,
			})
		}
	}
	return out
}

func (g generator) site(name, state, kind string, year int) domain.HeritageSite {
	return domain.HeritageSite{
		SiteName:              name,
		State:                 state,
		Type:                  kind,
		EstablishmentYear:     year,
		UNESCOStatus:          pick(g, unescoStatus),
		ConservationStatus:    pick(g, conservations),
		AnnualMaintenanceCost: g.between(100_000, 5_000_000),
		VisitorCapacity:       g.between(1000, 10_000),
		CurrentUtilization:    g.uniform(0.3, 0.95),
		AccessibilityScore:    g.uniform(0.4, 1.0),
		DigitalPresenceScore:  domain.Some(g.uniform(0.2, 1.0)),
	}
}

func (g generator) sites() []domain.HeritageSite {
	out := make([]domain.HeritageSite, 0, len(landmarks))
	for _, l := range landmarks {
		out = append(out, g.site(l.name, l.state, l.kind, l.year))
	}
	for _, state := range domain.States {
		for i := range g.between(5, 15) {
			name := fmt.Sprintf("%s Heritage Site %d", state, i+1)
			out = append(out, g.site(name, state, pick(g, siteTypes), g.between(500, 1900)))
		}
	}
	return out
}

// tourism emits monthly rows for every landmark and a share of the other
// sites, with a sinusoidal seasonal factor and 2% yearly growth.
func (g generator) tourism(sites []domain.HeritageSite) []domain.TourismRecord {
	var out []domain.TourismRecord
	for i, site := range sites {
		if i >= len(landmarks) && g.rng.Float64() >= genericTourismShare {
			continue
		}
		base := float64(g.between(50_000, 500_000))
		for year := tourismFirstYear; year <= tourismLastYear; year++ {
			for m := time.January; m <= time.December; m++ {
				seasonal := 1 + 0.3*math.Sin(2*math.Pi*float64(m)/12)
				trend := 1 + 0.02*float64(year-tourismFirstYear)
				visitors := int(base * seasonal * trend * g.uniform(0.8, 1.2) / 12)
				out = append(out, domain.TourismRecord{
					Site:                  site.SiteName,
					State:                 site.State,
					Date:                  domain.Some(time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)),
					DomesticVisitors:      int(float64(visitors) * 0.7),
					InternationalVisitors: int(float64(visitors) * 0.3),
					Revenue:               float64(visitors * g.between(50, 200)),
					SustainabilityScore:   g.uniform(0.5, 1.0),
					CrowdingIndex:         g.uniform(0.3, 0.9),
				})
			}
		}
	}
	return out
}

func (g generator) festivals() []domain.Festival {
	var out []domain.Festival
	for _, name := range festivalNames {
		states := append([]string(nil), domain.States...)
		g.rng.Shuffle(len(states), func(i, j int) { states[i], states[j] = states[j], states[i] })
		for _, state := range states[:g.between(1, 5)] {
			out = append(out, domain.Festival{
				Festival:                  name,
				State:                     state,
				DurationDays:              g.between(1, 10),
				ExpectedVisitors:          g.between(10_000, 1_000_000),
				EconomicImpact:            g.between(1_000_000, 50_000_000),
				CulturalSignificanceScore: g.uniform(0.7, 1.0),
				TourismPotentialScore:     g.uniform(0.5, 1.0),
				Month:                     g.between(1, 12),
			})
		}
	}
	return out
}
