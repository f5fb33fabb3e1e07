package recommend

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidPreferences is returned when itinerary preferences fall outside
// the accepted domain.
var ErrInvalidPreferences = errors.New("invalid preferences")

// Interest narrows the candidate sites.
type Interest string

const (
	InterestAll      Interest = "All Heritage Sites"
	InterestUNESCO   Interest = "UNESCO Sites"
	InterestOffbeat  Interest = "Off-beat Locations"
	InterestArtCraft Interest = "Art & Craft"
	InterestFestival Interest = "Festivals"
)

// Interests lists the accepted interest values in display order.
var Interests = []Interest{InterestAll, InterestUNESCO, InterestOffbeat, InterestArtCraft, InterestFestival}

// BudgetTier scales the per-site cost.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "Budget"
	BudgetMid    BudgetTier = "Mid-range"
	BudgetLuxury BudgetTier = "Luxury"
)

// BudgetTiers lists the accepted budget tiers.
var BudgetTiers = []BudgetTier{BudgetLow, BudgetMid, BudgetLuxury}

// Multiplier is the cost factor for the tier.
func (b BudgetTier) Multiplier() float64 {
	switch b {
	case BudgetMid:
		return 1.5
	case BudgetLuxury:
		return 3
	default:
		return 1
	}
}

// Options echoed back to the caller without affecting site selection.
var (
	TravelStyles = []string{"Cultural Immersion", "Photography", "Family", "Adventure"}
	Seasons      = []string{"Winter", "Spring", "Monsoon", "Autumn"}
)

// Duration and group size bounds.
const (
	MinDuration  = 1
	MaxDuration  = 14
	MinGroupSize = 1
	MaxGroupSize = 20
)

// Preferences describe the trip a visitor wants.
type Preferences struct {
	Duration    int        `json:"duration"`
	Interest    Interest   `json:"interest"`
	Budget      BudgetTier `json:"budget"`
	TravelStyle string     `json:"travel_style,omitempty"`
	Season      string     `json:"season,omitempty"`
	GroupSize   int        `json:"group_size,omitempty"`
}

// Validate checks every field against its domain. Empty optional echo
// fields are accepted.
func (p Preferences) Validate() error {
	if p.Duration < MinDuration || p.Duration > MaxDuration {
		return fmt.Errorf("%w: duration %d outside %d-%d", ErrInvalidPreferences, p.Duration, MinDuration, MaxDuration)
	}
	if !slices.Contains(Interests, p.Interest) {
		return fmt.Errorf("%w: unknown interest %q", ErrInvalidPreferences, p.Interest)
	}
	if !slices.Contains(BudgetTiers, p.Budget) {
		return fmt.Errorf("%w: unknown budget %q", ErrInvalidPreferences, p.Budget)
	}
	if p.TravelStyle != "" && !slices.Contains(TravelStyles, p.TravelStyle) {
		return fmt.Errorf("%w: unknown travel style %q", ErrInvalidPreferences, p.TravelStyle)
	}
	if p.Season != "" && !slices.Contains(Seasons, p.Season) {
		return fmt.Errorf("%w: unknown season %q", ErrInvalidPreferences, p.Season)
	}
	if p.GroupSize != 0 && (p.GroupSize < MinGroupSize || p.GroupSize > MaxGroupSize) {
		return fmt.Errorf("%w: group size %d outside %d-%d", ErrInvalidPreferences, p.GroupSize, MinGroupSize, MaxGroupSize)
	}
	return nil
}
