package domain

import "slices"

// IndiaCentroid is the fallback location for states missing from the
// centroid table.
var IndiaCentroid = Geo{Lat: 20.5937, Lon: 78.9629}

// States lists the states covered by synthetic generation.
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
}

var stateCentroids = map[string]Geo{
	"Andhra Pradesh":    {15.9129, 79.7400},
	"Arunachal Pradesh": {28.2180, 94.7278},
	"Assam":             {26.2006, 92.9376},
	"Bihar":             {25.0961, 85.3131},
	"Chhattisgarh":      {21.2787, 81.8661},
	"Goa":               {15.2993, 74.1240},
	"Gujarat":           {22.2587, 71.1924},
	"Haryana":           {29.0588, 76.0856},
	"Himachal Pradesh":  {31.1048, 77.1734},
	"Jharkhand":         {23.6102, 85.2799},
	"Karnataka":         {15.3173, 75.7139},
	"Kerala":            {10.8505, 76.2711},
	"Madhya Pradesh":    {22.9734, 78.6569},
	"Maharashtra":       {19.7515, 75.7139},
	"Manipur":           {24.6637, 93.9063},
	"Meghalaya":         {25.4670, 91.3662},
	"Mizoram":           {23.1645, 92.9376},
	"Nagaland":          {26.1584, 94.5624},
	"Odisha":            {20.9517, 85.0985},
	"Punjab":            {31.1471, 75.3412},
	"Rajasthan":         {27.0238, 74.2179},
	"Sikkim":            {27.5330, 88.5122},
	"Tamil Nadu":        {11.1271, 78.6569},
	"Telangana":         {18.1124, 79.0193},
	"Tripura":           {23.9408, 91.9882},
	"Uttar Pradesh":     {26.8467, 80.9462},
	"Uttarakhand":       {30.0668, 79.0193},
	"West Bengal":       {22.9868, 87.8550},
	"Delhi":             {28.7041, 77.1025},
}

// StateCentroid returns the centroid for a state, or IndiaCentroid and false
// when the state is unknown.
func StateCentroid(state string) (Geo, bool) {
	g, ok := stateCentroids[state]
	if !ok {
		return IndiaCentroid, false
	}
	return g, true
}

// Region groups states into cultural circuits.
type Region struct {
	Name   string
	States []string
}

// Regions is ordered; a state listed in two regions (Assam) resolves to the
// first one.
var Regions = []Region{
	{Name: "North", States: []string{"Uttarakhand", "Himachal Pradesh", "Punjab", "Haryana", "Uttar Pradesh"}},
	{Name: "South", States: []string{"Kerala", "Tamil Nadu", "Karnataka", "Andhra Pradesh", "Telangana"}},
	{Name: "East", States: []string{"West Bengal", "Odisha", "Jharkhand", "Bihar", "Assam"}},
	{Name: "West", States: []string{"Rajasthan", "Gujarat", "Maharashtra", "Goa"}},
	{Name: "Northeast", States: []string{"Assam", "Meghalaya", "Manipur", "Mizoram", "Nagaland", "Tripura", "Arunachal Pradesh", "Sikkim"}},
}

// RegionOf returns the first region listing the state.
func RegionOf(state string) (Region, bool) {
	for _, r := range Regions {
		for _, s := range r.States {
			if s == state {
				return r, true
			}
		}
	}
	return Region{}, false
}

// travelSeasons assigns the travel season by state. It is narrower than
// Regions: only the western and southern lists have their own season.
var travelSeasons = []struct {
	states []string
	season string
}{
	{[]string{"Rajasthan", "Gujarat", "Maharashtra", "Goa"}, "October to March"},
	{[]string{"Kerala", "Tamil Nadu", "Karnataka", "Andhra Pradesh"}, "October to February"},
}

// defaultTravelSeason applies to every state not listed in travelSeasons.
const defaultTravelSeason = "September to March"

// BestTravelTime returns the recommended travel season for a state.
func BestTravelTime(state string) string {
	for _, z := range travelSeasons {
		if slices.Contains(z.states, state) {
			return z.season
		}
	}
	return defaultTravelSeason
}

// Season names the Indian tourism season for a calendar month.
func Season(month int) string {
	switch month {
	case 12, 1, 2:
		return "Winter"
	case 3, 4, 5:
		return "Spring"
	case 6, 7, 8:
		return "Monsoon"
	case 9, 10, 11:
		return "Autumn"
	default:
		return ""
	}
}
