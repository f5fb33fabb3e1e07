// Package domain models Indian cultural heritage data: traditional art
// forms, monthly tourism statistics, heritage sites, and festivals.
//
// # Tables
//
// The service works on four flat tables. There are no foreign keys; tables
// are joined at read time by matching site names or state names as plain
// strings:
//
//	art_forms  state, art_form, category, practitioners, risk_level,
//	           age_years, unesco_recognized, latitude, longitude
//	tourism    site, state, date, domestic_visitors, international_visitors,
//	           revenue, sustainability_score, crowding_index
//	sites      site_name, state, type, establishment_year, unesco_status,
//	           conservation_status, annual_maintenance_cost, visitor_capacity,
//	           current_utilization, accessibility_score, digital_presence_score
//	festivals  festival, state, duration_days, expected_visitors,
//	           economic_impact, cultural_significance_score,
//	           tourism_potential_score, month
//
// total_visitors is always derived as domestic + international and is never
// read from a source.
//
// # Optional Columns
//
// Warehouse tables and fixture files may omit some columns. Those fields are
// typed [Optional] and are resolved exactly once by [Ingest]:
//
//	art/site coordinates   geocoder (sites only) → state centroid ± 1° jitter
//	tourism coordinates    state centroid
//	digital_presence_score uniform fill in [0.2, 1.0)
//	tourism date           left unset; trend analysis skips undated rows
//
// # States
//
// Coordinates are resolved from a fixed table of state centroids. State names
// must match exactly (after whitespace trimming); anything else falls back to
// the centroid of India (20.5937, 78.9629) and is listed in the ingest report.
//
// Establishment years may be negative for sites founded BCE.
package domain
