// Package recommend builds personalised itineraries and sustainable-site
// recommendations from ingested heritage tables.
package recommend
