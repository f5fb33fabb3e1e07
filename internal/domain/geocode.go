package domain

import (
	"context"
	"log/slog"
)

// GeocodeSite looks up coordinates for a site that has none. It reports
// false when the geocoder is nil, fails, or returns an empty result; the
// caller then falls back to the state centroid.
func GeocodeSite(ctx context.Context, site HeritageSite, geocoder Geocoder, logger *slog.Logger) (HeritageSite, bool) {
	if geocoder == nil {
		return site, false
	}
	if _, ok := site.Coordinates(); ok {
		return site, false
	}
	if site.SiteName == "" || site.State == "" {
		return site, false
	}

	result, err := geocoder.ForwardGeocode(ctx, site.SiteName, site.State)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"site", site.SiteName,
			"state", site.State,
			"error", err,
		)
		return site, false
	}
	if result.Lat == 0 && result.Lon == 0 {
		return site, false
	}

	site.Latitude = Some(result.Lat)
	site.Longitude = Some(result.Lon)
	return site, true
}
