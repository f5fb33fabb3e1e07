package analytics

import (
	"time"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

func month(y int, m time.Month) domain.Optional[time.Time] {
	return domain.Some(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC))
}

func site(name, state string, conservation domain.ConservationStatus, access, util, digital float64) domain.HeritageSite {
	return domain.HeritageSite{
		SiteName:             name,
		State:                state,
		Type:                 "Monument",
		UNESCOStatus:         domain.UNESCONone,
		ConservationStatus:   conservation,
		VisitorCapacity:      5000,
		CurrentUtilization:   util,
		AccessibilityScore:   access,
		DigitalPresenceScore: domain.Some(digital),
		Latitude:             domain.Some(20.0),
		Longitude:            domain.Some(78.0),
	}
}

func visits(siteName string, domestic, international int) domain.TourismRecord {
	return domain.TourismRecord{
		Site:                  siteName,
		State:                 "Karnataka",
		Date:                  month(2023, time.January),
		DomesticVisitors:      domestic,
		InternationalVisitors: international,
		Revenue:               float64(domestic+international) * 100,
		SustainabilityScore:   0.7,
		CrowdingIndex:         0.4,
		Latitude:              domain.Some(15.0),
		Longitude:             domain.Some(76.0),
	}
}
