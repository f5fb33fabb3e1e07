package analytics

// Availability marks a derived result that could not be computed from the
// data at hand. Handlers return it instead of failing the request.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// available marks a result as computed.
func available() Availability { return Availability{Available: true} }

func unavailable(reason string) Availability {
	return Availability{Reason: reason}
}
