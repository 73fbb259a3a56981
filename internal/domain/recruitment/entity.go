package recruitment

import "time"

// Request status values as written in the tracker sheet.
const (
	StatusJoin    = "Join"
	StatusProcess = "Proses"
	StatusCancel  = "Batal"
)

// DefaultChannel is used when Sumber Kandidat is empty.
const DefaultChannel = "Lainnya"

// Record is one hiring request row after normalization.
type Record struct {
	RequestNo string
	Position  string
	Status    string
	Channel   string

	RequestDate *time.Time
	ClosedDate  *time.Time
	ApplyDate   *time.Time
	JoinDate    *time.Time

	// Closed and Resigned follow the raw cell: any non-empty value counts.
	Closed   bool
	Resigned bool

	ProbationPassed bool
	SLAMet          bool

	Budget         float64
	TotalOffers    float64
	OffersAccepted float64
	Satisfaction   float64
}
