package entity

// Location kinds. Head office and distributors ship into outlets; outlets
// receive and confirm.
const (
	LocationHeadOffice  = "head_office"
	LocationDistributor = "distributor"
	LocationOutlet      = "outlet"
)

// Location represents a stock-holding party (head office, distributor or
// retail outlet).
type Location struct {
	ID   string
	Code string
	Name string
	Kind string // see Location* constants
}
