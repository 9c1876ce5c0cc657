package models

// Unit status tokens as they appear in the reference data and live edits.
const (
	StatusAvailable    = "AQ"   // in quarters, dispatchable
	StatusDispatched   = "CALL" // committed to an incident
	StatusOutOfService = "PA"   // out of service / unavailable
	StatusCrossStaffed = "CS"   // crew committed to a cross-staffed partner
)

// Unit is a single apparatus as defined by the reference data. Overrides to
// its capabilities and status live in DispatchState, never on the unit.
type Unit struct {
	ID           string
	Station      string
	Capabilities []string
	BaseStatus   string
}
