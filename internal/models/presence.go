package models

// PresenceSnapshot is the live occupancy of a single conversation channel.
// Snapshots are replaced or merged whole on each presence event, never
// diffed cell by cell.
type PresenceSnapshot struct {
	OccupantIDs []string `json:"occupantIds"`
	Occupancy   int      `json:"occupancy"`
}
