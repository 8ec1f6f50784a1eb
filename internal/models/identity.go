// server/internal/models/identity.go
package models

// Identity is the device user bound to a station tablet after login.
type Identity struct {
	ID             string     `bson:"id" json:"id"`
	Username       string     `bson:"username" json:"username"`
	StationID      string     `bson:"stationId" json:"stationId"`     // e.g. "Station 001", shown in breadcrumbs
	StationCode    string     `bson:"stationCode" json:"stationCode"` // e.g. "PR 001"
	StationName    string     `bson:"stationName" json:"stationName"`
	DeviceName     string     `bson:"deviceName" json:"deviceName"`
	Role           Role       `bson:"role" json:"role"`
	Workflows      []Workflow `bson:"workflows" json:"workflows"`
	StagingAreaIDs []string   `bson:"stagingAreaIds" json:"stagingAreaIds"`
}

// Workflow returns the identity's workflow with the given id.
func (i Identity) Workflow(id string) (Workflow, bool) {
	for _, wf := range i.Workflows {
		if wf.ID == id {
			return wf, true
		}
	}
	return Workflow{}, false
}

// DefaultWorkflow is the workflow selected right after login.
func (i Identity) DefaultWorkflow() (Workflow, bool) {
	if len(i.Workflows) == 0 {
		return Workflow{}, false
	}
	return i.Workflows[0], true
}
