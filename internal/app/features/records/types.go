package records

import "github.com/ellarises/ellahub/internal/app/system/formutil"

// Generic add/edit form VM.
type formData struct {
	formutil.Base

	Table      string
	TableLabel string
	Action     string // where the form posts
	ReturnURL  string
	Fields     []formField
}

// tableLabels are the form headings per table.
var tableLabels = map[string]string{
	"users":               "Participant",
	"participants":        "Participant",
	"events":              "Event",
	"event_types":         "Event type",
	"event_registrations": "Registration",
	"survey_results":      "Survey",
	"donations":           "Donation",
	"milestones":          "Milestone",
}
