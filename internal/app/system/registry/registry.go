// Package registry is the single source of truth for the generic CRUD routes:
// which tables may be touched, their primary-key column, the columns a form is
// allowed to persist, and where to redirect after a write. Route handlers look
// entities up here instead of carrying their own table-name switch.
package registry

import (
	"fmt"
	"net/url"
	"sort"
)

// Entity describes one persistable table.
type Entity struct {
	Table      string
	PrimaryKey string
	Columns    []string // form fields allowed to reach an INSERT/UPDATE
	ListPath   string   // where list pages for this entity live
}

var entities = map[string]Entity{
	"users": {
		Table:      "users",
		PrimaryKey: "user_id",
		Columns: []string{
			"participant_first_name", "participant_last_name", "participant_email",
			"participant_city", "participant_school_or_employer",
			"participant_field_of_interest", "participant_role",
		},
		ListPath: "/users",
	},
	// Retained alias from before the participants table was folded into users.
	"participants": {
		Table:      "users",
		PrimaryKey: "user_id",
		Columns: []string{
			"participant_first_name", "participant_last_name", "participant_email",
			"participant_city", "participant_school_or_employer",
			"participant_field_of_interest", "participant_role",
		},
		ListPath: "/users",
	},
	"events": {
		Table:      "events",
		PrimaryKey: "event_id",
		Columns: []string{
			"event_type_id", "event_name", "event_date", "event_start_time",
			"event_end_time", "event_location", "event_capacity",
			"registration_deadline_date", "registration_deadline_time",
		},
		ListPath: "/events",
	},
	"event_types": {
		Table:      "event_types",
		PrimaryKey: "event_type_id",
		Columns:    []string{"event_type_name"},
		ListPath:   "/events",
	},
	"event_registrations": {
		Table:      "event_registrations",
		PrimaryKey: "event_registration_id",
		Columns: []string{
			"user_id", "event_id", "registration_status", "registration_attended_flag",
			"registration_created_at_date", "registration_created_at_time",
			"registration_check_in_date", "registration_check_in_time",
		},
		ListPath: "/event_registrations",
	},
	"survey_results": {
		Table:      "survey_results",
		PrimaryKey: "survey_id",
		Columns: []string{
			"event_registration_id", "survey_satisfaction_score",
			"survey_usefulness_score", "survey_instructor_score",
			"survey_recommendation_score", "survey_overall_score",
			"survey_nps_bucket", "survey_comments",
			"submission_date", "submission_time",
		},
		ListPath: "/surveys",
	},
	"donations": {
		Table:      "donations",
		PrimaryKey: "donation_id",
		Columns:    []string{"user_id", "donation_date", "donation_amount"},
		ListPath:   "/donations",
	},
	"milestones": {
		Table:      "milestones",
		PrimaryKey: "milestone_id",
		Columns:    []string{"user_id", "milestone_title", "milestone_date", "milestone_category"},
		ListPath:   "/milestones",
	},
}

// metaFields are form fields that never persist (navigation and display-only
// inputs rendered by the add/edit forms).
var metaFields = map[string]bool{
	"return":     true,
	"event_name": true,
	"full_name":  true,
}

// Lookup resolves a table path parameter to its entity descriptor.
func Lookup(table string) (Entity, bool) {
	e, ok := entities[table]
	return e, ok
}

// Fields extracts the persistable columns from a submitted form, rejecting
// unknown fields instead of silently dropping them. Empty values are kept as
// SQL NULL so clearing a field on an edit form works.
func (e Entity) Fields(form url.Values) (map[string]any, error) {
	allowed := make(map[string]bool, len(e.Columns))
	for _, c := range e.Columns {
		allowed[c] = true
	}
	fields := make(map[string]any)
	for key, vals := range form {
		// A meta field is skipped only when it is not a real column of this
		// entity: event_name is display-only on the survey form but a
		// persisted column on events.
		if !allowed[key] {
			if metaFields[key] {
				continue
			}
			return nil, fmt.Errorf("field %q is not a column of %s", key, e.Table)
		}
		if len(vals) == 0 || vals[0] == "" {
			fields[key] = nil
			continue
		}
		fields[key] = vals[0]
	}
	return fields, nil
}

// SortedColumns returns the field names of a Fields result in a stable order,
// so generated SQL is deterministic.
func SortedColumns(fields map[string]any) []string {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
