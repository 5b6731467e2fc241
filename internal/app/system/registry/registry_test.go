package registry

import (
	"net/url"
	"reflect"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		table    string
		wantPK   string
		wantPath string
	}{
		{"users", "user_id", "/users"},
		{"participants", "user_id", "/users"}, // legacy alias maps to users
		{"events", "event_id", "/events"},
		{"event_registrations", "event_registration_id", "/event_registrations"},
		{"survey_results", "survey_id", "/surveys"},
		{"donations", "donation_id", "/donations"},
		{"milestones", "milestone_id", "/milestones"},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			e, ok := Lookup(tt.table)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.table)
			}
			if e.PrimaryKey != tt.wantPK {
				t.Errorf("PrimaryKey = %q, want %q", e.PrimaryKey, tt.wantPK)
			}
			if e.ListPath != tt.wantPath {
				t.Errorf("ListPath = %q, want %q", e.ListPath, tt.wantPath)
			}
		})
	}
}

func TestLookup_UnknownTable(t *testing.T) {
	if _, ok := Lookup("pg_catalog"); ok {
		t.Error("Lookup(pg_catalog) should not resolve")
	}
}

func TestFields_AllowList(t *testing.T) {
	e, _ := Lookup("survey_results")

	form := url.Values{
		"event_registration_id":     {"7"},
		"survey_satisfaction_score": {"5"},
		"event_name":                {"Coding Camp"}, // display-only, dropped
		"return":                    {"/surveys"},    // navigation, dropped
	}
	fields, err := e.Fields(form)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	want := map[string]any{
		"event_registration_id":     "7",
		"survey_satisfaction_score": "5",
	}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
}

func TestFields_EventNamePersistsOnEvents(t *testing.T) {
	e, _ := Lookup("events")
	fields, err := e.Fields(url.Values{"event_name": {"Coding Camp"}})
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if fields["event_name"] != "Coding Camp" {
		t.Errorf("event_name = %v, want Coding Camp", fields["event_name"])
	}
}

func TestFields_RejectsUnknown(t *testing.T) {
	e, _ := Lookup("donations")
	form := url.Values{
		"donation_amount": {"25"},
		"is_admin":        {"1"},
	}
	if _, err := e.Fields(form); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestFields_EmptyBecomesNull(t *testing.T) {
	e, _ := Lookup("milestones")
	form := url.Values{"milestone_category": {""}}
	fields, err := e.Fields(form)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if v, ok := fields["milestone_category"]; !ok || v != nil {
		t.Errorf("empty value should map to nil, got %v", v)
	}
}

func TestSortedColumns(t *testing.T) {
	cols := SortedColumns(map[string]any{"b": 1, "a": 2, "c": 3})
	if !reflect.DeepEqual(cols, []string{"a", "b", "c"}) {
		t.Errorf("cols = %v", cols)
	}
}
