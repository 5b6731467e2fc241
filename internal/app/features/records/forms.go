package records

import (
	"context"
	"strconv"

	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/domain/models"
)

// fieldSpec describes one input on a generic add/edit form.
type fieldSpec struct {
	Name    string
	Label   string
	Type    string // text | email | number | date | time | textarea | select
	Options string // option source for selects: users | events | event_types | registrations | roles | statuses | scores | nps
}

// formSpecs drives the generic form template, in display order per table.
// Every Name here must be in the registry allow-list for its table.
var formSpecs = map[string][]fieldSpec{
	"users": {
		{Name: "participant_first_name", Label: "First name", Type: "text"},
		{Name: "participant_last_name", Label: "Last name", Type: "text"},
		{Name: "participant_email", Label: "Email", Type: "email"},
		{Name: "participant_city", Label: "City", Type: "text"},
		{Name: "participant_school_or_employer", Label: "School or employer", Type: "text"},
		{Name: "participant_field_of_interest", Label: "Field of interest", Type: "text"},
		{Name: "participant_role", Label: "Role", Type: "select", Options: "roles"},
	},
	"events": {
		{Name: "event_name", Label: "Name", Type: "text"},
		{Name: "event_type_id", Label: "Type", Type: "select", Options: "event_types"},
		{Name: "event_date", Label: "Date", Type: "date"},
		{Name: "event_start_time", Label: "Start time", Type: "time"},
		{Name: "event_end_time", Label: "End time", Type: "time"},
		{Name: "event_location", Label: "Location", Type: "text"},
		{Name: "event_capacity", Label: "Capacity", Type: "number"},
		{Name: "registration_deadline_date", Label: "Registration deadline date", Type: "date"},
		{Name: "registration_deadline_time", Label: "Registration deadline time", Type: "time"},
	},
	"event_types": {
		{Name: "event_type_name", Label: "Type name", Type: "text"},
	},
	"event_registrations": {
		{Name: "user_id", Label: "Participant", Type: "select", Options: "users"},
		{Name: "event_id", Label: "Event", Type: "select", Options: "events"},
		{Name: "registration_status", Label: "Status", Type: "select", Options: "statuses"},
		{Name: "registration_created_at_date", Label: "Registered on", Type: "date"},
		{Name: "registration_created_at_time", Label: "Registered at", Type: "time"},
		{Name: "registration_check_in_date", Label: "Check-in date", Type: "date"},
		{Name: "registration_check_in_time", Label: "Check-in time", Type: "time"},
	},
	"survey_results": {
		{Name: "event_registration_id", Label: "Registration", Type: "select", Options: "registrations"},
		{Name: "survey_satisfaction_score", Label: "Satisfaction (1-5)", Type: "select", Options: "scores"},
		{Name: "survey_usefulness_score", Label: "Usefulness (1-5)", Type: "select", Options: "scores"},
		{Name: "survey_instructor_score", Label: "Instructor (1-5)", Type: "select", Options: "scores"},
		{Name: "survey_recommendation_score", Label: "Would recommend (1-5)", Type: "select", Options: "scores"},
		{Name: "survey_overall_score", Label: "Overall (1-10)", Type: "select", Options: "nps"},
		{Name: "survey_nps_bucket", Label: "NPS group", Type: "text"},
		{Name: "survey_comments", Label: "Comments", Type: "textarea"},
	},
	"donations": {
		{Name: "user_id", Label: "Donor", Type: "select", Options: "users"},
		{Name: "donation_date", Label: "Date", Type: "date"},
		{Name: "donation_amount", Label: "Amount", Type: "number"},
	},
	"milestones": {
		{Name: "user_id", Label: "Participant", Type: "select", Options: "users"},
		{Name: "milestone_title", Label: "Title", Type: "text"},
		{Name: "milestone_date", Label: "Date", Type: "date"},
		{Name: "milestone_category", Label: "Category", Type: "text"},
	},
}

// participants is a legacy alias for users; the forms are identical.
func specFor(table string) ([]fieldSpec, bool) {
	if table == "participants" {
		table = "users"
	}
	spec, ok := formSpecs[table]
	return spec, ok
}

type formField struct {
	fieldSpec
	Value   string
	Choices []formutil.Option
}

// loadChoices fills the option list for one select field.
func (h *Handler) loadChoices(ctx context.Context, spec fieldSpec, current string) ([]formutil.Option, error) {
	mark := func(opts []formutil.Option) []formutil.Option {
		for i := range opts {
			if opts[i].Value == current {
				opts[i].Selected = true
			}
		}
		return opts
	}

	switch spec.Options {
	case "users":
		users, err := h.Users.List(ctx, userstore.ListFilters{
			SortColumn: "participant_last_name",
			SortOrder:  "asc",
		})
		if err != nil {
			return nil, err
		}
		opts := make([]formutil.Option, 0, len(users))
		for _, u := range users {
			opts = append(opts, formutil.Option{
				Value: strconv.FormatInt(u.ID, 10),
				Label: u.FullName(),
			})
		}
		return mark(opts), nil
	case "events":
		events, err := h.Events.ListOptions(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]formutil.Option, 0, len(events))
		for _, e := range events {
			label := e.Name
			if e.Date.Valid {
				label += " (" + e.Date.Time.Format("Jan 2, 2006") + ")"
			}
			opts = append(opts, formutil.Option{
				Value: strconv.FormatInt(e.ID, 10),
				Label: label,
			})
		}
		return mark(opts), nil
	case "event_types":
		types, err := h.Types.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]formutil.Option, 0, len(types))
		for _, t := range types {
			opts = append(opts, formutil.Option{
				Value: strconv.FormatInt(t.ID, 10),
				Label: t.Name,
			})
		}
		return mark(opts), nil
	case "registrations":
		regs, err := h.Registrations.ListOptions(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]formutil.Option, 0, len(regs))
		for _, reg := range regs {
			label := reg.FirstName + " " + reg.LastName
			if reg.EventName != "" {
				label += " / " + reg.EventName
			}
			opts = append(opts, formutil.Option{
				Value: strconv.FormatInt(reg.ID, 10),
				Label: label,
			})
		}
		return mark(opts), nil
	case "roles":
		return mark(formutil.Options([]string{"participant", "sponsor", "admin"}, nil)), nil
	case "statuses":
		return mark(formutil.Options([]string{
			models.StatusRegistered, models.StatusAttended, models.StatusCancelled,
		}, nil)), nil
	case "scores":
		return mark(formutil.Options([]string{"1", "2", "3", "4", "5"}, nil)), nil
	case "nps":
		return mark(formutil.Options([]string{
			"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
		}, nil)), nil
	}
	return nil, nil
}

// buildFields assembles the form fields with current values and choices.
func (h *Handler) buildFields(ctx context.Context, table string, values map[string]string) ([]formField, error) {
	spec, ok := specFor(table)
	if !ok {
		return nil, nil
	}
	fields := make([]formField, 0, len(spec))
	for _, fs := range spec {
		f := formField{fieldSpec: fs, Value: values[fs.Name]}
		if fs.Type == "select" {
			choices, err := h.loadChoices(ctx, fs, f.Value)
			if err != nil {
				return nil, err
			}
			f.Choices = choices
		}
		fields = append(fields, f)
	}
	return fields, nil
}
