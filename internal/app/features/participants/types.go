package participants

import "github.com/ellarises/ellahub/internal/app/system/formutil"

// Table row for the participants list.
type userRow struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	City             string
	SchoolOrEmployer string
	FieldOfInterest  string
	TotalDonations   string // formatted, empty when none
}

// List page VM.
type listData struct {
	formutil.Base

	SearchColumn string
	SearchValue  string

	Cities    []formutil.Option
	Schools   []formutil.Option
	Interests []formutil.Option
	Donations []formutil.Option

	SortColumn string
	SortOrder  string

	Rows  []userRow
	Shown int
}
