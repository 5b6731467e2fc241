// Package models holds the entity structs persisted in Postgres.
//
// Column names follow the production schema: participant profile fields live on
// users, registrations link users to events, and survey results hang off a
// registration (at most one per registration, enforced by a unique constraint).
package models

import (
	"database/sql"
	"time"
)

// User is a participant, sponsor, or admin account.
type User struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string
	City             string
	SchoolOrEmployer string
	FieldOfInterest  string
	Role             string // participant | sponsor | admin
	TotalDonations   sql.NullFloat64
	CreatedAt        time.Time
}

// FullName joins the first and last name for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Event is a scheduled gathering participants can register for.
type Event struct {
	ID               int64
	TypeID           sql.NullInt64
	TypeName         string // joined from event_types, may be empty
	Name             string
	Date             sql.NullTime
	StartTime        string // "HH:MM:SS"
	EndTime          string
	Location         string
	Capacity         sql.NullInt64
	DeadlineDate     sql.NullTime
	DeadlineTime     string
}

// EventType is a lookup row for event categorization.
type EventType struct {
	ID   int64
	Name string
}

// Registration statuses. Cancellation flips the status; rows are not deleted.
const (
	StatusRegistered = "registered"
	StatusAttended   = "attended"
	StatusCancelled  = "cancelled"
)

// EventRegistration links a user to an event.
type EventRegistration struct {
	ID            int64
	UserID        int64
	EventID       int64
	Status        string
	AttendedFlag  bool
	CreatedDate   sql.NullTime
	CreatedTime   string
	CheckInDate   sql.NullTime
	CheckInTime   string

	// Joined display fields
	FirstName string
	LastName  string
	EventName string
	EventDate sql.NullTime
}

// SurveyResult is a participant's post-event survey, one per registration.
type SurveyResult struct {
	ID                  int64
	EventRegistrationID int64
	SatisfactionScore   sql.NullInt64
	UsefulnessScore     sql.NullInt64
	InstructorScore     sql.NullInt64
	RecommendationScore sql.NullInt64
	OverallScore        sql.NullInt64
	NPSBucket           string
	Comments            string
	SubmissionDate      sql.NullTime
	SubmissionTime      string

	// Joined display fields
	FirstName string
	LastName  string
	EventName string
	EventDate sql.NullTime
}

// Donation is a user's dated monetary contribution.
type Donation struct {
	ID     int64
	UserID int64
	Date   sql.NullTime
	Amount sql.NullFloat64

	FirstName string
	LastName  string
}

// Milestone is a user's dated achievement.
type Milestone struct {
	ID       int64
	UserID   int64
	Title    string
	Date     sql.NullTime
	Category string

	FirstName string
	LastName  string
}
