package models

// Shelter is a tenant organization. Animal documents reference it by id;
// its settings carry the report schedules the invoker sweeps.
type Shelter struct {
	ID       string          `bson:"_id" json:"id"`
	Name     string          `bson:"name,omitempty" json:"name,omitempty"`
	Settings ShelterSettings `bson:"shelter_settings,omitempty" json:"shelterSettings,omitempty"`
}

// ShelterSettings holds the subset of per-shelter configuration this
// service reads.
type ShelterSettings struct {
	ScheduledReports []ScheduledReport `bson:"scheduled_reports,omitempty" json:"scheduledReports,omitempty"`
}

// ScheduledReport is one standing report subscription. DayOfWeek is a
// weekday name ("Monday"); DayOfMonth is 1-31. Each is consulted only for
// its matching frequency.
type ScheduledReport struct {
	ID         string `bson:"id,omitempty" json:"id,omitempty"`
	Email      string `bson:"email" json:"email"`
	Frequency  string `bson:"frequency" json:"frequency"`
	DayOfWeek  string `bson:"day_of_week,omitempty" json:"dayOfWeek,omitempty"`
	DayOfMonth int    `bson:"day_of_month,omitempty" json:"dayOfMonth,omitempty"`
}
