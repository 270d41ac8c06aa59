package models

import (
	"time"
)

// Species labels as stored on animal documents and rendered in reports.
const (
	SpeciesCat = "Cat"
	SpeciesDog = "Dog"
)

// Animal is one tracked cat or dog with its full activity history.
// IDs are strings because they originate in external shelter management
// systems (ShelterLuv, ASM), not in this service.
type Animal struct {
	ID        string  `bson:"_id" json:"id"`
	ShelterID string  `bson:"shelter_id" json:"shelterId"`
	Name      string  `bson:"name" json:"name"`
	Species   string  `bson:"species,omitempty" json:"species"`
	Notes     []Note  `bson:"notes,omitempty" json:"notes"`
	Logs      []Log   `bson:"logs,omitempty" json:"logs"`
	Photos    []Photo `bson:"photos,omitempty" json:"photos"`
	Tags      []Tag   `bson:"tags,omitempty" json:"tags"`
}

// Note is a free-text annotation left by a volunteer.
// Timestamp is a pointer: documents synced from third-party systems
// sometimes lack it, and such notes are skipped rather than failing a report.
type Note struct {
	Note      string     `bson:"note" json:"note"`
	Timestamp *time.Time `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	Author    string     `bson:"author,omitempty" json:"author,omitempty"`
}

// Log is one checkout/return cycle. Duration is always derived from the
// two timestamps, never stored.
type Log struct {
	StartTime *time.Time `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Type      string     `bson:"type,omitempty" json:"type,omitempty"`
	Author    string     `bson:"author,omitempty" json:"author,omitempty"`
}

// Photo is an uploaded or synced image reference.
type Photo struct {
	URL       string     `bson:"url" json:"url"`
	Timestamp *time.Time `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// Tag is a per-animal behavior tag with an applied count.
type Tag struct {
	Title string `bson:"title" json:"title"`
	Count int    `bson:"count" json:"count"`
}
