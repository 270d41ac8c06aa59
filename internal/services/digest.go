package services

import (
	"strings"

	"github.com/shelterpartner/report-service/internal/models"
)

// syntheticNoteText is written by the mobile apps when an animal is first
// created. It carries no activity information and is hidden from the
// digest, but kept in the CSV so the attachment remains a full audit trail.
const syntheticNoteText = "Added animal to the app"

// isNoisePhoto reports whether a photo URL points at an externally synced
// image rather than a shelter upload. Cat profiles synced from ShelterLuv
// also carry shelterluv-hosted photos.
func isNoisePhoto(species, url string) bool {
	if strings.Contains(url, "amazonaws") {
		return true
	}
	return species == models.SpeciesCat && strings.Contains(url, "shelterluv")
}

// FilterForDigest reduces records to what the HTML digest shows: synthetic
// marker notes and externally sourced photos are removed, and an animal is
// kept only if at least one note or photo survives. Logs never appear in
// the digest, so they do not keep an animal in. The filter is pure and
// applying it twice gives the same result as applying it once.
func FilterForDigest(records []models.ActivityRecord) []models.ActivityRecord {
	var out []models.ActivityRecord

	for _, rec := range records {
		var notes []models.Note
		for _, note := range rec.Notes {
			if note.Note != syntheticNoteText {
				notes = append(notes, note)
			}
		}

		var photos []models.Photo
		for _, photo := range rec.Photos {
			if !isNoisePhoto(rec.Species, photo.URL) {
				photos = append(photos, photo)
			}
		}

		if len(notes) == 0 && len(photos) == 0 {
			continue
		}

		filtered := rec
		filtered.Notes = notes
		filtered.Photos = photos
		out = append(out, filtered)
	}

	return out
}

var digestSections = []struct {
	species string
	heading string
}{
	{models.SpeciesCat, "Cats"},
	{models.SpeciesDog, "Dogs"},
}

// BuildDigest renders the HTML email body: a fixed preamble, then one
// section per species that has at least one qualifying animal. Note text
// is interpolated as-is to match the report output shelters already
// receive; notes are written by authenticated volunteers, not the public.
func BuildDigest(records []models.ActivityRecord) string {
	qualifying := FilterForDigest(records)

	var b strings.Builder
	b.WriteString("<h1>Animal Activity Report</h1>")
	b.WriteString("<p>See attachment for a more detailed report</p>")

	for _, section := range digestSections {
		var wrote bool
		for _, rec := range qualifying {
			if rec.Species != section.species {
				continue
			}
			if !wrote {
				b.WriteString("<h2>" + section.heading + "</h2>")
				wrote = true
			}

			b.WriteString("<h3>" + rec.Name + "</h3>")
			if len(rec.Tags) > 0 {
				b.WriteString("<p><strong>Tags:</strong> " + FormatTags(rec.Tags) + "</p>")
			}

			b.WriteString("<ul>")
			for _, note := range rec.Notes {
				b.WriteString("<li>" + note.Note + "</li>")
			}
			for _, photo := range rec.Photos {
				b.WriteString(`<li><a href="` + photo.URL + `">` + photo.URL + `</a></li>`)
			}
			b.WriteString("</ul>")
		}
	}

	return b.String()
}
