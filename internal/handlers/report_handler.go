package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shelterpartner/report-service/internal/models"
	"github.com/shelterpartner/report-service/internal/services"
	"github.com/sirupsen/logrus"
)

// ReportHandler handles HTTP requests that trigger activity reports.
type ReportHandler struct {
	Service *services.ReportService
}

// NewReportHandler creates a new instance of ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// pubSubEnvelope is the push-delivery wrapper the scheduling layer posts:
// the real payload is base64-encoded JSON under message.data.
type pubSubEnvelope struct {
	Message struct {
		Data string `json:"data"`
	} `json:"message"`
}

// ScheduledReportHandler handles one scheduled-report trigger. Malformed
// input is a client error; the scheduling layer owns redelivery, so no
// retry happens here.
func (h *ReportHandler) ScheduledReportHandler(w http.ResponseWriter, r *http.Request) {
	var envelope pubSubEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil || envelope.Message.Data == "" {
		logrus.WithError(err).Warn("Trigger request missing message or data field")
		http.Error(w, "Invalid request: Missing `message` or `data` field.", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	decoded, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		logrus.WithError(err).Warn("Trigger data is not valid base64")
		http.Error(w, "Invalid data encoding.", http.StatusBadRequest)
		return
	}

	var req models.ReportRequest
	if err := json.Unmarshal(decoded, &req); err != nil {
		logrus.WithError(err).Warn("Trigger data is not valid JSON")
		http.Error(w, "Invalid JSON data.", http.StatusBadRequest)
		return
	}

	if req.ShelterID == "" || req.Email == "" || req.Frequency == "" {
		logrus.WithFields(logrus.Fields{
			"shelter_id": req.ShelterID,
			"frequency":  req.Frequency,
		}).Warn("Trigger payload missing required fields")
		http.Error(w, "shelterId, email, or frequency missing", http.StatusBadRequest)
		return
	}

	outcome, err := h.Service.Run(r.Context(), req)
	if err != nil {
		h.writeRunError(w, req, err)
		return
	}

	if !outcome.Sent {
		fmt.Fprint(w, "No data to report for the specified period.")
		return
	}
	fmt.Fprint(w, "Report generated and sent successfully")
}

// RunReportHandler runs a report from a direct JSON body, bypassing the
// pub/sub envelope. Admin-only.
func (h *ReportHandler) RunReportHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload for manual report run")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.ShelterID == "" || req.Email == "" || req.Frequency == "" {
		http.Error(w, "shelterId, email, or frequency missing", http.StatusBadRequest)
		return
	}

	outcome, err := h.Service.Run(r.Context(), req)
	if err != nil {
		h.writeRunError(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcome)
}

// PreviewReportHandler returns the CSV for a shelter and frequency without
// sending mail. Admin-only.
func (h *ReportHandler) PreviewReportHandler(w http.ResponseWriter, r *http.Request) {
	shelterID := r.URL.Query().Get("shelterId")
	frequency := r.URL.Query().Get("frequency")
	if shelterID == "" || frequency == "" {
		http.Error(w, "shelterId or frequency missing", http.StatusBadRequest)
		return
	}

	data, err := h.Service.Preview(r.Context(), shelterID, frequency)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFrequency) {
			http.Error(w, "Invalid frequency", http.StatusBadRequest)
			return
		}
		logrus.WithError(err).Error("Failed to build report preview")
		http.Error(w, "Error generating report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Write(data)
}

func (h *ReportHandler) writeRunError(w http.ResponseWriter, req models.ReportRequest, err error) {
	entry := logrus.WithError(err).WithField("shelter_id", req.ShelterID)

	switch {
	case errors.Is(err, services.ErrInvalidFrequency):
		entry.Warn("Report run rejected: invalid frequency")
		http.Error(w, "Invalid frequency", http.StatusBadRequest)
	case errors.Is(err, services.ErrFetchFailed):
		entry.Error("Report run failed: animal data fetch")
		http.Error(w, "Error fetching animal data.", http.StatusInternalServerError)
	case errors.Is(err, services.ErrCSVWrite):
		entry.Error("Report run failed: CSV generation")
		http.Error(w, "Error generating CSV file.", http.StatusInternalServerError)
	case errors.Is(err, services.ErrEmailSend):
		entry.Error("Report run failed: email delivery")
		http.Error(w, "Error sending email.", http.StatusInternalServerError)
	default:
		entry.Error("Report run failed")
		http.Error(w, "Error generating report", http.StatusInternalServerError)
	}
}
