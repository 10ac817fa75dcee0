package cases

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"agriassist/internal/platform/twilio"
)

// ReportRenderer produces the downloadable PDF for one case.
type ReportRenderer interface {
	CasePDF(c *Case) ([]byte, error)
}

type Handler struct {
	svc     *Service
	reports ReportRenderer
}

func NewHandler(svc *Service, reports ReportRenderer) *Handler {
	return &Handler{svc: svc, reports: reports}
}

// HandleWebhook is the provider-facing inbound endpoint. It always answers
// with a TwiML message payload; only a storage failure becomes a 500.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	in := Inbound{
		From:     r.PostFormValue("From"),
		Body:     r.PostFormValue("Body"),
		MediaURL: r.PostFormValue("MediaUrl0"),
	}

	reply, err := h.svc.Process(r.Context(), in)
	if err != nil {
		log.Printf("webhook processing failed: %v", err)
		http.Error(w, "Processing failed", http.StatusInternalServerError)
		return
	}

	doc, err := twilio.RenderMessagingResponse(reply.Text, reply.AudioURL)
	if err != nil {
		http.Error(w, "Failed to render response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.Write(doc)
}

// HandleStatusCallback logs delivery receipts from the provider.
func (h *Handler) HandleStatusCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}
	log.Printf("DELIVERY: %s -> %s", r.PostFormValue("MessageSid"), r.PostFormValue("MessageStatus"))
	w.Write([]byte("OK"))
}

// caseSummary is the list/detail view: the stored diagnosis JSON is parsed
// for the reviewer, and the raw image is only included on the detail view.
type caseSummary struct {
	ID        int64      `json:"id"`
	Phone     string     `json:"phone"`
	Timestamp time.Time  `json:"timestamp"`
	Escalated bool       `json:"escalated"`
	Diagnosis *Diagnosis `json:"diagnosis"`
	ImageB64  string     `json:"image_b64,omitempty"`
}

func summarize(c *Case, withImage bool) caseSummary {
	s := caseSummary{
		ID:        c.ID,
		Phone:     c.Phone,
		Timestamp: c.Timestamp,
		Escalated: c.Escalated,
	}
	if d, err := c.ParseDiagnosis(); err == nil {
		s.Diagnosis = d
	}
	if withImage {
		s.ImageB64 = c.ImageB64
	}
	return s
}

func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		Phone:         r.URL.Query().Get("phone"),
		EscalatedOnly: r.URL.Query().Get("escalated") == "true",
	}
	if v := r.URL.Query().Get("min_confidence"); v != "" {
		minConf, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid min_confidence", http.StatusBadRequest)
			return
		}
		f.MinConfidence = minConf
	}

	list, err := h.svc.ListCases(r.Context(), f)
	if err != nil {
		http.Error(w, "Failed to list cases", http.StatusInternalServerError)
		return
	}
	out := make([]caseSummary, 0, len(list))
	for i := range list {
		out = append(out, summarize(&list[i], false))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) caseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid case ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, ok := h.caseID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCase(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Case not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load case", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summarize(c, true))
}

func (h *Handler) EscalateCase(w http.ResponseWriter, r *http.Request) {
	id, ok := h.caseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.EscalateCase(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Case not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to escalate case", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"escalated": true})
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.caseID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCase(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Case not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load case", http.StatusInternalServerError)
		return
	}
	pdf, err := h.reports.CasePDF(c)
	if err != nil {
		log.Printf("report generation failed for case %d: %v", id, err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=agriassist_report_%d.pdf", id))
	w.Write(pdf)
}

// RegisterRoutes mounts the review API routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/cases", h.ListCases)
	r.Get("/cases/{id}", h.GetCase)
	r.Post("/cases/{id}/escalate", h.EscalateCase)
	r.Get("/cases/{id}/report", h.DownloadReport)
}
