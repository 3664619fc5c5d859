package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vbonduro/ecoexchange/internal/domain"
	"github.com/vbonduro/ecoexchange/internal/service"
)

const maxJSONBody = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write json failed", "error", err)
	}
}

func (s *Server) handleAPIListMaterials(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	listings, err := s.service.Browse(r.Context(), criteria)
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		s.logger.Error("browse failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, listings)
}

func (s *Server) handleAPICreateMaterial(w http.ResponseWriter, r *http.Request) {
	var in service.ListingInput
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	listing, err := s.service.CreateListing(r.Context(), in)
	if errors.Is(err, service.ErrInvalidListing) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to list material", http.StatusInternalServerError)
		s.logger.Error("create listing failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, listing)
}

func (s *Server) handleAPIRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var data domain.Fields
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&data); err != nil {
		http.Error(w, "transaction must be a json object", http.StatusBadRequest)
		return
	}

	tx, err := s.service.RecordTransaction(r.Context(), data)
	if err != nil {
		http.Error(w, "failed to record transaction", http.StatusInternalServerError)
		s.logger.Error("record transaction failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleAPIImpact(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Impact(r.Context())
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		s.logger.Error("impact failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	// Buffer so a failed export can still report a proper status.
	var buf bytes.Buffer
	if err := s.service.ExportListings(r.Context(), &buf); err != nil {
		http.Error(w, "failed to export materials", http.StatusInternalServerError)
		s.logger.Error("export failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="materials.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write export failed", "error", err)
	}
}
