package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vbonduro/ecoexchange/internal/catalog"
	"github.com/vbonduro/ecoexchange/internal/domain"
	"github.com/vbonduro/ecoexchange/internal/service"
)

const featuredCount = 3

const maxTitleLen = 200

var benefits = []string{
	"♻️ Reduce waste sent to landfills",
	"💰 Monetize unused materials",
	"🌍 Contribute to circular economy",
	"📈 Connect with verified buyers",
}

type step struct {
	Title       string
	Description string
}

var howItWorks = []step{
	{"Upload", "Submit details about your materials"},
	{"Verify", "Our AI verifies material quality"},
	{"List", "Get matched with potential buyers"},
	{"Transact", "Complete secure transactions"},
	{"Impact", "Track your environmental contribution"},
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	featured, err := s.service.Featured(r.Context(), featuredCount)
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		s.logger.Error("load featured failed", "error", err)
		return
	}

	if err := s.renderPage(w, http.StatusOK,
		map[string]any{"Featured": featured, "Benefits": benefits, "ActiveNav": "home"},
		"base.html", "pages/home.html", "partials/material_card.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// parseCriteria reads category, min, max and sort from the query string.
// Missing values fall back to the browse defaults.
func parseCriteria(q url.Values) (catalog.Criteria, error) {
	c := catalog.DefaultCriteria()

	category, err := catalog.ParseCategory(q.Get("category"))
	if err != nil {
		return c, err
	}
	c.Category = category

	sort, err := catalog.ParseSort(q.Get("sort"))
	if err != nil {
		return c, err
	}
	c.Sort = sort

	if v := strings.TrimSpace(q.Get("min")); v != "" {
		if c.PriceMin, err = strconv.ParseFloat(v, 64); err != nil {
			return c, errors.New("invalid min price")
		}
	}
	if v := strings.TrimSpace(q.Get("max")); v != "" {
		if c.PriceMax, err = strconv.ParseFloat(v, 64); err != nil {
			return c, errors.New("invalid max price")
		}
	}
	return c, nil
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
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

	// HTMX partial update: return only the results fragment.
	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderFragment(w, "browse_results", listings,
			"partials/browse_results.html", "partials/material_card.html",
		); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}

	if err := s.renderPage(w, http.StatusOK,
		map[string]any{
			"Listings":    listings,
			"Criteria":    criteria,
			"Categories":  append([]domain.Category{domain.CategoryAll}, domain.Categories...),
			"SortOptions": catalog.SortOptions,
			"ActiveNav":   "browse",
		},
		"base.html", "pages/browse.html", "partials/browse_results.html", "partials/material_card.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) renderSell(w http.ResponseWriter, status int, data map[string]any) {
	data["Categories"] = domain.Categories
	data["ActiveNav"] = "sell"
	if err := s.renderPage(w, status, data,
		"base.html", "pages/sell.html", "partials/material_card.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleSellForm(w http.ResponseWriter, r *http.Request) {
	s.renderSell(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	in, err := listingFromForm(r)
	if err != nil {
		s.renderSell(w, http.StatusBadRequest, map[string]any{"Error": err.Error()})
		return
	}

	listing, err := s.service.CreateListing(r.Context(), in)
	if errors.Is(err, service.ErrInvalidListing) {
		s.renderSell(w, http.StatusBadRequest, map[string]any{"Error": err.Error()})
		return
	}
	if err != nil {
		http.Error(w, "failed to list material", http.StatusInternalServerError)
		s.logger.Error("create listing failed", "error", err)
		return
	}

	s.renderSell(w, http.StatusOK, map[string]any{"Created": listing})
}

func listingFromForm(r *http.Request) (service.ListingInput, error) {
	var in service.ListingInput

	in.Title = strings.TrimSpace(r.FormValue("title"))
	if in.Title == "" {
		return in, errors.New("material name required")
	}
	if len(in.Title) > maxTitleLen {
		return in, errors.New("material name too long")
	}
	in.Category = domain.Category(r.FormValue("category"))
	in.Description = strings.TrimSpace(r.FormValue("description"))

	var err error
	if in.PricePerUnit, err = strconv.ParseFloat(r.FormValue("price_per_unit"), 64); err != nil {
		return in, errors.New("invalid price")
	}
	if in.QuantityAvailable, err = strconv.ParseFloat(r.FormValue("quantity_available"), 64); err != nil {
		return in, errors.New("invalid quantity")
	}
	return in, nil
}

func (s *Server) handleHow(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w, http.StatusOK,
		map[string]any{"Steps": howItWorks, "ActiveNav": "how"},
		"base.html", "pages/how.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Impact(r.Context())
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		s.logger.Error("impact failed", "error", err)
		return
	}

	if err := s.renderPage(w, http.StatusOK,
		map[string]any{"Report": report, "ActiveNav": "impact"},
		"base.html", "pages/impact.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}
