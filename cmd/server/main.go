package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ventworks/quotecalc/internal/config"
	"github.com/ventworks/quotecalc/internal/db"
	"github.com/ventworks/quotecalc/internal/export"
	"github.com/ventworks/quotecalc/internal/format"
	"github.com/ventworks/quotecalc/internal/migrations"
	"github.com/ventworks/quotecalc/internal/prefs"
	"github.com/ventworks/quotecalc/internal/pricing"
	"github.com/ventworks/quotecalc/internal/quote"
	"github.com/ventworks/quotecalc/pkg/logging"
)

type server struct {
	auth  *authService
	prefs *prefs.Store

	// The tool is single-operator: one live quote session, serialized
	// because chi handles requests concurrently.
	mu      sync.Mutex
	session *quote.Session
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	Warnings       []string
	DarkMode       bool
}

type quoteViewData struct {
	baseViewData
	Params  pricing.JobParameters
	Options pricing.Options
	Result  pricing.ResultSet
	CanUndo bool
	CanRedo bool
}

type ratesViewData struct {
	baseViewData
	Rates pricing.PricingConfig
}

type loginViewData struct {
	baseViewData
}

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			os.Exit(1)
		}
	}

	srv := &server{
		auth:    newAuthService(cfg.AdminPassword, cfg.SessionSecret),
		prefs:   prefs.NewStore(database),
		session: quote.NewSession(pricing.DefaultConfig(), pricing.DefaultParameters(), pricing.DefaultOptions()),
	}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	r.Get("/", srv.handleQuotePage)
	r.Post("/quote/field", srv.handleQuoteField)
	r.Post("/quote/undo", srv.handleQuoteUndo)
	r.Post("/quote/redo", srv.handleQuoteRedo)
	r.Post("/quote/splits", srv.handleQuoteSplits)
	r.Get("/quote/results", srv.handleQuoteResults)
	r.Get("/quote/summary.txt", srv.handleQuoteSummaryText)
	r.Get("/quote/export.pdf", srv.handleQuoteExportPDF)
	r.Get("/quote/export.xlsx", srv.handleQuoteExportExcel)

	r.Post("/prefs", srv.handlePrefsSubmit)

	r.Get("/login", srv.handleLoginForm)
	r.Post("/login", srv.handleLoginSubmit)
	r.Post("/logout", srv.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(srv.adminOnly)
		r.Get("/admin/rates", srv.handleAdminRatesForm)
		r.Post("/admin/rates", srv.handleAdminRatesSubmit)
	})

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func (s *server) handleQuotePage(w http.ResponseWriter, r *http.Request) {
	preferences, err := s.prefs.Load(r.Context())
	if err != nil {
		slog.Warn("failed to load preferences, using defaults", "error", err)
	}

	s.mu.Lock()
	data := quoteViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
			Warnings:       r.URL.Query()["warning"],
			DarkMode:       preferences.DarkMode,
		},
		Params:  s.session.Params(),
		Options: s.session.Options(),
		Result:  s.session.Result(),
		CanUndo: s.session.CanUndo(),
		CanRedo: s.session.CanRedo(),
	}
	s.mu.Unlock()

	s.renderTemplate(w, "quote.html", data)
}

func (s *server) handleQuoteField(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	value := r.FormValue("value")

	s.mu.Lock()
	warnings, err := s.session.SetField(name, value)
	result := s.session.Result()
	s.mu.Unlock()

	if err != nil {
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, map[string]any{
			"warnings": warnings,
			"result":   result,
		})
		return
	}

	http.Redirect(w, r, "/"+warningsQuery(warnings), http.StatusSeeOther)
}

func (s *server) handleQuoteUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ok := s.session.Undo()
	s.mu.Unlock()

	if !ok {
		http.Redirect(w, r, "/?error="+url.QueryEscape("nothing to undo"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleQuoteRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ok := s.session.Redo()
	s.mu.Unlock()

	if !ok {
		http.Redirect(w, r, "/?error="+url.QueryEscape("nothing to redo"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleQuoteSplits(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	splits, err := parseCommissionSplits(r)
	if err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	warnings := s.session.SetCommissionSplits(splits)
	s.mu.Unlock()

	http.Redirect(w, r, "/"+warningsQuery(warnings), http.StatusSeeOther)
}

func (s *server) handleQuoteResults(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	result := s.session.Result()
	s.mu.Unlock()

	writeJSON(w, result)
}

func (s *server) handleQuoteSummaryText(w http.ResponseWriter, r *http.Request) {
	summary := s.buildSummary()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(summary.Text()))
}

func (s *server) handleQuoteExportPDF(w http.ResponseWriter, r *http.Request) {
	summary := s.buildSummary()

	data, err := export.GeneratePDF(summary)
	if err != nil {
		slog.Warn("pdf export failed", "error", err)
		http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quote.pdf"`)
	_, _ = w.Write(data)
}

func (s *server) handleQuoteExportExcel(w http.ResponseWriter, r *http.Request) {
	summary := s.buildSummary()

	data, err := export.GenerateExcel(summary)
	if err != nil {
		slog.Warn("xlsx export failed", "error", err)
		http.Error(w, "failed to generate XLSX", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quote.xlsx"`)
	_, _ = w.Write(data)
}

func (s *server) buildSummary() export.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return export.BuildSummary(s.session.Params(), s.session.Options(), s.session.Result())
}

func (s *server) handlePrefsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	preferences := prefs.Preferences{DarkMode: r.FormValue("darkMode") == "1"}
	if err := s.prefs.Save(r.Context(), preferences); err != nil {
		slog.Warn("failed to save preferences", "error", err)
		http.Redirect(w, r, "/?error="+url.QueryEscape("failed to save preferences"), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r, s.auth) {
		http.Redirect(w, r, "/admin/rates", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if !s.auth.validatePassword(r.FormValue("password")) {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderTemplate(w, "login.html", loginViewData{baseViewData: baseViewData{ErrorMessage: "Invalid password. Try again."}})
		return
	}

	s.auth.setSessionCookie(w)
	http.Redirect(w, r, "/admin/rates", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleAdminRatesForm(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rates := s.session.Config()
	s.mu.Unlock()

	s.renderTemplate(w, "admin_rates.html", ratesViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Rates: rates,
	})
}

func (s *server) handleAdminRatesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rates, validationErr := parseRatesForm(r)
	if validationErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "admin_rates.html", ratesViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error()},
			Rates:        rates,
		})
		return
	}

	s.mu.Lock()
	warnings := s.session.UpdateConfig(rates)
	s.mu.Unlock()

	s.renderTemplate(w, "admin_rates.html", ratesViewData{
		baseViewData: baseViewData{
			SuccessMessage: "Rates saved.",
			Warnings:       warnings,
		},
		Rates: rates,
	})
}

func parseRatesForm(r *http.Request) (pricing.PricingConfig, error) {
	var rates pricing.PricingConfig

	var err error
	if rates.RegularPayRate, err = parseNonNegativeFloat(r.FormValue("regular_pay_rate"), "regular_pay_rate"); err != nil {
		return rates, err
	}
	if rates.SupervisorPayRate, err = parseNonNegativeFloat(r.FormValue("supervisor_pay_rate"), "supervisor_pay_rate"); err != nil {
		return rates, err
	}
	if rates.TransportCostPerDay, err = parseNonNegativeFloat(r.FormValue("transport_cost_per_day"), "transport_cost_per_day"); err != nil {
		return rates, err
	}
	if rates.OutsideHoustonTransportCostPerDay, err = parseNonNegativeFloat(r.FormValue("outside_houston_transport_cost_per_day"), "outside_houston_transport_cost_per_day"); err != nil {
		return rates, err
	}
	if rates.LargeHoodPrice, err = parseNonNegativeFloat(r.FormValue("large_hood_price"), "large_hood_price"); err != nil {
		return rates, err
	}
	if rates.SmallHoodPrice, err = parseNonNegativeFloat(r.FormValue("small_hood_price"), "small_hood_price"); err != nil {
		return rates, err
	}
	if rates.WorkCompRate, err = parsePercent(r.FormValue("work_comp_rate"), "work_comp_rate"); err != nil {
		return rates, err
	}
	// GL is a per-mille rate, not a percentage; it only has to be non-negative.
	if rates.GLRate, err = parseNonNegativeFloat(r.FormValue("gl_rate"), "gl_rate"); err != nil {
		return rates, err
	}

	return rates, nil
}

func parseCommissionSplits(r *http.Request) ([]pricing.CommissionSplit, error) {
	names := r.Form["splitName"]
	percents := r.Form["splitPercent"]
	if len(names) != len(percents) {
		return nil, fmt.Errorf("mismatched split names and percentages")
	}

	splits := make([]pricing.CommissionSplit, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(percents[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("splitPercent for %q must be numeric", name)
		}
		splits = append(splits, pricing.CommissionSplit{Name: name, Percent: percent})
	}

	return splits, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}

func warningsQuery(warnings quote.Warnings) string {
	if len(warnings) == 0 {
		return ""
	}
	values := url.Values{}
	for _, warning := range warnings {
		values.Add("warning", warning)
	}
	return "?" + values.Encode()
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

var templateFuncs = template.FuncMap{
	"usd": format.USD,
	"pct": format.Percent,
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

func (s *server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.enabled() {
			http.Error(w, "rates admin is disabled: set ADMIN_PASSWORD", http.StatusForbidden)
			return
		}
		if !isAuthenticated(r, s.auth) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
