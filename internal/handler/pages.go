package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/learning-waitlist/internal/model"
)

// PageHandler serves the server-rendered pages: landing, sign-up form, and
// the two analytics dashboards. Templates are parsed once at startup; each
// page template fills the "content" block defined in base.html.
type PageHandler struct {
	landing   *template.Template
	signup    *template.Template
	analytics *template.Template
	dashboard *template.Template
	stats     SnapshotProvider
	logger    *slog.Logger
}

// NewPageHandler parses the page templates from templateDir.
func NewPageHandler(templateDir string, stats SnapshotProvider, logger *slog.Logger) (*PageHandler, error) {
	parse := func(page string) (*template.Template, error) {
		return template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
	}

	h := &PageHandler{stats: stats, logger: logger}
	var err error
	if h.landing, err = parse("index.html"); err != nil {
		return nil, err
	}
	if h.signup, err = parse("signup.html"); err != nil {
		return nil, err
	}
	if h.analytics, err = parse("analytics.html"); err != nil {
		return nil, err
	}
	if h.dashboard, err = parse("dashboard.html"); err != nil {
		return nil, err
	}
	return h, nil
}

// HandleLanding serves the landing page. GET /
func (h *PageHandler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.landing, nil)
}

// HandleSignupPage serves the sign-up form. GET /sign-up
//
// The form renders the challenge catalog from code — the same slice the
// intake validates against, so form and validator can't drift apart.
func (h *PageHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.signup, map[string]interface{}{
		"Catalog":       model.Catalog,
		"SentinelLabel": model.OtherSentinelLabel,
	})
}

// pageStats is the view data shared by the analytics and dashboard pages.
// Degraded=true renders the empty "stats unavailable" state — an unreachable
// store must never 500 a dashboard.
type pageStats struct {
	Degraded bool
	Snapshot *model.ChallengeSnapshot
	Chart    []model.ChartEntry
	Counts   []model.ChallengeCount
}

// HandleAnalyticsPage serves the public analytics page. GET /analytics
func (h *PageHandler) HandleAnalyticsPage(w http.ResponseWriter, r *http.Request) {
	h.renderStatsPage(w, r, h.analytics)
}

// HandleDashboardPage serves the admin dashboard. GET /admin/dashboard
func (h *PageHandler) HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	h.renderStatsPage(w, r, h.dashboard)
}

func (h *PageHandler) renderStatsPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template) {
	data := pageStats{}

	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		h.logger.Warn("rendering stats page in degraded mode", slog.String("error", err.Error()))
		data.Degraded = true
	} else {
		data.Snapshot = snapshot
		data.Chart = snapshot.ChartData()
		data.Counts = snapshot.VisibleCounts()
	}

	h.render(w, tmpl, data)
}

func (h *PageHandler) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
