// Package handler contains the HTTP request handlers: parse the request,
// call the service, write the response. No business logic lives here.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/learning-waitlist/internal/model"
	"github.com/sakif/learning-waitlist/internal/service"
)

// SignupSubmitter is the slice of SignupService this handler needs.
// Depending on the interface (not the concrete service) keeps handler tests
// free of repositories and databases.
type SignupSubmitter interface {
	Submit(ctx context.Context, input service.SignupInput) (*service.SignupResult, error)
}

// SignupHandler accepts waitlist form submissions.
type SignupHandler struct {
	service SignupSubmitter
	logger  *slog.Logger
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(service SignupSubmitter, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{service: service, logger: logger}
}

// signupStats is the post-signup chart payload embedded in a success
// response: enough for the thank-you page to render the community chart.
type signupStats struct {
	TotalUsers int                `json:"totalUsers"`
	ChartData  []model.ChartEntry `json:"chartData"`
}

type signupResponse struct {
	Success             bool         `json:"success"`
	Message             string       `json:"message"`
	ChallengesPersisted bool         `json:"challengesPersisted"`
	Stats               *signupStats `json:"stats,omitempty"`
}

// HandleSubmit processes one sign-up form post.
//
// HTTP: POST /api/signups
//
// The body is a form (urlencoded or multipart — browsers send either for
// this form), with "challenges" repeated once per checked box. Success is
// 201 with a message and, best-effort, fresh stats; failures map through
// writeError (400 validation, 409 duplicate, 500 store, 503 unavailable).
func (h *SignupHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Warn("unparseable signup form", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_form",
			Message: "Could not read the submitted form",
		})
		return
	}

	input := service.SignupInput{
		Name:           r.PostFormValue("name"),
		Email:          r.PostFormValue("email"),
		CountryCode:    r.PostFormValue("countryCode"),
		Phone:          r.PostFormValue("phone"),
		Subject:        r.PostFormValue("subject"),
		StayInLoop:     r.PostFormValue("stayInLoop"),
		Challenges:     r.PostForm["challenges"],
		OtherChallenge: r.PostFormValue("otherChallenge"),
	}

	result, err := h.service.Submit(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := signupResponse{
		Success:             true,
		Message:             result.Message,
		ChallengesPersisted: result.ChallengesPersisted,
	}
	if result.Snapshot != nil {
		resp.Stats = &signupStats{
			TotalUsers: result.Snapshot.TotalUsers,
			ChartData:  result.Snapshot.ChartData(),
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(1 << 20)
	}
	return r.ParseForm()
}
