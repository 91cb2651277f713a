// the handlers package implements the web console pages.
//
// Form values are read on every request and passed to the console actions; credentials are never stored on the server.
// The output log belongs to the browser session (see sessions.Store), so it survives page reloads until the session expires.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AidosNurbergen/Dos/internal/console"
	"github.com/AidosNurbergen/Dos/internal/greenapi"
	"github.com/AidosNurbergen/Dos/internal/logger"
	"github.com/AidosNurbergen/Dos/internal/sessions"
	"github.com/AidosNurbergen/Dos/internal/ui/highlight"
	"github.com/AidosNurbergen/Dos/internal/ui/templates"
	"github.com/AidosNurbergen/Dos/internal/version"
)

type HandlerService struct {
	ApiClient console.Executor
	Sessions  *sessions.Store
}

// action runs one console action with the values read from the form
type action func(ctx context.Context, c *console.Console, creds greenapi.Credentials, form templates.FormValues) error

// HandleConsole renders the console with the current session log
func (h *HandlerService) HandleConsole(w http.ResponseWriter, r *http.Request) {
	_, log := h.Sessions.ForRequest(w, r)
	h.render(w, r, templates.FormValues{}, log)
}

func (h *HandlerService) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, greenapi.EndpointGetSettings, func(ctx context.Context, c *console.Console, creds greenapi.Credentials, _ templates.FormValues) error {
		return c.GetSettings(ctx, creds)
	})
}

func (h *HandlerService) HandleGetStateInstance(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, greenapi.EndpointGetStateInstance, func(ctx context.Context, c *console.Console, creds greenapi.Credentials, _ templates.FormValues) error {
		return c.GetStateInstance(ctx, creds)
	})
}

func (h *HandlerService) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, greenapi.EndpointSendMessage, func(ctx context.Context, c *console.Console, creds greenapi.Credentials, form templates.FormValues) error {
		return c.SendMessage(ctx, creds, form.PhoneNumber, form.MessageText)
	})
}

func (h *HandlerService) HandleSendFileByURL(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, greenapi.EndpointSendFileByURL, func(ctx context.Context, c *console.Console, creds greenapi.Credentials, form templates.FormValues) error {
		return c.SendFileByURL(ctx, creds, form.FilePhoneNumber, form.FileURL)
	})
}

// handleAction reads the form, runs the action and renders the page.
// A failed GREEN-API call is not an error of this request: it is recorded in the log and the page is rendered as usual.
func (h *HandlerService) handleAction(w http.ResponseWriter, r *http.Request, endpoint string, run action) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	if err := r.ParseForm(); err != nil {
		reqLogger.Warn("could not parse form", slog.String("error", err.Error()))

		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
		}
		h.renderError(w, r, status, "The form could not be read. Please try again.")
		return
	}

	form := formValues(r)
	creds := greenapi.Credentials{
		IDInstance:       form.IDInstance,
		APITokenInstance: form.APITokenInstance,
	}

	_, log := h.Sessions.ForRequest(w, r)

	c := console.New(h.ApiClient, log, reqLogger)
	err := run(r.Context(), c, creds, form)

	logger.ContextWithLogAttrs(r.Context(),
		slog.String("endpoint", endpoint),
		slog.Bool("succeeded", err == nil),
		slog.Int("upstream_status", greenapi.StatusCode(err)),
	)

	h.render(w, r, form, log)
}

func formValues(r *http.Request) templates.FormValues {
	return templates.FormValues{
		IDInstance:       r.PostFormValue("idInstance"),
		APITokenInstance: r.PostFormValue("apiTokenInstance"),
		PhoneNumber:      r.PostFormValue("phoneNumber"),
		MessageText:      r.PostFormValue("messageText"),
		FilePhoneNumber:  r.PostFormValue("filePhoneNumber"),
		FileURL:          r.PostFormValue("fileUrl"),
	}
}

func (h *HandlerService) render(w http.ResponseWriter, r *http.Request, form templates.FormValues, log *console.Log) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	entries := log.Entries()
	display := make([]templates.LogEntry, 0, len(entries))
	for _, e := range entries {
		html, err := highlight.JSON(e.Text)
		if err != nil {
			reqLogger.Error("Failed to highlight log entry", slog.String("error", err.Error()))
			continue
		}
		display = append(display, templates.LogEntry{Label: e.Label, HTML: html})
	}

	page := templates.ConsolePage{
		Form:    form,
		Log:     log.String(),
		Entries: display,
		Version: version.Get().Version,
	}

	// credentials are echoed in the page
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	component := templates.Console(page)
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger.Error("Failed to render console page", slog.String("error", err.Error()))
	}
}

func (h *HandlerService) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	component := templates.ErrorPage(msg)
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render error page", slog.String("error", err.Error()))
	}
}

// HandleAppCSS serves the console stylesheet
func (h *HandlerService) HandleAppCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(templates.StyleSheet))
}

// HandleHighlightCSS serves the stylesheet for the highlighted log entries
func (h *HandlerService) HandleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := highlight.WriteCSS(w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to write highlight stylesheet", slog.String("error", err.Error()))
	}
}
