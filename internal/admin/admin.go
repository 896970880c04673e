package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/resendrelay/pkg/health"
	"github.com/dmitrymomot/resendrelay/pkg/logger"
	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
	"github.com/dmitrymomot/resendrelay/pkg/testmail"
)

// Notice types mirror the admin notices shown after a test send.
const (
	NoticeUpdated = "updated"
	NoticeError   = "error"
)

// Sender is the part of the host Mailer the admin surface uses.
type Sender interface {
	Mail(ctx context.Context, p mailer.Params) error
}

// Notice is the one-line outcome of an admin action.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handler serves the admin routes.
type Handler struct {
	store  settings.Store
	sender Sender
	logger *slog.Logger
	checks health.Checks
	email  *validator.Validate
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithChecks adds readiness checks next to the settings check.
func WithChecks(checks health.Checks) Option {
	return func(h *Handler) {
		for name, fn := range checks {
			h.checks[name] = fn
		}
	}
}

// New creates the admin handler.
func New(store settings.Store, sender Sender, opts ...Option) *Handler {
	h := &Handler{
		store:  store,
		sender: sender,
		logger: logger.NewNope(),
		checks: health.Checks{"settings": SettingsCheck(store)},
		email:  validator.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router returns the chi router with every admin route mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, AccessLog(h.logger), middleware.Recoverer)

	r.Get("/livez", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(h.checks, health.WithLogger(h.logger)))

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.getSettings)
		r.Put("/", h.putSettings)
		r.Get("/fields", h.getFields)
	})
	r.Post("/test-email", h.testEmail)

	return r
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load settings", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, Notice{Type: NoticeError, Message: "The settings could not be loaded."})
		return
	}
	writeJSON(w, http.StatusOK, settings.FromMap(rec).Masked())
}

func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, Notice{Type: NoticeError, Message: "Malformed request body."})
		return
	}
	in.APIKey = strings.TrimSpace(in.APIKey)
	in.FromEmail = strings.TrimSpace(in.FromEmail)
	in.FromName = strings.TrimSpace(in.FromName)

	// The form echoes back the masked key when it was left untouched.
	current := settings.Get(r.Context(), h.store)
	if in.APIKey != "" && in.APIKey == current.Masked().APIKey {
		in.APIKey = current.APIKey
	}

	if err := settings.Validate(in); err != nil {
		var fieldErrs settings.ValidationErrors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, Notice{Type: NoticeError, Message: err.Error()})
		return
	}

	if err := h.store.Save(r.Context(), in); err != nil {
		if errors.Is(err, settings.ErrReadOnly) {
			writeJSON(w, http.StatusConflict, Notice{Type: NoticeError, Message: "Settings are managed through the environment."})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to save settings", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, Notice{Type: NoticeError, Message: "The settings could not be saved."})
		return
	}

	writeJSON(w, http.StatusOK, in.Masked())
}

func (h *Handler) getFields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Fields())
}

func (h *Handler) testEmail(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, Notice{Type: NoticeError, Message: "Malformed request body."})
		return
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, Notice{Type: NoticeError, Message: "No email address provided."})
		return
	}
	if err := h.email.Var(email, "email"); err != nil {
		writeJSON(w, http.StatusBadRequest, Notice{Type: NoticeError, Message: "Invalid email address."})
		return
	}

	p, err := testmail.AdminParams(email)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render test email", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, Notice{Type: NoticeError, Message: "The email template does not exist."})
		return
	}

	if err := h.sender.Mail(r.Context(), p); err != nil {
		h.logger.WarnContext(r.Context(), "test email not sent", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, Notice{Type: NoticeError, Message: "The email could not be sent."})
		return
	}

	writeJSON(w, http.StatusOK, Notice{Type: NoticeUpdated, Message: "The email was sent."})
}

// SettingsCheck reports the relay unready until both required settings are set.
func SettingsCheck(store settings.Store) health.CheckFunc {
	return func(ctx context.Context) error {
		if store == nil {
			return ErrNotConfigured
		}
		rec, err := store.Load(ctx)
		if err != nil {
			return err
		}
		s := settings.FromMap(rec)
		if s.APIKey == "" || s.FromEmail == "" {
			return ErrNotConfigured
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
