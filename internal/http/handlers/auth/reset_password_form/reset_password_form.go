package resetpasswordform

import (
	e "authd/internal/core/domain/errors"
	"authd/internal/core/domain/logging"
	"authd/internal/core/domain/user"
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Handler renders the password reset form. The token from the query string is
// checked up front so the user learns about an expired link before typing a
// new password, and is carried forward as a hidden form field.
type Handler struct {
	log              logging.Logger
	passwordResetter user.PasswordResetter
}

func New(log logging.Logger, passwordResetter user.PasswordResetter) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	return &Handler{log: log, passwordResetter: passwordResetter}
}

type formParams struct {
	Token string
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if _, ok := h.passwordResetter.ValidateToken(user.PasswordResetToken(token)); !ok {
		h.renderPage(rw, r, "reset_error", nil, http.StatusBadRequest)
		return
	}
	h.renderPage(rw, r, "reset_form", formParams{Token: token}, http.StatusOK)
}

func (h *Handler) renderPage(rw http.ResponseWriter, r *http.Request, name string, params interface{}, status int) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, params); err != nil {
		h.log.Error(r.Context(), "Could not render page.", logging.Entry("page", name), logging.Entry("err", err))
		http.Error(rw, "internal error", http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write(buf.Bytes())
}
