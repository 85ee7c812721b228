package login

import (
	"authd/internal/core/domain/user"
	"authd/internal/core/services"
	login "authd/internal/core/services/log_in"
	"authd/internal/http/handlers/response"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[login.Input, login.Result]
}

func New(
	service services.Service[login.Input, login.Result],
) *Handler {
	return &Handler{service: service}
}

// Input comes from a form body, the username field carries the email.
type Input struct {
	Username string
	Password string
}

type Result struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Username = r.PostFormValue("username")
	i.Password = r.PostFormValue("password")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromForm(r); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		login.Input{Email: user.Email(input.Username), Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, user.ErrInvalidCredentials) {
		// One generic message, an attacker must not learn whether the email is
		// registered.
		response.RenderError(rw, "invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(
		rw,
		Result{Message: "Login successful", UserID: int64(result.User.ID)},
		http.StatusOK,
	)
}
