package resetpassword

import (
	e "authd/internal/core/domain/errors"
	"authd/internal/core/domain/user"
	"authd/internal/core/services"
	resetpassword "authd/internal/core/services/reset_password"
	"authd/internal/http/handlers/response"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// Input comes from the reset form body.
type Input struct {
	Token       string
	NewPassword string
}

type Result struct {
	Message string `json:"message"`
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Token = r.PostFormValue("token")
	i.NewPassword = r.PostFormValue("new_password")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(6, 256)),
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

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.NewPassword),
		},
	)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderError(rw, "invalid or expired token", http.StatusBadRequest)
		return
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Message: "Password has been reset successfully"}, http.StatusOK)
}
