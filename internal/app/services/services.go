package services

import (
	"authd/internal/app/deps"
	"authd/internal/core/services"
	login "authd/internal/core/services/log_in"
	resetpassword "authd/internal/core/services/reset_password"
	sendpasswordresettoken "authd/internal/core/services/send_password_reset_token"
	signup "authd/internal/core/services/sign_up"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
		deps.PasswordResetTokenSender,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
		deps.PasswordHasher,
	)

	return s
}
