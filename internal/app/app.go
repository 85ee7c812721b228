package app

import (
	"authd/internal/app/deps"
	"authd/internal/app/services"
	login "authd/internal/http/handlers/auth/log_in"
	resetpassword "authd/internal/http/handlers/auth/reset_password"
	resetpasswordform "authd/internal/http/handlers/auth/reset_password_form"
	sendpasswordresettoken "authd/internal/http/handlers/auth/send_password_reset_token"
	signup "authd/internal/http/handlers/auth/sign_up"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	router.Method(http.MethodPost, "/login", login.New(s.LogIn))
	router.Method(
		http.MethodPost,
		"/request-password-reset",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	router.Method(http.MethodGet, "/reset-password", resetpasswordform.New(deps.Logger, deps.PasswordResetter))
	router.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           router,
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// The write timeout must leave room for a full SMTP round trip on the
		// reset-request flow.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
