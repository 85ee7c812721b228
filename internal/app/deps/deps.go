package deps

import (
	"authd/internal/config"
	dl "authd/internal/core/domain/logging"
	"authd/internal/core/domain/user"
	"authd/internal/db"
	dbuser "authd/internal/db/user"
	"authd/internal/implementations/email"
	"authd/internal/implementations/logging"
	passwordhasher "authd/internal/implementations/password_hasher"
	passwordresetter "authd/internal/implementations/password_resetter"
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	UserRepository           user.UserRepository
	PasswordHasher           user.PasswordHasher
	PasswordResetter         user.PasswordResetter
	PasswordResetTokenSender user.PasswordResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetter = passwordresetter.NewHMAC(
		deps.Config.Secret,
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)
	deps.PasswordResetTokenSender = email.NewSMTPSender(
		deps.Config.SMTPHost,
		deps.Config.SMTPPort,
		deps.Config.SMTPUsername,
		deps.Config.SMTPPassword,
		deps.Config.EmailSender,
		deps.Config.PasswordResetBaseURL,
		deps.Config.EmailSendTimeout,
	)

	return deps, func() {
		closeFuncs := []func(){closeLogger, closePgxPool}

		wg := sync.WaitGroup{}
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	err := db.Migrate(deps.Config.PostgresqlURL, deps.Config.MigrationsPath)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}

	pool, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}
