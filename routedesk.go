// Package routedesk - JTP Logistics route and user dashboard
package routedesk

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/auth"
	"github.com/alwitt/routedesk/config"
	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/records"
	"github.com/alwitt/routedesk/web"
	"github.com/apex/log"
)

// ErrAlreadyBootstrapped the first administrator was already created
var ErrAlreadyBootstrapped = errors.New("dashboard already bootstrapped")

// Dashboard the assembled dashboard application
type Dashboard struct {
	goutils.Component
	cfg         config.Config
	Persistence db.Client
	Auth        auth.Service
	Routes      records.Client[models.Route]
	Users       records.Client[models.User]
	Board       *notify.Board
	Handler     http.Handler
}

/*
NewDashboard assemble the dashboard from its config

	@param ctx context.Context - execution context
	@param cfg config.Config - dashboard config
	@returns the dashboard
*/
func NewDashboard(ctx context.Context, cfg config.Config) (*Dashboard, error) {
	logTags := log.Fields{"package": "routedesk", "module": "core", "component": "dashboard"}

	dialector, err := db.GetDialector(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	sqlLogLevel, err := cfg.Database.GormLogLevel()
	if err != nil {
		return nil, err
	}

	persistence, err := db.NewConnection(dialector, sqlLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized persistence client [%w]", err)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Persistence:   persistence,
		Hasher:        auth.BcryptHasher{Cost: cfg.Auth.BcryptCost},
		SessionSecret: []byte(cfg.Auth.SessionSecret),
		SessionTTL:    cfg.Auth.SessionTTL,
	})
	if err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized auth service [%w]", err)
	}

	instance := &Dashboard{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		cfg:         cfg,
		Persistence: persistence,
		Auth:        authService,
		Routes:      records.NewRouteClient(persistence),
		Users:       records.NewUserClient(persistence, authService),
		Board:       notify.NewBoard(cfg.Notify.TTL),
	}

	instance.Handler, err = web.NewHandler(web.Params{
		Auth:         instance.Auth,
		Routes:       instance.Routes,
		Users:        instance.Users,
		Board:        instance.Board,
		SecureCookie: cfg.HTTP.SecureCookie,
	})
	if err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized dashboard handler [%w]", err)
	}

	log.WithFields(logTags).
		WithField("driver", cfg.Database.Driver).
		Debug("Dashboard assembled")

	return instance, nil
}

// Migrate create or update the dashboard tables
func (d *Dashboard) Migrate(ctx context.Context) error {
	if err := d.Persistence.RunSQLInTransaction(ctx, db.DefineTables); err != nil {
		return fmt.Errorf("failed to define tables [%w]", err)
	}
	return nil
}

/*
Bootstrap create the first administrator. Only allowed while no administrator was
ever created.

	@param ctx context.Context - execution context
	@param admin models.User - the administrator; the role is forced to admin
	@returns the administrator
*/
func (d *Dashboard) Bootstrap(ctx context.Context, admin models.User) (models.User, error) {
	admin.Role = models.UserRoleAdmin
	var created models.User
	err := d.Persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			params, err := dbClient.GetSystemParamEntry(ctx)
			if err != nil {
				return err
			}
			if params.State != models.SystemStatePreInit {
				return fmt.Errorf("%w: system is '%s'", ErrAlreadyBootstrapped, params.State)
			}
			if err := dbClient.MarkSystemInitializing(ctx); err != nil {
				return err
			}

			identity, err := d.Auth.Register(ctx, admin.Email, admin.Password, dbClient)
			if err != nil {
				return err
			}
			admin.ID = identity.ID
			if created, err = dbClient.DefineNewUser(ctx, admin); err != nil {
				return err
			}

			return dbClient.MarkSystemInitialized(ctx, created.ID)
		},
	)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to bootstrap administrator [%w]", err)
	}

	log.WithFields(d.LogTags).WithField("user-id", created.ID).Info("Administrator created")
	return created, nil
}

/*
Run serve the dashboard on the configured address until the context is cancelled

	@param ctx context.Context - execution context
*/
func (d *Dashboard) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", d.cfg.HTTP.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on '%s' [%w]", d.cfg.HTTP.Listen, err)
	}
	return d.Serve(ctx, listener)
}

/*
Serve serve the dashboard on a listener until the context is cancelled, then shut
down gracefully.

	@param ctx context.Context - execution context
	@param listener net.Listener - the listener to serve on
*/
func (d *Dashboard) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:      d.Handler,
		ReadTimeout:  d.cfg.HTTP.ReadTimeout,
		WriteTimeout: d.cfg.HTTP.WriteTimeout,
	}

	wg := sync.WaitGroup{}
	defer wg.Wait()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.sweepNotifications(sweepCtx)
	}()

	serveErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		serveErr <- server.Serve(listener)
	}()

	log.WithFields(d.LogTags).WithField("listen", listener.Addr().String()).Info("Dashboard started")

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server failed [%w]", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down dashboard server [%w]", err)
	}

	log.WithFields(d.LogTags).Info("Dashboard stopped")
	return nil
}

// sweepNotifications drop expired notifications until the context ends
func (d *Dashboard) sweepNotifications(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.Notify.TTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Board.Sweep()
		}
	}
}

// Close release the persistence connections
func (d *Dashboard) Close() error {
	return d.Persistence.Close()
}
