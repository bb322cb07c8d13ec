// Package auth - login identities, credentials and sessions
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrInvalidCredentials wrong email or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession session token is malformed, tampered with, or expired
	ErrInvalidSession = errors.New("invalid session")
	// ErrDuplicateIdentity an identity with that email already exists
	ErrDuplicateIdentity = errors.New("identity already exists")
	// ErrEmptyPassword password must not be empty
	ErrEmptyPassword = errors.New("password is empty")
	// ErrPasswordTooLong password is longer than bcrypt accepts
	ErrPasswordTooLong = fmt.Errorf("password is longer than %d bytes", MaxPasswordBytes)
)

// Session an issued sign in session
type Session struct {
	// Token signed session token
	Token string
	// IdentityID the identity which signed in
	IdentityID string
	// SessionID session ID
	SessionID string
	// ExpiresAt session expiration
	ExpiresAt time.Time
}

// sessionClaims session token claims
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Service auth service
type Service interface {
	/*
		Register record a new login identity

			@param ctx context.Context - execution context
			@param email string - login email
			@param password string - plain text password
			@param activeDBClient db.Database - existing database transaction
			@returns the identity
	*/
	Register(
		ctx context.Context, email string, password string, activeDBClient db.Database,
	) (models.Identity, error)

	/*
		SetPassword replace the credential of an identity

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@param password string - new plain text password
			@param activeDBClient db.Database - existing database transaction
	*/
	SetPassword(
		ctx context.Context, identityID string, password string, activeDBClient db.Database,
	) error

	/*
		SetEmail change the login email of an identity

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@param email string - new login email
			@param activeDBClient db.Database - existing database transaction
	*/
	SetEmail(
		ctx context.Context, identityID string, email string, activeDBClient db.Database,
	) error

	/*
		Remove delete a login identity

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@param activeDBClient db.Database - existing database transaction
	*/
	Remove(ctx context.Context, identityID string, activeDBClient db.Database) error

	/*
		Authenticate verify credentials and start a new session

			@param ctx context.Context - execution context
			@param email string - login email
			@param password string - plain text password
			@returns the session
	*/
	Authenticate(ctx context.Context, email string, password string) (Session, error)

	/*
		ResolveSession verify a session token. The identity it was issued to must still
		exist.

			@param ctx context.Context - execution context
			@param token string - the session token
			@returns the session
	*/
	ResolveSession(ctx context.Context, token string) (Session, error)
}

// ServiceParams auth service parameters
type ServiceParams struct {
	// Persistence persistence layer client
	Persistence db.Client
	// Hasher credential hasher
	Hasher PasswordHasher
	// SessionSecret HS256 session token signing secret
	SessionSecret []byte
	// SessionTTL session duration
	SessionTTL time.Duration
}

// serviceImpl implements Service
type serviceImpl struct {
	goutils.Component
	ServiceParams
}

/*
NewService define new auth service

	@param params ServiceParams - service parameters
	@returns new service
*/
func NewService(params ServiceParams) (Service, error) {
	if params.Persistence == nil {
		return nil, fmt.Errorf("auth service requires a persistence client")
	}
	if len(params.SessionSecret) == 0 {
		return nil, fmt.Errorf("auth service requires a session secret")
	}
	if params.Hasher == nil {
		params.Hasher = BcryptHasher{Cost: DefaultBcryptCost}
	}
	if params.SessionTTL <= 0 {
		params.SessionTTL = 24 * time.Hour
	}

	logTags := log.Fields{"package": "routedesk", "module": "auth", "component": "auth-service"}

	return &serviceImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		ServiceParams: params,
	}, nil
}

func (s *serviceImpl) Register(
	ctx context.Context, email string, password string, activeDBClient db.Database,
) (models.Identity, error) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to prepare credential for '%s' [%w]", email, err)
	}

	var identity models.Identity
	if dbErr := db.ActiveSessionWrapper(
		ctx, activeDBClient, s.Persistence, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			identity, err = dbClient.DefineNewIdentity(dbCtx, email, hash)
			return err
		},
	); dbErr != nil {
		if errors.Is(dbErr, db.ErrDuplicate) {
			return models.Identity{}, fmt.Errorf("failed to register '%s' [%w]", email, ErrDuplicateIdentity)
		}
		return models.Identity{}, fmt.Errorf("failed to register '%s' [%w]", email, dbErr)
	}

	log.WithFields(s.LogTags).WithField("identity-id", identity.ID).Info("Registered new identity")

	return identity, nil
}

func (s *serviceImpl) SetPassword(
	ctx context.Context, identityID string, password string, activeDBClient db.Database,
) error {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to prepare credential for '%s' [%w]", identityID, err)
	}

	return db.ActiveSessionWrapper(
		ctx, activeDBClient, s.Persistence, func(dbCtx context.Context, dbClient db.Database) error {
			return dbClient.UpdateIdentityPassword(dbCtx, identityID, hash)
		},
	)
}

func (s *serviceImpl) SetEmail(
	ctx context.Context, identityID string, email string, activeDBClient db.Database,
) error {
	err := db.ActiveSessionWrapper(
		ctx, activeDBClient, s.Persistence, func(dbCtx context.Context, dbClient db.Database) error {
			current, err := dbClient.GetIdentity(dbCtx, identityID)
			if err != nil {
				return err
			}
			if current.Email == email {
				return nil
			}
			return dbClient.UpdateIdentityEmail(dbCtx, identityID, email)
		},
	)
	if errors.Is(err, db.ErrDuplicate) {
		return fmt.Errorf("failed to change email of '%s' [%w]", identityID, ErrDuplicateIdentity)
	}
	return err
}

func (s *serviceImpl) Remove(
	ctx context.Context, identityID string, activeDBClient db.Database,
) error {
	return db.ActiveSessionWrapper(
		ctx, activeDBClient, s.Persistence, func(dbCtx context.Context, dbClient db.Database) error {
			return dbClient.DeleteIdentity(dbCtx, identityID)
		},
	)
}

func (s *serviceImpl) Authenticate(
	ctx context.Context, email string, password string,
) (Session, error) {
	var session Session
	if dbErr := s.Persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			identity, err := dbClient.GetIdentityByEmail(dbCtx, email)
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					return ErrInvalidCredentials
				}
				return err
			}

			match, err := s.Hasher.Compare(identity.PasswordHash, password)
			if err != nil {
				return err
			}
			if !match {
				return ErrInvalidCredentials
			}

			session, err = s.issueSession(identity.ID)
			if err != nil {
				return err
			}

			return dbClient.RecordSessionStart(dbCtx, session.IdentityID, session.SessionID)
		},
	); dbErr != nil {
		if !errors.Is(dbErr, ErrInvalidCredentials) {
			log.WithError(dbErr).WithFields(s.LogTags).Error("Sign in failed")
		}
		return Session{}, fmt.Errorf("failed to authenticate '%s' [%w]", email, dbErr)
	}

	log.WithFields(s.LogTags).
		WithField("identity-id", session.IdentityID).
		WithField("session-id", session.SessionID).
		Info("Session started")

	return session, nil
}

// issueSession sign a new session token
func (s *serviceImpl) issueSession(identityID string) (Session, error) {
	now := time.Now().UTC()
	session := Session{
		IdentityID: identityID,
		SessionID:  ulid.Make().String(),
		ExpiresAt:  now.Add(s.SessionTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.IdentityID,
			ID:        session.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})

	signed, err := token.SignedString(s.SessionSecret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session token [%w]", err)
	}
	session.Token = signed

	return session, nil
}

func (s *serviceImpl) ResolveSession(ctx context.Context, token string) (Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.SessionSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidSession, err.Error())
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return Session{}, ErrInvalidSession
	}

	if dbErr := s.Persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			_, err := dbClient.GetIdentity(dbCtx, claims.Subject)
			return err
		},
	); dbErr != nil {
		if errors.Is(dbErr, db.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: identity '%s' no longer exists", ErrInvalidSession, claims.Subject)
		}
		return Session{}, fmt.Errorf("failed to verify session identity [%w]", dbErr)
	}

	return Session{
		Token:      token,
		IdentityID: claims.Subject,
		SessionID:  claims.ID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
