package user

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const defaultStoreTimeout = 5 * time.Second

// ServiceConfig tunes service behavior.
type ServiceConfig struct {
	// StoreTimeout bounds every repository call. Zero means the default.
	StoreTimeout time.Duration
	// LogStoreDetail enables logging of store error codes and messages.
	// Keep it off in production so internals never leak into log sinks.
	LogStoreDetail bool
}

// Service owns registration semantics: input validation, conflict mapping
// and listing-cache maintenance. It is the single authority over the users
// table; handlers hold no persistence logic of their own.
type Service struct {
	repo         Repository
	cache        *ListingCache
	logger       *slog.Logger
	storeTimeout time.Duration
	logDetail    bool
}

// NewService builds a user service. cache may be nil to run uncached.
func NewService(repo Repository, cache *ListingCache, logger *slog.Logger, cfg ServiceConfig) *Service {
	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &Service{
		repo:         repo,
		cache:        cache,
		logger:       logger,
		storeTimeout: timeout,
		logDetail:    cfg.LogStoreDetail,
	}
}

// Create validates the registration input, persists the record and
// invalidates the cached listing. The returned record carries the
// store-assigned id. Conflicts come back as *Error with Field set to the
// colliding field; only the first violation the store reports is surfaced.
func (s *Service) Create(ctx context.Context, input RegistrationInput) (User, error) {
	u, err := parseRegistration(input)
	if err != nil {
		return User{}, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	created, err := s.repo.Create(storeCtx, u)
	if err != nil {
		s.logStoreError("create user", err)
		var uerr *Error
		if errors.As(err, &uerr) && uerr.Kind == KindConflict {
			return User{}, uerr
		}
		return User{}, opFailure(err, MsgCreateFailed)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("user registered",
		slog.Int64("user_id", created.ID),
		slog.String("email", created.Email),
	)
	return created, nil
}

// List returns all records ordered alphabetically by name, serving from
// the listing cache when it holds a copy and repopulating it on a miss.
func (s *Service) List(ctx context.Context) ([]User, error) {
	if users, ok := s.cache.Get(ctx); ok {
		return users, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	users, err := s.repo.List(storeCtx)
	if err != nil {
		s.logStoreError("list users", err)
		return nil, opFailure(err, MsgListFailed)
	}

	s.cache.Set(ctx, users)
	return users, nil
}

// Delete removes the record with the given id and invalidates the cached
// listing. Deleting an absent id is reported as success; the store told us
// nothing was removed, which is logged, not surfaced, and leaves the
// cached listing untouched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	removed, err := s.repo.Delete(storeCtx, id)
	if err != nil {
		s.logStoreError("delete user", err)
		return opFailure(err, MsgDeleteFailed)
	}
	if !removed {
		// Nothing changed, so the cached listing is still accurate.
		s.logger.Debug("delete for absent user id", slog.Int64("user_id", id))
		return nil
	}

	s.cache.Invalidate(ctx)
	return nil
}

func parseRegistration(input RegistrationInput) (User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return User{}, validationError("name", "name is required")
	}

	ageText := strings.TrimSpace(input.Age)
	if ageText == "" {
		return User{}, validationError("age", "age is required")
	}
	age, err := strconv.Atoi(ageText)
	if err != nil || age < 0 {
		return User{}, validationError("age", "age must be a non-negative integer")
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return User{}, validationError("email", "email is required")
	}

	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return User{}, validationError("phone", "phone number is required")
	}

	dob, err := time.Parse(DateFormat, strings.TrimSpace(input.DOB))
	if err != nil {
		return User{}, validationError("dob", "date of birth must be a YYYY-MM-DD date")
	}

	return User{
		Name:        name,
		Age:         age,
		Email:       email,
		Phone:       phone,
		DateOfBirth: dob,
	}, nil
}

// opFailure re-tags a repository failure with the operation's user-safe
// message while keeping the kind and store code for callers and logs.
func opFailure(err error, message string) *Error {
	var uerr *Error
	if errors.As(err, &uerr) {
		return &Error{Kind: uerr.Kind, Message: message, Code: uerr.Code, Err: err}
	}
	return &Error{Kind: KindUnknown, Message: message, Err: err}
}

func (s *Service) logStoreError(op string, err error) {
	var uerr *Error
	kind := KindUnknown
	code := ""
	if errors.As(err, &uerr) {
		kind = uerr.Kind
		code = uerr.Code
	}

	if !s.logDetail {
		s.logger.Error(op+" failed", slog.String("kind", kind.String()))
		return
	}
	s.logger.Error(op+" failed",
		slog.String("kind", kind.String()),
		slog.String("code", code),
		slog.Any("error", err),
	)
}
