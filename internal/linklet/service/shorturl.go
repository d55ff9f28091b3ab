package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/fernwell/linklet/pkg/idx"
	"github.com/fernwell/linklet/pkg/slogx"
)

var (
	ErrShortURLForbidden  = errors.New("caller cannot create short urls")
	ErrInvalidOriginalURL = errors.New("original url must be a well-formed absolute url")
	ErrShortURLNotFound   = errors.New("short url not found")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique short code")
)

// maxCodeAttempts bounds the generate-and-insert loop. Collisions at 62^6
// codes are rare enough that hitting the bound means something is wrong
// with the generator, not bad luck.
const maxCodeAttempts = 10

type ShortURLService struct {
	Store store.Store

	// GenerateCode overrides short-code generation; tests inject
	// deterministic sequences to exercise the collision retry.
	GenerateCode func() (string, error)
}

func (s *ShortURLService) generateCode() (string, error) {
	if s.GenerateCode != nil {
		return s.GenerateCode()
	}
	return cryptox.GenerateShortCode()
}

// Create shortens originalURL on behalf of caller. Only Admins and Members
// may create mappings; the row is scoped to the caller's company.
//
// Uniqueness of the code is enforced by the store's unique constraint:
// generation optimistically inserts and treats a constraint violation as
// the signal to draw a new code.
func (s *ShortURLService) Create(
	ctx context.Context,
	caller domain.User,
	originalURL string,
) (domain.ShortURL, error) {
	log := slogx.FromContext(ctx)

	// 1. Only company-scoped roles can create.
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleMember:
		// allowed
	case domain.RoleSuperAdmin, domain.RoleNone:
		log.Warn("short url creation denied",
			slog.String("user_id", caller.ID),
			slog.String("role", caller.Role.String()),
		)
		return domain.ShortURL{}, ErrShortURLForbidden
	default:
		return domain.ShortURL{}, ErrShortURLForbidden
	}
	if caller.CompanyID == nil {
		log.Error("caller with creation role has no company", slog.String("user_id", caller.ID))
		return domain.ShortURL{}, ErrShortURLForbidden
	}

	// 2. The target must be a well-formed absolute URL.
	if !validOriginalURL(originalURL) {
		return domain.ShortURL{}, ErrInvalidOriginalURL
	}

	// 3. Optimistically insert with fresh codes until one sticks.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			log.Error("failed to generate short code", slog.Any("error", err))
			return domain.ShortURL{}, err
		}

		shortURL := domain.ShortURL{
			ID:          idx.New().String(),
			CompanyID:   *caller.CompanyID,
			CreatedBy:   caller.ID,
			OriginalURL: originalURL,
			ShortCode:   code,
		}

		err = s.Store.ShortURLs().CreateShortURL(ctx, shortURL)
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Debug("short code collision, retrying",
				slog.String("code", code),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			log.Error("failed to create short url", slog.Any("error", err))
			return domain.ShortURL{}, err
		}

		log.Info("short url created",
			slog.String("short_url_id", shortURL.ID),
			slog.String("code", code),
			slog.String("company_id", shortURL.CompanyID),
		)
		return shortURL, nil
	}

	log.Error("exhausted short code attempts", slog.Int("attempts", maxCodeAttempts))
	return domain.ShortURL{}, ErrCodeSpaceExhausted
}

// Resolve returns the mapping for a short code. This backs the public
// redirect endpoint and needs no authentication.
func (s *ShortURLService) Resolve(ctx context.Context, code string) (domain.ShortURL, error) {
	shortURL, err := s.Store.ShortURLs().GetShortURLByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ShortURL{}, ErrShortURLNotFound
		}
		return domain.ShortURL{}, err
	}
	return shortURL, nil
}

// List returns the short URLs the caller may see: everything for a
// SuperAdmin, the company's rows for an Admin, the caller's own rows for a
// Member. An unrecognized role gets an empty list, never an error.
func (s *ShortURLService) List(ctx context.Context, caller domain.User) ([]domain.ShortURLView, error) {
	switch caller.Role {
	case domain.RoleSuperAdmin:
		return s.Store.ShortURLs().ListAll(ctx)

	case domain.RoleAdmin:
		if caller.CompanyID == nil {
			return []domain.ShortURLView{}, nil
		}
		return s.Store.ShortURLs().ListByCompany(ctx, *caller.CompanyID)

	case domain.RoleMember:
		return s.Store.ShortURLs().ListByCreator(ctx, caller.ID)

	default:
		return []domain.ShortURLView{}, nil
	}
}

func validOriginalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
