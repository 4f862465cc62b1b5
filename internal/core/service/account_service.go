package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

// AccountService lets a caller read and edit their own account; admins may
// act on any account.
type AccountService struct {
	creds  *CredentialStore
	repo   ports.AccountRepository
	region string
	logger zerolog.Logger
}

func NewAccountService(creds *CredentialStore, repo ports.AccountRepository, phoneRegion string, logger zerolog.Logger) *AccountService {
	return &AccountService{creds: creds, repo: repo, region: phoneRegion, logger: logger}
}

func (s *AccountService) Get(ctx context.Context, actor domain.SessionClaims, id string) (*domain.Account, error) {
	if err := authorizeSelf(actor, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies the non-nil fields of in. Profile fields are merged into the
// stored profile.
func (s *AccountService) Update(ctx context.Context, actor domain.SessionClaims, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	if err := authorizeSelf(actor, id); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var update ports.AccountUpdate
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return nil, domain.NewValidationError("display_name", "display name must not be empty")
		}
		update.DisplayName = &name
	}

	if in.CompanyName != nil || in.Industry != nil || in.Phone != nil {
		profile := current.Profile
		if in.CompanyName != nil {
			profile.CompanyName = strings.TrimSpace(*in.CompanyName)
		}
		if in.Industry != nil {
			profile.Industry = strings.TrimSpace(*in.Industry)
		}
		if in.Phone != nil {
			phone, err := normalizePhone(*in.Phone, s.region)
			if err != nil {
				return nil, err
			}
			profile.Phone = phone
		}
		update.Profile = &profile
	}

	if in.Password != nil {
		hash, err := s.creds.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", id).Str("actor_id", actor.AccountID).Msg("account updated")
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, actor domain.SessionClaims, id string) error {
	if err := authorizeSelf(actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", id).Str("actor_id", actor.AccountID).Msg("account deleted")
	return nil
}

func authorizeSelf(actor domain.SessionClaims, id string) error {
	if actor.AccountID == "" {
		return domain.ErrUnauthenticated
	}
	if actor.AccountID != id && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
