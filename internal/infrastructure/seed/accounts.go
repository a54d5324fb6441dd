// Package seed loads the demo staff accounts into a credential repository.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// Account is a demo login and the profile it signs in as.
type Account struct {
	Password string
	Profile  domain.UserProfile
}

var demoAccounts = []Account{
	{
		Password: "admin123",
		Profile: domain.UserProfile{
			ID: "u-001", Name: "Abdullah Al-Harbi", Email: "admin@mavera.sa",
			Role: domain.RoleSuperAdmin, Avatar: "AH",
		},
	},
	{
		Password: "sales123",
		Profile: domain.UserProfile{
			ID: "u-002", Name: "Sara Al-Qahtani", Email: "sales@mavera.sa",
			Role:              domain.RoleSalesAgent,
			Roles:             []domain.Role{domain.RoleSalesAgent, domain.RoleCallCenter},
			CustomPermissions: []domain.Permission{domain.PermFinanceViewContracts},
			Avatar:            "SQ",
		},
	},
	{
		Password: "call123",
		Profile: domain.UserProfile{
			ID: "u-003", Name: "Faisal Al-Otaibi", Email: "callcenter@mavera.sa",
			Role: domain.RoleCallCenter, Avatar: "FO",
		},
	},
	{
		Password: "finance123",
		Profile: domain.UserProfile{
			ID: "u-004", Name: "Noura Al-Dosari", Email: "finance@mavera.sa",
			Role: domain.RoleFinanceManager, Avatar: "ND",
		},
	},
	{
		Password: "coord123",
		Profile: domain.UserProfile{
			ID: "u-005", Name: "Khalid Al-Shehri", Email: "coordinator@mavera.sa",
			Role: domain.RoleCoordinator, Avatar: "KS",
		},
	},
}

// DemoAccounts returns a copy of the demo account table.
func DemoAccounts() []Account {
	out := make([]Account, len(demoAccounts))
	for i, a := range demoAccounts {
		out[i] = Account{Password: a.Password, Profile: *a.Profile.Clone()}
	}
	return out
}

// Accounts hashes and stores each account. Accounts whose email already
// exists are left untouched, so seeding is safe to repeat.
func Accounts(ctx context.Context, repo ports.CredentialRepository, accounts []Account, cost int, log zerolog.Logger) (int, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	created := 0
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", a.Profile.Email, err)
		}

		now := time.Now().UTC()
		email := domain.NormalizeEmail(a.Profile.Email)
		profile := *a.Profile.Clone()
		profile.Email = email

		_, err = repo.Create(ctx, &domain.Credential{
			Email:        email,
			PasswordHash: string(hash),
			Profile:      profile,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, domain.ErrUserExists) {
			log.Debug().Str("email", email).Msg("demo account already present")
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", email, err)
		}
		created++
	}

	log.Info().Int("created", created).Int("total", len(accounts)).Msg("demo accounts seeded")
	return created, nil
}
