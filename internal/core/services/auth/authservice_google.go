package auth

import (
	"context"
	"strings"

	"gitlab.com/gradeview-2025.net/internal/config"
	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/ports/secondary"
	"gitlab.com/gradeview-2025.net/internal/domain"
	"gitlab.com/gradeview-2025.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

type googleAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	Config      *config.GGAuthConfig
}

func NewGoogleAuthService(userPort secondary.UserPort, jwtProvider primary.JWTService, Config *config.GGAuthConfig) IAuthService {
	return &googleAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		Config:      Config,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

func (g googleAuthService) Login(ctx context.Context, users *domain.Users) (string, error) {
	if users.GoogleID == nil {
		return "", errs.InvalidCredentials
	}

	if users.AuthProvider != string(domain.ProviderGoogle) {
		return "", errs.InvalidCredentials
	}

	if users.Email == nil {
		return "", errs.EmailRequired
	}

	if g.Config.RequiredDomain != "" && !strings.HasSuffix(*users.Email, "@"+g.Config.RequiredDomain) {
		return "", errs.EmailDomainDenied
	}

	usr, err := g.userPort.GetByGoogleID(ctx, *users.GoogleID)
	if err != nil {
		return "", err
	}

	if usr != nil {
		return generateToken(ctx, g.jwtProvider, usr)
	}
	users.PasswordHash = nil
	users.UserName = strings.Split(*users.Email, "@")[0]
	if users.DisplayName == "" {
		users.DisplayName = users.UserName
	}
	users.AuthProvider = string(domain.ProviderGoogle)
	err = g.userPort.Create(ctx, users)
	if err != nil {
		return "", errs.FailedToCreateUser
	}

	return generateToken(ctx, g.jwtProvider, users)
}
