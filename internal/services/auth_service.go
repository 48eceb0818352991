package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "skill-market.com/skill-market/internal/errors"
	repository "skill-market.com/skill-market/internal/repositories"
	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

var businessTaxNumber = regexp.MustCompile(`^[A-Z0-9]{10}$`)

type Claims struct {
	Role constants.Role `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	AccessToken string         `json:"accessToken"`
	TokenType   string         `json:"tokenType"`
	ExpiresIn   int64          `json:"expiresIn"`
	AccountID   string         `json:"accountId"`
	Role        constants.Role `json:"role"`
}

// AccountSummary is the caller's own account as seen through its token.
type AccountSummary struct {
	ID        string         `json:"id"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	FullName  string         `json:"fullName"`
	Role      constants.Role `json:"role"`
}

type AuthService struct {
	users     *repository.UserRepository
	providers *repository.ProviderRepository
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(
	users *repository.UserRepository,
	providers *repository.ProviderRepository,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:     users,
		providers: providers,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) RegisterUser(ctx context.Context, in AccountInput) (*model.User, error) {
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	profile, err := newProfile(in)
	if err != nil {
		return nil, err
	}

	user := &model.User{Profile: profile}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) RegisterProvider(ctx context.Context, in ProviderInput) (*model.Provider, error) {
	switch in.ProviderType {
	case constants.ProviderTypeIndividual:
		if in.FirstName == "" || in.LastName == "" {
			return nil, apperrors.ErrProviderFields
		}
	case constants.ProviderTypeCompany:
		if in.CompanyName == "" || !businessTaxNumber.MatchString(in.BusinessTaxNumber) {
			return nil, apperrors.ErrProviderFields
		}
		if in.FullName == "" {
			in.FullName = in.CompanyName
		}
	default:
		return nil, apperrors.ErrProviderFields
	}

	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	profile, err := newProfile(in.AccountInput)
	if err != nil {
		return nil, err
	}

	provider := &model.Provider{
		Profile:           profile,
		ProviderType:      in.ProviderType,
		CompanyName:       in.CompanyName,
		BusinessTaxNumber: in.BusinessTaxNumber,
	}
	if err := s.providers.Create(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create provider: %w", err)
	}

	return provider, nil
}

// Login checks users first, then providers.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	id, role, hash, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(id, role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		AccountID:   id,
		Role:        role,
	}, nil
}

// Authenticate resolves a bearer token to the caller's account id and role.
func (s *AuthService) Authenticate(tokenString string) (string, constants.Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", "", apperrors.ErrUnauthorized
	}

	return claims.Subject, claims.Role, nil
}

// Me loads the account behind an authenticated token.
func (s *AuthService) Me(ctx context.Context, accountID string, role constants.Role) (*AccountSummary, error) {
	switch role {
	case constants.RoleUser:
		user, err := s.users.FindByID(ctx, accountID)
		if err != nil {
			return nil, translate(err, apperrors.ErrUserNotFound, "find user")
		}
		return summarize(user.ID, user.Role, user.Profile), nil
	case constants.RoleProvider:
		provider, err := s.ProviderProfile(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return summarize(provider.ID, provider.Role, provider.Profile), nil
	default:
		return nil, apperrors.ErrUnauthorized
	}
}

func (s *AuthService) ProviderProfile(ctx context.Context, providerID string) (*model.Provider, error) {
	provider, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		return nil, translate(err, apperrors.ErrProviderNotFound, "find provider")
	}
	return provider, nil
}

func summarize(id string, role constants.Role, p model.Profile) *AccountSummary {
	return &AccountSummary{
		ID:        id,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      role,
	}
}

func (s *AuthService) issueToken(accountID string, role constants.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) lookup(ctx context.Context, email string) (string, constants.Role, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user.ID, user.Role, user.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", "", "", fmt.Errorf("find user: %w", err)
	}

	provider, err := s.providers.FindByEmail(ctx, email)
	if err == nil {
		return provider.ID, provider.Role, provider.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", "", "", fmt.Errorf("find provider: %w", err)
	}

	return "", "", "", apperrors.ErrInvalidCredentials
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if !taken {
		taken, err = s.providers.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check provider email: %w", err)
		}
	}
	if taken {
		return apperrors.ErrEmailTaken
	}
	return nil
}

func newProfile(in AccountInput) (model.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return model.Profile{}, apperrors.ErrPasswordTooLong
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	fullName := in.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(in.FirstName + " " + in.LastName)
	}

	return model.Profile{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		FullName:     fullName,
		MobileNumber: in.MobileNumber,
		StreetNumber: in.StreetNumber,
		StreetName:   in.StreetName,
		City:         in.City,
		State:        in.State,
		PostCode:     in.PostCode,
	}, nil
}
