package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid identity token")
)

// UserStore is the persistence surface the authenticator needs.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// UsernameTaken reports whether username is held by an account
	// other than the one with the given Google subject id.
	UsernameTaken(ctx context.Context, username, googleID string) (bool, error)
	UpsertGoogleUser(ctx context.Context, user *models.User) (*models.User, error)
}

// IDTokenVerifier verifies an externally issued identity token.
type IDTokenVerifier interface {
	VerifyIDToken(idToken string) (*GoogleIDClaims, error)
}

type AuthService struct {
	users    UserStore
	verifier IDTokenVerifier
	cfg      *config.Config
}

func NewAuthService(users UserStore, verifier IDTokenVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		users:    users,
		verifier: verifier,
		cfg:      cfg,
	}
}

// Login verifies a username/password pair and mints a session token.
// Unknown username and wrong password collapse into the same error so
// responses never reveal whether the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Only a missing row is a credential failure; a storage fault
		// must surface as one, not masquerade as a 401.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &dto.LoginResponse{
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		},
		Token: token,
	}, nil
}

// GoogleSignIn verifies a Google ID token and upserts the user. Admin
// status comes from the server-side ADMIN_EMAILS list only; any
// admin-ish claim inside the client-presented token is ignored.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*dto.GoogleSignInResponse, error) {
	claims, err := s.verifier.VerifyIDToken(idToken)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return nil, ErrInvalidToken
	}

	username := claims.Name
	if username == "" {
		username = strings.Split(claims.Email, "@")[0]
	}

	googleID := claims.Sub

	// Display names are not unique across Google accounts; suffix with
	// the subject id on collision so the insert never trips the
	// username uniqueness constraint.
	taken, err := s.users.UsernameTaken(ctx, username, googleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		username = username + "-" + googleID
	}

	user, err := s.users.UpsertGoogleUser(ctx, &models.User{
		Username:       username,
		Email:          claims.Email,
		ProfilePicture: claims.Picture,
		GoogleID:       &googleID,
		IsAdmin:        claims.EmailVerified && s.cfg.IsAdminEmail(claims.Email),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &dto.GoogleSignInResponse{
		User: dto.UserResponse{
			ID:             user.ID,
			Username:       user.Username,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			IsAdmin:        user.IsAdmin,
		},
	}, nil
}

func (s *AuthService) generateSessionToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
