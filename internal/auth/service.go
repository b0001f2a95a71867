// Package auth manages the session lifecycle: a signed, one-hour token
// stored in a fixed local file, verified before every command.
package auth

import (
	"fmt"
	"log/slog"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/user"
)

// UserRepository is the slice of the user store the session manager needs.
type UserRepository interface {
	GetByEmail(email string) (*user.User, error)
	GetByID(id int64) (*user.User, error)
}

// View receives the single human-facing message per outcome.
type View interface {
	Info(msg string)
	Error(msg string)
}

// Service implements login, token verification and logout. All failure
// paths fail closed and keep their public message generic: unknown email
// and wrong password are indistinguishable, as are expired and tampered
// tokens.
type Service struct {
	users  UserRepository
	tokens *TokenGenerator
	store  TokenStore
	view   View
	logger *slog.Logger
}

func NewService(users UserRepository, tokens *TokenGenerator, store TokenStore, view View, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		store:  store,
		view:   view,
		logger: logger,
	}
}

// Login authenticates by email and password, then generates and stores a
// fresh token. The failure message never reveals which check failed.
func (s *Service) Login(email, password string) (string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		s.logger.Warn("login failed: unknown email")
		s.view.Error("❌ Échec de connexion. Vérifiez vos identifiants.")
		return "", internal.ErrInvalidCredentials
	}

	if err := user.VerifyPassword(u.PasswordHash, password); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", u.ID)
		s.view.Error("❌ Échec de connexion. Vérifiez vos identifiants.")
		return "", internal.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		return "", err
	}
	if err := s.store.Save(token); err != nil {
		return "", internal.NewInternalError("enregistrement du token impossible", err)
	}

	s.logger.Info("login succeeded", "user_id", u.ID)
	s.view.Info(fmt.Sprintf("✅ Connexion réussie ! Bienvenue %s.", u.Name))
	return token, nil
}

// Verify resolves the stored token back to the live user record. The
// embedded role claim is ignored: the role is re-read from the store so a
// role change takes effect on the next verification.
func (s *Service) Verify() (*user.User, error) {
	token, err := s.store.Load()
	if err != nil {
		return nil, internal.NewInternalError("lecture du token impossible", err)
	}
	if token == "" {
		s.view.Error("⚠️ Vous devez vous connecter !")
		return nil, internal.ErrNotAuthenticated
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		// Decode already logged whether the token was expired or
		// tampered; the public message stays generic.
		s.view.Error("⚠️ Session invalide ou expirée. Veuillez vous reconnecter.")
		return nil, err
	}

	u, err := s.users.GetByID(claims.UserID)
	if err != nil {
		s.view.Error("⚠️ Utilisateur introuvable.")
		return nil, internal.ErrUserNotFound
	}

	return u, nil
}

// Logout destroys the stored token content.
func (s *Service) Logout() error {
	if err := s.store.Clear(); err != nil {
		return internal.NewInternalError("suppression du token impossible", err)
	}
	s.view.Info("👋 Déconnexion réussie.")
	return nil
}
