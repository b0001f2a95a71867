package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/auth"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

type mockUserRepository struct {
	byEmail map[string]*user.User
	byID    map[int64]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	repo := &mockUserRepository{
		byEmail: make(map[string]*user.User),
		byID:    make(map[int64]*user.User),
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
	}
	return repo
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

type memoryTokenStore struct {
	token string
}

func (m *memoryTokenStore) Save(token string) error { m.token = token; return nil }
func (m *memoryTokenStore) Load() (string, error)   { return m.token, nil }
func (m *memoryTokenStore) Clear() error            { m.token = ""; return nil }

type recordingView struct {
	infos  []string
	errors []string
}

func (v *recordingView) Info(msg string)  { v.infos = append(v.infos, msg) }
func (v *recordingView) Error(msg string) { v.errors = append(v.errors, msg) }

var _ = Describe("Auth Service", func() {
	var (
		service   *auth.Service
		repo      *mockUserRepository
		store     *memoryTokenStore
		view      *recordingView
		generator *auth.TokenGenerator
		actor     *user.User
	)

	BeforeEach(func() {
		hash, err := user.HashPassword("motdepasse", bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		actor = commercialUser(12)
		actor.PasswordHash = hash

		repo = newMockUserRepository(actor)
		store = &memoryTokenStore{}
		view = &recordingView{}
		generator = auth.NewTokenGenerator(testSecret, time.Hour, testLogger())
		service = auth.NewService(repo, generator, store, view, testLogger())
	})

	Describe("Login", func() {
		It("stores a fresh token and greets the user", func() {
			token, err := service.Login("camille@epicevents.fr", "motdepasse")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())
			Expect(store.token).To(Equal(token))
			Expect(view.infos).To(ContainElement("✅ Connexion réussie ! Bienvenue Camille Durand."))
		})

		It("replaces the previous session on a second login", func() {
			first, err := service.Login("camille@epicevents.fr", "motdepasse")
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Login("camille@epicevents.fr", "motdepasse")
			Expect(err).NotTo(HaveOccurred())
			Expect(store.token).To(Equal(second))
			Expect(store.token).NotTo(Equal(first))
		})

		It("keeps the failure message identical for an unknown email", func() {
			_, err := service.Login("inconnu@epicevents.fr", "motdepasse")
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			Expect(view.errors).To(ConsistOf("❌ Échec de connexion. Vérifiez vos identifiants."))
			Expect(store.token).To(BeEmpty())
		})

		It("keeps the failure message identical for a wrong password", func() {
			_, err := service.Login("camille@epicevents.fr", "mauvais")
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			Expect(view.errors).To(ConsistOf("❌ Échec de connexion. Vérifiez vos identifiants."))
			Expect(store.token).To(BeEmpty())
		})
	})

	Describe("Verify", func() {
		It("resolves a valid session back to the live user", func() {
			_, err := service.Login("camille@epicevents.fr", "motdepasse")
			Expect(err).NotTo(HaveOccurred())

			verified, err := service.Verify()
			Expect(err).NotTo(HaveOccurred())
			Expect(verified.ID).To(Equal(actor.ID))
		})

		It("demands a login when no token is stored", func() {
			_, err := service.Verify()
			Expect(err).To(MatchError(internal.ErrNotAuthenticated))
			Expect(view.errors).To(ContainElement("⚠️ Vous devez vous connecter !"))
		})

		It("uses one generic message for an expired session", func() {
			expired := auth.NewTokenGenerator(testSecret, -time.Minute, testLogger())
			token, err := expired.Generate(actor)
			Expect(err).NotTo(HaveOccurred())
			store.token = token

			_, err = service.Verify()
			Expect(err).To(MatchError(internal.ErrTokenExpired))
			Expect(view.errors).To(ContainElement("⚠️ Session invalide ou expirée. Veuillez vous reconnecter."))
		})

		It("uses the same generic message for a tampered token", func() {
			store.token = "pas.un.jwt"

			_, err := service.Verify()
			Expect(err).To(MatchError(internal.ErrInvalidToken))
			Expect(view.errors).To(ContainElement("⚠️ Session invalide ou expirée. Veuillez vous reconnecter."))
		})

		It("fails when the token's user no longer exists", func() {
			ghost := commercialUser(99)
			token, err := generator.Generate(ghost)
			Expect(err).NotTo(HaveOccurred())
			store.token = token

			_, err = service.Verify()
			Expect(err).To(MatchError(internal.ErrUserNotFound))
			Expect(view.errors).To(ContainElement("⚠️ Utilisateur introuvable."))
		})

		It("reflects a role change made after the token was issued", func() {
			_, err := service.Login("camille@epicevents.fr", "motdepasse")
			Expect(err).NotTo(HaveOccurred())

			supportID := int64(3)
			actor.RoleID = &supportID
			actor.Role = &user.Role{ID: supportID, Name: rbac.RoleSupport}

			verified, err := service.Verify()
			Expect(err).NotTo(HaveOccurred())
			Expect(verified.RoleName()).NotTo(BeNil())
			Expect(*verified.RoleName()).To(Equal(rbac.RoleSupport))
		})
	})

	Describe("Logout", func() {
		It("destroys the stored token", func() {
			_, err := service.Login("camille@epicevents.fr", "motdepasse")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Logout()).To(Succeed())
			Expect(store.token).To(BeEmpty())
			Expect(view.infos).To(ContainElement("👋 Déconnexion réussie."))
		})
	})
})
