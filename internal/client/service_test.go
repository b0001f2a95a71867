package client_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

func TestClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func actorWithRole(id int64, role rbac.RoleName) *user.User {
	roleID := int64(1)
	return &user.User{
		ID:     id,
		Name:   "Acteur Test",
		Email:  "acteur@epicevents.fr",
		RoleID: &roleID,
		Role:   &user.Role{ID: roleID, Name: role},
	}
}

type mockRepository struct {
	clients map[int64]*client.Client
	nextID  int64
}

func newMockRepository(clients ...*client.Client) *mockRepository {
	repo := &mockRepository{clients: make(map[int64]*client.Client), nextID: 1}
	for _, c := range clients {
		repo.clients[c.ID] = c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (m *mockRepository) Create(c *client.Client) error {
	c.ID = m.nextID
	m.nextID++
	m.clients[c.ID] = c
	return nil
}

func (m *mockRepository) GetByID(id int64) (*client.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, internal.ErrClientNotFound
	}
	return c, nil
}

func (m *mockRepository) GetByEmail(email string) (*client.Client, error) {
	for _, c := range m.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, internal.ErrClientNotFound
}

func (m *mockRepository) GetByEmailExcluding(email string, id int64) (*client.Client, error) {
	for _, c := range m.clients {
		if c.Email == email && c.ID != id {
			return c, nil
		}
	}
	return nil, internal.ErrClientNotFound
}

func (m *mockRepository) GetAll() ([]*client.Client, error) {
	all := make([]*client.Client, 0, len(m.clients))
	for _, c := range m.clients {
		all = append(all, c)
	}
	return all, nil
}

func (m *mockRepository) GetByCommercial(userID int64) ([]*client.Client, error) {
	var owned []*client.Client
	for _, c := range m.clients {
		if c.CommercialID != nil && *c.CommercialID == userID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

func (m *mockRepository) Update(c *client.Client) error {
	m.clients[c.ID] = c
	return nil
}

type recordingView struct {
	infos  []string
	errors []string
}

func (v *recordingView) Info(msg string)  { v.infos = append(v.infos, msg) }
func (v *recordingView) Error(msg string) { v.errors = append(v.errors, msg) }

var _ = Describe("Client Service", func() {
	var (
		service    *client.Service
		repo       *mockRepository
		view       *recordingView
		commercial *user.User
	)

	BeforeEach(func() {
		commercial = actorWithRole(1, rbac.RoleCommercial)
		repo = newMockRepository()
		view = &recordingView{}
		authz := rbac.NewAuthorizer(testLogger())
		service = client.NewService(repo, authz, view, testLogger())
	})

	Describe("Create", func() {
		It("auto-assigns the acting commercial as owner and stamps both dates", func() {
			created, err := service.Create(commercial, client.CreateClientDTO{
				Name:    "Kevin Casey",
				Email:   "kevin@startup.io",
				Phone:   "0678901234",
				Company: "Cool Startup LLC",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.CommercialID).NotTo(BeNil())
			Expect(*created.CommercialID).To(Equal(commercial.ID))
			Expect(created.DateCreated).To(BeTemporally("~", time.Now(), time.Second))
			Expect(created.DateUpdated).To(Equal(created.DateCreated))
			Expect(view.infos).To(ContainElement("✅ Client 'Kevin Casey' créé et attribué à Acteur Test."))
		})

		It("denies a support actor and creates no row", func() {
			support := actorWithRole(3, rbac.RoleSupport)
			_, err := service.Create(support, client.CreateClientDTO{
				Name: "Kevin Casey", Email: "kevin@startup.io",
			})
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
			Expect(view.errors).To(ConsistOf("❌ Accès refusé : Seuls les commerciaux peuvent créer des clients."))
			Expect(repo.clients).To(BeEmpty())
		})

		It("denies a gestion actor as well", func() {
			gestion := actorWithRole(2, rbac.RoleGestion)
			_, err := service.Create(gestion, client.CreateClientDTO{
				Name: "Kevin Casey", Email: "kevin@startup.io",
			})
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
			Expect(repo.clients).To(BeEmpty())
		})

		It("rejects a duplicate email with a specific message", func() {
			_, err := service.Create(commercial, client.CreateClientDTO{
				Name: "Kevin Casey", Email: "kevin@startup.io",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(commercial, client.CreateClientDTO{
				Name: "Autre Kevin", Email: "kevin@startup.io",
			})
			Expect(err).To(MatchError(internal.ErrEmailTaken))
			Expect(view.errors).To(ConsistOf("⚠️ Un client avec cet email existe déjà."))
			Expect(repo.clients).To(HaveLen(1))
		})
	})

	Describe("ListAll and ListPersonal", func() {
		BeforeEach(func() {
			otherID := int64(9)
			repo.clients[1] = &client.Client{ID: 1, Name: "A", Email: "a@x.fr", CommercialID: &commercial.ID}
			repo.clients[2] = &client.Client{ID: 2, Name: "B", Email: "b@x.fr", CommercialID: &otherID}
			repo.clients[3] = &client.Client{ID: 3, Name: "C", Email: "c@x.fr"}
			repo.nextID = 4
		})

		It("returns every client for ListAll", func() {
			clients, err := service.ListAll(commercial)
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(3))
		})

		It("filters ListPersonal to the caller's portfolio", func() {
			clients, err := service.ListPersonal(commercial)
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(1))
			Expect(clients[0].ID).To(Equal(int64(1)))
		})

		It("denies reads to support", func() {
			support := actorWithRole(3, rbac.RoleSupport)
			_, err := service.ListAll(support)
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
			Expect(view.errors).To(ContainElement("❌ Accès refusé : Seuls les commerciaux peuvent lire les clients."))
		})
	})

	Describe("Update", func() {
		var target *client.Client

		BeforeEach(func() {
			target = &client.Client{
				ID:          1,
				Name:        "Kevin Casey",
				Email:       "kevin@startup.io",
				Phone:       "0678901234",
				Company:     "Cool Startup LLC",
				DateCreated: time.Now().Add(-24 * time.Hour),
				DateUpdated: time.Now().Add(-24 * time.Hour),
			}
			repo.clients[target.ID] = target
			repo.nextID = 2
		})

		It("retains prior values for blank fields and stamps the update date", func() {
			updated, err := service.Update(commercial, 1, client.UpdateClientDTO{Phone: "0611111111"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Phone).To(Equal("0611111111"))
			Expect(updated.Name).To(Equal("Kevin Casey"))
			Expect(updated.Email).To(Equal("kevin@startup.io"))
			Expect(updated.Company).To(Equal("Cool Startup LLC"))
			Expect(updated.DateUpdated).To(BeTemporally("~", time.Now(), time.Second))
			Expect(view.infos).To(ContainElement("✅ Client 1 mis à jour !"))
		})

		It("accepts an all-blank update as a pure touch", func() {
			updated, err := service.Update(commercial, 1, client.UpdateClientDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Kevin Casey"))
			Expect(updated.Email).To(Equal("kevin@startup.io"))
		})

		It("allows re-submitting the current email", func() {
			_, err := service.Update(commercial, 1, client.UpdateClientDTO{Email: "kevin@startup.io"})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.errors).To(BeEmpty())
		})

		It("rejects an email belonging to another client", func() {
			repo.clients[2] = &client.Client{ID: 2, Name: "Autre", Email: "autre@x.fr"}
			_, err := service.Update(commercial, 1, client.UpdateClientDTO{Email: "autre@x.fr"})
			Expect(err).To(MatchError(internal.ErrEmailTaken))
			Expect(view.errors).To(ContainElement("⚠️ Email déjà utilisé."))
		})

		It("reports an unknown client id", func() {
			_, err := service.Update(commercial, 42, client.UpdateClientDTO{Name: "X"})
			Expect(err).To(MatchError(internal.ErrClientNotFound))
			Expect(view.errors).To(ContainElement("⚠️ Client inexistant."))
		})

		It("denies support", func() {
			support := actorWithRole(3, rbac.RoleSupport)
			_, err := service.Update(support, 1, client.UpdateClientDTO{Name: "X"})
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
		})
	})
})
