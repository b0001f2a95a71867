package store_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/contract"
	"github.com/epicevents/crm-management/internal/event"
	"github.com/epicevents/crm-management/internal/event/store"
)

func TestEventStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Store Suite")
}

var _ = Describe("EventRepository", func() {
	var (
		db         *gorm.DB
		repo       *store.EventRepository
		contractID int64
		start      time.Time
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&client.Client{}, &contract.Contract{}, &event.Event{})).To(Succeed())

		owner := &client.Client{Name: "Kevin Casey", Email: "kevin@startup.io", DateCreated: time.Now(), DateUpdated: time.Now()}
		Expect(db.Create(owner).Error).To(Succeed())
		signed := &contract.Contract{ClientID: owner.ID, TotalAmount: 10000, DateCreated: time.Now(), Status: true}
		Expect(db.Create(signed).Error).To(Succeed())
		contractID = signed.ID

		start = time.Date(2026, 6, 4, 13, 0, 0, 0, time.UTC)
		repo = store.NewEventRepository(db)
	})

	seed := func(name string, startDate time.Time, supportID *int64) *event.Event {
		e := &event.Event{
			Name:       name,
			ContractID: contractID,
			StartDate:  startDate,
			EndDate:    startDate.Add(4 * time.Hour),
			Location:   "Paris",
			Attendees:  75,
			SupportID:  supportID,
		}
		Expect(repo.Create(e)).To(Succeed())
		return e
	}

	It("round-trips an event", func() {
		created := seed("Séminaire annuel", start, nil)

		loaded, err := repo.GetByID(created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Name).To(Equal("Séminaire annuel"))
		Expect(loaded.Attendees).To(Equal(75))
	})

	It("maps a missing row to the event-not-found sentinel", func() {
		_, err := repo.GetByID(42)
		Expect(err).To(MatchError(internal.ErrEventNotFound))
	})

	It("lists events in chronological order", func() {
		seed("Plus tard", start.Add(48*time.Hour), nil)
		seed("Plus tôt", start, nil)

		events, err := repo.GetAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(2))
		Expect(events[0].Name).To(Equal("Plus tôt"))
	})

	It("filters by assigned support user", func() {
		supportID := int64(3)
		assigned := seed("Assigné", start, &supportID)
		seed("Libre", start.Add(time.Hour), nil)

		mine, err := repo.GetBySupport(supportID)
		Expect(err).NotTo(HaveOccurred())
		Expect(mine).To(HaveLen(1))
		Expect(mine[0].ID).To(Equal(assigned.ID))
	})

	It("returns the unstaffed queue", func() {
		supportID := int64(3)
		seed("Assigné", start, &supportID)
		free := seed("Libre", start.Add(time.Hour), nil)

		queue, err := repo.GetUnassigned()
		Expect(err).NotTo(HaveOccurred())
		Expect(queue).To(HaveLen(1))
		Expect(queue[0].ID).To(Equal(free.ID))
	})

	It("persists a support reassignment", func() {
		created := seed("Séminaire", start, nil)
		supportID := int64(3)
		created.SupportID = &supportID
		Expect(repo.Update(created)).To(Succeed())

		loaded, err := repo.GetByID(created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.SupportID).NotTo(BeNil())
		Expect(*loaded.SupportID).To(Equal(supportID))
	})
})
