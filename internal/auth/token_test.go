package auth_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/auth"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

const testSecret = "test-secret-key-for-sessions-0123456789"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func commercialUser(id int64) *user.User {
	roleID := int64(2)
	return &user.User{
		ID:     id,
		Name:   "Camille Durand",
		Email:  "camille@epicevents.fr",
		RoleID: &roleID,
		Role:   &user.Role{ID: roleID, Name: rbac.RoleCommercial},
	}
}

var _ = Describe("TokenGenerator", func() {
	var generator *auth.TokenGenerator

	BeforeEach(func() {
		generator = auth.NewTokenGenerator(testSecret, time.Hour, testLogger())
	})

	Describe("Generate then Decode", func() {
		It("round-trips the user id and role snapshot", func() {
			u := commercialUser(7)

			token, err := generator.Generate(u)
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			claims, err := generator.Decode(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(7)))
			Expect(claims.Role).NotTo(BeNil())
			Expect(*claims.Role).To(Equal("commercial"))
		})

		It("encodes a nil role claim for a user without a role", func() {
			u := &user.User{ID: 3, Name: "Sans Rôle", Email: "nobody@epicevents.fr"}

			token, err := generator.Generate(u)
			Expect(err).NotTo(HaveOccurred())

			claims, err := generator.Decode(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Role).To(BeNil())
		})

		It("stamps an expiry one hour ahead", func() {
			token, err := generator.Generate(commercialUser(1))
			Expect(err).NotTo(HaveOccurred())

			claims, err := generator.Decode(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.ExpiresAt.Time).To(BeTemporally("~", time.Now().Add(time.Hour), 5*time.Second))
		})

		It("gives each token a distinct id", func() {
			first, err := generator.Generate(commercialUser(1))
			Expect(err).NotTo(HaveOccurred())
			second, err := generator.Generate(commercialUser(1))
			Expect(err).NotTo(HaveOccurred())

			firstClaims, err := generator.Decode(first)
			Expect(err).NotTo(HaveOccurred())
			secondClaims, err := generator.Decode(second)
			Expect(err).NotTo(HaveOccurred())
			Expect(firstClaims.ID).NotTo(Equal(secondClaims.ID))
		})
	})

	Describe("Decode failures", func() {
		It("rejects an expired token", func() {
			expired := auth.NewTokenGenerator(testSecret, -time.Minute, testLogger())
			token, err := expired.Generate(commercialUser(1))
			Expect(err).NotTo(HaveOccurred())

			_, err = generator.Decode(token)
			Expect(err).To(MatchError(internal.ErrTokenExpired))
		})

		It("rejects a token signed with a different secret", func() {
			other := auth.NewTokenGenerator("another-secret-entirely-0123456789abcdef", time.Hour, testLogger())
			token, err := other.Generate(commercialUser(1))
			Expect(err).NotTo(HaveOccurred())

			_, err = generator.Decode(token)
			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("rejects garbage", func() {
			_, err := generator.Decode("pas.un.jwt")
			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})
})

var _ = Describe("FileTokenStore", func() {
	var store *auth.FileTokenStore
	var path string

	BeforeEach(func() {
		path = GinkgoT().TempDir() + "/.token"
		store = auth.NewFileTokenStore(path)
	})

	It("returns an empty token when the file does not exist", func() {
		token, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(BeEmpty())
	})

	It("round-trips a saved token", func() {
		Expect(store.Save("abc.def.ghi")).To(Succeed())
		token, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("abc.def.ghi"))
	})

	It("overwrites the previous token on save", func() {
		Expect(store.Save("first")).To(Succeed())
		Expect(store.Save("second")).To(Succeed())
		token, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("second"))
	})

	It("clears to an empty token", func() {
		Expect(store.Save("abc.def.ghi")).To(Succeed())
		Expect(store.Clear()).To(Succeed())
		token, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(BeEmpty())
	})

	It("tolerates clearing when nothing was ever saved", func() {
		Expect(store.Clear()).To(Succeed())
	})
})
