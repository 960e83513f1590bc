package auth_test

import (
	"errors"
	"time"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type mockAuthRepository struct {
	credentials map[string]struct {
		userID   string
		hash     string
		isActive bool
	}
	principals  map[int64]*auth.Principal
	returnError error
}

func newMockAuthRepository() *mockAuthRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	repo := &mockAuthRepository{
		credentials: map[string]struct {
			userID   string
			hash     string
			isActive bool
		}{
			"medic":    {userID: "1", hash: string(hash), isActive: true},
			"director": {userID: "2", hash: string(hash), isActive: true},
			"retired":  {userID: "3", hash: string(hash), isActive: false},
		},
		principals: map[int64]*auth.Principal{
			1: {UserID: 1, Username: "medic", GradeLevel: 5, Permissions: map[string]bool{auth.PermViewPatients: true}},
			2: {UserID: 2, Username: "director", GradeLevel: auth.RootGradeLevel},
		},
	}
	return repo
}

func (m *mockAuthRepository) GetCredentialsByUsername(username string) (string, string, bool, error) {
	if m.returnError != nil {
		return "", "", false, m.returnError
	}
	cred, ok := m.credentials[username]
	if !ok {
		return "", "", false, errors.New("user not found")
	}
	return cred.userID, cred.hash, cred.isActive, nil
}

func (m *mockAuthRepository) GetPrincipal(userID int64) (*auth.Principal, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	p, ok := m.principals[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return p, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokenGen *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = auth.NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		Context("when credentials are valid", func() {
			It("should return access and refresh tokens", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "medic", Password: "correct_password"})

				Expect(err).ToNot(HaveOccurred())
				Expect(tokens.AccessToken).ToNot(BeEmpty())
				Expect(tokens.RefreshToken).ToNot(BeEmpty())
				Expect(tokens.AccessToken).ToNot(Equal(tokens.RefreshToken))
			})

			It("should produce a validatable access token", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "medic", Password: "correct_password"})
				Expect(err).ToNot(HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).ToNot(HaveOccurred())
				Expect(claims.UserID).To(Equal("1"))
			})
		})

		Context("when credentials are invalid", func() {
			It("should reject a wrong password", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "medic", Password: "wrong"})
				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			})

			It("should reject an unknown username with the same error", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "nobody", Password: "correct_password"})
				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			})
		})

		Context("when the account is deactivated", func() {
			It("should reject even with the right password", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "retired", Password: "correct_password"})
				Expect(err).To(MatchError(internal.ErrUserInactive))
			})
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh token pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "medic", Password: "correct_password"})
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
			Expect(refreshed.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("GetPrincipal", func() {
		It("should return the stored principal", func() {
			p, err := service.GetPrincipal(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Username).To(Equal("medic"))
			Expect(p.GradeLevel).To(Equal(5))
		})

		It("should never return a nil permission map", func() {
			p, err := service.GetPrincipal(2)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Permissions).ToNot(BeNil())
		})

		It("should propagate a missing user", func() {
			_, err := service.GetPrincipal(42)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("HashPassword", func() {
		It("should produce a verifiable bcrypt hash", func() {
			hash, err := service.HashPassword("secret-password")
			Expect(err).ToNot(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret-password"))).To(Succeed())
		})
	})
})
