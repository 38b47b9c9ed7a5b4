package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"activityapp/internal/adapter/database"
	"activityapp/internal/adapter/database/repository"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
	"activityapp/internal/core/telemetry"
	. "activityapp/pkg/test"
	"activityapp/pkg/test/factory"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.db = InitTestDB()
	s.repo = repository.NewUserRepository(s.db, telemetry.NewNoOpProbe())
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	s.db.Close()
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreate_Success() {
	user, err := s.repo.Create(context.Background(), factory.NewUser(map[string]any{
		"Name":  "Test User",
		"Email": "Test@Example.com",
	}))

	Expect(err).ToNot(HaveOccurred())
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.Name).To(Equal("Test User"))
	Expect(user.Email).To(Equal("test@example.com"))
	Expect(user.Level).To(Equal(1))
	Expect(user.IsActive()).To(BeTrue())
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmail() {
	_, err := s.repo.Create(context.Background(), factory.NewUser(map[string]any{"Email": "dup@example.com"}))
	Expect(err).ToNot(HaveOccurred())

	_, err = s.repo.Create(context.Background(), factory.NewUser(map[string]any{"Email": "dup@example.com"}))
	Expect(err).To(MatchError(domain.ErrDuplicateRecord))
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateCPF() {
	first := factory.NewUser()

	_, err := s.repo.Create(context.Background(), first)
	Expect(err).ToNot(HaveOccurred())

	_, err = s.repo.Create(context.Background(), factory.NewUser(map[string]any{"CPF": first.CPF}))
	Expect(err).To(MatchError(domain.ErrDuplicateRecord))
}

func (s *UserRepositoryTestSuite) TestGetBy_NotFound() {
	_, err := s.repo.GetByEmail(context.Background(), "nobody@example.com")
	Expect(err).To(MatchError(domain.ErrRecordNotFound))

	_, err = s.repo.GetByUUID(context.Background(), "non-existent-uuid")
	Expect(err).To(MatchError(domain.ErrRecordNotFound))
}

func (s *UserRepositoryTestSuite) TestGetByCPFAndUUID() {
	created, _ := s.repo.Create(context.Background(), factory.NewUser())

	byCPF, err := s.repo.GetByCPF(context.Background(), created.CPF)
	Expect(err).ToNot(HaveOccurred())
	Expect(byCPF.ID).To(Equal(created.ID))

	byUUID, err := s.repo.GetByUUID(context.Background(), created.UUID.String())
	Expect(err).ToNot(HaveOccurred())
	Expect(byUUID.Email).To(Equal(created.Email))
}

func (s *UserRepositoryTestSuite) TestUpdate() {
	created, _ := s.repo.Create(context.Background(), factory.NewUser())
	avatar := "/uploads/avatars/a.png"

	created.Name = "Novo Nome"
	created.Avatar = &avatar

	updated, err := s.repo.Update(context.Background(), created)

	Expect(err).ToNot(HaveOccurred())
	Expect(updated.Name).To(Equal("Novo Nome"))
	Expect(*updated.Avatar).To(Equal(avatar))
}

func (s *UserRepositoryTestSuite) TestDeactivate() {
	created, _ := s.repo.Create(context.Background(), factory.NewUser())

	Expect(s.repo.Deactivate(context.Background(), created.ID, time.Now())).To(Succeed())

	user, _ := s.repo.GetByID(context.Background(), created.ID)
	Expect(user.IsActive()).To(BeFalse())

	Expect(s.repo.Deactivate(context.Background(), created.ID, time.Now())).To(MatchError(domain.ErrStaleRecord))
}

func (s *UserRepositoryTestSuite) TestAddXP_RecomputesLevel() {
	created, _ := s.repo.Create(context.Background(), factory.NewUser())

	user, err := s.repo.AddXP(context.Background(), created.ID, 950)
	Expect(err).ToNot(HaveOccurred())
	Expect(user.XP).To(Equal(950))
	Expect(user.Level).To(Equal(1))

	user, err = s.repo.AddXP(context.Background(), created.ID, 100)
	Expect(err).ToNot(HaveOccurred())
	Expect(user.XP).To(Equal(1050))
	Expect(user.Level).To(Equal(2))
}

func (s *UserRepositoryTestSuite) TestPreferences_Replace() {
	created, _ := s.repo.Create(context.Background(), factory.NewUser())

	futebol := ActivityTypeID(s.T(), s.db, "Futebol")
	yoga := ActivityTypeID(s.T(), s.db, "Yoga")
	corrida := ActivityTypeID(s.T(), s.db, "Corrida")

	Expect(s.repo.SetPreferences(context.Background(), created.ID, []int{futebol, yoga, yoga})).To(Succeed())

	types, err := s.repo.GetPreferences(context.Background(), created.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(types).To(HaveLen(2))
	Expect(types[0].Name).To(Equal("Futebol"))
	Expect(types[1].Name).To(Equal("Yoga"))

	Expect(s.repo.SetPreferences(context.Background(), created.ID, []int{corrida})).To(Succeed())

	types, _ = s.repo.GetPreferences(context.Background(), created.ID)
	Expect(types).To(HaveLen(1))
	Expect(types[0].Name).To(Equal("Corrida"))
	Expect(types[0].UUID.String()).ToNot(BeEmpty())

	Expect(s.repo.SetPreferences(context.Background(), created.ID, nil)).To(Succeed())

	types, _ = s.repo.GetPreferences(context.Background(), created.ID)
	Expect(types).To(BeEmpty())
}
