package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/util"
	. "activityapp/pkg/test"
)

type UserServiceTestSuite struct {
	suite.Suite
	env  *env
	user domain.User
}

func (s *UserServiceTestSuite) SetupTest() {
	s.env = newEnv(s.T())
	s.user = s.env.createUser(s.T(), map[string]any{"Email": "perfil@example.com"})
}

func TestUserServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestGetProfile() {
	profile, err := s.env.user.GetProfile(context.Background(), s.user.ID)

	Expect(err).ToNot(HaveOccurred())
	assert.Equal(s.T(), s.user.UUID, profile.UUID)
	assert.Empty(s.T(), profile.Achievements)

	_, err = s.env.user.GetProfile(context.Background(), 9999)
	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserServiceTestSuite) TestUpdatePreferences() {
	corrida := ActivityTypeUUID(s.T(), s.env.db, "Corrida")
	yoga := ActivityTypeUUID(s.T(), s.env.db, "Yoga")

	types, err := s.env.user.UpdatePreferences(context.Background(), s.user.ID, []string{corrida, yoga, corrida})

	Expect(err).ToNot(HaveOccurred())
	Expect(types).To(HaveLen(2))

	types, err = s.env.user.UpdatePreferences(context.Background(), s.user.ID, []string{yoga})

	Expect(err).ToNot(HaveOccurred())
	Expect(types).To(HaveLen(1))
	assert.Equal(s.T(), "Yoga", types[0].Name)

	_, err = s.env.user.UpdatePreferences(context.Background(), s.user.ID, []string{uuid.NewString()})
	Expect(err).To(MatchError(domain.ErrActivityTypeNotFound))

	stored, err := s.env.user.GetPreferences(context.Background(), s.user.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(stored).To(HaveLen(1))
}

func (s *UserServiceTestSuite) TestUpdateAvatar_ReplacesPreviousFile() {
	first, err := s.env.user.UpdateAvatar(context.Background(), s.user.ID, PNGUpload(s.T()))

	Expect(err).ToNot(HaveOccurred())
	Expect(first.Avatar).ToNot(BeNil())

	firstFile := filepath.Join(s.env.storage.Root(), strings.TrimPrefix(*first.Avatar, "/uploads/"))
	_, err = os.Stat(firstFile)
	Expect(err).ToNot(HaveOccurred())

	second, err := s.env.user.UpdateAvatar(context.Background(), s.user.ID, PNGUpload(s.T()))

	Expect(err).ToNot(HaveOccurred())
	assert.NotEqual(s.T(), *first.Avatar, *second.Avatar)

	_, err = os.Stat(firstFile)
	assert.True(s.T(), os.IsNotExist(err))
}

func (s *UserServiceTestSuite) TestUpdateAvatar_RejectsNonImage() {
	_, err := s.env.user.UpdateAvatar(context.Background(), s.user.ID, TextUpload())

	Expect(err).To(MatchError(domain.ErrInvalidImage))
	assert.Nil(s.T(), s.env.reload(s.T(), s.user.ID).Avatar)
}

func (s *UserServiceTestSuite) TestUpdateProfile() {
	name := "Novo Nome"
	password := "nova-senha"

	updated, err := s.env.user.UpdateProfile(context.Background(), s.user.ID, &request.UpdateProfileRequest{
		Name:     &name,
		Password: &password,
	})

	Expect(err).ToNot(HaveOccurred())
	assert.Equal(s.T(), name, updated.Name)
	assert.Equal(s.T(), s.user.Email, updated.Email)
	assert.NoError(s.T(), util.CheckPassword(password, updated.EncryptedPassword))

	_, err = s.env.user.UpdateProfile(context.Background(), s.user.ID, &request.UpdateProfileRequest{})
	Expect(err).To(MatchError(domain.ErrMissingFields))
}

func (s *UserServiceTestSuite) TestUpdateProfile_EmailCollision() {
	other := s.env.createUser(s.T())
	email := strings.ToUpper(other.Email)

	_, err := s.env.user.UpdateProfile(context.Background(), s.user.ID, &request.UpdateProfileRequest{Email: &email})

	Expect(err).To(MatchError(domain.ErrEmailAlreadyUsed))

	same := s.user.Email
	_, err = s.env.user.UpdateProfile(context.Background(), s.user.ID, &request.UpdateProfileRequest{Email: &same})
	Expect(err).ToNot(HaveOccurred())
}

func (s *UserServiceTestSuite) TestDeactivate() {
	Expect(s.env.user.Deactivate(context.Background(), s.user.ID)).To(Succeed())
	reloaded := s.env.reload(s.T(), s.user.ID)
	assert.False(s.T(), reloaded.IsActive())

	Expect(s.env.user.Deactivate(context.Background(), s.user.ID)).To(MatchError(domain.ErrAccountDeactivated))
}

func (s *UserServiceTestSuite) TestGetAchievements() {
	s.env.createActivity(s.T(), s.user.ID)

	_, err := s.env.progress.Reward(context.Background(), s.user.ID, domain.XPForCreatingActivity)
	Expect(err).ToNot(HaveOccurred())

	achievements, err := s.env.user.GetAchievements(context.Background(), s.user.ID)

	Expect(err).ToNot(HaveOccurred())
	Expect(achievements).To(HaveLen(1))
	assert.Equal(s.T(), "Primeira atividade", achievements[0].Name)
	assert.NotNil(s.T(), achievements[0].UnlockedAt)
}
