package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/pkg/test/factory"
)

type AuthServiceTestSuite struct {
	suite.Suite
	env *env
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.env = newEnv(s.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) signUp(email, cpf string) *request.SignUpRequest {
	return &request.SignUpRequest{
		Name:     "Maria Silva",
		Email:    email,
		CPF:      cpf,
		Password: "password123",
	}
}

func (s *AuthServiceTestSuite) TestRegistration_Success() {
	user, err := s.env.auth.Registration(context.Background(), s.signUp(" Maria@Example.com ", "529.982.247-25"))

	Expect(err).ToNot(HaveOccurred())
	assert.Equal(s.T(), "maria@example.com", user.Email)
	assert.Equal(s.T(), "52998224725", user.CPF)
	assert.Equal(s.T(), 1, user.Level)
	assert.NotEqual(s.T(), "password123", user.EncryptedPassword)
}

func (s *AuthServiceTestSuite) TestRegistration_DuplicateEmail() {
	_, err := s.env.auth.Registration(context.Background(), s.signUp("maria@example.com", "52998224725"))
	Expect(err).ToNot(HaveOccurred())

	_, err = s.env.auth.Registration(context.Background(), s.signUp("MARIA@example.com", "11144477735"))

	Expect(err).To(MatchError(domain.ErrEmailAlreadyUsed))
	assert.Equal(s.T(), domain.KindConflict, domain.KindOf(err))
}

func (s *AuthServiceTestSuite) TestRegistration_DuplicateCPF() {
	_, err := s.env.auth.Registration(context.Background(), s.signUp("maria@example.com", "52998224725"))
	Expect(err).ToNot(HaveOccurred())

	_, err = s.env.auth.Registration(context.Background(), s.signUp("joana@example.com", "529.982.247-25"))

	Expect(err).To(MatchError(domain.ErrCPFAlreadyUsed))
}

func (s *AuthServiceTestSuite) TestAuthenticate() {
	user := s.env.createUser(s.T(), map[string]any{"Email": "login@example.com"})

	authenticated, err := s.env.auth.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "LOGIN@example.com",
		Password: factory.DefaultPassword,
	})

	Expect(err).ToNot(HaveOccurred())
	assert.Equal(s.T(), user.UUID, authenticated.UUID)
}

func (s *AuthServiceTestSuite) TestAuthenticate_Failures() {
	user := s.env.createUser(s.T())

	_, err := s.env.auth.Authenticate(context.Background(), &request.LoginRequest{Email: "nobody@example.com", Password: "x"})
	Expect(err).To(MatchError(domain.ErrUserNotFound))

	_, err = s.env.auth.Authenticate(context.Background(), &request.LoginRequest{Email: user.Email, Password: "wrong-password"})
	Expect(err).To(MatchError(domain.ErrWrongPassword))

	Expect(s.env.user.Deactivate(context.Background(), user.ID)).To(Succeed())

	_, err = s.env.auth.Authenticate(context.Background(), &request.LoginRequest{Email: user.Email, Password: factory.DefaultPassword})
	Expect(err).To(MatchError(domain.ErrAccountDeactivated))
}
