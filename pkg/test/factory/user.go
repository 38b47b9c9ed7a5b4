package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/util"
)

const DefaultPassword = "12345678"

var sequence atomic.Int64

type UserAttributes struct {
	Name     string
	Email    string
	CPF      string
	Password string
}

func next() int64 {
	return sequence.Add(1)
}

func merge(defaults map[string]any, customData []map[string]any) map[string]any {
	for _, data := range customData {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return defaults
}

// NewUser builds an unsaved user with a unique email and a valid CPF.
// Keys of customData are UserAttributes field names.
func NewUser(customData ...map[string]any) domain.User {
	n := next()

	attrs := fab.New(UserAttributes{}).Build(merge(map[string]any{
		"Name":     fmt.Sprintf("Usuário %d", n),
		"Email":    fmt.Sprintf("user%d@example.com", n),
		"CPF":      util.CompleteCPF(fmt.Sprintf("%09d", n)),
		"Password": DefaultPassword,
	}, customData))

	encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte(attrs.Password), bcrypt.MinCost)
	now := time.Now()

	return domain.User{
		UUID:              uuid.New(),
		Name:              attrs.Name,
		Email:             attrs.Email,
		CPF:               attrs.CPF,
		EncryptedPassword: string(encryptedPassword),
		Level:             1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
