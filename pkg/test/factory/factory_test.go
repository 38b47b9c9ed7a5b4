package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"activityapp/internal/core/util"
)

func TestNewUser_Defaults(t *testing.T) {
	first := NewUser()
	second := NewUser()

	assert.NotEqual(t, first.Email, second.Email)
	assert.NotEqual(t, first.CPF, second.CPF)
	assert.True(t, util.ValidCPF(first.CPF))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(first.EncryptedPassword), []byte(DefaultPassword)))
}

func TestNewUser_WithCustomData(t *testing.T) {
	user := NewUser(map[string]any{
		"Name":     "Test User",
		"Email":    "test@example.com",
		"Password": "outrasenha",
	})

	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte("outrasenha")))
}

func TestNewActivity(t *testing.T) {
	activity := NewActivity(1, 2, map[string]any{"Private": true, "Title": "Pedal noturno"})

	assert.Equal(t, "Pedal noturno", activity.Title)
	assert.True(t, activity.Private)
	assert.Equal(t, 1, activity.CreatorID)
	assert.Equal(t, 2, activity.TypeID)
	assert.False(t, activity.IsConcluded())
}
