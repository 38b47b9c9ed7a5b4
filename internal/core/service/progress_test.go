package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func TestProgressService_Reward(t *testing.T) {
	RegisterTestingT(t)

	e := newEnv(t)
	user := e.createUser(t)

	rewarded, err := e.progress.Reward(context.Background(), user.ID, 999)

	Expect(err).ToNot(HaveOccurred())
	assert.Equal(t, 999, rewarded.XP)
	assert.Equal(t, 1, rewarded.Level)

	rewarded, err = e.progress.Reward(context.Background(), user.ID, 1)

	Expect(err).ToNot(HaveOccurred())
	assert.Equal(t, 1000, rewarded.XP)
	assert.Equal(t, 2, rewarded.Level)

	achievements, err := e.achievements.ListByUser(context.Background(), user.ID)

	Expect(err).ToNot(HaveOccurred())
	assert.Empty(t, achievements)
}

func TestProgressService_UnlocksOnce(t *testing.T) {
	RegisterTestingT(t)

	e := newEnv(t)
	user := e.createUser(t)

	for i := 0; i < 5; i++ {
		activity := e.createActivity(t, user.ID)

		_, err := e.activity.Conclude(context.Background(), user.ID, activity.UUID.String())
		Expect(err).ToNot(HaveOccurred())
	}

	achievements, err := e.achievements.ListByUser(context.Background(), user.ID)

	Expect(err).ToNot(HaveOccurred())

	names := make([]string, 0, len(achievements))
	for _, achievement := range achievements {
		names = append(names, achievement.Name)
	}

	assert.ElementsMatch(t, []string{"Primeira atividade", "Organizador"}, names)
}
