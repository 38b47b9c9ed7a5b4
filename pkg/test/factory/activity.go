package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"activityapp/internal/core/domain"
)

type ActivityAttributes struct {
	Title            string
	Description      string
	ConfirmationCode string
	Private          bool
}

// NewActivity builds an unsaved open activity scheduled for tomorrow.
func NewActivity(creatorID, typeID int, customData ...map[string]any) domain.Activity {
	n := next()

	attrs := fab.New(ActivityAttributes{}).Build(merge(map[string]any{
		"Title":            fmt.Sprintf("Atividade %d", n),
		"Description":      "Encontro no parque",
		"ConfirmationCode": "ABC123",
		"Private":          false,
	}, customData))

	now := time.Now()

	return domain.Activity{
		UUID:             uuid.New(),
		Title:            attrs.Title,
		Description:      attrs.Description,
		TypeID:           typeID,
		Address:          domain.Address{Latitude: -23.5505, Longitude: -46.6333},
		ScheduledDate:    now.Add(24 * time.Hour),
		Private:          attrs.Private,
		ConfirmationCode: attrs.ConfirmationCode,
		CreatorID:        creatorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
