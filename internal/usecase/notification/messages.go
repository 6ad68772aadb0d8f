package notification

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

// Subject содержит данные, которые подставляются в текст уведомления.
type Subject struct {
	JobID          uuid.UUID
	JobTitle       string
	FreelancerName string
}

type template struct {
	title       string
	description func(s Subject) string
}

var templates = map[Event]map[valueobject.RecipientKind]template{
	EventProposalAdded: {
		valueobject.RecipientClient: {
			title: "Новое предложение!",
			description: func(s Subject) string {
				return fmt.Sprintf("%q откликнулся на ваш проект", s.FreelancerName)
			},
		},
	},
	EventProposalAccepted: {
		valueobject.RecipientFreelancer: {
			title: "Поздравляем, ваше предложение принято!",
			description: func(s Subject) string {
				return fmt.Sprintf("Клиент принял ваше предложение по работе %q. Готовьтесь приступить к работе!", s.JobTitle)
			},
		},
		valueobject.RecipientClient: {
			title: "Предложение принято",
			description: func(s Subject) string {
				return fmt.Sprintf("Вы приняли предложение фрилансера %q по проекту %q", s.FreelancerName, s.JobTitle)
			},
		},
	},
	EventProposalRejected: {
		valueobject.RecipientFreelancer: {
			title: "В этот раз не повезло",
			description: func(s Subject) string {
				return fmt.Sprintf("Ваше предложение по проекту %q отклонено", s.JobTitle)
			},
		},
		valueobject.RecipientClient: {
			title: "Предложение отклонено",
			description: func(s Subject) string {
				return fmt.Sprintf("Вы отклонили предложение фрилансера %q по проекту %q", s.FreelancerName, s.JobTitle)
			},
		},
	},
}

func render(ev Event, kind valueobject.RecipientKind, s Subject) (title, description string, err error) {
	t, ok := templates[ev][kind]
	if !ok {
		return "", "", fmt.Errorf("notification: нет шаблона для события %q и получателя %q", ev, kind)
	}
	return t.title, t.description(s), nil
}
