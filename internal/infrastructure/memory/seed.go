package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

// Demo содержит участников и работы, созданные SeedDemo.
type Demo struct {
	Clients     []entity.Client
	Freelancers []entity.Freelancer
	Jobs        []entity.Job
}

// SeedDemo наполняет пустое хранилище данными для локального запуска:
// по две работы у каждого клиента, все открыты.
func SeedDemo(s *Store, now time.Time) Demo {
	var demo Demo

	clientNames := []string{"Анна Смирнова", "Олег Кузнецов"}
	freelancers := []struct{ name, title string }{
		{"Иван Петров", "Go разработчик"},
		{"Мария Волкова", "UI/UX дизайнер"},
		{"Дмитрий Орлов", "Fullstack разработчик"},
	}
	jobTitles := []string{
		"Разработка REST API для сервиса доставки",
		"Дизайн мобильного приложения",
		"Интеграция платёжного шлюза",
		"Лендинг для онлайн-школы",
	}

	for _, name := range clientNames {
		c := entity.Client{ID: uuid.New(), Name: name, CreatedAt: now}
		s.AddClient(c)
		demo.Clients = append(demo.Clients, c)
	}

	for _, f := range freelancers {
		fr := entity.Freelancer{ID: uuid.New(), Name: f.name, Title: f.title, CreatedAt: now}
		s.AddFreelancer(fr)
		demo.Freelancers = append(demo.Freelancers, fr)
	}

	for i, title := range jobTitles {
		j := entity.Job{
			ID:        uuid.New(),
			ClientID:  demo.Clients[i%len(demo.Clients)].ID,
			Title:     title,
			Status:    valueobject.JobStatusOpen,
			CreatedAt: now,
		}
		s.AddJob(j)
		demo.Jobs = append(demo.Jobs, j)
	}

	return demo
}
