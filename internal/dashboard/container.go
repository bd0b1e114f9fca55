package dashboard

import "github.com/saulo-duarte/classroom-lambda/internal/quiz"

type DashboardContainer struct {
	Service Service
	Handler *Handler
}

func NewDashboardContainer(store quiz.Store) *DashboardContainer {
	service := NewService(store)
	handler := NewHandler(service)

	return &DashboardContainer{
		Service: service,
		Handler: handler,
	}
}
