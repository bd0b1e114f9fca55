package quiz

type QuizContainer struct {
	Controller *Controller
	Service    Service
	Handler    *Handler
}

func NewQuizContainer(store Store, opts ...Option) *QuizContainer {
	controller := NewController(store, opts...)
	service := NewService(store, controller)
	handler := NewHandler(service)

	return &QuizContainer{
		Controller: controller,
		Service:    service,
		Handler:    handler,
	}
}
