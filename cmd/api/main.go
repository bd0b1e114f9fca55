package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/container"
	"github.com/saulo-duarte/classroom-lambda/internal/router"
	"github.com/saulo-duarte/classroom-lambda/internal/user"
)

var adapter *chiadapter.ChiLambda

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	c := container.New()
	defer c.Close()

	r := router.New(router.RouterConfig{
		QuizHandler:      c.QuizContainer.Handler,
		DashboardHandler: c.DashboardContainer.Handler,
		AIQuizHandler:    c.AIQuizContainer.Handler,
		UserHandler:      user.NewHandler(),
	})

	if c.Settings.IsLambda() {
		adapter = chiadapter.New(r)
		lambda.Start(handler)
		return
	}

	addr := ":" + c.Settings.Port
	config.Logger.Infof("Listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		config.Logger.WithError(err).Fatal("Server stopped")
	}
}
