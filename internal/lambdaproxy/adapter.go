// Package lambdaproxy serves an http.Handler from API Gateway HTTP API (payload v2) events.
package lambdaproxy

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// HandlerFunc is the Lambda handler signature for HTTP API events
type HandlerFunc func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// NewHandler routes each event through h
func NewHandler(h http.Handler) HandlerFunc {
	return httpadapter.NewV2(h).ProxyWithContext
}
