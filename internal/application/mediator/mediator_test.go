package mediator_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

type pingRequest struct {
	PlayerID int
}

func (p *pingRequest) ScopePlayerID() int { return p.PlayerID }

type unscopedRequest struct{}

func pingHandler(err error) mediator.RequestHandler {
	return handlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		if err != nil {
			return nil, err
		}
		return "pong", nil
	})
}

type handlerFunc func(ctx context.Context, request mediator.Request) (mediator.Response, error)

func (f handlerFunc) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return f(ctx, request)
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingRequest](m, pingHandler(nil)))

	response, err := m.Send(context.Background(), &pingRequest{PlayerID: 1})

	require.NoError(t, err)
	assert.Equal(t, "pong", response)
}

func TestMediator_UnregisteredRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &unscopedRequest{})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_DuplicateRegistration(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingRequest](m, pingHandler(nil)))

	err := mediator.RegisterHandler[*pingRequest](m, pingHandler(nil))

	assert.ErrorContains(t, err, "already registered")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingRequest](m, pingHandler(nil)))

	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			response, err := next(ctx, request)
			order = append(order, name+":after")
			return response, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingRequest{PlayerID: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestRateLimitMiddleware_PerPlayerBuckets(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingRequest](m, pingHandler(nil)))
	m.RegisterMiddleware(mediator.RateLimitMiddleware(mediator.NewPlayerRateLimiter(0.001, 2)))

	ctx := context.Background()
	_, err := m.Send(ctx, &pingRequest{PlayerID: 1})
	require.NoError(t, err)
	_, err = m.Send(ctx, &pingRequest{PlayerID: 1})
	require.NoError(t, err)

	_, err = m.Send(ctx, &pingRequest{PlayerID: 1})
	assert.True(t, shared.HasCode(err, shared.ResultCodeCommonRequestLimit))

	_, err = m.Send(ctx, &pingRequest{PlayerID: 2})
	assert.NoError(t, err, "other players keep their own bucket")
}

func TestLoggingMiddleware_DomainFailureLoggedAsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "DEBUG", "text")

	m := mediator.NewMediator()
	busy := shared.NewDomainError(shared.ResultCodeFortBuildCarpenterBusy, "no carpenter available")
	require.NoError(t, mediator.RegisterHandler[*pingRequest](m, pingHandler(busy)))
	m.RegisterMiddleware(mediator.LoggingMiddleware(logger))

	_, err := m.Send(context.Background(), &pingRequest{PlayerID: 9})

	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "WARN  Request failed")
	assert.Contains(t, out, "player_id=9")
	assert.Contains(t, out, "request=pingRequest")
	assert.Contains(t, out, "result_code=FORT_BUILD_CARPENTER_BUSY")
}

func TestLoggingMiddleware_UnexpectedFailureLoggedAsError(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "DEBUG", "text")

	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingRequest](m, pingHandler(errors.New("connection reset"))))
	m.RegisterMiddleware(mediator.LoggingMiddleware(logger))

	_, err := m.Send(context.Background(), &pingRequest{PlayerID: 9})

	require.Error(t, err)
	assert.Contains(t, buf.String(), "ERROR Request failed")
}
