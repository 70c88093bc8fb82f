package gorouter

import (
	"context"

	router "github.com/goliatone/go-router"
)

// exchange is the request/response surface the route handlers need.
type exchange interface {
	Context() context.Context
	Query(name string) string
	Header(name string) string
	Param(name string) string
	Local(key string) any
	Body() []byte
	SetHeader(key, value string)
	Send(body []byte) error
	JSON(status int, payload any) error
}

type routerExchange struct {
	ctx router.Context
}

func (x routerExchange) Context() context.Context    { return x.ctx.Context() }
func (x routerExchange) Query(name string) string    { return x.ctx.Query(name) }
func (x routerExchange) Header(name string) string   { return x.ctx.Header(name) }
func (x routerExchange) Param(name string) string    { return x.ctx.Param(name) }
func (x routerExchange) Local(key string) any        { return x.ctx.Locals(key) }
func (x routerExchange) Body() []byte                { return x.ctx.Body() }
func (x routerExchange) SetHeader(key, value string) { x.ctx.SetHeader(key, value) }
func (x routerExchange) Send(body []byte) error      { return x.ctx.Send(body) }
func (x routerExchange) JSON(status int, payload any) error {
	return x.ctx.JSON(status, payload)
}
