// Package backend names every marketplace endpoint the console uses. It
// adds no caching, validation or transformation of its own.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"admin-console/internal/apiclient"
	"admin-console/internal/model"
)

// Requester is the gateway the facade delegates to.
type Requester interface {
	Request(ctx context.Context, path string, opts apiclient.RequestOptions) (json.RawMessage, error)
}

// Params is the free-form query bag list operations accept. Blank values
// are dropped when encoding.
type Params map[string]string

func (p Params) With(key string, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

func (p Params) Encode() string {
	values := url.Values{}
	for key, value := range p {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}

type Facade struct {
	api Requester
}

func New(api Requester) *Facade {
	return &Facade{api: api}
}

func withQuery(path string, params Params) string {
	if encoded := params.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func idPath(base string, id int64, suffix ...string) string {
	path := base + "/" + strconv.FormatInt(id, 10)
	for _, part := range suffix {
		path += "/" + part
	}
	return path
}

func call[T any](ctx context.Context, f *Facade, method string, path string, body any) (T, error) {
	var out T
	data, err := f.api.Request(ctx, path, apiclient.RequestOptions{Method: method, Body: body})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return out, nil
}

func get[T any](ctx context.Context, f *Facade, path string) (T, error) {
	return call[T](ctx, f, http.MethodGet, path, nil)
}

func send(ctx context.Context, f *Facade, method string, path string, body any) (model.MessageResponse, error) {
	return call[model.MessageResponse](ctx, f, method, path, body)
}
