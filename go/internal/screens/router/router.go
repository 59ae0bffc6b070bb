// Package router mounts the screen that belongs to a location.
package router

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/mcdev12/chipstore/go/internal/screens"
	"github.com/mcdev12/chipstore/go/internal/screens/checkout"
	"github.com/mcdev12/chipstore/go/internal/screens/complete"
	"github.com/mcdev12/chipstore/go/internal/screens/store"
)

var ErrNoRoute = errors.New("no route")

type Router struct {
	checkout checkout.Deps
}

func New(checkoutDeps checkout.Deps) *Router {
	return &Router{checkout: checkoutDeps}
}

// Mount parses location and mounts its screen with env. The caller owns the
// returned screen and must Close it.
func (r *Router) Mount(location string, env screens.Env) (screens.Screen, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location %q: %w", location, err)
	}

	switch u.Path {
	case store.Path, "":
		return store.New(env), nil
	case checkout.Path:
		return checkout.New(env, r.checkout, u), nil
	case complete.Path:
		return complete.New(env), nil
	default:
		return nil, fmt.Errorf("%w for %q", ErrNoRoute, u.Path)
	}
}
