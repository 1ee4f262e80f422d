package server

import (
	"github.com/ferrant/nous/internal"
	"github.com/ferrant/nous/internal/realm"
)

// Option is a functional option for configuring the server.
type Option func(*application)

type application struct {
	config *internal.Config
	realm  *realm.Realm
}

// WithConfig sets the application configuration.
func WithConfig(cfg *internal.Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithRealm sets the realm the server answers queries for.
func WithRealm(r *realm.Realm) Option {
	return func(a *application) {
		a.realm = r
	}
}
