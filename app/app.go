package app

import (
	"github.com/go-chi/oauth"

	"github.com/deadbrock/avalia-o/config"
	"github.com/deadbrock/avalia-o/store"
)

type App struct {
	store.Stores
	*oauth.BearerServer
	config.Config
}
