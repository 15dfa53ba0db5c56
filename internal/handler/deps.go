package handler

import (
	"alegarazh/internal/app/db"
	"alegarazh/internal/configs"
)

// AppDeps bundles everything the handlers need.
type AppDeps struct {
	Config *configs.ServerConfig
	Store  *db.Store
}
