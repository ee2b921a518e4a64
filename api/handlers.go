package api

import (
	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/services"
	"github.com/inkwell-app/inkwell-backend/storage"
)

type routeHandlers struct {
	userHandler userHandler
	blogHandler blogHandler
}

// initializeHandlers creates all handlers with their dependencies injected.
func initializeHandlers(db database.Database, provider services.Provider, codec *auth.Codec, images *storage.ImageStore, views *Views, secureCookies bool) *routeHandlers {
	return &routeHandlers{
		userHandler: newUserHandler(provider, codec, secureCookies, views),
		blogHandler: newBlogHandler(db.PostRepo(), images, views),
	}
}
