package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the full HTTP surface: public auth routes, the
// token-guarded blog routes, and static serving of uploaded images.
func setupRoutes(r chi.Router, handlers *routeHandlers, guard authMiddleware, publicDir string) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login", http.StatusFound)
	})
	r.Get("/login", handlers.userHandler.showLogin())
	r.Get("/register", handlers.userHandler.showRegister())

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", handlers.userHandler.signup())
		r.Post("/login", handlers.userHandler.login())
	})

	r.Group(func(r chi.Router) {
		r.Use(guard.authenticate)

		r.Get("/blog", handlers.blogHandler.listPosts())
		r.Get("/blog/create", handlers.blogHandler.showCreate())
		r.Post("/blog/create", handlers.blogHandler.createPost())
		r.Post("/blog/nextPost", handlers.blogHandler.nextPost())
		r.Get("/blog/{postID}", handlers.blogHandler.showPost())
		r.Put("/blog", handlers.blogHandler.updatePost())
	})

	imageServer := http.StripPrefix("/images/",
		http.FileServer(http.Dir(filepath.Join(publicDir, "images"))))
	r.Get("/images/*", imageServer.ServeHTTP)

	cssServer := http.StripPrefix("/css/",
		http.FileServer(http.Dir(filepath.Join(publicDir, "css"))))
	r.Get("/css/*", cssServer.ServeHTTP)
}
