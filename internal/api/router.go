package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/ashokvas/flowspace/internal/api/handlers"
	mw "github.com/ashokvas/flowspace/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret       []byte
	AuthHandler      *handlers.AuthHandler
	ProjectsHandler  *handlers.ProjectsHandler
	AreasHandler     *handlers.AreasHandler
	TasksHandler     *handlers.TasksHandler
	NotesHandler     *handlers.NotesHandler
	ResourcesHandler *handlers.ResourcesHandler
	FilesHandler     *handlers.FilesHandler
	SubscribeHandler *handlers.SubscribeHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
		})

		// Binary upload is authorized by its signed token, not a session.
		api.Post("/files/upload", dep.FilesHandler.Upload)

		// Protected routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))

			protected.Route("/projects", func(pr chi.Router) {
				pr.Get("/", dep.ProjectsHandler.List)
				pr.Post("/", dep.ProjectsHandler.Create)
				pr.Get("/{id}", dep.ProjectsHandler.Get)
				pr.Patch("/{id}", dep.ProjectsHandler.Update)
				pr.Delete("/{id}", dep.ProjectsHandler.Delete)
				pr.Get("/{id}/areas", dep.AreasHandler.ListByProject)
				pr.Get("/{id}/notes", dep.NotesHandler.ListByProject)
				pr.Get("/{id}/resources", dep.ResourcesHandler.ListByProject)
			})

			protected.Route("/areas", func(ar chi.Router) {
				ar.Post("/", dep.AreasHandler.Create)
				ar.Patch("/{id}", dep.AreasHandler.Update)
				ar.Delete("/{id}", dep.AreasHandler.Delete)
				ar.Get("/{id}/tasks", dep.TasksHandler.ListByArea)
				ar.Get("/{id}/notes", dep.NotesHandler.ListByArea)
				ar.Get("/{id}/resources", dep.ResourcesHandler.ListByArea)
			})

			protected.Route("/tasks", func(tr chi.Router) {
				tr.Get("/", dep.TasksHandler.List)
				tr.Post("/", dep.TasksHandler.Create)
				tr.Patch("/{id}", dep.TasksHandler.Update)
				tr.Post("/{id}/cycle", dep.TasksHandler.Cycle)
				tr.Delete("/{id}", dep.TasksHandler.Delete)
			})

			protected.Route("/notes", func(nr chi.Router) {
				nr.Post("/", dep.NotesHandler.Create)
				nr.Patch("/{id}", dep.NotesHandler.Update)
				nr.Delete("/{id}", dep.NotesHandler.Delete)
				nr.Post("/{id}/attachments", dep.NotesHandler.AddAttachment)
				nr.Delete("/{id}/attachments/{ref}", dep.NotesHandler.RemoveAttachment)
			})

			protected.Route("/resources", func(rr chi.Router) {
				rr.Post("/", dep.ResourcesHandler.Create)
				rr.Patch("/{id}", dep.ResourcesHandler.Update)
				rr.Delete("/{id}", dep.ResourcesHandler.Delete)
			})

			protected.Route("/files", func(fr chi.Router) {
				fr.Post("/upload-url", dep.FilesHandler.UploadURL)
				fr.Get("/{ref}", dep.FilesHandler.Serve)
				fr.Get("/{ref}/url", dep.FilesHandler.URLFor)
			})

		})

		// Websocket subscriptions: the JWT may arrive as a token query
		// parameter since browsers cannot set Authorization on upgrades.
		api.Group(func(ws chi.Router) {
			ws.Use(mw.QueryToken)
			ws.Use(mw.Auth(dep.HMACSecret))
			ws.Get("/subscribe", dep.SubscribeHandler.Subscribe)
		})
	})

	return r
}
