package handlers

import (
	"net/http"
	"time"

	"github.com/blessedbot/blessbackend/config"
	"github.com/blessedbot/blessbackend/database"
	"github.com/blessedbot/blessbackend/repository"
	"github.com/blessedbot/blessbackend/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter wires every endpoint of the admin API onto a chi router.
func NewRouter(cfg config.Config, store *database.Store) http.Handler {
	r := chi.NewRouter()

	// credentials cannot be combined with a wildcard origin
	allowCredentials := true
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			allowCredentials = false
		}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	metrics := NewMetrics()
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	languageHandler := &LanguageHandler{Store: store}
	genderHandler := &GenderHandler{Store: store}
	blessHandler := &BlessHandler{Store: store}
	personHandler := &PersonHandler{Store: store}
	configHandler := NewConfigurationHandler(repository.NewConfigurationRepository(store))
	backupHandler := &BackupHandler{
		Backups:        services.NewBackupService(store, cfg),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	r.Route("/languages", func(r chi.Router) {
		r.Get("/", languageHandler.ListLanguages)
		r.Post("/", languageHandler.CreateLanguage)
		r.Put("/{language_id}", languageHandler.UpdateLanguage)
		r.Delete("/{language_id}", languageHandler.DeleteLanguage)
	})

	r.Route("/genders", func(r chi.Router) {
		r.Get("/", genderHandler.ListGenders)
		r.Post("/", genderHandler.CreateGender)
		r.Put("/{gender_id}", genderHandler.UpdateGender)
		r.Delete("/{gender_id}", genderHandler.DeleteGender)
	})

	r.Route("/blesses", func(r chi.Router) {
		r.Get("/", blessHandler.ListBlesses)
		r.Post("/", blessHandler.CreateBless)
		r.Put("/{bless_id}", blessHandler.UpdateBless)
		r.Delete("/{bless_id}", blessHandler.DeleteBless)
	})

	r.Route("/persons", func(r chi.Router) {
		r.Get("/", personHandler.ListPersons)
		r.Post("/", personHandler.CreatePerson)
		r.Put("/{person_id}", personHandler.UpdatePerson)
		r.Delete("/{person_id}", personHandler.DeletePerson)
	})

	r.Route("/configuration", func(r chi.Router) {
		r.Get("/", configHandler.GetConfiguration)
		r.Put("/", configHandler.SetConfiguration)
		r.Patch("/", configHandler.PatchConfiguration)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/backup", backupHandler.DownloadBackup)
	r.Post("/restore", backupHandler.RestoreBackup)

	return r
}
