package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"github.com/DiegoDaher/TCA-APP/internal/config"
	"github.com/DiegoDaher/TCA-APP/internal/services"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Mailer     services.Mailer
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret:    []byte(cfg.JWTSecret),
		Issuer:    cfg.JWTIssuer,
		AccessTTL: time.Duration(cfg.AccessTTLSeconds) * time.Second,
	}
	mailer := services.Mailer{
		Host: cfg.EmailHost,
		Port: cfg.EmailPort,
		User: cfg.EmailUser,
		Pass: cfg.EmailPass,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Mailer:     mailer,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	auth := WithAuth(s.DB, s.Tokens)

	r.Route("/api", func(api chi.Router) {
		for _, col := range services.Collections {
			col := col
			api.Route("/"+col.Slug, func(cr chi.Router) {
				cr.Get("/", s.ListCollection(col))
				cr.Get("/byId/{id}", s.GetCollectionRecord(col))
				cr.Get("/columns", s.CollectionColumns(col))

				cr.Group(func(mut chi.Router) {
					mut.Use(auth)
					mut.Post("/add", s.CreateCollectionRecord(col))
					mut.Put("/{id}", s.UpdateCollectionRecord(col))
					mut.Put("/deactivate/{id}", s.DeactivateCollectionRecord(col))
					mut.Put("/restore/{id}", s.RestoreCollectionRecord(col))
				})
			})
		}

		api.Route("/auditoria", func(au chi.Router) {
			au.Use(auth)
			au.Get("/registros", s.ListAuditoria(services.AuditRegistros))
			au.Get("/registros/{id}", s.GetAuditoria(services.AuditRegistros))
			au.Get("/registros/{id}/consultar", s.ConsultarAuditoria(services.AuditRegistros))
			au.Get("/eliminados", s.ListAuditoria(services.AuditEliminados))
			au.Get("/eliminados/{id}", s.GetAuditoria(services.AuditEliminados))
			au.Get("/eliminados/{id}/consultar", s.ConsultarAuditoria(services.AuditEliminados))
		})

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", s.Register)
			ar.Post("/login", s.Login)
			ar.Post("/forgot-password", s.ForgotPassword)

			ar.Group(func(priv chi.Router) {
				priv.Use(auth)
				priv.Get("/profile", s.Profile)
				priv.Get("/verify", s.Verify)
				priv.Put("/change-password", s.ChangePassword)
				priv.Get("/users", s.ListUsers)
				priv.Get("/users/{id}", s.GetUser)
				priv.With(RequireRole("administrador")).Delete("/users/{id}", s.DeactivateUser)
				priv.With(RequireRole("administrador")).Patch("/users/{id}/restore", s.RestoreUser)
			})
		})

		api.Route("/roles", func(rr chi.Router) {
			rr.Use(auth)
			rr.Get("/", s.ListRoles)
			rr.Get("/{id}", s.GetRole)
			rr.Get("/user/{usuario_id}", s.GetUserRoles)
			rr.Get("/users-by-role/{slug}", s.GetUsersByRole)
			rr.Get("/check/{usuario_id}/{slug}", s.CheckUserRole)
			rr.Get("/users/role-count", s.UsersRoleCount)

			rr.Group(func(admin chi.Router) {
				admin.Use(RequireRole("administrador"))
				admin.Post("/", s.CreateRole)
				admin.Put("/{id}", s.UpdateRole)
				admin.Delete("/{id}", s.DeleteRole)
				admin.Post("/assign", s.AssignRole)
				admin.Delete("/assign", s.RemoveRole)
			})
		})

		api.With(auth, RequireRole("administrador")).Get("/admin/metrics/history", s.MetricsHistory)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
