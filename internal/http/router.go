package http

import (
	"net/http"

	"oleo-backend/internal/handlers"
	"oleo-backend/internal/middleware"
	"oleo-backend/internal/models"
	"oleo-backend/internal/stream"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	usuarioHandler *handlers.UsuarioHandler,
	rutaHandler *handlers.RutaHandler,
	recogidaHandler *handlers.RecogidaHandler,
	rankingHandler *handlers.RankingHandler,
	comunidadHandler *handlers.ComunidadHandler,
	trabajadorHandler *handlers.TrabajadorHandler,
	comercialHandler *handlers.ComercialHandler,
	donacionHandler *handlers.DonacionHandler,
	impactoHandler *handlers.ImpactoHandler,
	reportHandler *handlers.ReportHandler,
	totpHandler *handlers.TOTPHandler,
	incidenciaHandler *handlers.IncidenciaHandler,
	mailHandler *handlers.MailHandler,
	storageHandler *handlers.StorageHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	hub *stream.Hub,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireRol(models.RolAdmin)(h).ServeHTTP
	}

	// Public API - authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")

	// Public API - marketing site
	r.HandleFunc("/api/contacto", mailHandler.Contacto).Methods("POST")
	r.HandleFunc("/api/inscripcion", mailHandler.Inscripcion).Methods("POST")
	r.HandleFunc("/api/impacto", impactoHandler.Resumen).Methods("GET")
	r.HandleFunc("/api/ranking", rankingHandler.RankingGlobal).Methods("GET")
	r.HandleFunc("/api/ranking/distrito/{distrito}", rankingHandler.RankingDistrito).Methods("GET")

	// Public API - donations (webhook is called by the gateway)
	r.HandleFunc("/api/donaciones/order", donacionHandler.CreateOrder).Methods("POST")
	r.HandleFunc("/api/donaciones/verify", donacionHandler.VerifyPayment).Methods("POST")
	r.HandleFunc("/api/donaciones/webhook", donacionHandler.Webhook).Methods("POST")

	// Live impact stream
	r.HandleFunc("/ws/impacto", hub.ServeWS)

	// Authenticated profile routes
	accountAPI := r.PathPrefix("/api/account").Subrouter()
	accountAPI.Use(authMiddleware.Authenticate)
	accountAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	accountAPI.HandleFunc("/password", authHandler.ChangePassword).Methods("PUT")
	accountAPI.HandleFunc("/2fa/setup", totpHandler.Setup).Methods("POST")
	accountAPI.HandleFunc("/2fa/enable", totpHandler.Enable).Methods("POST")
	accountAPI.HandleFunc("/2fa/disable", totpHandler.Disable).Methods("POST")
	accountAPI.HandleFunc("/2fa/status", totpHandler.Status).Methods("GET")

	// Users (admin only)
	usuariosAPI := r.PathPrefix("/api/usuarios").Subrouter()
	usuariosAPI.Use(authMiddleware.Authenticate)
	usuariosAPI.HandleFunc("", admin(usuarioHandler.ListUsuarios)).Methods("GET")
	usuariosAPI.HandleFunc("", admin(usuarioHandler.CreateUsuario)).Methods("POST")
	usuariosAPI.HandleFunc("/{id}", admin(usuarioHandler.GetUsuario)).Methods("GET")
	usuariosAPI.HandleFunc("/{id}", admin(usuarioHandler.UpdateUsuario)).Methods("PUT")
	usuariosAPI.HandleFunc("/{id}", admin(usuarioHandler.DeleteUsuario)).Methods("DELETE")

	// Routes and batch completion (admin only)
	rutasAPI := r.PathPrefix("/api/rutas").Subrouter()
	rutasAPI.Use(authMiddleware.Authenticate)
	rutasAPI.HandleFunc("", admin(rutaHandler.ListRutas)).Methods("GET")
	rutasAPI.HandleFunc("", admin(rutaHandler.CreateRuta)).Methods("POST")
	rutasAPI.HandleFunc("/{id}", admin(rutaHandler.GetRuta)).Methods("GET")
	rutasAPI.HandleFunc("/{id}", admin(rutaHandler.UpdateRuta)).Methods("PUT")
	rutasAPI.HandleFunc("/{id}", admin(rutaHandler.DeleteRuta)).Methods("DELETE")
	rutasAPI.HandleFunc("/{id}/clientes", admin(rutaHandler.AddCliente)).Methods("POST")
	rutasAPI.HandleFunc("/{id}/clientes/litros", admin(rutaHandler.SetLitros)).Methods("PUT")
	rutasAPI.HandleFunc("/{id}/clientes/{clienteId}", admin(rutaHandler.RemoveCliente)).Methods("DELETE")
	rutasAPI.HandleFunc("/{id}/completar", admin(rutaHandler.CompletarRuta)).Methods("POST")

	// Pickup records; clients may read, admins mutate
	recogidasAPI := r.PathPrefix("/api/recogidas").Subrouter()
	recogidasAPI.Use(authMiddleware.Authenticate)
	recogidasAPI.HandleFunc("", recogidaHandler.ListRecogidas).Methods("GET")
	recogidasAPI.HandleFunc("", admin(recogidaHandler.CreateRecogida)).Methods("POST")
	recogidasAPI.HandleFunc("/stats", recogidaHandler.Stats).Methods("GET")
	recogidasAPI.HandleFunc("/{id}", admin(recogidaHandler.UpdateRecogida)).Methods("PUT")
	recogidasAPI.HandleFunc("/{id}", admin(recogidaHandler.DeleteRecogida)).Methods("DELETE")

	// Communities (admins and community administrators)
	comunidadesAPI := r.PathPrefix("/api/comunidades").Subrouter()
	comunidadesAPI.Use(authMiddleware.RequireRol(models.RolAdmin, models.RolComunidad))
	comunidadesAPI.HandleFunc("", comunidadHandler.ListComunidades).Methods("GET")
	comunidadesAPI.HandleFunc("", admin(comunidadHandler.CreateComunidad)).Methods("POST")
	comunidadesAPI.HandleFunc("/{id}", comunidadHandler.GetComunidad).Methods("GET")
	comunidadesAPI.HandleFunc("/{id}", admin(comunidadHandler.UpdateComunidad)).Methods("PUT")
	comunidadesAPI.HandleFunc("/{id}", admin(comunidadHandler.DeleteComunidad)).Methods("DELETE")

	// Workers and shifts (admin only)
	trabajadoresAPI := r.PathPrefix("/api/trabajadores").Subrouter()
	trabajadoresAPI.Use(authMiddleware.RequireRol(models.RolAdmin))
	trabajadoresAPI.HandleFunc("", trabajadorHandler.ListTrabajadores).Methods("GET")
	trabajadoresAPI.HandleFunc("", trabajadorHandler.CreateTrabajador).Methods("POST")
	trabajadoresAPI.HandleFunc("/{id}", trabajadorHandler.GetTrabajador).Methods("GET")
	trabajadoresAPI.HandleFunc("/{id}", trabajadorHandler.UpdateTrabajador).Methods("PUT")
	trabajadoresAPI.HandleFunc("/{id}", trabajadorHandler.DeleteTrabajador).Methods("DELETE")

	turnosAPI := r.PathPrefix("/api/turnos").Subrouter()
	turnosAPI.Use(authMiddleware.RequireRol(models.RolAdmin))
	turnosAPI.HandleFunc("", trabajadorHandler.ListTurnos).Methods("GET")
	turnosAPI.HandleFunc("", trabajadorHandler.CreateTurno).Methods("POST")
	turnosAPI.HandleFunc("/{id}", trabajadorHandler.DeleteTurno).Methods("DELETE")

	// Commercial agents: captured clients and commissions
	comercialesAPI := r.PathPrefix("/api/comerciales").Subrouter()
	comercialesAPI.Use(authMiddleware.RequireRol(models.RolAdmin, models.RolComercial))
	comercialesAPI.HandleFunc("/captados", comercialHandler.ListCaptados).Methods("GET")
	comercialesAPI.HandleFunc("/captados", comercialHandler.CreateCaptado).Methods("POST")
	comercialesAPI.HandleFunc("/captados/{id}", comercialHandler.DeleteCaptado).Methods("DELETE")
	comercialesAPI.HandleFunc("/comisiones", comercialHandler.ListComisiones).Methods("GET")
	comercialesAPI.HandleFunc("/comisiones/{id}/pagar", admin(comercialHandler.MarkComisionPagada)).Methods("PUT")

	// Incidents (any authenticated user may report, admins manage)
	incidenciasAPI := r.PathPrefix("/api/incidencias").Subrouter()
	incidenciasAPI.Use(authMiddleware.Authenticate)
	incidenciasAPI.HandleFunc("", incidenciaHandler.CreateIncidencia).Methods("POST")
	incidenciasAPI.HandleFunc("", admin(incidenciaHandler.ListIncidencias)).Methods("GET")
	incidenciasAPI.HandleFunc("/{id}/resolver", admin(incidenciaHandler.ResolverIncidencia)).Methods("PUT")
	incidenciasAPI.HandleFunc("/{id}", admin(incidenciaHandler.DeleteIncidencia)).Methods("DELETE")

	// Donation listing (admin only)
	r.Handle("/api/donaciones",
		authMiddleware.RequireRol(models.RolAdmin)(http.HandlerFunc(donacionHandler.ListDonaciones))).Methods("GET")

	// PDF reports
	reportesAPI := r.PathPrefix("/api/reportes").Subrouter()
	reportesAPI.Use(authMiddleware.Authenticate)
	reportesAPI.HandleFunc("/certificado/{clienteId}", reportHandler.CertificadoImpacto).Methods("GET")
	reportesAPI.HandleFunc("/distritos", admin(reportHandler.ResumenDistritos)).Methods("GET")

	// Object storage uploads (admin only)
	r.Handle("/api/storage/upload",
		authMiddleware.RequireRol(models.RolAdmin)(http.HandlerFunc(storageHandler.Upload))).Methods("POST")

	// Health endpoint (no auth, for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}
