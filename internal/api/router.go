package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	birdsHandler := &BirdsHandler{DB: db}
	couplesHandler := &CouplesHandler{DB: db}
	nestsHandler := &NestsHandler{DB: db}
	eggsHandler := &EggsHandler{DB: db}
	aviariesHandler := &AviariesHandler{DB: db}
	healthHandler := &HealthRecordsHandler{DB: db}
	statsHandler := &StatsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: register and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Account.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Birds.
	mux.Handle("GET /api/birds", authMW(http.HandlerFunc(birdsHandler.List)))
	mux.Handle("POST /api/birds", authMW(http.HandlerFunc(birdsHandler.Create)))
	mux.Handle("GET /api/birds/{id}", authMW(http.HandlerFunc(birdsHandler.Get)))
	mux.Handle("PUT /api/birds/{id}", authMW(http.HandlerFunc(birdsHandler.Update)))
	mux.Handle("DELETE /api/birds/{id}", authMW(http.HandlerFunc(birdsHandler.Delete)))
	mux.Handle("PUT /api/birds/{id}/image", authMW(http.HandlerFunc(birdsHandler.UploadImage)))
	mux.Handle("GET /api/birds/{id}/image", authMW(http.HandlerFunc(birdsHandler.GetImage)))
	mux.Handle("GET /api/birds/{id}/parents", authMW(http.HandlerFunc(birdsHandler.GetParents)))
	mux.Handle("GET /api/birds/{id}/health", authMW(http.HandlerFunc(birdsHandler.GetHealth)))

	// Couples.
	mux.Handle("GET /api/couples", authMW(http.HandlerFunc(couplesHandler.List)))
	mux.Handle("POST /api/couples", authMW(http.HandlerFunc(couplesHandler.Create)))
	mux.Handle("GET /api/couples/{id}", authMW(http.HandlerFunc(couplesHandler.Get)))
	mux.Handle("PUT /api/couples/{id}", authMW(http.HandlerFunc(couplesHandler.Update)))
	mux.Handle("DELETE /api/couples/{id}", authMW(http.HandlerFunc(couplesHandler.Delete)))
	mux.Handle("GET /api/couples/{id}/nests", authMW(http.HandlerFunc(couplesHandler.GetNests)))
	mux.Handle("GET /api/couples/{id}/offspring", authMW(http.HandlerFunc(couplesHandler.GetOffspring)))

	// Nests.
	mux.Handle("GET /api/nests", authMW(http.HandlerFunc(nestsHandler.List)))
	mux.Handle("POST /api/nests", authMW(http.HandlerFunc(nestsHandler.Create)))
	mux.Handle("GET /api/nests/{id}", authMW(http.HandlerFunc(nestsHandler.Get)))
	mux.Handle("PUT /api/nests/{id}", authMW(http.HandlerFunc(nestsHandler.Update)))
	mux.Handle("DELETE /api/nests/{id}", authMW(http.HandlerFunc(nestsHandler.Delete)))
	mux.Handle("GET /api/nests/{id}/eggs", authMW(http.HandlerFunc(nestsHandler.GetEggs)))
	mux.Handle("POST /api/nests/{id}/hatch", authMW(http.HandlerFunc(nestsHandler.Hatch)))

	// Eggs.
	mux.Handle("GET /api/eggs", authMW(http.HandlerFunc(eggsHandler.List)))
	mux.Handle("POST /api/eggs", authMW(http.HandlerFunc(eggsHandler.Create)))
	mux.Handle("GET /api/eggs/{id}", authMW(http.HandlerFunc(eggsHandler.Get)))
	mux.Handle("PUT /api/eggs/{id}", authMW(http.HandlerFunc(eggsHandler.Update)))
	mux.Handle("DELETE /api/eggs/{id}", authMW(http.HandlerFunc(eggsHandler.Delete)))

	// Aviaries.
	mux.Handle("GET /api/aviaries", authMW(http.HandlerFunc(aviariesHandler.List)))
	mux.Handle("POST /api/aviaries", authMW(http.HandlerFunc(aviariesHandler.Create)))
	mux.Handle("GET /api/aviaries/{id}", authMW(http.HandlerFunc(aviariesHandler.Get)))
	mux.Handle("PUT /api/aviaries/{id}", authMW(http.HandlerFunc(aviariesHandler.Update)))
	mux.Handle("DELETE /api/aviaries/{id}", authMW(http.HandlerFunc(aviariesHandler.Delete)))
	mux.Handle("GET /api/aviaries/{id}/birds", authMW(http.HandlerFunc(aviariesHandler.GetBirds)))

	// Health records.
	mux.Handle("GET /api/health-records", authMW(http.HandlerFunc(healthHandler.List)))
	mux.Handle("POST /api/health-records", authMW(http.HandlerFunc(healthHandler.Create)))
	mux.Handle("GET /api/health-records/{id}", authMW(http.HandlerFunc(healthHandler.Get)))
	mux.Handle("PUT /api/health-records/{id}", authMW(http.HandlerFunc(healthHandler.Update)))
	mux.Handle("DELETE /api/health-records/{id}", authMW(http.HandlerFunc(healthHandler.Delete)))

	// Statistics and export.
	mux.Handle("GET /api/stats", authMW(http.HandlerFunc(statsHandler.Get)))
	mux.Handle("GET /api/export", authMW(http.HandlerFunc(statsHandler.Export)))

	return mux
}
