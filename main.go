package main

import (
	"log"
	"net/http"

	"finance-manager/internal/config"
	"finance-manager/internal/routes"
)

func main() {
	cfg := config.New()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db := initDB(cfg.MySQLDSN())
	engine := routes.Register(db, cfg)

	srv := &http.Server{Addr: cfg.Addr, Handler: engine}
	log.Printf("listening on %s", cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}
