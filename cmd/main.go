package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/victorrChoi/dalgubul/config"
	"github.com/victorrChoi/dalgubul/routes"
	"github.com/victorrChoi/dalgubul/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	// Bootstrap the container early so a bad DATA_FILE path fails at startup.
	st := store.Open(cfg.DataFile)
	if _, err := st.LoadAll(); err != nil {
		log.Fatalf("failed to open container %s: %v", cfg.DataFile, err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg, st)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
