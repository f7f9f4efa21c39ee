package main

import (
	"log"

	"assessform-client/internal/config"
	"assessform-client/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Server
	srv := server.New(cfg)

	// 3. Run Server
	log.Fatal(srv.Run())
}
