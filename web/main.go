package main

import (
	"flag"
	"log"
	"os"

	"github.com/velten/go-fractal-explorer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)

	log.Printf("Fractal Explorer Web Server")
	log.Printf("Visit http://localhost:%d to start exploring", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
