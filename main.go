package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/auth"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/canvas"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/gallery"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
)

func main() {
	// Initialize configuration before everything else
	configPath := "settings.cfg"
	if err := configuration.Initialize(configPath); err != nil {
		fmt.Printf("Error initializing configuration: %v\n", err)
		return
	}

	if err := logger.Initialize(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		return
	}
	defer logger.Close()
	logger.ConfigInfo("System started - Configuration loaded from: %s", configPath)

	// Database initialization
	dbPath := configuration.GetString("Gallery", "database_path", "sketchscript.db")
	store, err := gallery.InitDB(dbPath)
	if err != nil {
		logger.Fatal(logger.AreaDatabase, "Database initialization failed: %v", err)
	}
	defer store.Close()
	logger.Info(logger.AreaDatabase, "Database tables successfully initialized")

	canvasHandler := canvas.NewHandler()
	logger.Info(logger.AreaCanvas, "Canvas handler created")

	// Canvas websocket
	http.HandleFunc("/ws", canvasHandler.HandleWebSocket)

	// Authentication and gallery API routes
	http.HandleFunc("/api/session", gallery.HandleGuestSession)
	http.HandleFunc("/api/register", store.HandleRegister)
	http.HandleFunc("/api/login", store.HandleLogin)
	http.HandleFunc("/api/syntax", gallery.HandleSyntax)
	http.HandleFunc("/api/sketches", auth.RequireUserToken(store.HandleSketches))
	http.HandleFunc("/api/sketches/", auth.RequireUserToken(store.HandleSketches))

	// Static frontend
	staticDir := configuration.GetString("Server", "static_dir", "web")
	http.Handle("/js/", http.StripPrefix("/js/", http.FileServer(http.Dir(staticDir+"/js"))))
	http.Handle("/css/", http.StripPrefix("/css/", http.FileServer(http.Dir(staticDir+"/css"))))

	http.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	// Root route - MUST be registered last to not override specific routes
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		indexPath := staticDir + "/index.html"
		if _, err := os.Stat(indexPath); err == nil {
			http.ServeFile(w, r, indexPath)
			return
		}
		logger.Error(logger.AreaGeneral, "index.html not found in %s", staticDir)
		http.Error(w, "Main HTML file not found", http.StatusNotFound)
	})

	startHTTPServer()
}

// startHTTPServer starts the HTTP server with the configured listen address
// and timeouts.
func startHTTPServer() {
	addr := configuration.GetString("Server", "listen_address", ":8080")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  configuration.GetDuration("Server", "read_timeout", 0),
		WriteTimeout: configuration.GetDuration("Server", "write_timeout", 0),
		IdleTimeout:  configuration.GetDuration("Server", "idle_timeout", 0),
	}

	logger.Info(logger.AreaGeneral, "Starting HTTP server on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal(logger.AreaGeneral, "HTTP server startup failed: %v", err)
	}
}
