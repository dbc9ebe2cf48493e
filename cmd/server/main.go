package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/denisecase/rockfit/internal/leaderboard"
	"github.com/denisecase/rockfit/internal/server"
)

const (
	defaultPort = "8080"
	defaultDB   = "rockfit.db"
)

func main() {
	port := flag.String("port", envOr("PORT", defaultPort), "listen port")
	dbPath := flag.String("db", envOr("ROCKFIT_DB", defaultDB), "leaderboard database path")
	flag.Parse()

	store, err := leaderboard.Open(*dbPath)
	if err != nil {
		log.Fatalf("opening leaderboard at %s: %v", *dbPath, err)
	}
	defer store.Close()

	hub := server.NewHub(store)
	go hub.Run()
	defer hub.Stop()

	http.HandleFunc("/ws", hub.HandleWS)
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Printf("Rockfit server starting on :%s", *port)
	log.Printf("WebSocket endpoint: ws://localhost:%s/ws", *port)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := http.ListenAndServe(":"+*port, nil); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("Server shutting down...")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
