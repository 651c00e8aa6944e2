package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Shubham-Lal/GuessPaint/api"
	"github.com/Shubham-Lal/GuessPaint/hub"
	"github.com/Shubham-Lal/GuessPaint/metrics"
	"github.com/Shubham-Lal/GuessPaint/protocol"
	ws "github.com/Shubham-Lal/GuessPaint/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using environment variables")
	}
	setupLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "5001"
	}

	rooms := hub.New()
	handler := protocol.NewHandler(rooms)

	apiRouter := mux.NewRouter()
	apiRouter.Use(api.CORS)
	apiRouter.HandleFunc("/ws", wsHandler(rooms, handler))
	api.NewServer(rooms).Register(apiRouter)

	apiServer := &http.Server{
		Addr: ":" + port,
		Handler: promhttp.InstrumentHandlerInFlight(metrics.APIInFlightGauge,
			promhttp.InstrumentHandlerCounter(metrics.APIRequestsCounter,
				apiRouter)),
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    ":" + metricsPort,
		Handler: metricsRouter,
	}

	go func() {
		log.Info("Starting GuessPaint server on port ", port)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: ", err)
		}
	}()

	go func() {
		log.Info("Starting metrics server on port ", metricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Metrics server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed: ", err)
	}

	log.Info("Shutting down metrics server...")
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Error("Metrics server shutdown failed: ", err)
	}
}

func setupLogger() {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func wsHandler(rooms *hub.Hub, handler *protocol.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade connection: ", err)
			return
		}

		wsConn := ws.NewConn(uuid.New().String(), conn, rooms, handler)
		log.WithFields(log.Fields{"conn": wsConn.ID()}).Info("New connection")
		wsConn.Start()
	}
}
