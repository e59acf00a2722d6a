package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"

	"github.com/scythe504/typerace-backend/internal/game"
	"github.com/scythe504/typerace-backend/internal/ws"
)

type Server struct {
	port int

	wsHandler *ws.Handler
}

func NewServer() *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		port = 3000
	}

	registry := game.NewRegistry(clockwork.NewRealClock())
	newServer := &Server{
		port:      port,
		wsHandler: ws.NewHandler(registry),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
