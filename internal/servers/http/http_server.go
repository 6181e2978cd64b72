package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"chatStream/configs"
	"chatStream/internal/handlers"
	"chatStream/internal/hub"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx               context.Context
	config            *configs.Config
	chatHub           *hub.Hub
	router            *gin.Engine
	restHandler       *handlers.RestHandler
	socketChatHandler *handlers.SocketChatHandler
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	chatHub *hub.Hub,
	restHandler *handlers.RestHandler,
	socketChatHandler *handlers.SocketChatHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:               ctx,
			config:            config,
			chatHub:           chatHub,
			restHandler:       restHandler,
			socketChatHandler: socketChatHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRoutes()

	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.Default()
}

func (hs *HttpServer) setupRoutes() {
	hs.router.POST("/register", hs.restHandler.Register)
	hs.router.POST("/login", hs.restHandler.Login)

	authorized := hs.router.Group("/", hs.restHandler.MustAuthenticateMiddleware())
	{
		authorized.POST("/logout", hs.restHandler.Logout)
		authorized.GET("/users", hs.restHandler.GetUsers)
		authorized.GET("/users/me", hs.restHandler.GetCurrentUser)
		authorized.POST("/chats", hs.restHandler.OpenChat)
		authorized.GET("/chats", hs.restHandler.GetChats)
		authorized.GET("/chats/:chatID/messages", hs.restHandler.GetChatMessages)
	}

	// The socket route does its own authentication so browsers can connect
	// with a cookie or query token.
	hs.router.GET("/ws/chat/:chatID", hs.socketChatHandler.HandleSocketChatRoute)

	hs.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (hs *HttpServer) startServer() *http.Server {
	server := &http.Server{
		Addr:    hs.config.Viper.GetString("server.address"),
		Handler: hs.router,
	}

	tlsCert := hs.config.Viper.GetString("server.tls_cert")
	tlsKey := hs.config.Viper.GetString("server.tls_key")

	go func() {
		var err error
		if tlsCert != "" && tlsKey != "" {
			log.Printf("HTTPS server started on %v", server.Addr)
			err = server.ListenAndServeTLS(tlsCert, tlsKey)
		} else {
			log.Printf("HTTP server started on %v", server.Addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Stop routing first so sessions stop delivering to the transport.
	hs.chatHub.Close()

	if err := server.Shutdown(hs.ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
