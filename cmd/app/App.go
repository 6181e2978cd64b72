package app

import (
	"context"
	"sync"

	"chatStream/configs"
	"chatStream/internal/handlers"
	"chatStream/internal/hub"
	"chatStream/internal/repositories"
	"chatStream/internal/servers/database"
	"chatStream/internal/servers/http"
	"chatStream/internal/services"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)
	sessionService := services.NewSessionService(app.redis, app.ctx)
	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, sessionService, app.configs)
	chatRepo := repositories.NewChatRepository(db)
	chatService := services.NewChatService(chatRepo, authRepo)

	chatHub := hub.NewHub(chatService, app.configs.Viper.GetInt("chat.history_limit"))
	go chatHub.Run()

	restHandler := handlers.NewRestHandler(authService, chatService)
	socketChatHandler := handlers.NewSocketChatHandler(chatHub, chatService, authService)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		chatHub,
		restHandler,
		socketChatHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.address"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}
