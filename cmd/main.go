package main

import (
	"net/http"

	"CardGolf/config"
	"CardGolf/internal/auth"
	"CardGolf/internal/game/manager"
	"CardGolf/internal/middleware"
	"CardGolf/internal/rooms"
	"CardGolf/internal/storage"
	"CardGolf/internal/utils"
	"CardGolf/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	utils.Init()

	if err := storage.InitRedis(
		config.C.Redis.Addr,
		config.C.Redis.Password,
		config.C.Redis.DB,
	); err != nil {
		utils.Error.Fatalf("Redis init failed: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// the hub must run before anything can broadcast
	hub := websocket.NewHub()
	go hub.Run()

	gameMgr := manager.NewGameManager(hub)
	gameMgr.DefaultGameWord = config.C.Game.Word
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	hub.OnClientLive = gameMgr.HandleClientLive
	hub.OnClientGone = gameMgr.HandleClientGone

	repo := rooms.NewRedisRepo(storage.Rdb)
	svc := rooms.NewService(repo, config.C.Game.RoomTTL, hub)

	// room registry <-> engine wiring
	svc.OnRoomCreated = func(room *rooms.Room) error {
		utils.Print.Info("Room created", "gameId", room.ID, "host", room.HostID)
		return gameMgr.StartGame(room)
	}
	svc.OnPlayerJoined = gameMgr.AddPlayer
	gameMgr.OnPlayerLeft = svc.DropMembership

	sessionHandler := auth.NewHandler([]byte(config.C.JWT.Secret))
	r.POST("/session", sessionHandler.CreateSession)

	secret := []byte(config.C.JWT.Secret)
	authed := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		authed.GET("/ws", websocket.ServeWS(hub))

		rh := rooms.NewHandler(svc)
		authed.POST("/games", rh.Create)
		authed.POST("/games/join", rh.Join)
		authed.POST("/games/leave", rh.Leave)
	}

	utils.Info.Printf("Server running on %s", config.C.Server.Port)
	r.Run(config.C.Server.Port)
}
