package main

import (
	"ProSpine/Config"
	"ProSpine/CronJobs"
	"ProSpine/FirebaseMessaging"
	"ProSpine/Models"
	"ProSpine/Routes"
	"ProSpine/Whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := Config.Load()
	gin.SetMode(cfg.GinMode)

	Models.ConnectDataBase()
	FirebaseMessaging.Setup()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	Routes.ConfigRoutes(router)

	retentionSweep := CronJobs.NewRetentionSweep(Models.DB)
	scheduler := retentionSweep.StartRetentionCron()
	_ = scheduler

	go Whatsapp.Listen()

	router.Run(":" + cfg.AppPort)
}
