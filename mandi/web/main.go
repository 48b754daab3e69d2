package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandiops.com/mandiops/core"
	"mandiops.com/mandiops/infrastructure/devops"
	mandi "mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/mandi/web/handlers/session"
)

func main() {
	r := gin.Default()

	cfg, err := devops.LoadDeployment(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("using closed weekday: %s\n", cfg.ClosedWeekday)

	closed, err := cfg.ClosedWeekdayValue()
	if err != nil {
		log.Fatal(err)
	}
	gate := mandi.NewScheduleGate(closed)

	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/api/mandi/manifest/dev", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     "1.0.0-dev",
			"description": "Mandi Reporting API Manifest for Development",
		})
	})

	api := r.Group("/api/mandi/v1.0")
	{
		session.Register(api, dm, gate, cfg.QueryTimeout())
	}

	r.Run("0.0.0.0:8090")
}
