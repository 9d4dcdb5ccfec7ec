package main

import (
	"log"
	"net/http"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/config"
	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/jobs"
	"github.com/Ne-x-tr-on/toolport-v1/routes"
)

func main() {
	config.LoadEnv()

	a := app.MustNew()
	defer a.Close()

	a.Router.GET("/healthz", func(c *app.Ctx) {
		c.JSON(http.StatusOK, app.H{"ok": true})
	})
	app.RegisterMetricsRoute(a.Router)
	routes.RegisterRoutes(a.Router, a)

	repo := db.NewRepo(a.DB)
	jobs.SpawnOverdueChecker(repo, a.RDB, a.Config.SweepInterval)

	log.Printf("toolport listening on :%s", a.Config.Port)
	if err := a.Router.Run(":" + a.Config.Port); err != nil {
		log.Fatal(err)
	}
}
