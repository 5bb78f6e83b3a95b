package main

import (
	"taskmanager/internal/config"
	"taskmanager/internal/logger"
	"taskmanager/internal/mongo"
	"taskmanager/internal/mysql"
	"taskmanager/internal/routing"
	"taskmanager/pkg/middleware"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	db := mysql.LoadDB()
	defer db.Close()

	mongoDB := mongo.LoadDB()

	logger := logger.Load()

	r := mux.NewRouter()
	r.Use(middleware.Panic)
	r.Use(middleware.CORS)

	routing.InitRoutes(r, db, mongoDB, logger)
	routing.StartServer(r)
}
