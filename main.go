package main

import (
	"github.com/alphazero-wd/devzone/config"
	"github.com/alphazero-wd/devzone/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
