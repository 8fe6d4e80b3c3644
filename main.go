package main

import (
	"github.com/ayonpaul8906/trustbridge-new/config"
	"github.com/ayonpaul8906/trustbridge-new/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
