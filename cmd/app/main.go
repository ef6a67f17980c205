package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

// @title Hotel Booking API
// @version 1.0
// @description Rooms, bookings with PDF receipts, accounts and contact intake for a single hotel.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()
	logger.Configure(cfg)

	server := di.InitializeService()
	server.Serve()
}
