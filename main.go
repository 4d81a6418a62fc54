package main

import (
	"log"
	"os"

	"Inventra/CronJobs"
	"Inventra/FiberConfig"
	"Inventra/Models"
)

func main() {
	setupLogging()
	Models.Connect()

	stockRoller := CronJobs.NewStockRoller(Models.DB, false)
	if err := stockRoller.Start(); err != nil {
		log.Printf("Failed to start stock rollup scheduler: %v\n", err)
	}
	defer stockRoller.Stop()

	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	// Set up main application log file
	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	// Redirect log output to the file
	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
