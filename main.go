package main

import (
	"Compass/CronJobs"
	"Compass/FiberConfig"
	"Compass/Gemini"
	"Compass/Store"
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}

	generator := Gemini.NewClient()
	if !generator.IsConfigured() {
		log.Println("Warning: GEMINI_API_KEY not set, generation endpoints will fail")
	}

	// Missing Firestore credentials are a supported degraded mode, not a
	// startup failure.
	var primary Store.Store
	if firestoreStore, err := Store.Connect(context.Background()); err != nil {
		log.Printf("Firestore unavailable, running in demo mode: %v", err)
	} else {
		primary = firestoreStore
	}
	fallback := Store.NewDemoStore()

	retention := 14
	if v := os.Getenv("LOG_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retention = n
		}
	}
	janitor := CronJobs.NewLogJanitor("logs/requests.log", retention)
	if err := janitor.Start(); err != nil {
		log.Printf("Failed to start log janitor: %v", err)
	}

	app := FiberConfig.FiberConfig(primary, fallback, generator)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
