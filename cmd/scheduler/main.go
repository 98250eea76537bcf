// Subscription order scheduler.
//
// Processes active, approved subscriptions that are due and creates orders
// for them, decrementing inventory. Intended to be run periodically, e.g.
// with cron:
//
//	# Run daily at 6 AM
//	0 6 * * * /path/to/scheduler
//
// Exits non-zero when any subscription failed to convert.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/YugaBharathi29/grocery-app/config"
	"github.com/YugaBharathi29/grocery-app/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db, err := config.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	line := strings.Repeat("=", 60)
	log.Println(line)
	log.Println("Starting Subscription Order Processing")
	log.Println(line)

	p := scheduler.New(db)

	if err := p.LogStatistics(); err != nil {
		log.Printf("⚠️ Failed to collect subscription statistics: %v", err)
	}

	// Advisory only: flags low stock for deliveries due in the next 24 hours.
	if err := p.CheckUpcomingStock(); err != nil {
		log.Printf("⚠️ Upcoming stock check failed: %v", err)
	}

	result, err := p.ProcessDueSubscriptions()
	if err != nil {
		log.Fatalf("❌ Subscription processing aborted: %v", err)
	}

	log.Println("Subscription processing completed!")
	log.Println(line)

	if result.Failed > 0 {
		os.Exit(1)
	}
}
