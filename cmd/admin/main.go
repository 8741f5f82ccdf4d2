package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"anontalk/backend/internal/config"
	"anontalk/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store := storage.NewService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "block":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin block <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := setBlocked(store, userID, true); err != nil {
			log.Fatalf("Error blocking user: %v", err)
		}
		fmt.Printf("User %s has been blocked.\n", userID)
	case "unblock":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unblock <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := setBlocked(store, userID, false); err != nil {
			log.Fatalf("Error unblocking user: %v", err)
		}
		fmt.Printf("User %s has been unblocked.\n", userID)
	case "resolve-complaint":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve-complaint <complaint_id>")
			os.Exit(1)
		}
		complaintID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid complaint ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := store.ResolveComplaint(uint(complaintID)); err != nil {
			log.Fatalf("Error resolving complaint: %v", err)
		}
		fmt.Printf("Complaint %d has been resolved.\n", complaintID)
	case "stats":
		if err := printStats(store); err != nil {
			log.Fatalf("Error fetching stats: %v", err)
		}
	default:
		fmt.Println("Unknown command. Available: block, unblock, resolve-complaint, stats")
		os.Exit(1)
	}
}

func setBlocked(s *storage.Service, userID string, blocked bool) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	return s.SetUserBlocked(userID, blocked)
}

func printStats(s *storage.Service) error {
	stats, err := s.GetStats()
	if err != nil {
		return err
	}
	fmt.Printf("Active users (last hour):  %d\n", stats.ActiveUsers)
	fmt.Printf("Active chats:              %d\n", stats.ActiveChats)
	fmt.Printf("Users searching:           %d\n", stats.SearchingUsers)
	fmt.Printf("Pending complaints:        %d\n", stats.PendingComplaints)
	fmt.Printf("Messages today:            %d\n", stats.MessagesToday)
	fmt.Printf("Avg chat duration (24h):   %.1f min\n", stats.AvgChatMinutes)
	for gender, count := range stats.GenderDistribution {
		fmt.Printf("Gender %-8s (24h):      %d\n", gender, count)
	}
	for _, bucket := range stats.HourlyChats {
		fmt.Printf("Hour %02d: %d chats\n", bucket.Hour, bucket.Count)
	}
	return nil
}
