package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"aerobook/internal/flights"
	"aerobook/internal/seats"
	"aerobook/internal/shared/config"
	"aerobook/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db      *database.DB
	flights flights.Repository
	seats   seats.Repository
}

func main() {
	fmt.Println("🌱 Starting Aerobook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:      db,
		flights: flights.NewRepository(db.GetPostgreSQL()),
		seats:   seats.NewRepository(db.GetPostgreSQL()),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_details",
		"payments",
		"bookings",
		"passengers",
		"seats",
		"flights",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds flights and their seat grids
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	flightIDs, err := s.SeedFlights()
	if err != nil {
		return fmt.Errorf("failed to seed flights: %w", err)
	}

	if err := s.SeedSeats(flightIDs); err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}

	// Clear Redis cache to ensure fresh seat maps
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedFlights creates sample flights, outbound/return pairs included
func (s *Seeder) SeedFlights() ([]uuid.UUID, error) {
	fmt.Println("  ✈️ Seeding flights...")

	flightsData := []struct {
		code        string
		origin      string
		destination string
		daysFromNow int
		departHour  int
		durationHrs int
	}{
		{"GA-204", "CGK", "DPS", 7, 6, 2},
		{"GA-205", "DPS", "CGK", 10, 18, 2},
		{"GA-410", "CGK", "SIN", 14, 8, 2},
		{"GA-411", "SIN", "CGK", 17, 15, 2},
		{"QZ-7510", "SUB", "CGK", 21, 9, 1},
		{"QZ-7511", "CGK", "SUB", 24, 20, 1},
	}

	flightList := make([]flights.Flight, 0, len(flightsData))
	for _, flightData := range flightsData {
		departure := time.Now().UTC().AddDate(0, 0, flightData.daysFromNow).
			Truncate(24 * time.Hour).Add(time.Duration(flightData.departHour) * time.Hour)

		flightList = append(flightList, flights.Flight{
			ID:            uuid.New(),
			Code:          flightData.code,
			Origin:        flightData.origin,
			Destination:   flightData.destination,
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(flightData.durationHrs) * time.Hour),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		})
	}

	if err := s.flights.CreateFlights(context.Background(), flightList); err != nil {
		return nil, fmt.Errorf("failed to create flights: %w", err)
	}

	flightIDs := make([]uuid.UUID, 0, len(flightList))
	for _, flight := range flightList {
		flightIDs = append(flightIDs, flight.ID)
		fmt.Printf("    ✅ Created flight: %s (%s → %s)\n", flight.Code, flight.Origin, flight.Destination)
	}

	return flightIDs, nil
}

// SeedSeats creates the seat grid for every flight
func (s *Seeder) SeedSeats(flightIDs []uuid.UUID) error {
	fmt.Println("  💺 Seeding seats...")

	for _, flightID := range flightIDs {
		count, err := s.createSeatGrid(flightID)
		if err != nil {
			return err
		}
		fmt.Printf("    ✅ Created %d seats for flight %s\n", count, flightID)
	}

	return nil
}

// createSeatGrid lays out 20 rows of 6 seats: rows 1-2 first class,
// rows 3-6 business, the rest economy
func (s *Seeder) createSeatGrid(flightID uuid.UUID) (int, error) {
	letters := []string{"A", "B", "C", "D", "E", "F"}
	seatList := make([]seats.Seat, 0, 20*len(letters))

	for row := 1; row <= 20; row++ {
		class := seats.ClassEconomy
		price := 1250000.0
		switch {
		case row <= 2:
			class = seats.ClassFirst
			price = 5500000.0
		case row <= 6:
			class = seats.ClassBusiness
			price = 3200000.0
		}

		for _, letter := range letters {
			seatList = append(seatList, seats.Seat{
				ID:         uuid.New(),
				FlightID:   flightID,
				SeatNumber: fmt.Sprintf("%d%s", row, letter),
				Class:      class,
				Price:      price,
				Status:     seats.StatusAvailable,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			})
		}
	}

	if err := s.seats.CreateSeats(context.Background(), seatList); err != nil {
		return 0, fmt.Errorf("failed to create seats for flight %s: %w", flightID, err)
	}

	return len(seatList), nil
}
