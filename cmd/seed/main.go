package main

import (
	"context"
	"log"
	"time"

	"studiobooking/internal/database"
	"studiobooking/internal/domain"
	"studiobooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("studio.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	// Cleanup old data, child tables first.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_hours")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM slots")
	db.Exec("DELETE FROM availability_days")
	db.Exec("DELETE FROM addons")
	db.Exec("DELETE FROM packages")
	db.Exec("DELETE FROM studios")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@studiobooking.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@studiobooking.local / admin123")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Email:        "owner@studiobooking.local",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleStudioOwner,
		Name:         "Studio Owner",
		Phone:        "+7 777 123 4567",
	}
	db.Create(&owner)
	log.Println("Owner created: owner@studiobooking.local / owner123")

	customerHash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	customer := domain.User{
		Email:        "customer@studiobooking.local",
		PasswordHash: string(customerHash),
		Role:         domain.RoleCustomer,
		Name:         "Customer",
		Phone:        "+7 777 765 4321",
	}
	db.Create(&customer)
	log.Println("Customer created: customer@studiobooking.local / customer123")

	log.Println("Creating studio...")
	studio := domain.Studio{
		OwnerID:     owner.ID,
		Name:        "Daylight Studio",
		Description: "Loft studio with natural light and a cyclorama",
		City:        "Almaty",
		OpenHour:    9,
		CloseHour:   21,
		Status:      domain.StudioApproved,
		Packages: []domain.Package{
			{Key: "basic", PricePerHour: 500, Description: "Room only"},
			{Key: "pro", PricePerHour: 800, Description: "Room plus lighting kit"},
		},
		Addons: []domain.Addon{
			{Key: "backdrop", Name: "Extra backdrop", Price: 150, MaxQuantity: 2},
			{Key: "assistant", Name: "Studio assistant", Price: 1000, MaxQuantity: 1},
		},
	}
	db.Create(&studio)

	log.Println("Generating availability for the next 14 days...")
	slots := repository.NewAvailabilityRepository(db)
	from := domain.NormalizeDate(time.Now())
	to := from.AddDate(0, 0, 13)
	if _, err := slots.GenerateRange(context.Background(), studio.ID, from, to, studio.OpenHour, studio.CloseHour); err != nil {
		log.Fatal("availability generation failed:", err)
	}

	log.Println("Seed complete.")
}
