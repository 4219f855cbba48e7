package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"designmarket/internal/config"
	"designmarket/internal/database"
	"designmarket/internal/domain"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}, os.Stderr).Error("config", "error", err.Error())
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "text", Component: "seed"}, os.Stdout)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("db connect failed", "error", err.Error())
		os.Exit(1)
	}

	log.Info("running migrations")
	if err := repository.AutoMigrate(db); err != nil {
		log.Error("migrations failed", "error", err.Error())
		os.Exit(1)
	}

	if err := seed(context.Background(), db); err != nil {
		log.Error("seed failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("seed completed")
}

func seed(ctx context.Context, db *gorm.DB) error {
	// children first so foreign keys stay valid on postgres
	for _, table := range []string{
		"payments", "messages", "notifications", "bookings",
		"designs", "designer_profiles", "revoked_tokens", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	users := repository.NewUserRepository(db)
	designs := repository.NewDesignRepository(db)
	designers := repository.NewDesignerRepository(db)
	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)
	messages := repository.NewMessageRepository(db)

	newUser := func(username string, role domain.UserRole, password string) (*domain.User, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u := &domain.User{
			Username:     username,
			Email:        username + "@designmarket.local",
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("create user %s: %w", username, err)
		}
		return u, nil
	}

	if _, err := newUser("admin", domain.RoleAdmin, "admin12345"); err != nil {
		return err
	}

	var clients []*domain.User
	for _, name := range []string{"asel", "bekzat", "dina"} {
		u, err := newUser(name, domain.RoleClient, "client12345")
		if err != nil {
			return err
		}
		clients = append(clients, u)
	}

	var catalog []*domain.Design
	titles := []string{"Scandi Loft", "Minimal Kitchen", "Boho Bedroom", "Industrial Office", "Japandi Living Room", "Coastal Bathroom"}
	for i, name := range []string{"aidar", "gulnaz"} {
		d, err := newUser(name, domain.RoleDesigner, "designer12345")
		if err != nil {
			return err
		}
		if err := designers.UpsertProfile(ctx, &domain.DesignerProfile{
			UserID:      d.ID,
			Bio:         "Residential interiors, turnkey projects.",
			CompanyName: fmt.Sprintf("Studio %d", i+1),
		}); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}

		for j := i * 3; j < i*3+3; j++ {
			design := &domain.Design{
				DesignerID:  d.ID,
				Title:       titles[j],
				Description: "Full concept with floor plan, materials and lighting.",
				Features:    "3D renders, shopping list",
				Price:       decimal.NewFromInt(int64(300 + rand.Intn(900))),
			}
			if err := designs.Create(ctx, design); err != nil {
				return fmt.Errorf("create design %q: %w", design.Title, err)
			}
			catalog = append(catalog, design)
		}
	}

	for i := 0; i < 6; i++ {
		client := clients[rand.Intn(len(clients))]
		design := catalog[rand.Intn(len(catalog))]
		date := time.Now().UTC().AddDate(0, 0, 1+rand.Intn(30)).Truncate(24 * time.Hour)

		b := &domain.Booking{
			ClientID:    client.ID,
			DesignID:    design.ID,
			DesignerID:  design.DesignerID,
			Status:      domain.BookingPending,
			BookingDate: &date,
			Notes:       fmt.Sprintf("Seed booking %d", i+1),
		}
		n := &domain.Notification{
			UserID:  design.DesignerID,
			Message: fmt.Sprintf("New booking for your design '%s' by %s", design.Title, client.Username),
		}
		if err := bookings.CreateWithNotification(ctx, b, n); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		if err := messages.Create(ctx, &domain.Message{
			SenderID:   client.ID,
			ReceiverID: design.DesignerID,
			DesignID:   design.ID,
			Content:    "Hi! Could we start next week?",
		}); err != nil {
			return fmt.Errorf("create message: %w", err)
		}

		// every other booking gets a half payment
		if i%2 == 0 {
			p := &domain.Payment{
				BookingID:     b.ID,
				Amount:        design.Price.Div(decimal.NewFromInt(2)).Round(2),
				PaymentMethod: "card",
				TransactionID: fmt.Sprintf("seed-%d", b.ID),
			}
			if err := payments.Create(ctx, p); err != nil {
				return fmt.Errorf("create payment: %w", err)
			}
			if err := payments.MarkSucceeded(ctx, p.ID, "", time.Now().UTC()); err != nil {
				return fmt.Errorf("settle payment: %w", err)
			}
		}
	}
	return nil
}
