package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must be at most 50 characters")
)

const placeholderEmailDomain = "example.com"

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Get(ctx context.Context, customerID string) (*dto.CustomerResponse, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return mapCustomerToResponse(&customer), nil
}

// EnsureByUsername returns the customer with the given username, provisioning
// one with a generated id and a placeholder email when none exists. The bool
// reports whether a record was created by this call.
func (s *CustomerService) EnsureByUsername(ctx context.Context, username string) (*dto.CustomerResponse, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, ErrUsernameRequired
	}
	if len(username) > 50 {
		return nil, false, ErrUsernameTooLong
	}

	existing, err := findCustomerByUsername(ctx, s.db, username)
	if err == nil {
		return mapCustomerToResponse(existing), false, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return nil, false, err
	}

	email := username + "@" + placeholderEmailDomain
	customer := models.Customer{
		CustomerID: newCustomerID(),
		Username:   username,
		Email:      &email,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&customer)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// A concurrent lookup provisioned the same username first.
		winner, err := findCustomerByUsername(ctx, s.db, username)
		if err != nil {
			return nil, false, err
		}
		return mapCustomerToResponse(winner), false, nil
	}

	slog.Info("customer provisioned on lookup", "customer_id", customer.CustomerID, "username", username)
	return mapCustomerToResponse(&customer), true, nil
}

func findCustomerByUsername(ctx context.Context, db *gorm.DB, username string) (*models.Customer, error) {
	var customer models.Customer
	if err := db.WithContext(ctx).First(&customer, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func newCustomerID() string {
	return "AUTO-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
