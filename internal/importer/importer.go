// Package importer loads the customer and tracking CSV exports into the
// database in two phases, customers first.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyFile         = errors.New("csv file is empty")
	ErrMissingColumn     = errors.New("missing column")
	ErrInvalidRow        = errors.New("invalid row")
	ErrUnknownCustomer   = errors.New("unknown customer")
	ErrDuplicateCustomer = errors.New("duplicate customer")
)

// ItemPolicy decides which tracking rows produce a ShipmentItem.
type ItemPolicy int

const (
	// ItemsPerRow records an item for every row, so shipments spread over
	// several rows keep all of their package lines.
	ItemsPerRow ItemPolicy = iota
	// ItemsFirstRowOnly records an item only for the first row of each
	// shipment, matching the behaviour of the legacy loader.
	ItemsFirstRowOnly
)

type Options struct {
	// Atomic runs both phases in one transaction instead of one each.
	Atomic     bool
	ItemPolicy ItemPolicy
}

// CustomerCounts reports the customer phase.
type CustomerCounts struct {
	Rows    int
	Created int
}

// OrderCounts reports the order/shipment/item phase. Seen counts distinct
// ids in the file; Created counts rows actually inserted.
type OrderCounts struct {
	Rows             int
	OrdersSeen       int
	OrdersCreated    int
	ShipmentsSeen    int
	ShipmentsCreated int
	ItemsCreated     int
	// UnknownStatuses counts shipments whose status is outside the tracked
	// vocabulary. They are stored as-is.
	UnknownStatuses int
}

type Summary struct {
	RunID     string
	Customers CustomerCounts
	Orders    OrderCounts
}

type Importer struct {
	db       *gorm.DB
	opts     Options
	validate *validator.Validate
	log      *slog.Logger
}

func New(db *gorm.DB, opts Options) *Importer {
	return &Importer{
		db:       db,
		opts:     opts,
		validate: newValidator(),
		log:      slog.Default().With("component", "importer"),
	}
}

// Run imports customers, then orders. Without Options.Atomic a failure in
// the second phase leaves the committed customers in place.
func (im *Importer) Run(ctx context.Context, customers, orders io.Reader) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	log := im.log.With("run_id", summary.RunID)

	if im.opts.Atomic {
		err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			if summary.Customers, err = im.importCustomers(tx, customers); err != nil {
				return err
			}
			summary.Orders, err = im.importOrders(tx, orders)
			return err
		})
		if err != nil {
			log.Error("import rolled back", "error", err)
			return &Summary{RunID: summary.RunID}, err
		}
		log.Info("import committed", "customers", summary.Customers.Created, "orders", summary.Orders.OrdersCreated)
		return summary, nil
	}

	var err error
	if summary.Customers, err = im.ImportCustomers(ctx, customers); err != nil {
		log.Error("customer import rolled back", "error", err)
		return summary, err
	}
	log.Info("customers committed", "created", summary.Customers.Created)

	if summary.Orders, err = im.ImportOrders(ctx, orders); err != nil {
		log.Error("order import rolled back", "error", err)
		return summary, err
	}
	log.Info("orders committed",
		"orders", summary.Orders.OrdersCreated,
		"shipments", summary.Orders.ShipmentsCreated,
		"items", summary.Orders.ItemsCreated)
	return summary, nil
}

// ImportCustomers creates one customer per row inside a single transaction.
// Rows are not de-duplicated: an id or username that already exists fails
// the whole phase.
func (im *Importer) ImportCustomers(ctx context.Context, r io.Reader) (CustomerCounts, error) {
	var counts CustomerCounts
	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		counts, err = im.importCustomers(tx, r)
		return err
	})
	if err != nil {
		return CustomerCounts{}, err
	}
	return counts, nil
}

// ImportOrders creates orders, shipments and items from the tracking export
// inside a single transaction. Orders and shipments are keyed by id, so
// importing the same file twice inserts nothing new.
func (im *Importer) ImportOrders(ctx context.Context, r io.Reader) (OrderCounts, error) {
	var counts OrderCounts
	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		counts, err = im.importOrders(tx, r)
		return err
	})
	if err != nil {
		return OrderCounts{}, err
	}
	return counts, nil
}

func (im *Importer) importCustomers(tx *gorm.DB, r io.Reader) (CustomerCounts, error) {
	var counts CustomerCounts
	t, err := openTable(r, &customerRow{})
	if err != nil {
		return counts, fmt.Errorf("customers: %w", err)
	}

	for {
		var row customerRow
		line, err := t.next(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return counts, fmt.Errorf("customers: %w", err)
		}
		counts.Rows++

		if err := im.validate.Struct(&row); err != nil {
			return counts, fmt.Errorf("customers line %d: %w", line, describe(err))
		}

		customer := models.Customer{CustomerID: row.CustomerID, Username: row.Username}
		if err := tx.Create(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return counts, fmt.Errorf("customers line %d: %w: %s/%s", line, ErrDuplicateCustomer, row.CustomerID, row.Username)
			}
			return counts, fmt.Errorf("customers line %d: failed to create customer: %w", line, err)
		}
		counts.Created++
	}

	return counts, nil
}

func (im *Importer) importOrders(tx *gorm.DB, r io.Reader) (OrderCounts, error) {
	var counts OrderCounts
	t, err := openTable(r, &trackingRow{})
	if err != nil {
		return counts, fmt.Errorf("orders: %w", err)
	}

	// The export has one row per package line, so the same order and
	// shipment ids repeat across rows.
	seenOrders := make(map[string]bool)
	seenShipments := make(map[string]bool)
	knownCustomers := make(map[string]bool)

	for {
		var row trackingRow
		line, err := t.next(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return counts, fmt.Errorf("orders: %w", err)
		}
		counts.Rows++

		// The legacy policy ignores every row after a shipment's first, so
		// only the keys of those rows are checked.
		repeat := im.opts.ItemPolicy == ItemsFirstRowOnly && seenShipments[row.ShipmentID]
		if repeat {
			err = im.validate.Struct(row.keys())
		} else {
			err = im.validate.Struct(&row)
		}
		if err != nil {
			return counts, fmt.Errorf("orders line %d: %w", line, describe(err))
		}

		if !seenOrders[row.OrderID] {
			if !knownCustomers[row.CustomerID] {
				var n int64
				if err := tx.Model(&models.Customer{}).Where("customer_id = ?", row.CustomerID).Count(&n).Error; err != nil {
					return counts, fmt.Errorf("orders line %d: %w", line, err)
				}
				if n == 0 {
					return counts, fmt.Errorf("orders line %d: %w %q", line, ErrUnknownCustomer, row.CustomerID)
				}
				knownCustomers[row.CustomerID] = true
			}

			order, err := row.order()
			if err != nil {
				return counts, fmt.Errorf("orders line %d: %w", line, err)
			}
			created, err := insertIfAbsent(tx, &order)
			if err != nil {
				return counts, fmt.Errorf("orders line %d: failed to create order: %w", line, err)
			}
			counts.OrdersCreated += created
			counts.OrdersSeen++
			seenOrders[row.OrderID] = true
		}

		if repeat {
			continue
		}

		firstRow := !seenShipments[row.ShipmentID]
		if firstRow {
			shipment, err := row.shipment()
			if err != nil {
				return counts, fmt.Errorf("orders line %d: %w", line, err)
			}
			created, err := insertIfAbsent(tx, &shipment)
			if err != nil {
				return counts, fmt.Errorf("orders line %d: failed to create shipment: %w", line, err)
			}
			counts.ShipmentsCreated += created
			counts.ShipmentsSeen++
			if !shipment.CurrentStatus.Known() {
				counts.UnknownStatuses++
				im.log.Warn("unrecognised shipment status",
					"line", line, "shipment_id", row.ShipmentID, "status", shipment.CurrentStatus.String())
			}
			seenShipments[row.ShipmentID] = true
		}

		if firstRow || im.opts.ItemPolicy == ItemsPerRow {
			item, err := row.item(line)
			if err != nil {
				return counts, fmt.Errorf("orders line %d: %w", line, err)
			}
			created, err := insertIfAbsent(tx, &item)
			if err != nil {
				return counts, fmt.Errorf("orders line %d: failed to create item: %w", line, err)
			}
			counts.ItemsCreated += created
		}
	}

	return counts, nil
}

// insertIfAbsent inserts value unless a row with the same key already
// exists, returning the number of rows inserted.
func insertIfAbsent(tx *gorm.DB, value interface{}) (int, error) {
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
