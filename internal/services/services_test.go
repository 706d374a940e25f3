package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/database"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

type shipmentSeed struct {
	id     string
	status status.Status
	region string
	items  []string
}

func seedOrder(t *testing.T, db *gorm.DB, customerID, orderID, orderDate string, shipments ...shipmentSeed) {
	t.Helper()
	require.NoError(t, db.Create(&models.Order{OrderID: orderID, CustomerID: customerID, OrderDate: date(orderDate)}).Error)
	for _, s := range shipments {
		require.NoError(t, db.Create(&models.Shipment{
			ShipmentID:        s.id,
			OrderID:           orderID,
			TrackingNumber:    "TRK-" + s.id,
			WarehouseID:       "WH1",
			FulfillmentRegion: s.region,
			ZipCode:           "98101",
			AddressID:         "A1",
			FulfillmentType:   "Standard",
			ShipDate:          date(orderDate),
			EstimatedDelivery: date(orderDate).AddDate(0, 0, 5),
			CurrentStatus:     s.status,
			LastScanLocation:  "Seattle",
		}).Error)
		for i, name := range s.items {
			require.NoError(t, db.Create(&models.ShipmentItem{
				ShipmentID: s.id, SourceRow: i + 2, ItemName: name, Quantity: i + 1,
			}).Error)
		}
	}
}

func seedCustomer(t *testing.T, db *gorm.DB, id, username string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Customer{CustomerID: id, Username: username}).Error)
}

func TestCustomerService_Get(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")
	svc := NewCustomerService(db)

	got, err := svc.Get(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", got.CustomerID)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.Email)

	_, err = svc.Get(context.Background(), "C404")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerService_EnsureByUsername_Existing(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")
	svc := NewCustomerService(db)

	got, created, err := svc.EnsureByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "C1", got.CustomerID)
	assert.Nil(t, got.Email)
}

func TestCustomerService_EnsureByUsername_Provisions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db)
	ctx := context.Background()

	got, created, err := svc.EnsureByUsername(ctx, "  bob ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "bob", got.Username)
	assert.True(t, strings.HasPrefix(got.CustomerID, "AUTO-"))
	assert.LessOrEqual(t, len(got.CustomerID), 20)
	require.NotNil(t, got.Email)
	assert.Equal(t, "bob@example.com", *got.Email)

	again, created, err := svc.EnsureByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, got.CustomerID, again.CustomerID)

	var count int64
	db.Model(&models.Customer{}).Where("username = ?", "bob").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCustomerService_EnsureByUsername_Validation(t *testing.T) {
	svc := NewCustomerService(setupTestDB(t))

	_, _, err := svc.EnsureByUsername(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, _, err = svc.EnsureByUsername(context.Background(), strings.Repeat("x", 51))
	assert.ErrorIs(t, err, ErrUsernameTooLong)
}

func TestOrderService_ListForCustomer(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")
	seedOrder(t, db, "C1", "O1", "2024-01-10",
		shipmentSeed{id: "S1", status: status.InTransit, region: "West", items: []string{"Lamp", "Desk"}},
		shipmentSeed{id: "S2", status: status.Delivered, region: "West", items: []string{"Lamp", "Chair"}},
	)
	seedOrder(t, db, "C1", "O2", "2024-02-01",
		shipmentSeed{id: "S3", status: status.Delivered, region: "East", items: []string{"Rug"}},
	)
	seedOrder(t, db, "C1", "O3", "2023-12-24")

	got, err := NewOrderService(db).ListForCustomer(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "O2", got[0].OrderID)
	assert.Equal(t, "2024-02-01", got[0].OrderDate)
	assert.Equal(t, "Delivered", got[0].Status)
	assert.Equal(t, []string{"Rug"}, got[0].Items)

	assert.Equal(t, "O1", got[1].OrderID)
	assert.Equal(t, "In Transit", got[1].Status)
	assert.Equal(t, []string{"Lamp", "Desk", "Chair"}, got[1].Items)
	assert.Equal(t, 3, got[1].ItemsCount)

	assert.Equal(t, "O3", got[2].OrderID)
	assert.Equal(t, "Processing", got[2].Status)
	assert.Empty(t, got[2].Items)
	assert.Zero(t, got[2].ItemsCount)
}

func TestOrderService_ListForCustomer_UnknownUsername(t *testing.T) {
	_, err := NewOrderService(setupTestDB(t)).ListForCustomer(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestOrderService_Get(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")
	seedOrder(t, db, "C1", "O1", "2024-01-10",
		shipmentSeed{id: "S2", status: status.Delivered, region: "West", items: []string{"Chair"}},
		shipmentSeed{id: "S1", status: status.Failed, region: "East", items: []string{"Lamp", "Desk"}},
	)
	svc := NewOrderService(db)

	got, err := svc.Get(context.Background(), "O1")
	require.NoError(t, err)
	assert.Equal(t, "C1", got.CustomerID)
	assert.Equal(t, "Failed", got.Status)
	require.Len(t, got.Shipments, 2)
	assert.Equal(t, "S1", got.Shipments[0].ShipmentID)
	require.Len(t, got.Shipments[0].Items, 2)
	assert.Equal(t, "Lamp", got.Shipments[0].Items[0].ItemName)
	assert.Equal(t, 1, got.Shipments[0].Items[0].Quantity)

	_, err = svc.Get(context.Background(), "O404")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestShipmentService_Get(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")
	seedOrder(t, db, "C1", "O1", "2024-01-10",
		shipmentSeed{id: "S1", status: status.Delivered, region: "West", items: []string{"Lamp"}},
	)
	delivered := date("2024-01-14")
	scanned := time.Date(2024, 1, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Shipment{}).Where("shipment_id = ?", "S1").Updates(map[string]interface{}{
		"actual_delivery_date":    delivered,
		"scan_timestamp":          scanned,
		"delivery_attempt_status": "Successful",
	}).Error)
	svc := NewShipmentService(db)

	got, err := svc.Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "TRK-S1", got.TrackingNumber)
	assert.Equal(t, "2024-01-10", got.ShipDate)
	assert.Equal(t, "2024-01-15", got.EstimatedDelivery)
	require.NotNil(t, got.ActualDeliveryDate)
	assert.Equal(t, "2024-01-14", *got.ActualDeliveryDate)
	require.NotNil(t, got.ScanTimestamp)
	assert.Equal(t, "2024-01-14T09:30:00", *got.ScanTimestamp)
	assert.Equal(t, strPtr("Successful"), got.DeliveryAttemptStatus)
	assert.Nil(t, got.DeliveryFailureStatus)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Lamp", got.Items[0].ItemName)

	_, err = svc.Get(context.Background(), "S404")
	assert.ErrorIs(t, err, ErrShipmentNotFound)
}

func TestDashboardService_ForCustomer(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")
	seedCustomer(t, db, "C2", "bob")
	seedOrder(t, db, "C1", "O1", "2024-01-10",
		shipmentSeed{id: "S1", status: status.InTransit, region: "West"},
		shipmentSeed{id: "S2", status: status.Delivered, region: "West"},
	)
	seedOrder(t, db, "C1", "O2", "2024-01-11",
		shipmentSeed{id: "S3", status: status.Status("Returned"), region: "East"},
	)
	seedOrder(t, db, "C2", "O3", "2024-01-12",
		shipmentSeed{id: "S4", status: status.Failed, region: "South"},
	)

	got, err := NewDashboardService(db).ForCustomer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalOrders)
	assert.Equal(t, int64(3), got.TotalShipments)
	assert.Equal(t, int64(1), got.InTransit)
	assert.Equal(t, int64(1), got.Delivered)
	assert.Zero(t, got.Failed)
	assert.Zero(t, got.Delayed)
	assert.Zero(t, got.OutForDelivery)
	assert.Equal(t, map[string]int64{"West": 2, "East": 1}, got.ByRegion)
}

func TestDashboardService_NoOrders(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "C1", "alice")

	got, err := NewDashboardService(db).ForCustomer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.TotalShipments)
	assert.NotNil(t, got.ByRegion)
	assert.Empty(t, got.ByRegion)

	_, err = NewDashboardService(db).ForCustomer(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
