package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/status"
	"github.com/go-playground/validator/v10"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// customerRow is one line of the customer login export.
type customerRow struct {
	CustomerID string `csv:"Customer ID" validate:"required,max=20"`
	Username   string `csv:"Username" validate:"required,max=50"`
}

// trackingRow is one line of the tracking export: one package line of one shipment.
type trackingRow struct {
	CustomerID            string `csv:"Customer ID" validate:"required,max=20"`
	OrderID               string `csv:"Order ID" validate:"required,max=20"`
	OrderDate             string `csv:"Order Date" validate:"required,datetime=2006-01-02"`
	ShipmentID            string `csv:"Shipment ID" validate:"required,max=20"`
	TrackingNumber        string `csv:"Tracking Number" validate:"max=50"`
	WarehouseID           string `csv:"Warehouse ID" validate:"max=20"`
	FulfillmentRegion     string `csv:"Fulfillment Region" validate:"max=50"`
	ZipCode               string `csv:"Zip Code" validate:"max=10"`
	AddressID             string `csv:"Address ID" validate:"max=20"`
	FulfillmentType       string `csv:"Fulfillment Type" validate:"max=20"`
	ShipDate              string `csv:"Ship Date" validate:"required,datetime=2006-01-02"`
	EstimatedDelivery     string `csv:"Estimated Delivery" validate:"required,datetime=2006-01-02"`
	ActualDeliveryDate    string `csv:"Actual Delivery Date" validate:"omitempty,datetime=2006-01-02"`
	CurrentStatus         string `csv:"Current Status" validate:"max=50"`
	LastScanLocation      string `csv:"Last Scan Location" validate:"max=100"`
	ScanTimestamp         string `csv:"Scan Timestamp" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	DeliveryAttemptStatus string `csv:"Delivery Attempt Status" validate:"max=50"`
	DeliveryFailureStatus string `csv:"Delivery Failure Status" validate:"max=100"`
	PackageItems          string `csv:"Package Items" validate:"required,max=100"`
	Quantity              string `csv:"Quantity" validate:"required"`
}

// rowKeys are the identifiers every tracking row must carry, even rows the
// importer otherwise ignores.
type rowKeys struct {
	CustomerID string `csv:"Customer ID" validate:"required,max=20"`
	OrderID    string `csv:"Order ID" validate:"required,max=20"`
	ShipmentID string `csv:"Shipment ID" validate:"required,max=20"`
}

func (r *trackingRow) keys() rowKeys {
	return rowKeys{CustomerID: r.CustomerID, OrderID: r.OrderID, ShipmentID: r.ShipmentID}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("csv")
	})
	return v
}

// table reads a headed CSV and decodes records into csv-tagged row structs.
type table struct {
	reader *csv.Reader
	index  map[string]int
}

func openTable(r io.Reader, row interface{}) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	for _, col := range columns(row) {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	return &table{reader: reader, index: index}, nil
}

// next decodes the following record into row and returns its line number.
func (t *table) next(row interface{}) (int, error) {
	record, err := t.reader.Read()
	if err != nil {
		return 0, err
	}
	line, _ := t.reader.FieldPos(0)

	v := reflect.ValueOf(row).Elem()
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		col := typ.Field(i).Tag.Get("csv")
		idx := t.index[col]
		value := ""
		if idx < len(record) {
			value = strings.TrimSpace(record[idx])
		}
		v.Field(i).SetString(value)
	}
	return line, nil
}

func columns(row interface{}) []string {
	typ := reflect.TypeOf(row).Elem()
	cols := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		cols = append(cols, typ.Field(i).Tag.Get("csv"))
	}
	return cols
}

// describe flattens validator output into "Column (rule)" pairs.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fe.Field() + " (" + fe.Tag() + ")"
	}
	return fmt.Errorf("%w: %s", ErrInvalidRow, strings.Join(parts, ", "))
}

func (r *trackingRow) order() (models.Order, error) {
	orderDate, err := time.Parse(dateLayout, r.OrderDate)
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		OrderID:    r.OrderID,
		CustomerID: r.CustomerID,
		OrderDate:  orderDate,
	}, nil
}

func (r *trackingRow) shipment() (models.Shipment, error) {
	shipDate, err := time.Parse(dateLayout, r.ShipDate)
	if err != nil {
		return models.Shipment{}, err
	}
	estimated, err := time.Parse(dateLayout, r.EstimatedDelivery)
	if err != nil {
		return models.Shipment{}, err
	}
	actual, err := parseOptional(dateLayout, r.ActualDeliveryDate)
	if err != nil {
		return models.Shipment{}, err
	}
	scanned, err := parseOptional(timestampLayout, r.ScanTimestamp)
	if err != nil {
		return models.Shipment{}, err
	}

	return models.Shipment{
		ShipmentID:            r.ShipmentID,
		OrderID:               r.OrderID,
		TrackingNumber:        r.TrackingNumber,
		WarehouseID:           r.WarehouseID,
		FulfillmentRegion:     r.FulfillmentRegion,
		ZipCode:               r.ZipCode,
		AddressID:             r.AddressID,
		FulfillmentType:       r.FulfillmentType,
		ShipDate:              shipDate,
		EstimatedDelivery:     estimated,
		ActualDeliveryDate:    actual,
		CurrentStatus:         status.Status(r.CurrentStatus),
		LastScanLocation:      r.LastScanLocation,
		ScanTimestamp:         scanned,
		DeliveryAttemptStatus: optional(r.DeliveryAttemptStatus),
		DeliveryFailureStatus: optional(r.DeliveryFailureStatus),
	}, nil
}

func (r *trackingRow) item(line int) (models.ShipmentItem, error) {
	qty, err := strconv.Atoi(r.Quantity)
	if err != nil {
		return models.ShipmentItem{}, fmt.Errorf("%w: Quantity %q", ErrInvalidRow, r.Quantity)
	}
	return models.ShipmentItem{
		ShipmentID: r.ShipmentID,
		SourceRow:  line,
		ItemName:   r.PackageItems,
		Quantity:   qty,
	}, nil
}

func parseOptional(layout, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
