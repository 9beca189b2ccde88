package order

import (
	"bytes"
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var Statuses = []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

const (
	PaymentPaid    = "Paid"
	PaymentCOD     = "Cash on Delivery"
	PaymentPending = "Pending"
)

type PaymentMethod string

const (
	MethodOnline PaymentMethod = "online"
	MethodCOD    PaymentMethod = "cod"
)

// Draft is the order payload assembled at checkout. TransactionID stays nil until an online
// payment has been verified.
type Draft struct {
	UserID          string        `json:"userId"`
	ShippingAddress string        `json:"shippingAddress"`
	ContactPhone    string        `json:"contactPhone"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	TotalAmount     int64         `json:"totalAmount"`
	PaidAmount      int64         `json:"paidAmount"`
	BalanceDue      int64         `json:"balanceDue"`
	TransactionID   *string       `json:"transactionId"`
}

// Customer is the order's owner. The backend sends either a bare id or the populated user.
type Customer struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		return json.Unmarshal(data, &c.ID)
	}
	type plain Customer
	return json.Unmarshal(data, (*plain)(c))
}

type ItemProduct struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Images Images `json:"image"`
}

// Images accepts a single image URL or a list of them.
type Images []string

func (im *Images) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*im = nil
		return nil
	case bytes.HasPrefix(data, []byte(`"`)):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*im = Images{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*im = list
	return nil
}

func (im Images) First() string {
	if len(im) == 0 {
		return ""
	}
	return im[0]
}

type Item struct {
	Product  ItemProduct `json:"productId"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
}

func (i Item) Total() float64 {
	return i.Price * float64(i.Quantity)
}

type Order struct {
	ID              string        `json:"_id"`
	Customer        Customer      `json:"userId"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   string        `json:"paymentStatus"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ShippingAddress string        `json:"shippingAddress"`
	ContactPhone    string        `json:"contactPhone"`
	TotalAmount     float64       `json:"totalAmount"`
	PaidAmount      float64       `json:"paidAmount"`
	BalanceDue      float64       `json:"balanceAmount"`
	TransactionID   string        `json:"transactionId,omitempty"`
	TrackingNumber  string        `json:"trackingNumber,omitempty"`
	Items           []Item        `json:"items"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type createResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message,omitempty"`
}

type statusUpdate struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"trackingNumber"`
}
