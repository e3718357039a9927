package domain

import (
	"context"
	"time"
)

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCash         PaymentMethod = "CASH"
)

var PaymentMethods = []PaymentMethod{PaymentCard, PaymentBankTransfer, PaymentCash}

func (p PaymentMethod) Valid() bool { return oneOf(p, PaymentMethods) }

type Expedition string

const (
	ExpeditionExpress  Expedition = "EXPRESS"
	ExpeditionStandard Expedition = "STANDARD"
	ExpeditionPriority Expedition = "PRIORITY"
)

var Expeditions = []Expedition{ExpeditionExpress, ExpeditionStandard, ExpeditionPriority}

func (e Expedition) Valid() bool { return oneOf(e, Expeditions) }

type OrderStatus string

const (
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
)

var OrderStatuses = []OrderStatus{StatusCompleted, StatusPending, StatusInProgress}

func (s OrderStatus) Valid() bool { return oneOf(s, OrderStatuses) }

func oneOf[T comparable](v T, set []T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

// Order is a purchase placed by a Client. ClientName is filled by a join on
// read and never written.
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName   string        `gorm:"size:100;not null" json:"productName"`
	ClientID      int64         `gorm:"index;not null" json:"clientId"`
	ClientName    string        `gorm:"->;-:migration" json:"clientName,omitempty"`
	Quantity      int           `gorm:"not null" json:"quantity"`
	Price         Money         `gorm:"type:decimal(10,2);not null" json:"price"`
	OrderDate     Date          `gorm:"type:date;not null" json:"orderDate"`
	Type          *int          `json:"type"`
	PaymentMethod PaymentMethod `gorm:"size:50" json:"paymentMethod,omitempty"`
	Expedition    Expedition    `gorm:"size:100" json:"expedition,omitempty"`
	Status        OrderStatus   `gorm:"size:50" json:"status,omitempty"`
	CreatedAt     time.Time     `gorm:"<-:create;autoCreateTime" json:"createdAt"`
}

func (Order) TableName() string { return "orders" }

type OrderRepository interface {
	FindAll(ctx context.Context) ([]Order, error)
	FindPage(ctx context.Context, p PageRequest) (Page[Order], error)
	FindByClientID(ctx context.Context, clientID int64, p PageRequest) (Page[Order], error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, o *Order) error
	SaveAll(ctx context.Context, orders []Order) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
