package domain

import "context"

// Client is a customer organisation. Its orders reference it by ClientID and
// are removed together with it.
type Client struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
	Code string `gorm:"uniqueIndex;size:100;not null" json:"code"`
	City string `gorm:"size:100;not null" json:"city"`
}

func (Client) TableName() string { return "clients" }

type ClientRepository interface {
	FindAll(ctx context.Context) ([]Client, error)
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindByCode(ctx context.Context, code string) (*Client, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, c *Client) error
	SaveAll(ctx context.Context, cs []Client) error
	// DeleteByID removes the client and every order it owns.
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
