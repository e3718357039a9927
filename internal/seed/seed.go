// Package seed fills an empty store with demo users, clients and orders.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/metrics"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/pkg/utils"
)

const DefaultTargetOrders = 1000

var products = []string{
	"Laptop Pro", "Office Software", "Cloud Services",
	"Server Hardware", "Network Equipment", "Industrial Software",
	"Safety Equipment", "AI Development Kit", "Testing Tools",
	"Digital Marketing Suite", "Analytics Platform", "IoT Sensors",
	"Machine Learning API", "Smart Home Devices", "Automation Software",
	"Enterprise Security", "Business Intelligence", "CRM System",
}

var demoClients = []domain.Client{
	{Name: "Acme Corporation", Code: "ACME001", City: "New York"},
	{Name: "Tech Solutions Ltd", Code: "TECH002", City: "San Francisco"},
	{Name: "Global Industries", Code: "GLOB003", City: "Chicago"},
	{Name: "Innovation Systems", Code: "INNO004", City: "Boston"},
	{Name: "Digital Dynamics", Code: "DIGI005", City: "Seattle"},
	{Name: "Future Technologies", Code: "FUTU006", City: "Austin"},
	{Name: "Smart Solutions", Code: "SMAR007", City: "Denver"},
	{Name: "Elite Enterprises", Code: "ELIT008", City: "Miami"},
}

var demoUsers = []struct {
	name string
	role domain.Role
}{
	{"admin", domain.RoleAdmin},
	{"manager", domain.RoleManager},
	{"user1", domain.RoleUser},
	{"user2", domain.RoleUser},
}

type Options struct {
	TargetOrders int
	Password     string
}

// Seeder is idempotent: every step only runs while its table is short of
// the demo data.
type Seeder struct {
	users   domain.UserRepository
	clients domain.ClientRepository
	orders  domain.OrderRepository
	opt     Options
	log     *zap.Logger

	// mu serializes Run, Clear and Reseed; Rand is only used under it.
	mu   sync.Mutex
	Rand *rand.Rand
	Now  func() time.Time
}

func New(users domain.UserRepository, clients domain.ClientRepository, orders domain.OrderRepository, opt Options, log *zap.Logger) *Seeder {
	if opt.TargetOrders <= 0 {
		opt.TargetOrders = DefaultTargetOrders
	}
	if opt.Password == "" {
		opt.Password = "password"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		users: users, clients: clients, orders: orders,
		opt:  opt,
		log:  log.Named("seed"),
		Rand: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		Now:  time.Now,
	}
}

// Result counts the rows one Run inserted.
type Result struct {
	Users   int `json:"users"`
	Clients int `json:"clients"`
	Orders  int `json:"orders"`
}

type Status struct {
	Users    int64 `json:"users"`
	Clients  int64 `json:"clients"`
	Orders   int64 `json:"orders"`
	IsSeeded bool  `json:"isSeeded"`
}

func (s *Seeder) Run(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx)
}

func (s *Seeder) run(ctx context.Context) (Result, error) {
	var res Result
	var err error
	if res.Users, err = s.seedUsers(ctx); err != nil {
		return res, fmt.Errorf("seed users: %w", err)
	}
	if res.Clients, err = s.seedClients(ctx); err != nil {
		return res, fmt.Errorf("seed clients: %w", err)
	}
	if res.Orders, err = s.seedOrders(ctx); err != nil {
		return res, fmt.Errorf("seed orders: %w", err)
	}
	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	n, err := s.users.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	hash, err := utils.HashPassword(s.opt.Password)
	if err != nil {
		return 0, err
	}
	us := make([]domain.User, len(demoUsers))
	for i, d := range demoUsers {
		us[i] = domain.User{Username: d.name, PasswordHash: hash, Role: d.role}
	}
	if err := s.users.SaveAll(ctx, us); err != nil {
		return 0, err
	}
	metrics.RecordSeeded("user", len(us))
	s.log.Info("seeded users", zap.Int("count", len(us)))
	return len(us), nil
}

func (s *Seeder) seedClients(ctx context.Context) (int, error) {
	n, err := s.clients.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	cs := make([]domain.Client, len(demoClients))
	copy(cs, demoClients)
	if err := s.clients.SaveAll(ctx, cs); err != nil {
		return 0, err
	}
	metrics.RecordSeeded("client", len(cs))
	s.log.Info("seeded clients", zap.Int("count", len(cs)))
	return len(cs), nil
}

func (s *Seeder) seedOrders(ctx context.Context) (int, error) {
	have, err := s.orders.Count(ctx)
	if err != nil {
		return 0, err
	}
	need := s.opt.TargetOrders - int(have)
	if need <= 0 {
		s.log.Info("order target already reached", zap.Int64("orders", have))
		return 0, nil
	}
	cs, err := s.clients.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(cs) == 0 {
		s.log.Warn("no clients found, cannot seed orders")
		return 0, nil
	}
	batch := make([]domain.Order, need)
	for i := range batch {
		batch[i] = s.randomOrder(cs)
	}
	if err := s.orders.SaveAll(ctx, batch); err != nil {
		return 0, err
	}
	metrics.RecordSeeded("order", need)
	s.log.Info("seeded orders", zap.Int("count", need), zap.Int("target", s.opt.TargetOrders))
	return need, nil
}

func (s *Seeder) randomOrder(cs []domain.Client) domain.Order {
	r := s.Rand
	typ := r.IntN(3) + 1
	return domain.Order{
		ProductName:   products[r.IntN(len(products))],
		ClientID:      cs[r.IntN(len(cs))].ID,
		Quantity:      r.IntN(5) + 1,
		Price:         domain.NewMoney(decimal.NewFromFloat(50 + r.Float64()*9950)),
		OrderDate:     domain.NewDate(s.Now().AddDate(0, 0, -r.IntN(365))),
		Type:          &typ,
		PaymentMethod: domain.PaymentMethods[r.IntN(len(domain.PaymentMethods))],
		Expedition:    domain.Expeditions[r.IntN(len(domain.Expeditions))],
		Status:        domain.OrderStatuses[r.IntN(len(domain.OrderStatuses))],
	}
}

func (s *Seeder) Status(ctx context.Context) (Status, error) {
	var st Status
	var err error
	if st.Users, err = s.users.Count(ctx); err != nil {
		return st, err
	}
	if st.Clients, err = s.clients.Count(ctx); err != nil {
		return st, err
	}
	if st.Orders, err = s.orders.Count(ctx); err != nil {
		return st, err
	}
	st.IsSeeded = st.Users > 0 && st.Clients > 0
	return st, nil
}

// Clear deletes orders, then clients, then users.
func (s *Seeder) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear(ctx)
}

func (s *Seeder) clear(ctx context.Context) error {
	if err := s.orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}
	if err := s.clients.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear clients: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	s.log.Info("all data cleared")
	return nil
}

// Reseed wipes the store and seeds it from scratch.
func (s *Seeder) Reseed(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clear(ctx); err != nil {
		return Status{}, err
	}
	if _, err := s.run(ctx); err != nil {
		return Status{}, err
	}
	return s.Status(ctx)
}
