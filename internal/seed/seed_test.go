package seed

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/internal/repo"
	"github.com/khaoulaLakhdim/orders-management/internal/testutil"
	"github.com/khaoulaLakhdim/orders-management/pkg/utils"
)

func newSeeder(t *testing.T, target int) (*Seeder, *repo.OrderRepo) {
	t.Helper()
	utils.PasswordCost = bcrypt.MinCost
	db := testutil.NewDB(t)
	orders := repo.NewOrderRepo(db)
	s := New(repo.NewUserRepo(db), repo.NewClientRepo(db), orders, Options{TargetOrders: target, Password: "pw"}, nil)
	s.Rand = rand.New(rand.NewPCG(1, 2))
	s.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return s, orders
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newSeeder(t, 50)

	first, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 4, Clients: 8, Orders: 50}, first)

	second, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Users: 4, Clients: 8, Orders: 50, IsSeeded: true}, st)
}

func TestRunTopsUpOrders(t *testing.T) {
	ctx := context.Background()
	s, orders := newSeeder(t, 30)
	_, err := s.Run(ctx)
	require.NoError(t, err)

	all, err := orders.FindAll(ctx)
	require.NoError(t, err)
	require.NoError(t, orders.DeleteByID(ctx, all[0].ID))
	require.NoError(t, orders.DeleteByID(ctx, all[1].ID))

	res, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Orders: 2}, res)
}

func TestSeededOrdersAreValid(t *testing.T) {
	ctx := context.Background()
	s, orders := newSeeder(t, 100)
	_, err := s.Run(ctx)
	require.NoError(t, err)

	all, err := orders.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 100)
	oldest := domain.NewDate(s.Now().AddDate(0, 0, -364))
	for _, o := range all {
		assert.Contains(t, products, o.ProductName)
		assert.NotEmpty(t, o.ClientName)
		assert.True(t, o.Quantity >= 1 && o.Quantity <= 5)
		assert.True(t, o.Price.Positive())
		assert.True(t, o.Price.GreaterThanOrEqual(domain.MustMoney("50").Decimal))
		assert.True(t, o.Price.LessThanOrEqual(domain.MustMoney("10000").Decimal))
		assert.Equal(t, o.Price.String(), o.Price.StringFixed(2))
		require.NotNil(t, o.Type)
		assert.True(t, *o.Type >= 1 && *o.Type <= 3)
		assert.True(t, o.PaymentMethod.Valid())
		assert.True(t, o.Expedition.Valid())
		assert.True(t, o.Status.Valid())
		assert.False(t, o.OrderDate.Before(oldest.Time))
	}
}

func TestSeededUsersCanLogIn(t *testing.T) {
	ctx := context.Background()
	s, _ := newSeeder(t, 1)
	_, err := s.Run(ctx)
	require.NoError(t, err)

	u, err := s.users.FindByUsername(ctx, "manager")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleManager, u.Role)
	assert.True(t, utils.CheckPassword("pw", u.PasswordHash))
}

func TestClearAndReseed(t *testing.T) {
	ctx := context.Background()
	s, _ := newSeeder(t, 20)
	_, err := s.Run(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{}, st)

	st, err = s.Reseed(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Users: 4, Clients: 8, Orders: 20, IsSeeded: true}, st)
}

func TestConcurrentReseedsDoNotOverlap(t *testing.T) {
	ctx := context.Background()
	s, _ := newSeeder(t, 20)

	var g errgroup.Group
	for range 4 {
		g.Go(func() error {
			st, err := s.Reseed(ctx)
			if err != nil {
				return err
			}
			assert.Equal(t, Status{Users: 4, Clients: 8, Orders: 20, IsSeeded: true}, st)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Users: 4, Clients: 8, Orders: 20, IsSeeded: true}, st)
}
