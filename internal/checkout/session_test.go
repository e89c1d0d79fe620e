package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"herbanusa-be/internal/cart"
	"herbanusa-be/internal/notify"
	"herbanusa-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderPlacer is a mock implementation of OrderPlacer
type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) CreateOrder(ctx context.Context, p Placement) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

var (
	jahe   = product.Product{ID: "1", Name: "Jahe Merah Organik", Price: 35000, Stock: 50, Seller: product.Seller{ID: "farmer-budi"}}
	kunyit = product.Product{ID: "2", Name: "Kunyit Segar", Price: 15000, Stock: 30, Seller: product.Seller{ID: "farmer-siti"}}
)

var validAddress = Address{
	Name:    "Rina",
	Phone:   "08123456789",
	Address: "Jl. Malioboro No. 1",
	City:    "Yogyakarta",
}

type sessionFixture struct {
	session *Session
	cart    *cart.Cart
	placer  *MockOrderPlacer
	feed    *notify.Feed
	slept   []time.Duration
}

// newFixture builds a session over a cart holding 2x Jahe Merah and 1x
// Kunyit.
func newFixture(t *testing.T) *sessionFixture {
	t.Helper()

	c := cart.New()
	c.AddItem(jahe)
	c.AddItem(jahe)
	c.AddItem(kunyit)

	f := &sessionFixture{cart: c, placer: new(MockOrderPlacer), feed: notify.NewFeed(10)}
	f.session = newSession("s1", c, f.placer, f.feed, DefaultProcessingDelay)
	f.session.sleep = func(d time.Duration) { f.slept = append(f.slept, d) }
	return f
}

func (f *sessionFixture) toPayment(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.session.SetAddress(validAddress)
	require.NoError(t, err)
	_, err = f.session.Next(ctx)
	require.NoError(t, err)
	_, err = f.session.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, StagePayment, f.session.Stage())
}

func TestSession_Defaults(t *testing.T) {
	f := newFixture(t)
	v := f.session.View()

	assert.Equal(t, StageAddress, v.Stage)
	assert.Equal(t, 1, v.Step)
	assert.Equal(t, "Lanjut ke Pengiriman", v.ActionLabel)
	assert.Equal(t, TierRegular, v.Shipping.Tier)
	assert.Equal(t, PaymentCOD, v.Payment)
	assert.Len(t, v.Items, 2)
}

func TestSession_AddressGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	addr := validAddress
	addr.Name = "   "
	_, err := f.session.SetAddress(addr)
	require.NoError(t, err)

	v, err := f.session.Next(ctx)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name"}, verr.Fields)
	assert.Equal(t, "Harap lengkapi semua data alamat", verr.Message())
	assert.ErrorIs(t, err, ErrIncompleteCheckout)
	assert.Equal(t, StageAddress, v.Stage)
	assert.Equal(t, StageAddress, f.session.Stage())
}

func TestSession_PostalCodeOptional(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.SetAddress(validAddress)
	require.NoError(t, err)

	v, err := f.session.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StageShipping, v.Stage)
}

func TestSession_Totals(t *testing.T) {
	f := newFixture(t)

	totals := f.session.Totals()
	assert.Equal(t, int64(85000), totals.Subtotal)
	assert.Equal(t, int64(15000), totals.Shipping)
	assert.Equal(t, int64(100000), totals.Total)

	_, err := f.session.SetAddress(validAddress)
	require.NoError(t, err)
	_, err = f.session.Next(context.Background())
	require.NoError(t, err)
	_, err = f.session.SelectShipping(TierExpress)
	require.NoError(t, err)

	totals = f.session.Totals()
	assert.Equal(t, int64(25000), totals.Shipping)
	assert.Equal(t, int64(110000), totals.Total)
}

func TestSession_StageGuards(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.SelectShipping(TierExpress)
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = f.session.SelectPayment(PaymentTransfer)
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = f.session.SelectShipping(Tier("drone"))
	assert.ErrorIs(t, err, ErrInvalidTier)
	_, err = f.session.SelectPayment(PaymentMethod("crypto"))
	assert.ErrorIs(t, err, ErrInvalidPayment)

	f.toPayment(t)
	_, err = f.session.SetAddress(Address{})
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.Equal(t, validAddress, f.session.View().Address)
}

func TestSession_Complete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.toPayment(t)

	_, err := f.session.SelectPayment(PaymentEWallet)
	require.NoError(t, err)

	f.placer.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p Placement) bool {
		return p.SessionID == "s1" &&
			len(p.Items) == 2 &&
			p.Address == validAddress &&
			p.Shipping == TierRegular &&
			p.Payment == PaymentEWallet &&
			p.Totals.Total == 100000
	})).Return("ORD-1", nil).Once()

	v, err := f.session.Next(ctx)
	require.NoError(t, err)

	assert.Equal(t, StageSuccess, v.Stage)
	assert.Equal(t, "ORD-1", v.OrderID)
	assert.Equal(t, OrderPlacedMessage, v.Message)
	assert.Equal(t, int64(100000), v.Totals.Total)
	assert.Len(t, v.Items, 2)
	assert.True(t, f.cart.IsEmpty())
	assert.Equal(t, []time.Duration{DefaultProcessingDelay}, f.slept)
	require.NotEmpty(t, v.PaymentInstructions)
	assert.Contains(t, strings.Join(v.PaymentInstructions, "\n"), "Rp100.000")
	assert.Contains(t, strings.Join(v.PaymentInstructions, "\n"), "ORD-1")

	events := f.feed.Recent(notify.CustomerAudience("s1"), 0)
	require.Len(t, events, 1)
	assert.Equal(t, "Pesanan berhasil dibuat!", events[0].Message)
	assert.Equal(t, "ORD-1", events[0].OrderID)

	f.placer.AssertExpectations(t)
}

func TestSession_CompleteIsOneShot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.toPayment(t)
	f.placer.On("CreateOrder", mock.Anything, mock.Anything).Return("ORD-1", nil)

	_, err := f.session.Next(ctx)
	require.NoError(t, err)

	// a new item added after success must survive another Next
	f.cart.AddItem(kunyit)

	v, err := f.session.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageSuccess, v.Stage)
	assert.Equal(t, "ORD-1", v.OrderID)
	assert.Equal(t, 1, f.cart.ItemCount())
	assert.Len(t, f.slept, 1)
	f.placer.AssertNumberOfCalls(t, "CreateOrder", 1)
	assert.Len(t, f.feed.Recent(notify.CustomerAudience("s1"), 0), 1)
}

func TestSession_ConcurrentComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.toPayment(t)
	f.placer.On("CreateOrder", mock.Anything, mock.Anything).Return("ORD-1", nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.session.Next(ctx)
		}()
	}
	wg.Wait()

	f.placer.AssertNumberOfCalls(t, "CreateOrder", 1)
	assert.Equal(t, StageSuccess, f.session.Stage())
}

func TestSession_CartChangedDuringProcessing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.toPayment(t)

	f.session.sleep = func(time.Duration) { f.cart.AddItem(kunyit) }

	var placed Placement
	f.placer.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { placed = args.Get(1).(Placement) }).
		Return("ORD-1", nil)

	v, err := f.session.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageSuccess, v.Stage)

	units := 0
	for _, li := range placed.Items {
		units += li.Quantity
	}
	assert.Equal(t, 4, units)
	assert.Equal(t, int64(100000), placed.Totals.Subtotal)
	assert.True(t, f.cart.IsEmpty())
}

func TestSession_CartChangedDuringPlacement(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.toPayment(t)
		f.placer.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { f.cart.AddItem(kunyit) }).
			Return("ORD-1", nil)

		_, err := f.session.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, f.cart.ItemCount())
		assert.Equal(t, 1, f.cart.Quantity("2"))
	})

	t.Run("Failure", func(t *testing.T) {
		f := newFixture(t)
		f.toPayment(t)
		f.placer.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { f.cart.AddItem(kunyit) }).
			Return("", errors.New("db down"))

		_, err := f.session.Next(ctx)
		require.Error(t, err)
		assert.Equal(t, 4, f.cart.ItemCount())
		assert.Equal(t, 2, f.cart.Quantity("1"))
		assert.Equal(t, 2, f.cart.Quantity("2"))
		assert.False(t, f.session.Completed())
	})
}

func TestSession_PlacementFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.toPayment(t)

	boom := errors.New("db down")
	f.placer.On("CreateOrder", mock.Anything, mock.Anything).Return("", boom)

	v, err := f.session.Next(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StagePayment, v.Stage)
	assert.Equal(t, 3, f.cart.ItemCount())
	assert.Empty(t, f.feed.Recent(notify.CustomerAudience("s1"), 0))
}

func TestSession_CartEmptiedDuringCheckout(t *testing.T) {
	f := newFixture(t)
	f.toPayment(t)
	f.cart.Clear()

	_, err := f.session.Next(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	f.placer.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestSession_NotifyFailureDoesNotFail(t *testing.T) {
	c := cart.New()
	c.AddItem(jahe)
	placer := new(MockOrderPlacer)
	placer.On("CreateOrder", mock.Anything, mock.Anything).Return("ORD-9", nil)

	failing := notify.NotifierFunc(func(context.Context, notify.Event) error { return errors.New("broker down") })
	s := newSession("s1", c, placer, failing, 0)
	s.sleep = func(time.Duration) {}
	s.stage = StagePayment

	v, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StageSuccess, v.Stage)
}

func TestSession_Back(t *testing.T) {
	f := newFixture(t)
	f.toPayment(t)

	v, abandoned, err := f.session.Back()
	require.NoError(t, err)
	assert.False(t, abandoned)
	assert.Equal(t, StageShipping, v.Stage)

	v, abandoned, err = f.session.Back()
	require.NoError(t, err)
	assert.False(t, abandoned)
	assert.Equal(t, StageAddress, v.Stage)
	assert.Equal(t, validAddress, v.Address)

	_, abandoned, err = f.session.Back()
	require.NoError(t, err)
	assert.True(t, abandoned)
	assert.Equal(t, 3, f.cart.ItemCount())
}

func TestSession_BackFromSuccess(t *testing.T) {
	f := newFixture(t)
	f.toPayment(t)
	f.placer.On("CreateOrder", mock.Anything, mock.Anything).Return("ORD-1", nil)
	_, err := f.session.Next(context.Background())
	require.NoError(t, err)

	_, _, err = f.session.Back()
	assert.ErrorIs(t, err, ErrCompleted)
	assert.Equal(t, StageSuccess, f.session.Stage())
}

func TestAddress_Validate(t *testing.T) {
	assert.NoError(t, validAddress.Validate())

	err := Address{City: "Bandung"}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name", "phone", "address"}, verr.Fields)
	assert.Contains(t, err.Error(), "Harap lengkapi semua data alamat")
}

func TestAddress_Line(t *testing.T) {
	assert.Equal(t, "Jl. Malioboro No. 1, Yogyakarta", validAddress.Line())

	a := validAddress
	a.PostalCode = "55271"
	assert.Equal(t, "Jl. Malioboro No. 1, Yogyakarta, 55271", a.Line())
}

func TestOptions(t *testing.T) {
	opts := ShippingOptions()
	require.Len(t, opts, 2)
	assert.Equal(t, "3-5 hari", opts[0].ETA)
	assert.Equal(t, int64(25000), opts[1].Cost)
	assert.Equal(t, int64(0), Tier("unknown").Cost())

	assert.Len(t, PaymentOptions(), 3)
	assert.True(t, PaymentTransfer.Valid())
}
