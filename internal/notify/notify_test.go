package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"herbanusa-be/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []published
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	f := NewFeed(3)

	for _, msg := range []string{"a", "b", "c", "d"} {
		require.NoError(t, f.Notify(ctx, NewEvent(KindOrderStatus, FarmerAudience, msg)))
	}
	require.NoError(t, f.Notify(ctx, NewEvent(KindOrderCreated, CustomerAudience("s1"), "Pesanan berhasil dibuat!")))

	farmer := f.Recent(FarmerAudience, 0)
	require.Len(t, farmer, 3)
	assert.Equal(t, "b", farmer[0].Message)
	assert.Equal(t, "d", farmer[2].Message)

	last := f.Recent(FarmerAudience, 1)
	require.Len(t, last, 1)
	assert.Equal(t, "d", last[0].Message)

	customer := f.Recent("customer:s1", 10)
	require.Len(t, customer, 1)
	assert.Equal(t, KindOrderCreated, customer[0].Kind)

	assert.Empty(t, f.Recent("customer:other", 10))
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	var calls []string
	sink := func(name string, err error) Notifier {
		return NotifierFunc(func(context.Context, Event) error {
			calls = append(calls, name)
			return err
		})
	}

	m := Multi{sink("a", nil), sink("b", boom), nil, sink("c", errors.New("later"))}
	err := m.Notify(ctx, NewEvent(KindOrderStatus, FarmerAudience, "x"))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.NoError(t, Nop.Notify(ctx, Event{}))
}

func TestRabbitNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("DeclaresTopicExchange", func(t *testing.T) {
		ch := &fakeChannel{}
		_, err := NewRabbitNotifier(ch)
		require.NoError(t, err)
		assert.Equal(t, []string{"herbanusa.events:topic"}, ch.declared)
	})

	t.Run("DeclareError", func(t *testing.T) {
		_, err := NewRabbitNotifier(&fakeChannel{declareErr: errors.New("no access")})
		assert.Error(t, err)
	})

	t.Run("Publish", func(t *testing.T) {
		ch := &fakeChannel{}
		n, err := NewRabbitNotifier(ch)
		require.NoError(t, err)

		ev := NewEvent(KindOrderStatus, FarmerAudience, "Pesanan dikirim")
		ev.OrderID = "ORD-1"
		ev.Status = "shipped"
		require.NoError(t, n.Notify(ctx, ev))

		require.Len(t, ch.published, 1)
		p := ch.published[0]
		assert.Equal(t, Exchange, p.exchange)
		assert.Equal(t, RoutingKeyOrderStatus, p.key)
		assert.Equal(t, "application/json", p.msg.ContentType)
		assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
		assert.Equal(t, ev.ID, p.msg.MessageId)

		var got Event
		require.NoError(t, json.Unmarshal(p.msg.Body, &got))
		assert.Equal(t, "ORD-1", got.OrderID)
		assert.Equal(t, "Pesanan dikirim", got.Message)
	})

	t.Run("PublishError", func(t *testing.T) {
		ch := &fakeChannel{}
		n, err := NewRabbitNotifier(ch)
		require.NoError(t, err)
		ch.publishErr = amqp.ErrClosed

		err = n.Notify(ctx, NewEvent(KindOrderCreated, FarmerAudience, "x"))
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "order.created.v1", RoutingKey(KindOrderCreated))
	assert.Equal(t, "order.status.v1", RoutingKey(KindOrderStatus))
	assert.Equal(t, "other", RoutingKey(Kind("other")))
}

func TestRedisNotifier(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, RedisChannel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	n := NewRedisNotifier(client)
	ev := NewEvent(KindOrderCreated, CustomerAudience("s1"), "Pesanan berhasil dibuat!")
	require.NoError(t, n.Notify(ctx, ev))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, ev.ID, got.ID)
		assert.Equal(t, "customer:s1", got.Audience)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}

	mr.Close()
	assert.Error(t, n.Notify(ctx, ev))
}

func TestLogNotifier(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	ev := NewEvent(KindOrderStatus, FarmerAudience, "Pesanan diterima")
	ev.OrderID = "ORD-7"
	require.NoError(t, LogNotifier{}.Notify(context.Background(), ev))

	entries := observed.FilterMessage("notification").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ORD-7", fields["order_id"])
	assert.Equal(t, "Pesanan diterima", fields["message"])
}
