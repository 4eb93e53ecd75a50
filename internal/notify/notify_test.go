package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/familycart/internal/models"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleRecord() *models.PurchaseRecord {
	return &models.PurchaseRecord{
		ID:          "h1",
		Fecha:       time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC),
		PrecioTotal: 7.5,
		NombreLista: "Compra_semanal",
		Productos: []models.PurchasedProduct{
			{ProductID: "1", Precio: 1.5, Cantidad: 3},
			{ProductID: "2", Precio: 3, Cantidad: 1},
		},
	}
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PurchaseRecorded(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	args := m.Called(ctx, familyID, record)
	return args.Error(0)
}

func TestMulti_AggregatesFailures(t *testing.T) {
	ok := new(mockNotifier)
	bad := new(mockNotifier)
	record := sampleRecord()
	ok.On("PurchaseRecorded", mock.Anything, "f1", record).Return(nil)
	bad.On("PurchaseRecorded", mock.Anything, "f1", record).Return(errors.New("down"))

	err := Multi{bad, ok}.PurchaseRecorded(context.Background(), "f1", record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	ok.AssertExpectations(t)
	bad.AssertExpectations(t)

	assert.NoError(t, Multi{ok}.PurchaseRecorded(context.Background(), "f1", record))
	assert.NoError(t, Nop{}.PurchaseRecorded(context.Background(), "f1", record))
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegram_PurchaseRecorded(t *testing.T) {
	sender := &fakeSender{}
	n := newTelegram(sender, 42, quietLogger())

	require.NoError(t, n.PurchaseRecorded(context.Background(), "f1", sampleRecord()))
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Contains(t, msg.Text, "Compra\\_semanal")
	assert.Contains(t, msg.Text, "Productos: 4")
	assert.Contains(t, msg.Text, "7.50 €")

	sender.err = errors.New("blocked")
	assert.Error(t, n.PurchaseRecorded(context.Background(), "f1", sampleRecord()))
}

// stalledSender blocks until released.
type stalledSender struct {
	release chan struct{}
}

func (s *stalledSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	<-s.release
	return tgbotapi.Message{}, nil
}

func TestTelegram_PurchaseRecordedHonorsContext(t *testing.T) {
	sender := &stalledSender{release: make(chan struct{})}
	defer close(sender.release)
	n := newTelegram(sender, 42, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.PurchaseRecorded(ctx, "f1", sampleRecord())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

type fakePublisher struct {
	key string
	msg amqp.Publishing
}

func (f *fakePublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.key = key
	f.msg = msg
	return nil
}

func TestRabbitMQ_PublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	n := &RabbitMQ{channel: pub, logger: quietLogger()}

	require.NoError(t, n.PurchaseRecorded(context.Background(), "f1", sampleRecord()))
	assert.Equal(t, PurchaseQueue, pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)

	var event PurchaseEvent
	require.NoError(t, json.Unmarshal(pub.msg.Body, &event))
	assert.Equal(t, "f1", event.FamilyID)
	assert.Equal(t, "h1", event.PurchaseID)
	assert.Len(t, event.Productos, 2)
	assert.Equal(t, "2024-03-02T18:30:00Z", event.Fecha)
}
