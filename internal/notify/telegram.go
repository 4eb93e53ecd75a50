package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/models"
)

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts a purchase summary to one chat.
type Telegram struct {
	api    messageSender
	chatID int64
	logger *logrus.Logger
}

// NewTelegram creates a Telegram notifier for the bot behind token.
func NewTelegram(token string, chatID int64, logger *logrus.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Infof("Authorized on account %s", api.Self.UserName)

	return newTelegram(api, chatID, logger), nil
}

func newTelegram(api messageSender, chatID int64, logger *logrus.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, logger: logger}
}

func (t *Telegram) PurchaseRecorded(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	msg := tgbotapi.NewMessage(t.chatID, purchaseSummary(record))
	msg.ParseMode = tgbotapi.ModeMarkdown

	// Send takes no context; stop waiting once ctx is done.
	sent := make(chan error, 1)
	go func() {
		_, err := t.api.Send(msg)
		sent <- err
	}()

	select {
	case err := <-sent:
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("failed to send message: %w", ctx.Err())
	}

	t.logger.WithFields(logrus.Fields{
		"family_id":   familyID,
		"purchase_id": record.ID,
	}).Debug("Purchase announced on Telegram")
	return nil
}

func purchaseSummary(record *models.PurchaseRecord) string {
	units := 0
	for _, p := range record.Productos {
		units += p.Cantidad
	}
	return fmt.Sprintf("\U0001F6D2 *Compra registrada*\nLista: %s\nProductos: %d\nTotal: %s",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, record.NombreLista),
		units,
		formatTotal(record.PrecioTotal),
	)
}
