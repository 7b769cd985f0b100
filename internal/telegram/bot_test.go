package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightshop/internal/models"
)

type sent struct {
	chatID  int64
	text    string
	contact bool
}

// fakeSender records replies instead of calling Telegram.
type fakeSender struct {
	mu      sync.Mutex
	sent    []sent
	sendErr error
}

func (f *fakeSender) SendHTML(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{chatID: chatID, text: text})
	return f.sendErr
}

func (f *fakeSender) RequestContact(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{chatID: chatID, text: text, contact: true})
	return f.sendErr
}

func (f *fakeSender) FileURL(fileID string) (string, error) {
	return "https://api.telegram.org/file/botTOKEN/photos/" + fileID + ".jpg", nil
}

func (f *fakeSender) last() sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sent{}
	}
	return f.sent[len(f.sent)-1]
}

// fakeStore is an in-memory message log.
type fakeStore struct {
	messages []*models.TelegramMessage
	products []*models.Product
	failSave bool
}

func (s *fakeStore) Save(ctx context.Context, m *models.TelegramMessage) (int64, error) {
	if s.failSave {
		return 0, errors.New("db down")
	}
	m.ID = int64(len(s.messages) + 1)
	s.messages = append(s.messages, m)
	return m.ID, nil
}

func (s *fakeStore) HasAuthorizedContact(ctx context.Context, userID int64, phone string) (bool, error) {
	for _, m := range s.messages {
		if m.TelegramUserID == userID && m.MessageType == models.TelegramContact &&
			m.PhoneNumber != nil && *m.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateProductFromMessage(ctx context.Context, messageID int64, d models.ProductDraft) (*models.Product, error) {
	p := &models.Product{
		ID: int64(100 + len(s.products)), Name: d.Name, Category: d.Category,
		Price: d.Price, ImageURL: d.ImageURL, GlowColor: d.GlowColor, Description: d.Description,
	}
	s.products = append(s.products, p)
	for _, m := range s.messages {
		if m.ID == messageID {
			m.Processed = true
			m.ProductID = &p.ID
		}
	}
	return p, nil
}

const allowed = "+7 922 214-29-96"

func update(userID int64, mutate func(m *tgbotapi.Message)) *tgbotapi.Update {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID * 10},
	}
	if mutate != nil {
		mutate(msg)
	}
	return &tgbotapi.Update{Message: msg}
}

func contact(phone string) func(m *tgbotapi.Message) {
	return func(m *tgbotapi.Message) {
		m.Contact = &tgbotapi.Contact{PhoneNumber: phone}
	}
}

func TestHandleIgnoresEmptyUpdate(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)

	require.NoError(t, bot.Handle(context.Background(), &tgbotapi.Update{}))
	assert.Empty(t, sender.sent)
	assert.Empty(t, store.messages)
}

func TestContactGrantsAccess(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)

	require.NoError(t, bot.Handle(context.Background(), update(1, contact("79222142996"))))

	require.Len(t, store.messages, 1)
	assert.Equal(t, models.TelegramContact, store.messages[0].MessageType)
	assert.Equal(t, "+79222142996", *store.messages[0].PhoneNumber)
	assert.Contains(t, sender.last().text, "Доступ разрешен")
	assert.Equal(t, int64(10), sender.last().chatID)
}

func TestContactDeniesOtherPhone(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)

	require.NoError(t, bot.Handle(context.Background(), update(2, contact("+70000000000"))))

	assert.Contains(t, sender.last().text, "Доступ запрещен")
	require.Len(t, store.messages, 1, "contact is logged either way")
}

func TestUnauthorizedPhotoIsRejected(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)

	require.NoError(t, bot.Handle(context.Background(), update(3, func(m *tgbotapi.Message) {
		m.Photo = []tgbotapi.PhotoSize{{FileID: "p1", FileSize: 10}}
		m.Caption = "Шар"
	})))

	assert.True(t, sender.last().contact, "asks for a contact")
	assert.Contains(t, sender.last().text, "Доступ запрещен")
	assert.Empty(t, store.products)
	assert.Empty(t, store.messages)
}

func TestAuthorizedPhotoCreatesProduct(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)
	var created *models.Product
	bot.OnProductCreated = func(ctx context.Context, p *models.Product) { created = p }
	ctx := context.Background()

	require.NoError(t, bot.Handle(ctx, update(4, contact(allowed))))
	require.NoError(t, bot.Handle(ctx, update(4, func(m *tgbotapi.Message) {
		m.Photo = []tgbotapi.PhotoSize{
			{FileID: "small", FileSize: 100, Width: 90, Height: 90},
			{FileID: "large", FileSize: 9000, Width: 1280, Height: 960},
			{FileID: "medium", FileSize: 2000, Width: 320, Height: 240},
		}
		m.Caption = "Фонарь <Луна>\nЦена: 15 000 руб\nКатегория: ландшафт\nМатовый плафон"
	})))

	require.Len(t, store.products, 1)
	p := store.products[0]
	assert.Equal(t, "Фонарь <Луна>", p.Name)
	assert.Equal(t, int64(15000), p.Price)
	assert.Equal(t, models.CategoryLandscape, p.Category)
	assert.Equal(t, "Матовый плафон", p.Description)
	assert.Contains(t, p.ImageURL, "large")
	assert.Same(t, p, created)

	msg := store.messages[1]
	assert.Equal(t, models.TelegramPhoto, msg.MessageType)
	assert.Equal(t, "large", *msg.FileID)
	assert.True(t, msg.Processed)

	reply := sender.last().text
	assert.Contains(t, reply, "Товар добавлен")
	assert.Contains(t, reply, "ID: 100")
	assert.Contains(t, reply, "Фонарь &lt;Луна&gt;", "name is escaped in HTML replies")
}

func TestAuthorizedPhotoUsesMirror(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)
	bot.Mirror = func(ctx context.Context, name, fileURL string) (string, error) {
		assert.Equal(t, "telegram-p1.jpg", name)
		return "https://cdn.example.com/media/catalog/p1.jpg", nil
	}
	ctx := context.Background()

	require.NoError(t, bot.Handle(ctx, update(5, contact(allowed))))
	require.NoError(t, bot.Handle(ctx, update(5, func(m *tgbotapi.Message) {
		m.Photo = []tgbotapi.PhotoSize{{FileID: "p1", FileSize: 1}}
	})))

	require.Len(t, store.products, 1)
	assert.Equal(t, "https://cdn.example.com/media/catalog/p1.jpg", store.products[0].ImageURL)
	assert.Equal(t, DefaultProductName, store.products[0].Name)
}

func TestAuthorizedTextIsOnlyLogged(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)
	ctx := context.Background()

	require.NoError(t, bot.Handle(ctx, update(6, contact(allowed))))
	require.NoError(t, bot.Handle(ctx, update(6, func(m *tgbotapi.Message) { m.Text = "привет" })))
	require.NoError(t, bot.Handle(ctx, update(6, func(m *tgbotapi.Message) {
		m.Document = &tgbotapi.Document{FileID: "doc1"}
	})))

	assert.Empty(t, store.products)
	require.Len(t, store.messages, 3)
	assert.Equal(t, models.TelegramText, store.messages[1].MessageType)
	assert.Equal(t, "привет", store.messages[1].MessageText)
	assert.Equal(t, models.TelegramDocument, store.messages[2].MessageType)
	assert.Contains(t, sender.last().text, "Сообщение сохранено")
}

func TestVideoCreatesProductWithDirectURL(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	bot := NewBot(sender, store, allowed)
	bot.Mirror = func(ctx context.Context, name, fileURL string) (string, error) {
		t.Fatal("videos are not mirrored")
		return "", nil
	}
	ctx := context.Background()

	require.NoError(t, bot.Handle(ctx, update(7, contact(allowed))))
	require.NoError(t, bot.Handle(ctx, update(7, func(m *tgbotapi.Message) {
		m.Video = &tgbotapi.Video{FileID: "v1"}
		m.Caption = "Гирлянда"
	})))

	require.Len(t, store.products, 1)
	assert.Contains(t, store.products[0].ImageURL, "v1")
}

func TestStoreFailureIsReturned(t *testing.T) {
	bot := NewBot(&fakeSender{}, &fakeStore{failSave: true}, allowed)
	err := bot.Handle(context.Background(), update(8, contact(allowed)))
	assert.Error(t, err)
}

func TestSendFailureIsNotAnError(t *testing.T) {
	bot := NewBot(&fakeSender{sendErr: errors.New("blocked by user")}, &fakeStore{}, allowed)
	assert.NoError(t, bot.Handle(context.Background(), update(9, contact(allowed))))
}

func TestNoAllowedPhoneDeniesEveryone(t *testing.T) {
	sender := &fakeSender{}
	bot := NewBot(sender, &fakeStore{}, "")
	require.NoError(t, bot.Handle(context.Background(), update(10, contact(""))))
	assert.Contains(t, sender.last().text, "Доступ запрещен")
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+79222142996", NormalizePhone("79222142996"))
	assert.Equal(t, "+79222142996", NormalizePhone("+7 (922) 214-29-96"))
	assert.Equal(t, "+79222142996", NormalizePhone(" +7 922 214 29 96 "))
	assert.Equal(t, "", NormalizePhone("  "))
}
