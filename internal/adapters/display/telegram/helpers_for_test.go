package telegram

import (
	"sync"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []tg.Chattable
	nextID int
}

func (s *fakeSender) Send(c tg.Chattable) (tg.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, c)
	s.nextID++
	return tg.Message{MessageID: s.nextID}, nil
}

func (s *fakeSender) Sent() []tg.Chattable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tg.Chattable(nil), s.sent...)
}

type memoryPages struct {
	mu    sync.Mutex
	pages map[int64]domain.Page
}

func newMemoryPages() *memoryPages {
	return &memoryPages{pages: map[int64]domain.Page{}}
}

func (m *memoryPages) FindByChat(chatID int64) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[chatID]
	if !ok {
		return nil, nil
	}
	return &page, nil
}

func (m *memoryPages) Save(page *domain.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if page.UUID == "" {
		page.UUID = "page"
	}
	m.pages[page.ChatID] = *page
	return nil
}

func (m *memoryPages) DeleteByChat(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, chatID)
	return nil
}
