package mailer

import (
	"sync"
)

type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records emails instead of sending them. Sends happen on background
// goroutines, so tests should poll it.
type MockMailer struct {
	mu     sync.RWMutex
	emails []Email
	err    error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{
		emails: make([]Email, 0),
	}
}

// FailWith makes every following Send return err.
func (m *MockMailer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.emails = append(m.emails, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

func (m *MockMailer) GetSentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]Email, len(m.emails))
	copy(emails, m.emails)
	return emails
}

// SentWith returns the recorded emails rendered from templateFile.
func (m *MockMailer) SentWith(templateFile string) []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var emails []Email
	for _, e := range m.emails {
		if e.TemplateFile == templateFile {
			emails = append(emails, e)
		}
	}
	return emails
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = make([]Email, 0)
	m.err = nil
}
