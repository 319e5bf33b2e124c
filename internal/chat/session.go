// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation session.
//
// The session owns the ordered message log and orchestrates
// user input -> prompt builder -> completion client -> log append. The log is
// append-only for the life of the session and at most one completion request
// is in flight at a time.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/model"
	"github.com/finmentor/finmentor-tui/internal/persona"
	"github.com/finmentor/finmentor-tui/internal/prompt"
)

// =============================================================================
// CONSTANTS AND ERRORS
// =============================================================================

// FallbackNotice is appended as the assistant turn when a completion fails.
const FallbackNotice = "Sorry, I couldn't get a response right now. Please try sending your question again."

// WelcomeMessage opens every new conversation.
const WelcomeMessage = "Hi! I'm FinMentor, your friendly financial guide. " +
	"Ask me about taxes, investments, or savings - I'll keep it simple."

var (
	// ErrBusy indicates a send was rejected because one is already in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrNoCredential indicates a send was rejected because no API key is
	// configured. No message is appended and no request is made.
	ErrNoCredential = errors.New("credential required")
)

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NoticeKind classifies user-visible notifications.
type NoticeKind int

const (
	// NoticeCredentialRequired asks the user to configure an API key.
	NoticeCredentialRequired NoticeKind = iota
	// NoticeAuthFailed reports an authorization-class transport failure.
	NoticeAuthFailed
	// NoticeGenericFailure reports any other completion failure.
	NoticeGenericFailure
)

// Notification is a transient user-visible notice, distinct from the message
// log.
type Notification struct {
	Kind NoticeKind
	Text string
}

func noticeFor(kind NoticeKind) Notification {
	switch kind {
	case NoticeCredentialRequired:
		return Notification{kind, "No API key configured. Run setup or set GEMINI_API_KEY."}
	case NoticeAuthFailed:
		return Notification{kind, "The API rejected your key. Check your API key and try again."}
	default:
		return Notification{kind, "Couldn't reach the model. Please try again."}
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the per-run conversation state. Safe for concurrent use: the
// append and pending-flag transitions form a single critical section.
type Session struct {
	mu       sync.Mutex
	messages []*model.Message
	active   persona.Persona
	pending  bool
	lastErr  error

	store  credential.Store
	client gemini.Completer
	notify func(Notification)
}

// Option configures a Session.
type Option func(*Session)

// WithPersona sets the startup persona by id, falling back to the default
// for unknown ids.
func WithPersona(id persona.ID) Option {
	return func(s *Session) { s.active = persona.GetOrDefault(id) }
}

// WithNotify installs a notification sink. Notifications are delivered
// synchronously from Send; the sink must not call back into the session.
func WithNotify(fn func(Notification)) Option {
	return func(s *Session) { s.notify = fn }
}

// WithWelcome seeds the log with the opening assistant message.
func WithWelcome() Option {
	return func(s *Session) {
		s.messages = append(s.messages, model.NewMessage(model.RoleAssistant, WelcomeMessage))
	}
}

// NewSession creates a session over an injected credential store and
// completion client.
func NewSession(store credential.Store, client gemini.Completer, opts ...Option) *Session {
	s := &Session{
		store:  store,
		client: client,
		active: persona.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns the log in chronological order. The slice is a copy; the
// messages themselves are immutable once created.
func (s *Session) Messages() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether a completion request is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastError returns the most recent completion failure, or nil.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ActivePersona returns the persona applied to the next send.
func (s *Session) ActivePersona() persona.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// ChangePersona switches the active persona. Unknown ids fall back to the
// default persona rather than failing. The message log and any in-flight
// request are untouched; the switch affects only the next Send.
func (s *Session) ChangePersona(id persona.ID) {
	p := persona.GetOrDefault(id)
	s.mu.Lock()
	s.active = p
	s.mu.Unlock()
}

// Send submits one user message and blocks until the assistant turn is
// appended.
//
// Empty or whitespace-only input is a no-op. A send while another is in
// flight returns ErrBusy without touching the log. A send with no credential
// returns ErrNoCredential, emits a notification, and makes no request. On
// completion failure the fallback notice is appended as the assistant turn,
// so every accepted send grows the log by exactly one user/assistant pair.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return ErrBusy
	}

	cred, err := s.store.Resolve()
	if err != nil || !cred.Present() {
		s.lastErr = ErrNoCredential
		s.mu.Unlock()
		s.emit(noticeFor(NoticeCredentialRequired))
		return ErrNoCredential
	}

	s.messages = append(s.messages, model.NewMessage(model.RoleUser, text))
	s.pending = true
	active := s.active
	s.mu.Unlock()

	// Sole suspension point. The lock is not held across the network call.
	req := prompt.Build(active, text)
	reply, err := s.client.Complete(ctx, req, cred)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	if err != nil {
		s.lastErr = err
		s.messages = append(s.messages, model.NewMessage(model.RoleAssistant, FallbackNotice))
		if gemini.IsAuthError(err) {
			s.emitLocked(noticeFor(NoticeAuthFailed))
		} else {
			s.emitLocked(noticeFor(NoticeGenericFailure))
		}
		return err
	}

	s.lastErr = nil
	s.messages = append(s.messages, model.NewMessage(model.RoleAssistant, reply))
	return nil
}

func (s *Session) emit(n Notification) {
	if s.notify != nil {
		s.notify(n)
	}
}

// emitLocked delivers a notification while s.mu is held. Sinks must not call
// back into the session.
func (s *Session) emitLocked(n Notification) {
	if s.notify != nil {
		s.notify(n)
	}
}
