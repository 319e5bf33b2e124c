// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/model"
	"github.com/finmentor/finmentor-tui/internal/persona"
)

// stubCompleter is a scriptable completion client that counts calls.
type stubCompleter struct {
	calls   atomic.Int64
	reply   string
	err     error
	block   chan struct{} // when set, Complete waits until closed
	lastReq gemini.Request
	mu      sync.Mutex
}

func (s *stubCompleter) Complete(ctx context.Context, req gemini.Request, cred credential.Credential) (string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.lastReq = req
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubCompleter) request() gemini.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq
}

func newTestSession(stub *stubCompleter, opts ...Option) (*Session, *[]Notification) {
	notices := &[]Notification{}
	var mu sync.Mutex
	opts = append(opts, WithNotify(func(n Notification) {
		mu.Lock()
		*notices = append(*notices, n)
		mu.Unlock()
	}))
	return NewSession(credential.NewStaticStore("test-key"), stub, opts...), notices
}

func roles(msgs []*model.Message) []model.Role {
	out := make([]model.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func TestSend_SuccessAppendsPair(t *testing.T) {
	stub := &stubCompleter{reply: "Use ELSS and PPF."}
	s, _ := newTestSession(stub, WithPersona("ca"))

	require.NoError(t, s.Send(context.Background(), "How do I save tax?"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []model.Role{model.RoleUser, model.RoleAssistant}, roles(msgs))
	assert.Equal(t, "How do I save tax?", msgs[0].Content)
	assert.Equal(t, "Use ELSS and PPF.", msgs[1].Content)
	assert.False(t, s.Pending())
	assert.NoError(t, s.LastError())
	assert.Equal(t, int64(1), stub.calls.Load())
}

func TestSend_TrimsInput(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, _ := newTestSession(stub)

	require.NoError(t, s.Send(context.Background(), "  spaced question  \n"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "spaced question", msgs[0].Content)
}

func TestSend_EmptyInputNoOp(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, notices := newTestSession(stub)

	for _, input := range []string{"", "   ", "\n\t "} {
		require.NoError(t, s.Send(context.Background(), input))
	}

	assert.Empty(t, s.Messages(), "empty input must not mutate the log")
	assert.Zero(t, stub.calls.Load(), "empty input must not invoke the client")
	assert.Empty(t, *notices)
}

func TestSend_NoCredential(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	notices := &[]Notification{}
	s := NewSession(credential.NewStaticStore(""), stub, WithNotify(func(n Notification) {
		*notices = append(*notices, n)
	}))

	err := s.Send(context.Background(), "test")

	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Empty(t, s.Messages(), "no user message is appended without a credential")
	assert.Zero(t, stub.calls.Load(), "client must never be invoked without a credential")
	require.Len(t, *notices, 1)
	assert.Equal(t, NoticeCredentialRequired, (*notices)[0].Kind)
	assert.ErrorIs(t, s.LastError(), ErrNoCredential)
	assert.False(t, s.Pending())
}

func TestSend_TransportFailure(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	stub := &stubCompleter{err: transportErr}
	s, notices := newTestSession(stub)

	err := s.Send(context.Background(), "hello")

	assert.ErrorIs(t, err, transportErr)
	msgs := s.Messages()
	require.Len(t, msgs, 2, "failure still appends the user/assistant pair")
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, FallbackNotice, msgs[1].Content)
	assert.ErrorIs(t, s.LastError(), transportErr)
	assert.False(t, s.Pending())
	require.Len(t, *notices, 1)
	assert.Equal(t, NoticeGenericFailure, (*notices)[0].Kind)
}

func TestSend_AuthFailureNotice(t *testing.T) {
	stub := &stubCompleter{err: gemini.ErrAuthFailed}
	s, notices := newTestSession(stub)

	err := s.Send(context.Background(), "hello")

	assert.ErrorIs(t, err, gemini.ErrAuthFailed)
	require.Len(t, *notices, 1)
	assert.Equal(t, NoticeAuthFailed, (*notices)[0].Kind,
		"authorization-class failures get credential guidance, not generic retry guidance")
	assert.Equal(t, FallbackNotice, s.Messages()[1].Content)
}

func TestSend_SuccessClearsLastError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("boom")}
	s, _ := newTestSession(stub)

	require.Error(t, s.Send(context.Background(), "first"))
	require.Error(t, s.LastError())

	stub.err = nil
	stub.reply = "fine now"
	require.NoError(t, s.Send(context.Background(), "second"))
	assert.NoError(t, s.LastError())
}

func TestSend_RejectsWhilePending(t *testing.T) {
	stub := &stubCompleter{reply: "slow answer", block: make(chan struct{})}
	s, _ := newTestSession(stub)

	done := make(chan error, 1)
	go func() { done <- s.Send(context.Background(), "first") }()

	// Wait until the first send is in flight.
	require.Eventually(t, s.Pending, time.Second, time.Millisecond)

	err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(stub.block)
	require.NoError(t, <-done)

	msgs := s.Messages()
	require.Len(t, msgs, 2, "rejected send must not append a second user message")
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, int64(1), stub.calls.Load())
	assert.False(t, s.Pending())
}

func TestChangePersona(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, _ := newTestSession(stub)

	require.NoError(t, s.Send(context.Background(), "before switch"))
	logBefore := s.Messages()

	s.ChangePersona(persona.Advisor)
	assert.Equal(t, persona.Advisor, s.ActivePersona().ID)
	assert.Equal(t, len(logBefore), len(s.Messages()), "persona switch never mutates the log")

	// Unknown ids fall back to the default persona.
	s.ChangePersona("astrologer")
	assert.Equal(t, persona.CA, s.ActivePersona().ID)
}

func TestChangePersona_MidFlightAffectsNextSendOnly(t *testing.T) {
	stub := &stubCompleter{reply: "ok", block: make(chan struct{})}
	s, _ := newTestSession(stub, WithPersona(persona.CA))

	done := make(chan error, 1)
	go func() { done <- s.Send(context.Background(), "first") }()
	require.Eventually(t, s.Pending, time.Second, time.Millisecond)

	s.ChangePersona(persona.Auditor)
	assert.True(t, s.Pending(), "persona switch does not touch pending")

	close(stub.block)
	require.NoError(t, <-done)

	// The in-flight request used the persona active at send time.
	ca, _ := persona.Get(persona.CA)
	assert.Contains(t, stub.request().Contents[0].Parts[0].Text, ca.SystemPrompt)

	stub.block = nil
	require.NoError(t, s.Send(context.Background(), "second"))
	auditor, _ := persona.Get(persona.Auditor)
	assert.Contains(t, stub.request().Contents[0].Parts[0].Text, auditor.SystemPrompt)
}

func TestWithWelcome(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, _ := newTestSession(stub, WithWelcome())

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleAssistant, msgs[0].Role)
	assert.Equal(t, WelcomeMessage, msgs[0].Content)
}

func TestMessages_ReturnsCopy(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, _ := newTestSession(stub)
	require.NoError(t, s.Send(context.Background(), "hi"))

	msgs := s.Messages()
	msgs[0] = nil
	assert.NotNil(t, s.Messages()[0], "mutating the returned slice must not affect the log")
}

func TestSend_ConcurrentCallers(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, _ := newTestSession(stub)

	var wg sync.WaitGroup
	var accepted atomic.Int64
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Send(context.Background(), "race probe"); err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	// Every accepted send grew the log by exactly one pair.
	assert.Equal(t, int(accepted.Load())*2, len(s.Messages()))
	assert.False(t, s.Pending())
}
