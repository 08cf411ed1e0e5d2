package telegram

import (
	"context"
	"errors"
	"testing"

	"worktime_notifier/internal/domain/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type stubSender struct {
	sent    []string
	to      []telebot.Recipient
	sendErr error
	chat    *telebot.Chat
	chatErr error
}

func (s *stubSender) Send(to telebot.Recipient, what interface{}, _ ...interface{}) (*telebot.Message, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.to = append(s.to, to)
	s.sent = append(s.sent, what.(string))
	return &telebot.Message{Text: what.(string)}, nil
}

func (s *stubSender) ChatByID(id int64) (*telebot.Chat, error) {
	if s.chatErr != nil {
		return nil, s.chatErr
	}
	return s.chat, nil
}

func TestNewTelebotNotifier_MissingCredentials(t *testing.T) {
	_, err := NewTelebotNotifier("", 42)
	assert.True(t, errors.Is(err, notifier.ErrMissingToken))

	_, err = NewTelebotNotifier("123:abc", 0)
	assert.True(t, errors.Is(err, notifier.ErrMissingChannel))
}

func TestTelebotAdapter_Send(t *testing.T) {
	s := &stubSender{}
	a := NewTelebotAdapter(s, -100200)

	require.NoError(t, a.Send(context.Background(), "業務開始"))
	assert.Equal(t, []string{"業務開始"}, s.sent)
	assert.Equal(t, "-100200", s.to[0].Recipient())

	s.sendErr = errors.New("Forbidden: bot was kicked")
	err := a.Send(context.Background(), "業務終了")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kicked")
}

func TestTelebotAdapter_SendCancelled(t *testing.T) {
	s := &stubSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTelebotAdapter(s, 1).Send(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.sent)
}

func TestTelebotAdapter_CheckConnectivity(t *testing.T) {
	a := NewTelebotAdapter(&stubSender{chat: &telebot.Chat{ID: -100200, Title: "Team"}}, -100200)
	conn, err := a.CheckConnectivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "telegram", conn.Provider)
	assert.Equal(t, "Team", conn.Channel)

	a = NewTelebotAdapter(&stubSender{chat: &telebot.Chat{ID: 7, Username: "alice"}}, 7)
	conn, err = a.CheckConnectivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "@alice", conn.Channel)

	a = NewTelebotAdapter(&stubSender{chatErr: errors.New("chat not found")}, 9)
	conn, err = a.CheckConnectivity(context.Background())
	require.Error(t, err)
	assert.Equal(t, "9", conn.Channel)
}
