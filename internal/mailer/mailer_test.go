package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"focototal-be/internal/entities"
	"focototal-be/internal/logging"
	"focototal-be/internal/mailer"
	"focototal-be/internal/mailer/mocks"
)

var alice = &entities.User{Name: "Alice <admin>", Email: "alice@x.com"}

func TestMailer_PasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	var got mailer.Message
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		got = msg
		return nil
	})

	m := mailer.New(sender, mailer.Options{FrontendURL: "https://app.test/", ResetTTL: time.Hour})
	require.NoError(t, m.SendPasswordReset(context.Background(), alice, "abc123"))

	assert.Equal(t, "alice@x.com", got.To)
	assert.Equal(t, "password_reset", got.Kind)
	assert.Contains(t, got.HTML, "https://app.test/reset-password?token=abc123")
	assert.Contains(t, got.HTML, "1 hour")
	assert.Contains(t, got.HTML, "Alice &lt;admin&gt;", "names are escaped")
}

func TestMailer_TemporaryCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		assert.Contains(t, msg.HTML, "Tmp-Pass-123")
		assert.Contains(t, msg.HTML, "https://app.test/login")
		return errors.New("smtp down")
	})

	m := mailer.New(sender, mailer.Options{FrontendURL: "https://app.test"})
	err := m.SendTemporaryCredentials(context.Background(), alice, "Tmp-Pass-123")
	assert.ErrorContains(t, err, "smtp down")
}

func TestResetLink(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/reset-password?token=a%2Bb", mailer.ResetLink("http://localhost:3000/", "a+b"))
}

type countingSender struct {
	failFirst int32
	calls     atomic.Int32
	delivered atomic.Int32
}

func (s *countingSender) Send(context.Context, mailer.Message) error {
	n := s.calls.Add(1)
	if n <= s.failFirst {
		return errors.New("temporary failure")
	}
	s.delivered.Add(1)
	return nil
}

func TestDispatcher_DeliversAndDrainsOnShutdown(t *testing.T) {
	sender := &countingSender{failFirst: 1}
	d := mailer.NewDispatcher(sender, logging.Nop(), 10, 2)
	d.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Send(context.Background(), mailer.Message{To: "x@y.z", Kind: "welcome"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	assert.Equal(t, int32(5), sender.delivered.Load())
	assert.ErrorIs(t, d.Send(context.Background(), mailer.Message{}), mailer.ErrDispatcherClosed)
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := mailer.NewDispatcher(&countingSender{}, logging.Nop(), 1, 1)

	require.NoError(t, d.Send(context.Background(), mailer.Message{}))
	assert.ErrorIs(t, d.Send(context.Background(), mailer.Message{}), mailer.ErrQueueFull)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := mailer.NewLogSender(logging.NewWithWriter(&buf, "text", "info"))

	require.NoError(t, s.Send(context.Background(), mailer.Message{To: "a@x.com", Kind: "welcome", HTML: "<secret>"}))
	assert.Contains(t, buf.String(), "kind=welcome")
	assert.False(t, strings.Contains(buf.String(), "<secret>"))
}
