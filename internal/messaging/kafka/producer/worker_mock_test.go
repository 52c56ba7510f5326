package producer

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/messaging/kafka"
	kafkaMock "go-payroll/internal/messaging/kafka/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestProcessPendingEvents_MarkSentErrorIsNotCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{}

	e1, e2 := event("e1", "run-1"), event("e2", "run-2")
	gomock.InOrder(
		repo.EXPECT().ListPending(gomock.Any(), batchSize).Return([]kafka.OutboxEvent{e1, e2}, nil),
		repo.EXPECT().MarkSent(gomock.Any(), "e1").Return(errors.New("connection reset")),
		repo.EXPECT().MarkSent(gomock.Any(), "e2").Return(nil),
	)

	sent, err := processPendingEvents(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, writer.messages, 2)
}

func TestProcessPendingEvents_MarkFailedCarriesPublishError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failKeys: map[string]error{"run-1": errors.New("broker unreachable")}}

	e1 := event("e1", "run-1")
	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return([]kafka.OutboxEvent{e1}, nil)
	repo.EXPECT().MarkFailed(gomock.Any(), e1, "broker unreachable").Return(errors.New("db down"))

	sent, err := processPendingEvents(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Zero(t, sent)
}
