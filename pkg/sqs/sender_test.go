package sqs

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSQSClient struct {
	mock.Mock
}

func (m *MockSQSClient) GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.GetQueueUrlOutput), args.Error(1)
}

func (m *MockSQSClient) SendMessage(ctx context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.SendMessageOutput), args.Error(1)
}

const queueURL = "http://localhost:4566/000000000000/weather-etl-runs"

func TestSender_SendMessage(t *testing.T) {
	t.Run("resolves the queue once and sends json", func(t *testing.T) {
		client := &MockSQSClient{}
		client.On("GetQueueUrl", mock.Anything, mock.MatchedBy(func(in *sqs.GetQueueUrlInput) bool {
			return aws.ToString(in.QueueName) == "weather-etl-runs"
		})).Return(&sqs.GetQueueUrlOutput{QueueUrl: aws.String(queueURL)}, nil).Once()
		client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			return aws.ToString(in.QueueUrl) == queueURL && aws.ToString(in.MessageBody) == `{"rows":3}`
		})).Return(&sqs.SendMessageOutput{}, nil).Twice()

		sender := NewSender(client, 0)
		require.NoError(t, sender.SendMessage("weather-etl-runs", map[string]int{"rows": 3}))
		require.NoError(t, sender.SendMessage("weather-etl-runs", map[string]int{"rows": 3}))

		client.AssertExpectations(t)
	})

	t.Run("queue url is used as is", func(t *testing.T) {
		client := &MockSQSClient{}
		client.On("SendMessage", mock.Anything, mock.Anything).Return(&sqs.SendMessageOutput{}, nil)

		require.NoError(t, NewSender(client, 0).SendMessage(queueURL, "done"))
		client.AssertNotCalled(t, "GetQueueUrl", mock.Anything, mock.Anything)
	})

	t.Run("unknown queue", func(t *testing.T) {
		client := &MockSQSClient{}
		client.On("GetQueueUrl", mock.Anything, mock.Anything).Return(nil, errors.New("queue does not exist"))

		err := NewSender(client, 0).SendMessage("missing", "done")
		assert.ErrorContains(t, err, "failed to get queue URL for missing")
	})

	t.Run("unserializable body", func(t *testing.T) {
		client := &MockSQSClient{}
		err := NewSender(client, 0).SendMessage(queueURL, make(chan int))
		assert.ErrorContains(t, err, "failed to serialize")
	})

	t.Run("send failure", func(t *testing.T) {
		client := &MockSQSClient{}
		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		err := NewSender(client, 0).SendMessage(queueURL, "done")
		assert.ErrorContains(t, err, "throttled")
	})
}
