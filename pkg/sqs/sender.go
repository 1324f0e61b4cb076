package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

const defaultSendTimeout = 10 * time.Second

// SQSClient defines the subset of SQS operations used by the Sender
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Sender handles sending messages to SQS queues
type Sender struct {
	sqsClient SQSClient
	timeout   time.Duration

	mu        sync.RWMutex
	queueURLs map[string]string
}

// NewSender creates and returns a new Sender. A zero timeout means 10 seconds.
func NewSender(sqsClient SQSClient, timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Sender{
		sqsClient: sqsClient,
		timeout:   timeout,
		queueURLs: make(map[string]string),
	}
}

// SendMessage serializes the provided body to JSON and sends it to the specified queue.
// queueName may also be a full queue URL.
func (s *Sender) SendMessage(queueName string, body any) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	_, err = s.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(jsonBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}

	return nil
}

// getQueueURL resolves and caches the URL for the specified queue name
func (s *Sender) getQueueURL(ctx context.Context, queueName string) (string, error) {
	if strings.HasPrefix(queueName, "https://") || strings.HasPrefix(queueName, "http://") {
		return queueName, nil
	}

	s.mu.RLock()
	cached, ok := s.queueURLs[queueName]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err := s.sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return "", err
	}
	if result.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}

	s.mu.Lock()
	s.queueURLs[queueName] = *result.QueueUrl
	s.mu.Unlock()
	return *result.QueueUrl, nil
}
