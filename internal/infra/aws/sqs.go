package aws

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"weather-etl/internal/domain/gateway/queue"
	sqssender "weather-etl/pkg/sqs"
)

// NewSqsClient creates an SQS client, pointed at endpoint when set (LocalStack).
func NewSqsClient(awsCfg aws.Config, endpoint string) *sqs.Client {
	return sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// SQSSenderAdapter adapts the pkg/sqs.Sender to implement domain queue.Sender interface
type SQSSenderAdapter struct {
	sqsSender *sqssender.Sender
}

// NewSQSSenderAdapter creates a new SQS sender adapter that implements domain interface
func NewSQSSenderAdapter(sqsClient sqssender.SQSClient, timeout time.Duration) queue.Sender {
	return &SQSSenderAdapter{
		sqsSender: sqssender.NewSender(sqsClient, timeout),
	}
}

func (adapter *SQSSenderAdapter) SendMessage(queueName string, body any) error {
	return adapter.sqsSender.SendMessage(queueName, body)
}
