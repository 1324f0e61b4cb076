package queue

// Sender publishes JSON messages to a named queue
type Sender interface {
	SendMessage(queueName string, body any) error
}
