package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailMessage is the JSON payload published for the mail worker.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// queueDialer opens a channel with the queue declared and returns it with a
// func that closes the underlying connection.
type queueDialer func() (amqpChannel, func() error, error)

// QueueSender hands mail to a RabbitMQ queue consumed by a separate worker.
// A channel lost to a broker restart is redialed on the next Send.
type QueueSender struct {
	queue string
	dial  queueDialer

	mu        sync.Mutex
	channel   amqpChannel
	closeConn func() error
}

func NewQueueSender(url, queueName string) (*QueueSender, error) {
	const op = "services.NewQueueSender"

	s := &QueueSender{
		queue: queueName,
		dial: func() (amqpChannel, func() error, error) {
			return dialQueue(url, queueName)
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connectLocked(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func dialQueue(url, queueName string) (amqpChannel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	return ch, conn.Close, nil
}

func (s *QueueSender) connectLocked() error {
	s.closeLocked()

	ch, closeConn, err := s.dial()
	if err != nil {
		return err
	}
	s.channel, s.closeConn = ch, closeConn
	return nil
}

func (s *QueueSender) closeLocked() {
	if s.channel != nil {
		_ = s.channel.Close()
		s.channel = nil
	}
	if s.closeConn != nil {
		_ = s.closeConn()
		s.closeConn = nil
	}
}

func (s *QueueSender) Send(ctx context.Context, to string, subject string, body string) error {
	const op = "services.QueueSender.Send"

	payload, err := json.Marshal(EmailMessage{To: to, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channel == nil || s.channel.IsClosed() {
		if err := s.connectLocked(); err != nil {
			return fmt.Errorf("%s: reconnect: %w", op, err)
		}
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) {
		if err = s.connectLocked(); err != nil {
			return fmt.Errorf("%s: reconnect: %w", op, err)
		}
		err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, msg)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *QueueSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}
