package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/harentsoaR/people-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = 5 * time.Second

// Publisher sends one payload to a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher publishes on a Redis pub/sub channel.
type RedisPublisher struct {
	Client *redis.Client
}

func NewRedisPublisher(addr, password string) *RedisPublisher {
	return &RedisPublisher{Client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // Empty if no password
		DB:       0,
	})}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.Client.Publish(ctx, channel, payload).Err()
}

func (p *RedisPublisher) Close() error { return p.Client.Close() }

// EventService fans mutation events out to a Publisher without blocking the request.
// A nil Publisher turns it into a no-op.
type EventService struct {
	pub     Publisher
	channel string
	wg      sync.WaitGroup
}

func NewEventService(pub Publisher, channel string) *EventService {
	return &EventService{pub: pub, channel: channel}
}

// Emit publishes ev in the background; failures are only logged.
func (s *EventService) Emit(ev models.Event) {
	if s == nil || s.pub == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[events] marshal %s: %v", ev.Type, err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.pub.Publish(ctx, s.channel, data); err != nil {
			log.Printf("[events] publish %s for %s to %q failed: %v", ev.Type, ev.Date, s.channel, err)
			return
		}
		log.Printf("[events] published %s for %s", ev.Type, ev.Date)
	}()
}

// Wait blocks until every in-flight Emit has finished.
func (s *EventService) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}
