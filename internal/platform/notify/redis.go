package notify

import (
	"context"
	"log"

	"edu_rewards/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Println("Redis connection closed.")
	}
}

// RedisNotifier publishes submission change events on a pub/sub channel so
// every browser tab (or admin dashboard instance) sharing the backend can
// refresh its pending counts.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) SubmissionChanged(key string) {
	// Fire-and-forget: a dropped event only delays a refresh.
	if err := n.rdb.Publish(context.Background(), n.channel, key).Err(); err != nil {
		log.Printf("notify: publish %s: %v", n.channel, err)
	}
}

// Subscribe returns a channel of changed submission keys. The caller owns the
// returned PubSub and must Close it to stop the goroutine.
func (n *RedisNotifier) Subscribe(ctx context.Context) (*redis.PubSub, <-chan string) {
	ps := n.rdb.Subscribe(ctx, n.channel)
	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ps, out
}

var _ Notifier = (*RedisNotifier)(nil)
