package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"quiz-portal/internal/app"
	"quiz-portal/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuizCache keeps transient quiz copies in Redis so multiple proxy
// instances share one cache. The full quiz JSON is stored per key:
// SET quiz:{id} {json} EX ttl
type QuizCache struct {
	client  *redis.Client
	fetcher app.QuizFetcher
	ttl     time.Duration
	sf      singleflight.Group
	rnd     *rand.Rand
}

func NewQuizCache(client *redis.Client, fetcher app.QuizFetcher, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client:  client,
		fetcher: fetcher,
		ttl:     ttl,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) FetchQuiz(ctx context.Context, id int) (domain.Quiz, error) {
	key := c.key(id)

	if quiz, ok := c.lookup(ctx, key); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the key.
		if quiz, ok := c.lookup(ctx, key); ok {
			return quiz, nil
		}

		quiz, err := c.fetcher.FetchQuiz(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}

		if data, err := json.Marshal(quiz); err == nil {
			// Best-effort: a failed cache write only costs a refetch.
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) lookup(ctx context.Context, key string) (domain.Quiz, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

func (c *QuizCache) key(id int) string {
	return "quiz:" + strconv.Itoa(id)
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
