package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/platform/envutil"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

// CourseCache memoizes the Classroom course list per caller for a short TTL.
// The list changes rarely and the UI polls it on every page load. Keys are
// derived from a hash of the access token so tokens never appear in Redis.
type CourseCache interface {
	Get(ctx context.Context, accessToken string) ([]*classroomapi.Course, bool)
	Set(ctx context.Context, accessToken string, courses []*classroomapi.Course)
	Close() error
}

type courseCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCourseCache(log *logger.Logger) (CourseCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(envutil.Int("COURSE_CACHE_TTL_SECONDS", 60)) * time.Second
	return &courseCache{
		log: log.With("service", "CourseCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *courseCache) Get(ctx context.Context, accessToken string) ([]*classroomapi.Course, bool) {
	raw, err := c.rdb.Get(ctx, c.key(accessToken)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("course cache read failed", "error", err)
		}
		return nil, false
	}
	var courses []*classroomapi.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		c.log.Warn("course cache entry corrupt, dropping", "error", err)
		_ = c.rdb.Del(ctx, c.key(accessToken)).Err()
		return nil, false
	}
	return courses, true
}

func (c *courseCache) Set(ctx context.Context, accessToken string, courses []*classroomapi.Course) {
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(accessToken), raw, c.ttl).Err(); err != nil {
		c.log.Warn("course cache write failed", "error", err)
	}
}

func (c *courseCache) Close() error {
	return c.rdb.Close()
}

func (c *courseCache) key(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return "courses:" + hex.EncodeToString(sum[:8])
}
