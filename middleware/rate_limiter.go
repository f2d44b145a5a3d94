package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"resort-backend/logger"
)

// LoginRateLimiter throttles credential guessing on the admin login route.
// With REDIS_ADDR set the counters are shared across instances; otherwise an
// in-process store is used.
func LoginRateLimiter() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted("10-M")
	if err != nil {
		logger.Log.Errorf("failed to build login rate: %v", err)
		return func(c *gin.Context) { c.Next() }
	}

	var store limiter.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		store, err = redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "rate_limiter:admin_login",
		})
		if err != nil {
			logger.Log.Warnf("redis rate limiter store unavailable, using memory store: %v", err)
			store = memorystore.NewStore()
		}
	} else {
		store = memorystore.NewStore()
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate))
}
