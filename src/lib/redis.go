package lib

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// InvalidateRoomAvailability drops every cached availability window for a
// room. Called by the booking handlers after any status mutation so stale
// calendars are never served.
func InvalidateRoomAvailability(roomId uint) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	pattern := RoomAvailabilityKeyPattern(roomId)
	iter := rd.Scan(context.Background(), 0, pattern, 100).Iterator()
	for iter.Next(context.Background()) {
		if err := rd.Del(context.Background(), iter.Val()).Err(); err != nil {
			log.Printf("[redis] Error deleting key %s: %s\n", iter.Val(), err.Error())
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[redis] Error scanning keys for room %d: %s\n", roomId, err.Error())
	}
}
