//go:build ignore

// Публикует тестовое событие изменения локации в стрим и ждёт,
// пока воркер журнала подтвердит его в consumer group.
//
//	go run scripts/test_publish.go -redis localhost:6379 -code KTM
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/location-registry/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "stream:location:changes", "Stream with location events")
	group := flag.String("group", "location-audit-workers", "Audit worker consumer group")
	code := flag.String("code", "KTM", "Municipality code for the event")
	entityID := flag.Int64("id", 1, "Municipality id for the event")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.NewLocationEvent(
		domain.EventUpdated,
		domain.LevelMunicipality,
		&domain.Location{ID: *entityID, Code: *code},
		"D1",
		"test-publish",
		[]string{"population"},
	)

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
			"type": string(event.Type),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", *stream)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Event ID: %s\n", event.EventID)

	fmt.Printf("\nWaiting for group %s to acknowledge...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: message is still pending or was never delivered")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, *stream).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group {
					continue
				}
				if g.LastDeliveredID >= msgID && g.Pending == 0 {
					fmt.Printf("Acknowledged (last delivered %s)\n", g.LastDeliveredID)
					return
				}
			}
		}
	}
}
