// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type BoundaryDownloadEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	CityID     string    `json:"city_id"`
	CityName   string    `json:"city_name"`
	Country    string    `json:"country"`
	CenterLon  float64   `json:"center_lon"`
	CenterLat  float64   `json:"center_lat"`
	RelationID *int64    `json:"relation_id,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое задание (Milan, relation 44915)
	relationID := int64(44915)
	event := BoundaryDownloadEvent{
		JobID:      uuid.New(),
		CityID:     "milan",
		CityName:   "Milano",
		Country:    "Italy",
		CenterLon:  9.1900,
		CenterLat:  45.4642,
		RelationID: &relationID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:boundary:download",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Job published successfully!\n")
	fmt.Printf("   Stream: stream:boundary:download\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", event.JobID)
	fmt.Printf("   City: %s, %s\n", event.CityName, event.Country)
	fmt.Printf("   Relation: %d\n", *event.RelationID)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for response in stream:boundary:done...\n")

	// Создаем consumer group если не существует
	client.XGroupCreateMkStream(ctx, "stream:boundary:done", "test-consumer", "$")

	// Читаем ответ (загрузка через Overpass может занять пару минут)
	timeout := time.After(5 * time.Minute)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:boundary:done", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if jobID, ok := response["job_id"].(string); ok {
						if jobID == event.JobID.String() {
							fmt.Printf("\n✅ Response received!\n")
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}
