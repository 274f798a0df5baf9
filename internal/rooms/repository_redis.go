package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

func roomKey(roomID string) string {
	return fmt.Sprintf("golf:room:%s", roomID)
}

func playerRoomKey(playerID string) string {
	return fmt.Sprintf("golf:playerRoom:%s", playerID)
}

func (r *redisRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, roomKey(room.ID), data, ttl)
	for _, p := range room.Players {
		pipe.Set(ctx, playerRoomKey(p), room.ID, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepo) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	data, err := r.rdb.Get(ctx, roomKey(roomID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *redisRepo) AddPlayer(ctx context.Context, roomID, playerID string, ttlSeconds int) (*Room, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil || room == nil {
		return nil, err
	}
	found := false
	for _, p := range room.Players {
		if p == playerID {
			found = true
			break
		}
	}
	if !found {
		room.Players = append(room.Players, playerID)
	}
	if err := r.SaveRoom(ctx, room, ttlSeconds); err != nil {
		return nil, err
	}
	return room, nil
}

func (r *redisRepo) RemovePlayer(ctx context.Context, roomID, playerID string) (*Room, error) {
	if err := r.rdb.Del(ctx, playerRoomKey(playerID)).Err(); err != nil {
		return nil, err
	}
	room, err := r.GetRoom(ctx, roomID)
	if err != nil || room == nil {
		return nil, err
	}
	kept := room.Players[:0]
	for _, p := range room.Players {
		if p != playerID {
			kept = append(kept, p)
		}
	}
	room.Players = kept
	if len(room.Players) == 0 {
		if err := r.rdb.Del(ctx, roomKey(roomID)).Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	// keep the remaining TTL rather than resetting it
	ttl, err := r.rdb.TTL(ctx, roomKey(roomID)).Result()
	if err != nil || ttl <= 0 {
		ttl = time.Hour
	}
	if err := r.SaveRoom(ctx, room, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	return room, nil
}

func (r *redisRepo) PlayerRoom(ctx context.Context, playerID string) (string, error) {
	roomID, err := r.rdb.Get(ctx, playerRoomKey(playerID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return roomID, nil
}

func (r *redisRepo) DeleteRoom(ctx context.Context, roomID string) error {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	if room != nil {
		for _, p := range room.Players {
			pipe.Del(ctx, playerRoomKey(p))
		}
	}
	pipe.Del(ctx, roomKey(roomID))
	_, err = pipe.Exec(ctx)
	return err
}
