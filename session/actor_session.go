package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActorStore 外部认证服务登录成功后写入会话，本服务只读取。
// 会话里带能力清单，路由按能力放行。
type ActorStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewActorStore(rdb *redis.Client, ttl time.Duration) *ActorStore {
	return &ActorStore{rdb: rdb, ttl: ttl}
}

type ActorSession struct {
	ActorID      string   `json:"aid"`
	Name         string   `json:"name"`
	Capabilities []string `json:"caps"`
	IssuedAt     int64    `json:"iat"`
	ExpiresAt    int64    `json:"exp"`
}

func (as *ActorSession) Can(capability string) bool {
	for _, c := range as.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

func key(id string) string          { return fmt.Sprintf("eqt:sess:%s", id) }
func actorSetKey(aid string) string { return fmt.Sprintf("eqt:actor_sessions:%s", aid) }

func (s *ActorStore) Create(ctx context.Context, id, actorID, name string, caps []string) error {
	now := time.Now()
	b, _ := json.Marshal(ActorSession{
		ActorID:      actorID,
		Name:         name,
		Capabilities: caps,
		IssuedAt:     now.Unix(),
		ExpiresAt:    now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, actorSetKey(actorID), id)
	pipe.Expire(ctx, actorSetKey(actorID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *ActorStore) Get(ctx context.Context, id string) (*ActorSession, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var as ActorSession
	if err := json.Unmarshal(b, &as); err != nil {
		return nil, err
	}
	return &as, nil
}

func (s *ActorStore) Delete(ctx context.Context, id string) error {
	as, _ := s.Get(ctx, id) // 拿不到就只删主键
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if as != nil {
		pipe.SRem(ctx, actorSetKey(as.ActorID), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForActor 外部认证侧停用账号时，撤销其全部会话
func (s *ActorStore) RevokeAllForActor(ctx context.Context, actorID string) error {
	ids, err := s.rdb.SMembers(ctx, actorSetKey(actorID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, actorSetKey(actorID))
	_, err = pipe.Exec(ctx)
	return err
}
