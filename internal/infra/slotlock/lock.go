package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSlotLocked возвращается, когда слот уже заблокирован другим запросом
var ErrSlotLocked = errors.New("slotlock: slot is locked by another request")

// Locker короткоживущая Redis-блокировка на пару (ресурс, слот).
// Быстрый барьер перед SERIALIZABLE транзакцией: два одновременных запроса
// на один слот не доходят до БД вдвоём. Финальную гарантию даёт транзакция,
// блокировка лишь снимает нагрузку конфликтов с PostgreSQL.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает Locker поверх подключения к Redis
func New(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Acquire пытается захватить блокировку слота
// Возвращает токен для освобождения либо ErrSlotLocked
func (l *Locker) Acquire(ctx context.Context, businessID int64, employeeID *int64, date string, startTime string) (string, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key(businessID, employeeID, date, startTime), token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("slotlock: acquire: %w", err)
	}
	if !ok {
		return "", ErrSlotLocked
	}

	return token, nil
}

// Release освобождает блокировку, только если она всё ещё принадлежит токену
func (l *Locker) Release(ctx context.Context, businessID int64, employeeID *int64, date string, startTime string, token string) error {
	// Сравнение и удаление должны быть атомарными
	script := redis.NewScript(`
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		end
		return 0
	`)

	if err := script.Run(ctx, l.client, []string{l.key(businessID, employeeID, date, startTime)}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("slotlock: release: %w", err)
	}
	return nil
}

func (l *Locker) key(businessID int64, employeeID *int64, date string, startTime string) string {
	scope := "biz"
	if employeeID != nil {
		scope = fmt.Sprintf("emp:%d", *employeeID)
	}
	return fmt.Sprintf("slotlock:%d:%s:%s:%s", businessID, scope, date, startTime)
}
