// Package otp keeps one-time login codes with an expiry.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alphafarm/entities"
)

// Store saves a code per phone. Consume reports whether code matches and
// removes it on success.
type Store interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Consume(ctx context.Context, phone, code string) (bool, error)
}

// Generate returns a random numeric code of n digits.
func Generate(n int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}

// MaxAttempts is how many wrong codes a phone may try before its code is
// thrown away.
const MaxAttempts = 5

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb, prefix: "otp:"}
}

func (s *redisStore) triesKey(phone string) string {
	return s.prefix + phone + ":tries"
}

func (s *redisStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.prefix+phone, code, ttl)
		p.Del(ctx, s.triesKey(phone))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

// KEYS[1] code, KEYS[2] tries; ARGV[1] guess, ARGV[2] max attempts.
var consumeScript = redis.NewScript(`
local got = redis.call("GET", KEYS[1])
if not got then
	return 0
end
if got == ARGV[1] then
	redis.call("DEL", KEYS[1], KEYS[2])
	return 1
end
local n = redis.call("INCR", KEYS[2])
if n == 1 then
	local ttl = redis.call("PTTL", KEYS[1])
	if ttl > 0 then
		redis.call("PEXPIRE", KEYS[2], ttl)
	end
end
if n >= tonumber(ARGV[2]) then
	redis.call("DEL", KEYS[1], KEYS[2])
end
return 0
`)

func (s *redisStore) Consume(ctx context.Context, phone, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.rdb,
		[]string{s.prefix + phone, s.triesKey(phone)}, code, MaxAttempts).Int()
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return n == 1, nil
}

type gormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore keeps codes in the otp_codes table.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db, now: time.Now}
}

func (s *gormStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	row := entities.OTPCode{Phone: phone, Code: code, ExpiresAt: s.now().Add(ttl)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "attempts"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

func (s *gormStore) Consume(ctx context.Context, phone, code string) (bool, error) {
	ok := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row entities.OTPCode
		err := tx.Where("phone = ?", phone).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read otp: %w", err)
		}
		if s.now().After(row.ExpiresAt) {
			return nil
		}
		if row.Code == code {
			ok = true
			return tx.Delete(&entities.OTPCode{}, "phone = ?", phone).Error
		}
		if row.Attempts+1 >= MaxAttempts {
			return tx.Delete(&entities.OTPCode{}, "phone = ?", phone).Error
		}
		return tx.Model(&entities.OTPCode{}).Where("phone = ?", phone).
			UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
	})
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return ok, nil
}
