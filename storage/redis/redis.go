package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vodolaz095/mocksmtpd"
)

// DefaultKey is name of redis list mails are pushed into, when Repository.Key is empty
const DefaultKey = "mocksmtpd|mails"

// Repository saves recorded mails into redis list packed by messagepack, so
// they survive restarts and can be shared by many mock server instances
type Repository struct {
	Client *redis.Client
	Key    string
}

func (r *Repository) key() string {
	if r.Key == "" {
		return DefaultKey
	}
	return r.Key
}

// Ping tests connection to redis database
func (r *Repository) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close closes
func (r *Repository) Close() error {
	return r.Client.Close()
}

// Store appends mail to the tail of list
func (r *Repository) Store(ctx context.Context, mail mocksmtpd.Mail) error {
	packed, err := mail.MarshalMsg(nil)
	if err != nil {
		return fmt.Errorf("while packing mail %s: %w", mail.ID, err)
	}
	return r.Client.RPush(ctx, r.key(), packed).Err()
}

// List returns all mails in order they were received
func (r *Repository) List(ctx context.Context) ([]mocksmtpd.Mail, error) {
	raw, err := r.Client.LRange(ctx, r.key(), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []mocksmtpd.Mail{}, nil
		}
		return nil, err
	}
	mails := make([]mocksmtpd.Mail, 0, len(raw))
	for i := range raw {
		var mail mocksmtpd.Mail
		_, err = mail.UnmarshalMsg([]byte(raw[i]))
		if err != nil {
			return nil, fmt.Errorf("while unpacking mail %v of %s: %w", i, r.key(), err)
		}
		mails = append(mails, mail)
	}
	return mails, nil
}

// Count returns number of mails stored
func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.Client.LLen(ctx, r.key()).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return int(n), nil
}

// Clear removes all mails
func (r *Repository) Clear(ctx context.Context) error {
	return r.Client.Del(ctx, r.key()).Err()
}
