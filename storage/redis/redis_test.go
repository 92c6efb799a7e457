package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vodolaz095/mocksmtpd"
)

func TestRepository(t *testing.T) {
	testRedisUrl := os.Getenv("REDIS_URL")
	if testRedisUrl == "" {
		t.Skipf("set redis connection string as REDIS_URL environment variable")
	}
	opts, err := redis.ParseURL(testRedisUrl)
	if err != nil {
		t.Fatalf("%s : while parsing redis url %s", err, testRedisUrl)
	}
	repo := Repository{
		Client: redis.NewClient(opts),
		Key:    "mocksmtpd|unit_test",
	}
	defer repo.Close()
	ctx := context.TODO()
	err = repo.Ping(ctx)
	if err != nil {
		t.Fatalf("%s : while pinging redis", err)
	}
	err = repo.Clear(ctx)
	if err != nil {
		t.Fatalf("%s : while cleaning data from redis", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Errorf("%s : while counting mails", err)
	}
	if count != 0 {
		t.Errorf("wrong count %v of mails after clear", count)
	}
	for _, id := range []string{"first", "second"} {
		err = repo.Store(ctx, mocksmtpd.Mail{
			ID: id,
			Envelope: mocksmtpd.Envelope{
				From:           "sender@example.org",
				FromParameters: []mocksmtpd.Parameter{{Name: "SIZE", Value: "100"}},
				Recipients: []mocksmtpd.Recipient{
					{Address: "recipient@example.net", Parameters: []mocksmtpd.Parameter{}},
				},
			},
			Message:    "Subject: test\r\n\r\nHello",
			ReceivedAt: time.Now(),
		})
		if err != nil {
			t.Errorf("%s : while storing mail %s", err, id)
		}
	}
	count, err = repo.Count(ctx)
	if err != nil {
		t.Errorf("%s : while counting mails", err)
	}
	if count != 2 {
		t.Errorf("wrong count %v of mails", count)
	}
	mails, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("%s : while listing mails", err)
	}
	if len(mails) != 2 {
		t.Fatalf("wrong number %v of mails listed", len(mails))
	}
	if mails[0].ID != "first" || mails[1].ID != "second" {
		t.Errorf("wrong order of mails %s %s", mails[0].ID, mails[1].ID)
	}
	if mails[1].Envelope.From != "sender@example.org" {
		t.Errorf("wrong sender %s", mails[1].Envelope.From)
	}
	if mails[1].Envelope.FromParameters[0].String() != "SIZE=100" {
		t.Errorf("wrong sender parameters %v", mails[1].Envelope.FromParameters)
	}
	err = repo.Clear(ctx)
	if err != nil {
		t.Errorf("%s : while cleaning data from redis", err)
	}
}
