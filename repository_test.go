package mocksmtpd

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryRepository(t *testing.T) {
	var err error
	var count int
	repo := MemoryRepository{}
	ctx := context.TODO()
	if err = repo.Ping(ctx); err != nil {
		t.Fatalf("%s : while pinging repository", err)
	}
	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			storeErr := repo.Store(ctx, Mail{ID: "test"})
			if storeErr != nil {
				t.Errorf("%s : while storing mail", storeErr)
			}
		}()
	}
	wg.Wait()
	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("%s : while counting mails", err)
	}
	if count != 10 {
		t.Errorf("wrong count %v", count)
	}
	mails, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("%s : while listing mails", err)
	}
	mails[0].ID = "modified"
	mails, _ = repo.List(ctx)
	if mails[0].ID != "test" {
		t.Error("List should return copy")
	}
	if err = repo.Clear(ctx); err != nil {
		t.Fatalf("%s : while clearing mails", err)
	}
	count, _ = repo.Count(ctx)
	if count != 0 {
		t.Errorf("wrong count %v after clear", count)
	}
	if err = repo.Close(); err != nil {
		t.Errorf("%s : while closing repository", err)
	}
}
