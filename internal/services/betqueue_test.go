package services_test

import (
	"fmt"
	"sync"
	"testing"

	"roulette-miniapp-backend/internal/models"
	"roulette-miniapp-backend/internal/services"
)

func TestBetQueueOrderAndDrain(t *testing.T) {
	queue := services.NewBetQueue()

	for i := 0; i < 5; i++ {
		queue.Enqueue(models.Bet{AccountID: fmt.Sprintf("player-%d", i)})
	}

	if queue.Len() != 5 {
		t.Fatalf("expected 5 queued bets, got %d", queue.Len())
	}

	drained := queue.DrainAll()
	if len(drained) != 5 {
		t.Fatalf("expected 5 drained bets, got %d", len(drained))
	}
	for i, bet := range drained {
		want := fmt.Sprintf("player-%d", i)
		if bet.AccountID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, bet.AccountID)
		}
	}

	if queue.Len() != 0 {
		t.Errorf("queue should be empty after drain, has %d", queue.Len())
	}
	if got := queue.DrainAll(); len(got) != 0 {
		t.Errorf("second drain should be empty, got %d bets", len(got))
	}
}

func TestBetQueueConcurrentEnqueueDrain(t *testing.T) {
	const producers = 10
	const betsPerProducer = 100

	queue := services.NewBetQueue()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < betsPerProducer; i++ {
				queue.Enqueue(models.Bet{Value: fmt.Sprintf("%d:%d", p, i)})
			}
		}(p)
	}

	producing := make(chan struct{})
	done := make(chan struct{})
	var drained []models.Bet
	go func() {
		defer close(done)
		for {
			drained = append(drained, queue.DrainAll()...)
			select {
			case <-producing:
				return
			default:
			}
		}
	}()

	wg.Wait()
	close(producing)
	<-done

	drained = append(drained, queue.DrainAll()...)

	if len(drained) != producers*betsPerProducer {
		t.Fatalf("expected %d bets across all drains, got %d", producers*betsPerProducer, len(drained))
	}

	seen := make(map[string]bool, len(drained))
	for _, bet := range drained {
		if seen[bet.Value] {
			t.Fatalf("bet %s drained twice", bet.Value)
		}
		seen[bet.Value] = true
	}
}
