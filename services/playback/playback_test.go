package playback

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct{}

func (fakeProvider) Synthesize(_ context.Context, text string) ([]byte, error) {
	return []byte(text), nil
}

func (fakeProvider) FileExtension() string { return "wav" }

type recordingPlayer struct {
	mu     sync.Mutex
	played []string
}

func (r *recordingPlayer) play(_ context.Context, audio []byte, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, string(audio))
	return nil
}

func (r *recordingPlayer) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.played...)
}

func Test_PlaybackOrder(t *testing.T) {
	rec := &recordingPlayer{}
	m := NewManager(fakeProvider{}, rec.play)

	var want []string
	for i := 0; i < 20; i++ {
		text := fmt.Sprintf("feedback %02d", i)
		want = append(want, text)
		m.Enqueue(text)
	}

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == len(want)
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, want, rec.snapshot())
	m.Stop()
}

func Test_StopWithoutDraining(t *testing.T) {
	block := make(chan struct{})
	rec := &recordingPlayer{}
	m := NewManager(fakeProvider{}, func(ctx context.Context, audio []byte, ext string) error {
		<-block
		return rec.play(ctx, audio, ext)
	})

	m.Enqueue("first")
	m.Enqueue("second")
	m.Enqueue("third")

	time.Sleep(50 * time.Millisecond) // let the worker pick up "first"
	close(block)
	m.Stop()

	// Stop is best effort: whatever was in flight may finish, the rest is
	// abandoned and Enqueue after Stop is a no-op.
	m.Enqueue("late")
	assert.LessOrEqual(t, len(rec.snapshot()), 3)
}

func Test_EnqueueNeverBlocks(t *testing.T) {
	m := NewManager(fakeProvider{}, func(context.Context, []byte, string) error {
		time.Sleep(time.Hour)
		return nil
	})
	defer m.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			m.Enqueue("text")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked")
	}
}
