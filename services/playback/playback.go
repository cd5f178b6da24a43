// Package playback delivers feedback audio as it is generated. A single
// worker drains a FIFO of feedback texts, synthesizing and playing one
// clip at a time so clips never overlap; producers only append and never
// wait for playback.
package playback

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nedcoach/coach-flows/services/tts"
	"github.com/nedcoach/coach-flows/utils"
)

// Player plays one encoded clip to completion.
type Player func(ctx context.Context, audio []byte, extension string) error

const stopTimeout = time.Second

type Manager struct {
	provider tts.Provider
	player   Player

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []string
	stopped bool

	done chan struct{}
}

// NewManager starts the playback worker. The queue is unbounded: when
// production outpaces playback, feedback arrives increasingly late but is
// never dropped.
func NewManager(provider tts.Provider, player Player) *Manager {
	if player == nil {
		player = FFPlay
	}
	m := &Manager{
		provider: provider,
		player:   player,
		done:     make(chan struct{}),
	}
	m.cond = sync.NewCond(&m.mu)

	go m.worker()
	return m
}

// Enqueue appends feedback text for playback. Never blocks.
func (m *Manager) Enqueue(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.queue = append(m.queue, text)
	m.cond.Signal()
}

// Stop wakes the worker and waits briefly for it to finish the clip in
// flight. Queued items that never played are abandoned.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.cond.Broadcast()
	m.mu.Unlock()

	select {
	case <-m.done:
	case <-time.After(stopTimeout):
		log.Warn().Msg("playback worker did not stop in time")
	}
}

func (m *Manager) worker() {
	defer close(m.done)

	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.stopped {
			m.cond.Wait()
		}
		if m.stopped {
			m.mu.Unlock()
			return
		}
		text := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		m.speak(text)
	}
}

func (m *Manager) speak(text string) {
	ctx := context.Background()

	audio, err := m.provider.Synthesize(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("synthesizing feedback")
		return
	}

	err = m.player(ctx, audio, m.provider.FileExtension())
	if err != nil {
		log.Error().Err(err).Msg("playing feedback")
	}
}

// FFPlay plays a clip through an ffplay subprocess, blocking until
// playback completes.
func FFPlay(ctx context.Context, audio []byte, extension string) error {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("feedback_%s.%s", uuid.NewString(), extension))
	err := os.WriteFile(path, audio, 0644)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, "ffplay", "-autoexit", "-nodisp", "-loglevel", "quiet", path)
	_, err = utils.ExecuteCmd(cmd, nil)
	return err
}
