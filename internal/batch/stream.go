package batch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// StageEvent reports one stage's completion within a job, streamed to
// SSE subscribers. It is the batch layer's form of the per-stage report
// that the pipeline engine's RunWithProgress callback delivers.
type StageEvent struct {
	JobID      string    `json:"jobId"`
	State      JobState  `json:"state"`
	StageIndex int       `json:"stageIndex"`
	StageType  string    `json:"stageType"`
	Total      int       `json:"totalStages"`
	Timestamp  time.Time `json:"timestamp"`
}

// Broadcaster fans out StageEvents to every subscriber of a job,
// buffering the most recent event for late subscribers.
type Broadcaster struct {
	mu        sync.RWMutex
	clients   map[string]map[chan StageEvent]bool
	lastEvent map[string]StageEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients:   make(map[string]map[chan StageEvent]bool),
		lastEvent: make(map[string]StageEvent),
	}
}

func (b *Broadcaster) Subscribe(jobID string) chan StageEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan StageEvent, 10)
	if b.clients[jobID] == nil {
		b.clients[jobID] = make(map[chan StageEvent]bool)
	}
	b.clients[jobID][ch] = true

	if last, ok := b.lastEvent[jobID]; ok {
		select {
		case ch <- last:
		default:
		}
	}
	return ch
}

func (b *Broadcaster) Unsubscribe(jobID string, ch chan StageEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if clients, ok := b.clients[jobID]; ok {
		delete(clients, ch)
		close(ch)
		if len(clients) == 0 {
			delete(b.clients, jobID)
		}
	}
}

func (b *Broadcaster) Broadcast(event StageEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.lastEvent[event.JobID] = event
	for ch := range b.clients[event.JobID] {
		select {
		case ch <- event:
		default:
			slog.Warn("batch: SSE channel full, dropping event", "jobID", event.JobID)
		}
	}
}

// handleStream serves GET /api/v1/jobs/:id/stream as an SSE feed of
// StageEvents, matching the ping/flush/disconnect pattern of the
// teacher's handleJobStream.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request, jobID string) {
	job, ok := s.jobs.Get(jobID)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	events := s.jobs.broadcaster.Subscribe(jobID)
	defer s.jobs.broadcaster.Unsubscribe(jobID, events)

	if err := writeEvent(w, StageEvent{JobID: job.ID, State: job.State, StageIndex: job.StageIndex, Total: job.TotalStages, Timestamp: time.Now()}); err != nil {
		return
	}
	flusher.Flush()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				return
			}
			flusher.Flush()
		case <-ping.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev StageEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
