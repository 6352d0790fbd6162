package logsink

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"licentia/internal/domain"
	"licentia/internal/usecase"
)

// Sink writes events as JSON lines. It is the default sink when no
// database is configured.
type Sink struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Sink {
	if out == nil {
		out = os.Stderr
	}
	return &Sink{out: out}
}

type line struct {
	Type      string         `json:"type"`
	SubjectID string         `json:"subject_id,omitempty"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt string         `json:"created_at"`
}

func (s *Sink) Emit(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(line{
		Type:      string(event.Type),
		SubjectID: event.SubjectID,
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(payload); err != nil {
		return err
	}
	_, err = s.out.Write([]byte("\n"))
	return err
}

var _ usecase.EventSink = (*Sink)(nil)
