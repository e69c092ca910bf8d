package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/export"
)

// noticeStream writes download notices to a client as server-sent events.
// Each notice gets an increasing event id.
type noticeStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	lastID  int
}

// newNoticeStream sends the event-stream headers and flushes them.
func newNoticeStream(w http.ResponseWriter) (*noticeStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &noticeStream{w: w, flusher: flusher}, nil
}

// WriteNotice sends n as a "notice" event.
func (s *noticeStream) WriteNotice(n export.Notice) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	s.lastID++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: notice\ndata: %s\n\n", s.lastID, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Ping sends a comment line so proxies keep the connection open.
func (s *noticeStream) Ping() error {
	if _, err := fmt.Fprint(s.w, ": keep-alive\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
