package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-structurer/internal/resumes"
	"github.com/jonathan/resume-structurer/internal/types"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// documentEvent is the payload of one "document" event in a batch stream.
type documentEvent struct {
	Index    int                  `json:"index"`
	Source   string               `json:"source,omitempty"`
	Document types.ResumeDocument `json:"document"`
}

// batchStream writes parsed batch results as Server-Sent Events. Every event
// carries an increasing id so clients can tell where a dropped stream stopped.
type batchStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	nextID  int
}

func newBatchStream(w http.ResponseWriter) (*batchStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	return &batchStream{w: w, flusher: flusher}, nil
}

func (s *batchStream) write(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	s.nextID++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.nextID, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteDocument sends the result at position index of the batch.
func (s *batchStream) WriteDocument(index int, result resumes.BatchResult) error {
	return s.write("document", documentEvent{Index: index, Source: result.Source, Document: result.Document})
}

// WriteError sends a terminal error event. Write failures are ignored since
// the client is already gone.
func (s *batchStream) WriteError(message string) {
	_ = s.write("error", map[string]string{"error": message})
}

// WriteComplete ends the stream with the number of documents sent.
func (s *batchStream) WriteComplete(count int) {
	_ = s.write("complete", map[string]int{"count": count})
}
