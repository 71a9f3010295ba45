package tracing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// JSONTracer can write executed events into json format. The output is one
// JSON array; events that are scheduled but never executed do not appear.
type JSONTracer struct {
	w               io.Writer
	lock            sync.Mutex
	firstRecord     bool
	inflightRecords map[uint64]EventRecord
}

// EventScheduled records the scheduling of an event.
func (t *JSONTracer) EventScheduled(record EventRecord) {
	t.lock.Lock()
	t.inflightRecords[record.Sequence] = record
	t.lock.Unlock()
}

// EventExecuted writes the record of a completed event.
func (t *JSONTracer) EventExecuted(record EventRecord) {
	t.lock.Lock()
	originalRecord, ok := t.inflightRecords[record.Sequence]
	if !ok {
		t.lock.Unlock()
		return
	}

	delete(t.inflightRecords, record.Sequence)
	t.lock.Unlock()

	if t.firstRecord {
		t.firstRecord = false
	} else {
		_, err := t.w.Write([]byte(",\n"))
		if err != nil {
			panic(err)
		}
	}

	b, err := json.Marshal(originalRecord)
	if err != nil {
		panic(err)
	}

	_, err = t.w.Write(b)
	if err != nil {
		panic(err)
	}
}

// Finish closes the JSON array.
func (t *JSONTracer) Finish() {
	_, err := t.w.Write([]byte("\n]"))
	if err != nil {
		panic(err)
	}
}

// NewJSONTracer creates a JSONTracer writing to a generated file in the
// working directory. The array is closed at program exit.
func NewJSONTracer() *JSONTracer {
	filename := xid.New().String() + ".json"

	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Recording events in %s\n", filename)

	t := NewJSONTracerWithWriter(f)

	atexit.Register(t.Finish)

	return t
}

// NewJSONTracerWithWriter creates a JSONTracer, injecting a writer as
// dependency. The caller finishes the array by calling Finish.
func NewJSONTracerWithWriter(w io.Writer) *JSONTracer {
	_, err := w.Write([]byte("[\n"))
	if err != nil {
		panic(err)
	}

	return &JSONTracer{
		w:               w,
		firstRecord:     true,
		inflightRecords: make(map[uint64]EventRecord),
	}
}
