package simbal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// trace categories; each gets its own CSV file under the trace directory
const (
	CREATED_PROCS  = "created_procs"
	PLACED_PROCS   = "placed_procs"
	DONE_PROCS     = "done_procs"
	MIGRATED_PROCS = "migrated_procs"
	USAGE          = "usage"
)

var traceHeaders = map[string]string{
	CREATED_PROCS:  "tick, procId, arrival, burst, priority\n",
	PLACED_PROCS:   "tick, procId, processor, policy, remaining\n",
	DONE_PROCS:     "tick, procId, arrival, burst, turnaround, waiting\n",
	MIGRATED_PROCS: "tick, procId, from, to, remaining\n",
	USAGE:          "tick, processor, load, resident, busyTicks\n",
}

// tracer writes per-category CSV trace files under one directory. A nil
// tracer is valid and drops everything, so call sites never need a guard.
type tracer struct {
	dir   string
	files map[string]*os.File
}

func newTracer(dir string) (*tracer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("making trace dir %s: %w", dir, err)
	}
	return &tracer{dir: dir, files: make(map[string]*os.File)}, nil
}

func (t *tracer) logWrite(category string, row string) {
	if t == nil {
		return
	}
	f, ok := t.files[category]
	if !ok {
		var err error
		f, err = os.Create(filepath.Join(t.dir, category+".csv"))
		if err != nil {
			dprintf(ALWAYS, "dropping %s trace: %v", category, err)
			return
		}
		f.WriteString(traceHeaders[category])
		t.files[category] = f
	}
	f.WriteString(row)
}

func (t *tracer) close() {
	if t == nil {
		return
	}
	for _, f := range t.files {
		f.Close()
	}
}

const ALWAYS = "STATUS"

func init() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

//
// Debug output is controlled by the SIMBALDEBUG environment variable, which
// can be a list of labels (e.g., "WORLD;BALANCER").
//

func debugLabels() map[string]bool {
	m := make(map[string]bool)
	s := os.Getenv("SIMBALDEBUG")
	if s == "" {
		return m
	}
	labels := strings.Split(s, ";")
	for _, l := range labels {
		m[l] = true
	}
	return m
}

func dprintf(label string, format string, v ...interface{}) {
	m := debugLabels()
	if _, ok := m[label]; ok || label == ALWAYS {
		log.Printf("%v %v", label, fmt.Sprintf(format, v...))
	}
}
