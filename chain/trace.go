package chain

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// RunConfig labels a traced run.
type RunConfig struct {
	Name     string
	Tags     []string
	Metadata map[string]any
}

// Run is the record of one traced invocation.
type Run struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Tags      []string        `json:"tags,omitempty"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	Steps     []string        `json:"steps,omitempty"`
	Inputs    any             `json:"inputs"`
	Outputs   any             `json:"outputs,omitempty"`
	Error     string          `json:"error,omitempty"`
	StartTime strfmt.DateTime `json:"start_time"`
	EndTime   strfmt.DateTime `json:"end_time"`
}

// Duration is how long the run took.
func (r Run) Duration() time.Duration {
	return time.Time(r.EndTime).Sub(time.Time(r.StartTime))
}

// Collector gathers the runs traced while it is attached to a context.
type Collector struct {
	mu   sync.Mutex
	runs []Run
}

type collectorKey struct{}

// WithCollector attaches c to ctx.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

func collectorFrom(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

func (c *Collector) add(r Run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, r)
}

// Runs returns the traced runs in completion order.
func (c *Collector) Runs() []Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.runs)
}

// MarshalJSON writes {"traced_runs":[...]}.
func (c *Collector) MarshalJSON() ([]byte, error) {
	runs, err := json.Marshal(c.Runs())
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes([]byte(`{}`), "traced_runs", runs)
}

type traced[I, O any] struct {
	r   Runnable[I, O]
	cfg RunConfig
}

// Traced records every invocation of r in the Collector found in the context.
// Without a collector r runs untraced.
func Traced[I, O any](r Runnable[I, O], cfg RunConfig) Runnable[I, O] {
	if cfg.Name == "" {
		cfg.Name = strings.Join(Describe(r), " | ")
	}
	return traced[I, O]{r: r, cfg: cfg}
}

func (t traced[I, O]) Invoke(ctx context.Context, in I) (O, error) {
	c := collectorFrom(ctx)
	if c == nil {
		return t.r.Invoke(ctx, in)
	}

	run := Run{
		ID:        uuidx.New(),
		Name:      t.cfg.Name,
		Tags:      slices.Clone(t.cfg.Tags),
		Metadata:  t.cfg.Metadata,
		Steps:     Describe(t.r),
		Inputs:    in,
		StartTime: strfmt.DateTime(time.Now()),
	}
	out, err := t.r.Invoke(ctx, in)
	run.EndTime = strfmt.DateTime(time.Now())
	if err != nil {
		run.Error = err.Error()
	} else {
		run.Outputs = out
	}
	c.add(run)

	slog.Debug("run traced", slogx.LoggerName("chain"), slog.String("run", run.Name), slog.Duration("duration", run.Duration()))
	return out, err
}

func (t traced[I, O]) Name() string    { return t.cfg.Name }
func (t traced[I, O]) Steps() []string { return Describe(t.r) }
