// Package digest fans out to the configured report actions and merges their
// normalized outputs into one composite report. A section failing never aborts
// the digest: the failure is embedded under that section's key instead.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"macgate/internal/domain"
	"macgate/internal/extract"
	"macgate/internal/normalize"
	"macgate/internal/registry"
	"macgate/internal/runner"
	"macgate/internal/window"
)

// Section is one merged report entry. Either the output fields are populated
// or Error describes why they are not; a section is never silently absent.
// Window is the section's own resolved frame when its action reports one.
type Section struct {
	OK         bool        `json:"ok"`
	Window     *WindowMeta `json:"window,omitempty"`
	Stdout     string      `json:"stdout,omitempty"`
	Parsed     any         `json:"parsed,omitempty"`
	Stderr     string      `json:"stderr,omitempty"`
	Error      string      `json:"error,omitempty"`
	DurationMS int64       `json:"duration_ms"`
}

type WindowMeta struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Policy    string `json:"policy"`
	HoursBack int    `json:"hours_back,omitempty"`
}

// Report is the merged digest. Window is the previous-day frame anchored at
// the report's single reference instant; sections running a different policy
// carry their own resolved window under their key.
type Report struct {
	GeneratedAt string             `json:"generated_at"`
	Window      WindowMeta         `json:"window"`
	Sections    map[string]Section `json:"sections"`
}

type Aggregator struct {
	Registry *registry.Registry
	Runner   *runner.Runner
	// Sections maps report section names to whitelist keys.
	Sections map[string]string
	Log      *logrus.Entry

	// now is overridable for tests; nil means time.Now.
	now func() time.Time
}

func New(reg *registry.Registry, run *runner.Runner, sections map[string]string, log *logrus.Entry) *Aggregator {
	return &Aggregator{
		Registry: reg,
		Runner:   run,
		Sections: sections,
		Log:      log,
	}
}

// Build produces the digest. One reference instant is captured up front and
// handed to every section invocation so all windows are mutually consistent.
// Dispatch is concurrent, bounded by the number of sections, so digest latency
// tracks the slowest action rather than the sum.
func (a *Aggregator) Build(ctx context.Context) Report {
	now := time.Now()
	if a.now != nil {
		now = a.now()
	}

	w := window.Yesterday(now)
	report := Report{
		GeneratedAt: extract.FormatTimestamp(now),
		Window: WindowMeta{
			Start:  extract.FormatTimestamp(w.Start),
			End:    extract.FormatTimestamp(w.End),
			Policy: string(w.Policy),
		},
		Sections: make(map[string]Section, len(a.Sections)),
	}

	type keyed struct {
		name    string
		section Section
	}

	sem := make(chan struct{}, maxWorkers(len(a.Sections)))
	out := make(chan keyed, len(a.Sections))

	for name, key := range a.Sections {
		sem <- struct{}{}
		go func(name, key string) {
			defer func() { <-sem }()
			out <- keyed{name: name, section: a.buildSection(ctx, key, now)}
		}(name, key)
	}

	for i := 0; i < len(a.Sections); i++ {
		k := <-out
		report.Sections[k.name] = k.section
	}

	a.Log.WithFields(logrus.Fields{
		"sections": len(report.Sections),
	}).Info("Digest merged")
	return report
}

func (a *Aggregator) buildSection(ctx context.Context, key string, now time.Time) Section {
	act, err := a.Registry.Lookup(key)
	if err != nil {
		return Section{Error: err.Error()}
	}

	params := map[string]any{"now": now.Format(time.RFC3339)}
	res, err := a.Runner.Run(ctx, act, params)
	if err != nil {
		return Section{Error: err.Error()}
	}
	normalize.Output(&res)

	section := Section{
		OK:         res.Status == domain.StatusOk,
		Window:     liftWindow(res.Parsed),
		Stdout:     res.Stdout,
		Parsed:     res.Parsed,
		Stderr:     res.Stderr,
		DurationMS: res.Duration.Milliseconds(),
	}
	switch res.Status {
	case domain.StatusTimedOut:
		section.Error = fmt.Sprintf("action %q timed out after %s", act.Name, act.EffectiveTimeout())
	case domain.StatusFailed:
		section.Error = fmt.Sprintf("action %q failed with exit code %d", act.Name, res.ExitCode)
	}
	return section
}

// liftWindow pulls the resolved window out of a section's parsed output when
// the action reports one, so readers see the frame each section actually used
// instead of assuming the report-level one.
func liftWindow(parsed any) *WindowMeta {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := obj["window"].(map[string]any)
	if !ok {
		return nil
	}

	meta := &WindowMeta{}
	meta.Start, _ = raw["start"].(string)
	meta.End, _ = raw["end"].(string)
	meta.Policy, _ = raw["policy"].(string)
	if hb, ok := raw["hours_back"].(float64); ok {
		meta.HoursBack = int(hb)
	}
	if meta.Start == "" && meta.End == "" && meta.Policy == "" {
		return nil
	}
	return meta
}

func maxWorkers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
