package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	chaosk8s "github.com/autoserve/autoserve/pkg/domain/chaos/k8s"
)

// Event is one chaos action, for the run report.
type Event struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Type      string            `json:"type"`
	Target    string            `json:"target"`
	Status    string            `json:"status"`
	Details   map[string]string `json:"details,omitempty"`
}

const (
	statusSuccess = "success"
	statusFailed  = "failed"
	statusDryRun  = "dry-run"
)

// Monkey kills pods and keeps a record of what it did.
type Monkey struct {
	Cluster   chaosk8s.Interface
	Namespace string
	DryRun    bool
	Logger    *log.Logger

	// Rand drives victim selection. nil means math/rand's global source.
	Rand *rand.Rand

	events []Event
}

func (m *Monkey) intn(n int) int {
	if m.Rand != nil {
		return m.Rand.Intn(n)
	}
	return rand.Intn(n)
}

func (m *Monkey) record(typ, target, status string, details map[string]string) {
	m.events = append(m.events, Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      typ,
		Target:    target,
		Status:    status,
		Details:   details,
	})
}

// Events returns what the monkey has done so far.
func (m *Monkey) Events() []Event {
	return m.events
}

// KillRandomPod deletes one randomly chosen running pod.
//
// With service != "", victims are restricted to pods labelled
// app=<service>. When there is nothing to kill, it is a no-op.
func (m *Monkey) KillRandomPod(ctx context.Context, service string) error {
	victims, err := m.Cluster.Victims(ctx, m.Namespace, service)
	if err != nil {
		return err
	}
	if len(victims) == 0 {
		m.Logger.Println("no pods found to kill")
		return nil
	}

	target := victims[m.intn(len(victims))]
	m.Logger.Printf("killing pod %s", target)

	if m.DryRun {
		m.Logger.Println("dry run: would kill pod")
		m.record("pod_kill", target, statusDryRun, nil)
		return nil
	}

	if err := m.Cluster.Kill(ctx, m.Namespace, target); err != nil {
		m.Logger.Printf("failed to kill pod %s: %s", target, err)
		m.record("pod_kill", target, statusFailed, map[string]string{"error": err.Error()})
		return err
	}

	m.record("pod_kill", target, statusSuccess, nil)
	m.Logger.Printf("killed pod %s", target)
	return nil
}

// Random kills a random pod every interval until the duration has
// passed or ctx is done. Individual failures do not stop the run.
func (m *Monkey) Random(ctx context.Context, duration, interval time.Duration) {
	m.Logger.Printf("starting random chaos for %s", duration)

	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		if err := m.KillRandomPod(ctx, ""); err != nil {
			m.Logger.Printf("chaos action failed: %s", err)
		}

		select {
		case <-ctx.Done():
			m.Logger.Println("chaos interrupted")
			return
		case <-time.After(interval):
		}
	}

	m.Logger.Println("chaos experiments completed")
}

// PrintSummary logs per-type event counts.
func (m *Monkey) PrintSummary() {
	m.Logger.Printf("chaos summary: %d events", len(m.events))

	byType := map[string]int{}
	for _, e := range m.events {
		byType[e.Type] += 1
	}
	for typ, count := range byType {
		m.Logger.Printf("  %s: %d", typ, count)
	}
}

// ExportReport writes the events as JSON to path.
func (m *Monkey) ExportReport(path string) error {
	report, err := json.MarshalIndent(m.events, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, report, 0o644); err != nil {
		return err
	}
	m.Logger.Printf("chaos report exported to %s", path)
	return nil
}
