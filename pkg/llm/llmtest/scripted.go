// Package llmtest provides a scripted llm.Client for pipeline and stage
// tests: responses are consumed in order, with optional per-route matching
// on prompt substrings for stages whose call order varies.
package llmtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/slidesmith/slidesmith/pkg/llm"
)

// ScriptEntry defines one scripted completion.
type ScriptEntry struct {
	Text  string
	Err   error
	Delay time.Duration // sleep before responding (honors ctx)

	// BlockUntilCancelled makes the call block until ctx is done, then
	// return ctx.Err(). Used for timeout and cancellation scenarios.
	BlockUntilCancelled bool
}

// ScriptedClient implements llm.Client with a dual-dispatch script:
// routed entries match a substring of the prompt, everything else is
// consumed sequentially.
type ScriptedClient struct {
	mu         sync.Mutex
	sequential []ScriptEntry
	seqIndex   int
	routes     []route
	prompts    []string
}

type route struct {
	match   string
	entries []ScriptEntry
	index   int
}

// NewScriptedClient creates an empty scripted client.
func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{}
}

// Add appends a sequential entry.
func (c *ScriptedClient) Add(entry ScriptEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sequential = append(c.sequential, entry)
}

// AddText is shorthand for a plain text response.
func (c *ScriptedClient) AddText(text string) {
	c.Add(ScriptEntry{Text: text})
}

// AddRouted appends an entry consumed only by prompts containing match.
func (c *ScriptedClient) AddRouted(match string, entry ScriptEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.routes {
		if c.routes[i].match == match {
			c.routes[i].entries = append(c.routes[i].entries, entry)
			return
		}
	}
	c.routes = append(c.routes, route{match: match, entries: []ScriptEntry{entry}})
}

// Prompts returns a copy of all prompts seen so far.
func (c *ScriptedClient) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.prompts))
	copy(out, c.prompts)
	return out
}

// CallCount returns the number of Complete calls made.
func (c *ScriptedClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// Complete implements llm.Client.
func (c *ScriptedClient) Complete(ctx context.Context, prompt string, _ llm.Options) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	entry, err := c.next(prompt)
	c.mu.Unlock()
	if err != nil {
		return "", err
	}

	if entry.BlockUntilCancelled {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if entry.Delay > 0 {
		select {
		case <-time.After(entry.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if entry.Err != nil {
		return "", entry.Err
	}
	return entry.Text, nil
}

func (c *ScriptedClient) next(prompt string) (ScriptEntry, error) {
	for i := range c.routes {
		r := &c.routes[i]
		if strings.Contains(prompt, r.match) && r.index < len(r.entries) {
			entry := r.entries[r.index]
			r.index++
			return entry, nil
		}
	}
	if c.seqIndex >= len(c.sequential) {
		return ScriptEntry{}, fmt.Errorf("scripted client exhausted after %d calls; prompt: %.80s", len(c.prompts), prompt)
	}
	entry := c.sequential[c.seqIndex]
	c.seqIndex++
	return entry, nil
}
