// Package extract implements the windowed extraction contract shared by every
// mailbox action: inclusive window selection, stable ascending ordering and a
// fixed, JSON-safe record shape.
package extract

import (
	"sort"
	"strings"
	"time"

	"macgate/internal/window"
)

// SnippetLimit is the hard cap, in characters of the trimmed source text, on
// snippet and body excerpts.
const SnippetLimit = 200

// Item is one message as enumerated from the underlying mailbox, before
// serialization. Received carries the zone the timestamp should be rendered
// in.
type Item struct {
	Subject   string
	Received  time.Time
	Sender    string
	MessageID string
	Mailbox   string
	Read      *bool
	To        []string
	Cc        []string
	Body      string
}

// Message is the serialized record emitted for each selected item. Required
// fields are always present, empty when the source had no value; optional
// fields are omitted entirely when empty.
type Message struct {
	Subject      string   `json:"subject"`
	DateReceived string   `json:"date_received"`
	Sender       string   `json:"sender"`
	MessageID    string   `json:"message_id"`
	Mailbox      string   `json:"mailbox"`
	Read         *bool    `json:"read,omitempty"`
	ToRecipients []string `json:"to_recipients,omitempty"`
	CcRecipients []string `json:"cc_recipients,omitempty"`
	Snippet      string   `json:"snippet,omitempty"`
}

// Select returns the items whose timestamp falls inside w, inclusive on both
// ends, sorted ascending by timestamp. The sort is stable: items with equal
// timestamps keep the order in which they were enumerated.
func Select(items []Item, w window.Window) []Item {
	var out []Item
	for _, it := range items {
		if w.Contains(it.Received) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Received.Before(out[j].Received)
	})
	return out
}

// Render serializes one item. Snippet text is trimmed and truncated before the
// JSON encoder escapes it.
func Render(it Item) Message {
	return Message{
		Subject:      it.Subject,
		DateReceived: FormatTimestamp(it.Received),
		Sender:       it.Sender,
		MessageID:    it.MessageID,
		Mailbox:      it.Mailbox,
		Read:         it.Read,
		ToRecipients: it.To,
		CcRecipients: it.Cc,
		Snippet:      Snippet(it.Body),
	}
}

// Messages selects and renders every item inside w.
func Messages(items []Item, w window.Window) []Message {
	selected := Select(items, w)
	out := make([]Message, len(selected))
	for i, it := range selected {
		out[i] = Render(it)
	}
	return out
}

// Snippet trims surrounding whitespace and hard-truncates to the first
// SnippetLimit characters of the trimmed text. No ellipsis, no word-boundary
// handling; truncation counts characters so a multi-byte rune is never split.
func Snippet(body string) string {
	trimmed := strings.TrimSpace(body)
	runes := []rune(trimmed)
	if len(runes) > SnippetLimit {
		return string(runes[:SnippetLimit])
	}
	return trimmed
}

// FormatTimestamp renders t as ISO-8601 with the explicit signed UTC offset in
// effect at t itself in t's zone, which keeps records correct across
// daylight-saving boundaries.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05-07:00")
}
