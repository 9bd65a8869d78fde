// mailwindow is the reference extraction action: it reads a JSON mailbox
// snapshot, selects the messages inside a resolved time window and emits them
// in the gateway's canonical record shape. It is registrable in the gateway
// config like any other whitelisted executable.
//
// Arguments are tolerant by contract: "--flag value", "--flag=value" and bare
// numeric lookback tokens are all accepted, and unknown tokens are ignored.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"macgate/internal/domain"
	"macgate/internal/extract"
	"macgate/internal/window"
)

type options struct {
	policy       window.Policy
	mailboxPath  string
	nowValue     string
	defaultHours int
	rest         []string
}

type snapshotMessage struct {
	Subject   string   `json:"subject"`
	Received  string   `json:"received"`
	Sender    string   `json:"sender"`
	MessageID string   `json:"message_id"`
	Mailbox   string   `json:"mailbox"`
	Read      *bool    `json:"read,omitempty"`
	To        []string `json:"to,omitempty"`
	Cc        []string `json:"cc,omitempty"`
	Body      string   `json:"body,omitempty"`
}

type payload struct {
	OK       bool              `json:"ok"`
	Window   windowMeta        `json:"window"`
	Count    int               `json:"count"`
	Messages []extract.Message `json:"messages"`
}

type windowMeta struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Policy    string `json:"policy"`
	HoursBack int    `json:"hours_back,omitempty"`
}

func main() {
	opts := parseArgs(os.Args[1:])

	if opts.mailboxPath == "" {
		opts.mailboxPath = os.Getenv("MAILWINDOW_SNAPSHOT")
	}
	if opts.mailboxPath == "" {
		fail("no mailbox snapshot: pass --mailbox or set MAILWINDOW_SNAPSHOT")
	}

	now := time.Now()
	if opts.nowValue != "" {
		if parsed, err := time.Parse(time.RFC3339, opts.nowValue); err == nil {
			now = parsed
		}
	}

	hours := window.ResolveLookback(opts.rest, opts.defaultHours)
	w, err := window.Resolve(opts.policy, now, hours, opts.defaultHours)
	if err != nil {
		fail(err.Error())
	}

	items, err := loadSnapshot(opts.mailboxPath, now.Location())
	if err != nil {
		fail(err.Error())
	}

	messages := extract.Messages(items, w)
	out := payload{
		OK: true,
		Window: windowMeta{
			Start:     extract.FormatTimestamp(w.Start),
			End:       extract.FormatTimestamp(w.End),
			Policy:    string(w.Policy),
			HoursBack: w.HoursBack,
		},
		Count:    len(messages),
		Messages: messages,
	}
	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		fail(err.Error())
	}
}

func parseArgs(argv []string) options {
	opts := options{
		policy:       window.PolicyLookback,
		defaultHours: domain.DefaultLookbackHours,
	}

	// take matches the flag prefix case-insensitively but hands back the value
	// with its case intact; only the "--flag value" form consumes a second token.
	take := func(i int, tok, flag string) (string, int) {
		if strings.HasPrefix(strings.ToLower(tok), flag+"=") {
			return strings.TrimSpace(tok[len(flag)+1:]), i
		}
		if i+1 < len(argv) {
			return strings.TrimSpace(argv[i+1]), i + 1
		}
		return "", i
	}

	for i := 0; i < len(argv); i++ {
		tok := strings.TrimSpace(argv[i])
		lower := strings.ToLower(tok)

		var value string
		switch {
		case lower == "--policy" || strings.HasPrefix(lower, "--policy="):
			value, i = take(i, tok, "--policy")
			if value != "" {
				opts.policy = window.Policy(strings.ToLower(value))
			}
		case lower == "--mailbox" || strings.HasPrefix(lower, "--mailbox="):
			opts.mailboxPath, i = take(i, tok, "--mailbox")
		case lower == "--now" || strings.HasPrefix(lower, "--now="):
			opts.nowValue, i = take(i, tok, "--now")
		case lower == "--default-hours" || strings.HasPrefix(lower, "--default-hours="):
			value, i = take(i, tok, "--default-hours")
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				opts.defaultHours = n
			}
		default:
			opts.rest = append(opts.rest, tok)
		}
	}
	return opts
}

func loadSnapshot(path string, loc *time.Location) ([]extract.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", path, err)
	}

	var raw []snapshotMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse snapshot %q: %w", path, err)
	}

	items := make([]extract.Item, 0, len(raw))
	for _, m := range raw {
		received, err := time.Parse(time.RFC3339, m.Received)
		if err != nil {
			// Undated messages cannot be placed in any window.
			continue
		}
		items = append(items, extract.Item{
			Subject:   m.Subject,
			Received:  received.In(loc),
			Sender:    m.Sender,
			MessageID: m.MessageID,
			Mailbox:   m.Mailbox,
			Read:      m.Read,
			To:        m.To,
			Cc:        m.Cc,
			Body:      m.Body,
		})
	}
	return items, nil
}

func fail(msg string) {
	_ = json.NewEncoder(os.Stdout).Encode(map[string]any{"ok": false, "error": msg})
	os.Exit(1)
}
