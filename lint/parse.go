package lint

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/reviewkit/parser"
	"github.com/zero-day-ai/reviewkit/toolerr"
)

// Wire format keys.
const (
	keyFile        = "file"
	keyMessage     = "message"
	keyName        = "name"
	keySeverity    = "severity"
	keyLine        = "line"
	keyChar        = "char"
	keyOffset      = "offset"
	keyOriginal    = "original"
	keyReplacement = "replacement"
	keyCode        = "code"
	keyThrow       = "throw"
)

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	code string
}

// WithDefaultCode sets the code given to messages that carry none, and the
// tool name errors are attributed to. Defaults to DefaultLinterName.
func WithDefaultCode(code string) ParseOption {
	return func(c *parseConfig) {
		if code != "" {
			c.code = code
		}
	}
}

// Parse decodes the JSON array an external linter wrote to stdout into
// messages.
//
// Empty output means "nothing to report" and yields no messages. Any record
// carrying a non-empty "throw" fails the whole call with an ABORT error, no
// matter where it appears. Output that is not an array of objects fails with
// MALFORMED_OUTPUT, and an unrecognized severity fails with UNKNOWN_SEVERITY.
// On failure no messages are returned.
func Parse(data []byte, opts ...ParseOption) ([]Message, error) {
	cfg := parseConfig{code: DefaultLinterName}
	for _, opt := range opts {
		opt(&cfg)
	}

	if parser.IsBlank(data) {
		return nil, nil
	}

	records, err := parser.ParseJSONArray[any](data)
	if err != nil {
		msg := "output is not valid JSON"
		if errors.Is(err, parser.ErrNotArray) {
			msg = "output is not a JSON array"
		}
		return nil, toolerr.MalformedOutput(cfg.code, "parse", msg, err)
	}

	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		if text, abort := abortText(obj[keyThrow]); abort {
			return nil, toolerr.Abort(cfg.code, "parse", text)
		}
	}

	messages := make([]Message, 0, len(records))
	for i, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			return nil, toolerr.MalformedOutput(cfg.code, "parse",
				fmt.Sprintf("record %d is not an object", i), nil).
				WithDetails(map[string]any{"index": i})
		}
		msg, err := buildMessage(obj, cfg)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func buildMessage(obj map[string]any, cfg parseConfig) (Message, error) {
	msg := Message{
		Line:   CoercePosition(obj[keyLine]),
		Char:   CoercePosition(obj[keyChar]),
		Offset: CoerceOffset(obj[keyOffset]),
	}

	fields := []struct {
		key string
		dst *string
		def string
	}{
		{keyFile, &msg.Path, ""},
		{keyMessage, &msg.Description, DefaultDescription},
		{keyName, &msg.Name, DefaultName},
		{keyCode, &msg.Code, cfg.code},
	}
	for _, f := range fields {
		s, present, err := CoerceString(obj[f.key])
		if err != nil {
			return Message{}, fieldError(cfg.code, f.key, err)
		}
		if !present {
			s = f.def
		}
		*f.dst = s
	}

	var err error
	if msg.OriginalText, err = optionalString(obj, keyOriginal, cfg.code); err != nil {
		return Message{}, err
	}
	if msg.ReplacementText, err = optionalString(obj, keyReplacement, cfg.code); err != nil {
		return Message{}, err
	}

	token := ""
	if !severityAbsent(obj[keySeverity]) {
		s, _, err := CoerceString(obj[keySeverity])
		if err != nil {
			return Message{}, fieldError(cfg.code, keySeverity, err)
		}
		token = s
	}
	sev, ok := lookupSeverity(token)
	if !ok {
		return Message{}, toolerr.UnknownSeverity(cfg.code, "parse", token)
	}
	msg.Severity = sev

	return msg, nil
}

// severityAbsent treats the string "0" like other falsy values, so it
// resolves to the default severity the same way a numeric 0 does.
func severityAbsent(v any) bool {
	if s, ok := v.(string); ok && s == "0" {
		return true
	}
	return IsFalsy(v)
}

// optionalString returns nil for a missing or null key, so an empty string
// stays distinguishable from "not supplied".
func optionalString(obj map[string]any, key, tool string) (*string, error) {
	s, present, err := CoerceString(obj[key])
	if err != nil {
		return nil, fieldError(tool, key, err)
	}
	if !present {
		return nil, nil
	}
	return &s, nil
}

// abortText reports whether a "throw" value requests an abort, and the text
// to surface.
func abortText(v any) (string, bool) {
	if IsFalsy(v) {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func fieldError(tool, key string, err error) error {
	return toolerr.MalformedOutput(tool, "parse", fmt.Sprintf("field %q", key), err).
		WithDetails(map[string]any{"field": key})
}
