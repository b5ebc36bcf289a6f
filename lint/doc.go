// Package lint turns the JSON output of external lint scripts into
// normalized messages.
//
// # Wire format
//
// The script prints a JSON array to stdout. Each element may carry:
//
//   - file: the path the message applies to
//   - message: text describing the problem
//   - name: a short title
//   - severity: error, warning, autofix, advice or disabled, in any case
//   - line, char: 1-based position
//   - offset: byte offset, kept as reported
//   - original, replacement: text affected and its automatic fix
//   - code: a short classifier, used by severity overrides
//   - throw: when non-empty, aborts the whole run with this text
//
// Empty output means the script found nothing to report.
//
// # Usage
//
//	l, err := lint.NewLinter(lint.Config{Script: "scripts/lint.sh", WorkDir: root})
//	if err != nil {
//		return err
//	}
//	msgs, err := l.Lint(ctx, changedPaths)
//
// Parse can be used on its own when the output was produced elsewhere.
package lint
