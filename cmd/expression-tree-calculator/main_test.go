package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestRun(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		args     []string
		stdin    string
		expected string
		status   int
	}{
		{
			name:     "stdin",
			stdin:    "3+4*2\n",
			expected: "postfix: 342*+\nresult: 11\n",
		},
		{
			name:     "stdin without newline",
			stdin:    "(3+4)*2",
			expected: "postfix: 34+2*\nresult: 14\n",
		},
		{
			name:     "true division",
			args:     []string{"-e", "10/2-3"},
			expected: "postfix: 102/3-\nresult: 2.0\n",
		},
		{
			name:     "left associative",
			args:     []string{"--expr", "8-3-2"},
			expected: "postfix: 83-2-\nresult: 3\n",
		},
		{
			name:     "division by zero",
			args:     []string{"-e", "5/0"},
			expected: "postfix: 50/\nError: ZeroDivisionError: division by zero: 5 / 0\n",
			status:   1,
		},
		{
			name:     "empty",
			stdin:    "\n",
			expected: "postfix: \nError: MalformedExpressionError: empty expression is not allowed\n",
			status:   1,
		},
		{
			name:     "unbalanced best-effort",
			args:     []string{"-e", "3+4)"},
			expected: "postfix: 34+\nresult: 7\n",
		},
		{
			name:     "unbalanced strict",
			args:     []string{"--strict", "-e", "(1+2"},
			expected: "Error: MalformedExpressionError: unmatched \"(\"\n",
			status:   1,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout bytes.Buffer
			status := run(tt.args, strings.NewReader(tt.stdin), &stdout)
			if status != tt.status {
				t.Errorf("expect status %d but got %d", tt.status, status)
			}
			if diff := cmp.Diff(tt.expected, stdout.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunJSON(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	if status := run([]string{"--json", "-e", "3+4*2"}, strings.NewReader(""), &stdout); status != 0 {
		t.Fatalf("expect status 0 but got %d: %s", status, stdout.String())
	}

	var got map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	expected := map[string]any{
		"expression": "3+4*2",
		"tokens":     []any{"3", "+", "4", "*", "2"},
		"postfix":    "342*+",
		"tree":       "(3 + (4 * 2))",
		"result":     float64(11),
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	if err := os.WriteFile(path, []byte("expressions:\n  - 3+4*2\n  - name: half\n    expression: 1/2\n    expect: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if status := run([]string{"-f", path, "-p", "1"}, strings.NewReader(""), &stdout); status != 0 {
		t.Fatalf("expect status 0 but got %d: %s", status, stdout.String())
	}

	var got struct {
		Outcomes []struct {
			Name    string  `json:"name"`
			Postfix string  `json:"postfix"`
			Result  float64 `json:"result"`
			Matched *bool   `json:"matched"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Outcomes) != 2 {
		t.Fatalf("expect 2 outcomes but got %d", len(got.Outcomes))
	}
	if o := got.Outcomes[0]; o.Name != "expressions[0]" || o.Postfix != "342*+" || o.Result != 11 || o.Matched != nil {
		t.Errorf("unexpected outcome: %+v", o)
	}
	if o := got.Outcomes[1]; o.Name != "half" || o.Postfix != "12/" || o.Result != 0.5 || o.Matched == nil || !*o.Matched {
		t.Errorf("unexpected outcome: %+v", o)
	}

	stdout.Reset()
	if status := run([]string{"-f", filepath.Join(dir, "batch.txt")}, strings.NewReader(""), &stdout); status != 1 {
		t.Errorf("unsupported extension should fail but got status %d", status)
	}
}

func TestRunConflictingOptions(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	if status := run([]string{"-e", "1+1", "-f", "batch.yaml"}, strings.NewReader(""), &stdout); status != 1 {
		t.Errorf("expect status 1 but got %d", status)
	}
}
