package hook

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/maxvaer/paramfuzz/internal/scanner"
)

func TestExpand(t *testing.T) {
	r := NewRunner("notify {kind} {param} {status} {size} {url}", true)
	got := r.Expand(scanner.Outcome{
		Kind:       scanner.SizeChanged,
		Parameter:  "debug",
		URL:        "http://example.com/?debug=X",
		StatusCode: 200,
		NewSize:    1150,
	})
	want := "notify size-changed debug 200 1150 http://example.com/?debug=X"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestRunWritesPayload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	out := filepath.Join(t.TempDir(), "hook.json")

	r := NewRunner("cat > "+out, true)
	r.Run(scanner.Outcome{Kind: scanner.Reflected, Parameter: "id", StatusCode: 200, NewSize: 42},
		scanner.Baseline{StatusCode: 200, Size: 40})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	var got findingJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid payload %q: %v", data, err)
	}
	if got.Parameter != "id" || got.Kind != "reflected" || got.Size != 42 || got.BaselineSize != 40 {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestRunFailureIsLogged(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	var stderr bytes.Buffer
	r := NewRunner("exit 3", false)
	r.stderr = &stderr

	r.Run(scanner.Outcome{Kind: scanner.Reflected, Parameter: "id"}, scanner.Baseline{})

	if !strings.Contains(stderr.String(), "[hook] error") {
		t.Errorf("expected hook error on stderr, got %q", stderr.String())
	}
}
