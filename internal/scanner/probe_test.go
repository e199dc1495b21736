package scanner

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sentinel = "PARAMFUZZVALUE"

func body(n int) []byte {
	return []byte(strings.Repeat("a", n))
}

// utf16le encodes ASCII text as UTF-16 little endian.
func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		out = append(out, s[i], 0)
	}
	return out
}

func TestClassify(t *testing.T) {
	reflecting := append(body(2000), []byte(sentinel)...)

	tests := []struct {
		name     string
		body     []byte
		baseline int64
		want     Kind
	}{
		{name: "reflection wins over size change", body: reflecting, baseline: 1000, want: Reflected},
		{name: "reflection with same size", body: append(body(986), []byte(sentinel)...), baseline: 1000, want: Reflected},
		{name: "15% larger", body: body(1150), baseline: 1000, want: SizeChanged},
		{name: "15% smaller", body: body(850), baseline: 1000, want: SizeChanged},
		{name: "2% larger", body: body(1020), baseline: 1000, want: NoSignal},
		{name: "exactly 10% is not a change", body: body(1100), baseline: 1000, want: NoSignal},
		{name: "just over 10%", body: body(1101), baseline: 1000, want: SizeChanged},
		{name: "identical", body: body(1000), baseline: 1000, want: NoSignal},
		{name: "empty baseline, non-empty response", body: body(1), baseline: 0, want: SizeChanged},
		{name: "empty baseline, empty response", body: nil, baseline: 0, want: NoSignal},
		{name: "empty baseline, reflection", body: []byte(sentinel), baseline: 0, want: Reflected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: 200, Size: int64(len(tt.body)), Body: tt.body, Text: string(tt.body)}
			got := Classify("debug", resp, sentinel, Baseline{StatusCode: 200, Size: tt.baseline}, 0.10)
			if got.Kind != tt.want {
				t.Fatalf("Classify kind = %v, want %v", got.Kind, tt.want)
			}
			if got.Parameter != "debug" {
				t.Errorf("Parameter = %q, want debug", got.Parameter)
			}
			if got.NewSize != int64(len(tt.body)) {
				t.Errorf("NewSize = %d, want %d", got.NewSize, len(tt.body))
			}
		})
	}
}

func TestSizeRatio(t *testing.T) {
	if r := SizeRatio(1150, 1000); r < 0.1499 || r > 0.1501 {
		t.Errorf("SizeRatio(1150, 1000) = %f, want 0.15", r)
	}
	if r := SizeRatio(900, 1000); r < 0.0999 || r > 0.1001 {
		t.Errorf("SizeRatio(900, 1000) = %f, want 0.10", r)
	}
}

func TestProberAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("id") != "":
			w.Write([]byte("value=" + q.Get("id")))
		case q.Has("debug"):
			w.Write(body(1150))
		case q.Has("broken"):
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("response writer does not support hijacking")
				return
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
		default:
			w.Write(body(1000))
		}
	}))
	defer srv.Close()

	req := newTestRequester(t, srv.URL+"/page")
	base, err := AcquireBaseline(context.Background(), req)
	if err != nil {
		t.Fatalf("AcquireBaseline: %v", err)
	}
	if base.Size != 1000 || base.StatusCode != 200 {
		t.Fatalf("baseline = %+v, want {200 1000}", base)
	}

	p := NewProber(req, base, sentinel, 0.10)

	tests := []struct {
		param string
		want  Kind
	}{
		{"id", Reflected},
		{"debug", SizeChanged},
		{"foo", NoSignal},
		{"broken", Failed},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			got := p.Probe(context.Background(), tt.param)
			if got.Kind != tt.want {
				t.Fatalf("Probe(%q) = %v (err %v), want %v", tt.param, got.Kind, got.Err, tt.want)
			}
			if tt.want == Failed && got.Err == nil {
				t.Error("expected Err on failed outcome")
			}
			if tt.want == SizeChanged && got.NewSize != 1150 {
				t.Errorf("NewSize = %d, want 1150", got.NewSize)
			}
		})
	}
}

func TestAcquireBaselineFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	req := newTestRequester(t, "http://"+addr+"/")
	if _, err := AcquireBaseline(context.Background(), req); err == nil {
		t.Fatal("expected baseline error for closed port")
	} else if !strings.Contains(err.Error(), "could not get baseline response") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClassifyEncodedReflection(t *testing.T) {
	raw := utf16le("hello " + sentinel)
	resp := &Response{
		StatusCode: 200,
		Size:       int64(len(raw)),
		Body:       raw,
		Text:       DecodeBody(raw, "text/html; charset=utf-16le"),
	}

	got := Classify("q", resp, sentinel, Baseline{StatusCode: 200, Size: 12}, 0.10)
	if got.Kind != Reflected {
		t.Fatalf("Classify kind = %v, want reflected", got.Kind)
	}
	if got.NewSize != 40 {
		t.Errorf("NewSize = %d, want raw byte count 40", got.NewSize)
	}
}

func TestProberDecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-16le")
			w.Write(utf16le("hello " + q))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("hello world!"))
	}))
	defer srv.Close()

	req := newTestRequester(t, srv.URL)
	base, err := AcquireBaseline(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	got := NewProber(req, base, sentinel, 0.10).Probe(context.Background(), "q")
	if got.Kind != Reflected {
		t.Fatalf("Probe kind = %v (size %d), want reflected", got.Kind, got.NewSize)
	}
}
