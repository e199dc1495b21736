package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maxvaer/paramfuzz/internal/config"
	"github.com/maxvaer/paramfuzz/internal/runner"
	"github.com/maxvaer/paramfuzz/internal/scanner"
	"github.com/maxvaer/paramfuzz/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var opts config.Options

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"url", "wordlist"}},
	{"DETECTION", []string{"value", "size-threshold"}},
	{"PERFORMANCE", []string{"timeout"}},
	{"HTTP", []string{"header", "user-agent", "proxy", "insecure", "no-redirects"}},
	{"OUTPUT", []string{"quiet", "no-color", "on-result"}},
}

var rootCmd = &cobra.Command{
	Use:     "paramfuzz -u <url> -w <wordlist> [flags]",
	Short:   "Hidden query parameter discovery via reflection and size diffing",
	Version: version.Version,
	Long: `paramfuzz discovers hidden or unhandled query parameters on a single URL.
Each candidate from the wordlist is sent with a sentinel value and the
response is compared with a baseline: a reflected sentinel or a response
size change above the threshold is reported.

Only use it against targets you are authorized to test.`,
	Example: `  paramfuzz -u https://example.com/page.php -w params.txt
  paramfuzz -u https://example.com/search?lang=en -w params.txt -q
  paramfuzz -u https://example.com/ -w params.txt --size-threshold 0.05
  paramfuzz -u https://example.com/ -w params.txt -H "Cookie: session=abc"
  paramfuzz -u https://example.com/ -w params.txt --on-result "notify-send {param}"`,
	PreRunE:       validate,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func validate(cmd *cobra.Command, args []string) error {
	if opts.URL == "" || opts.WordlistPath == "" {
		_ = cmd.Help()
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("target and wordlist required: use -u and -w")
	}
	if _, err := scanner.ParseTarget(opts.URL); err != nil {
		return err
	}
	if opts.Threads < 1 {
		return fmt.Errorf("--threads must be at least 1")
	}
	if opts.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}
	if opts.SizeThreshold < 0 {
		return fmt.Errorf("--size-threshold must not be negative")
	}
	if opts.Sentinel == "" {
		return fmt.Errorf("--value must not be empty")
	}

	headers, _ := cmd.Flags().GetStringSlice("header")
	h, err := parseHeaders(headers)
	if err != nil {
		return err
	}
	opts.Headers = h
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return runner.Run(ctx, &opts)
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.URL, "url", "u", "", "Target URL (http:// or https://)")
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "", "Parameter wordlist, one name per line")

	// Detection
	f.StringVar(&opts.Sentinel, "value", config.DefaultSentinel, "Sentinel value sent with every parameter")
	f.Float64Var(&opts.SizeThreshold, "size-threshold", config.DefaultSizeThreshold, "Relative size change reported as a finding (0.1 = 10%)")

	// Performance
	// The worker cap is fixed at 10; the flag stays hidden for debugging.
	f.IntVarP(&opts.Threads, "threads", "t", config.DefaultThreads, "Number of concurrent probes")
	_ = f.MarkHidden("threads")
	f.DurationVar(&opts.Timeout, "timeout", config.DefaultTimeout, "HTTP request timeout")

	// HTTP
	f.StringSliceP("header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgent, "user-agent", "", "Custom User-Agent string")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP proxy URL (default: from environment)")
	f.BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate verification")
	f.BoolVar(&opts.NoRedirects, "no-redirects", false, "Do not follow HTTP redirects")

	// Output
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print findings and the summary")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command to run for each finding (receives JSON on stdin)")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command and exits non-zero on any fatal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", h)
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return headers, nil
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 32
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}
