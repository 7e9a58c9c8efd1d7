package restyutil

import (
	"log/slog"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

const DefaultTimeout = time.Second * 10

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// zero means DefaultTimeout
	Timeout time.Duration
	// when set, full request/response pairs are written into this directory
	DumpDir string
	// wraps the transport so pages sitting behind cloudflare still answer
	CloudflareBypass bool
	Logger           *slog.Logger
	Tracer           trace.Tracer
}

// NewClient creates an instrumented resty client for one-shot page fetches.
// there are no retries, a failed request is returned to the caller as-is.
func NewClient(opts ClientOptions) (*resty.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("user-agent", userAgent)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	var output InstrumentOutput
	if opts.DumpDir != "" {
		fsout, err := NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		output = fsout
	}
	InstrumentClient(client, opts.Logger, opts.Tracer, output)

	return client, nil
}
