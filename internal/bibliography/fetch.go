package bibliography

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"researchkit/lib/htmlutil"
	"researchkit/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("researchkit.internal.bibliography")

// the article column holding the publisher list
const publisherColumnSelector = `div.wp-block-column[style="flex-basis: 75%;"]`

// FetchPublishers downloads the page at `url` and extracts the publisher
// list from it.
func FetchPublishers(ctx context.Context, logger *slog.Logger, client *resty.Client, url string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "FetchPublishers")
	defer span.End()

	logger.DebugContext(ctx, "downloading publisher list", "url", url)
	res, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download publisher list")
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if res.IsError() {
		err = fmt.Errorf("failed to download %s: %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "publisher list returned an error status")
		return nil, err
	}
	logger.InfoContext(ctx, "downloaded website", "url", url, "bytes", len(res.Body()))

	// the page is always decoded as utf-8 regardless of what the server claims
	body, err := textutil.NewReader(bytes.NewReader(res.Body()), "utf-8")
	if err != nil {
		return nil, err
	}
	publishers, err := ParsePublishers(ctx, logger, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse publisher list")
		return nil, err
	}
	span.SetAttributes(attribute.Int("publishers", len(publishers)))
	return publishers, nil
}

// ParsePublishers reads the first list of the article column. An item's
// name is the text of its first link, or the item's own text when the
// publisher is not linked.
func ParsePublishers(ctx context.Context, logger *slog.Logger, r io.Reader) ([]string, error) {
	doc, err := htmlutil.ParseDocument(ctx, logger, r)
	if err != nil {
		return nil, err
	}

	column := doc.Find(publisherColumnSelector).First()
	if column.Length() == 0 {
		return nil, fmt.Errorf("%w: could not find the article column holding the publisher list", ErrMissingInput)
	}
	list := column.Find("ul").First()
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: could not find a list within the article column", ErrMissingInput)
	}

	publishers := []string{}
	list.Find("li").Each(func(i int, item *goquery.Selection) {
		name := item.Text()
		link := item.Find("a[href]").First()
		if link.Length() > 0 {
			name = link.Text()
		}
		if htmlutil.CleanText(name) == "" {
			logger.Warn("skipping publisher without a name", "item", i)
			return
		}
		publishers = append(publishers, name)
	})

	logger.InfoContext(ctx, "downloaded list of predatory publishers", "publishers", len(publishers))
	return publishers, nil
}
