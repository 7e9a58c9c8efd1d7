package grades

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"researchkit/lib/htmlutil"
	"researchkit/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("researchkit.internal.grades")

// ReadRows converts every row of the first `table.grey` of the page into
// cells.
func ReadRows(ctx context.Context, logger *slog.Logger, r io.Reader) ([][]Cell, error) {
	ctx, span := tracer.Start(ctx, "ReadRows")
	defer span.End()

	doc, err := htmlutil.ParseDocument(ctx, logger, r)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.grey").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: could not find the grade table (table.grey)", ErrMissingInput)
	}

	var rows [][]Cell
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []Cell
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, readCell(ctx, td))
		})
		rows = append(rows, row)
	})
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

func readCell(ctx context.Context, td *goquery.Selection) Cell {
	cell := Cell{}
	for _, n := range td.Nodes {
		cell.Text += htmlutil.GetText(n)
	}

	anchors := htmlutil.GetAnchors(ctx, td.Find("a").First())
	if len(anchors) > 0 {
		cell.Anchor = anchors[0].Name
		cell.HasAnchor = true
	}

	td.Find("span").Each(func(_ int, s *goquery.Selection) {
		cell.Spans = append(cell.Spans, s.Text())
	})
	return cell
}

// ExtractFile reads the saved grade report at `path` and parses its grade
// table.
func ExtractFile(ctx context.Context, logger *slog.Logger, path, encoding string) (Result, error) {
	ctx, span := tracer.Start(ctx, "ExtractFile")
	defer span.End()

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("%w: grade report does not exist: %s", ErrMissingInput, path)
	}
	if err != nil {
		return Result{}, err
	}
	defer file.Close()

	reader, err := textutil.NewReader(file, encoding)
	if err != nil {
		return Result{}, err
	}
	logger.Info("loaded html file", "path", path)

	rows, err := ReadRows(ctx, logger, reader)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return ParseTable(logger, rows)
}
