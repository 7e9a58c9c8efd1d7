package survey

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"researchkit/internal/chrono"
	"researchkit/lib/localization"
	"researchkit/lib/tabular"
	"sort"
)

// Pipeline runs the survey analysis: load both surveys, aggregate them per
// condition, drop low quality respondents, then write the processed csvs,
// the combined csvs and the statistics report.
type Pipeline struct {
	cfg     Config
	logger  *slog.Logger
	display io.Writer
	clock   chrono.TimeAPI

	table  *localization.Table
	labels []string
}

// NewPipeline creates a pipeline, dataframes are rendered into `display`
// when enabled. A nil display disables rendering.
func NewPipeline(logger *slog.Logger, cfg Config, display io.Writer) *Pipeline {
	if display == nil {
		display = io.Discard
	}
	return &Pipeline{
		cfg:     cfg,
		logger:  logger.With("component", "survey"),
		display: display,
		clock:   chrono.NewStandardTime(),
	}
}

// SetClock replaces the clock used to resolve the survey year when
// current_year is not configured.
func (p *Pipeline) SetClock(clock chrono.TimeAPI) {
	p.clock = clock
}

// surveyYear is the year ages are computed against, a current_year of 0
// means the year of today.
func (p *Pipeline) surveyYear() int {
	if p.cfg.CurrentYear > 0 {
		return p.cfg.CurrentYear
	}
	return p.clock.Now().Year()
}

// Loaded holds both surveys before filtering, the originals are the
// translated raw datasets the aggregated ones were built from.
type Loaded struct {
	MeansEN    *tabular.Dataset
	OriginalEN *tabular.Dataset
	MeansPL    *tabular.Dataset
	OriginalPL *tabular.Dataset
}

func (p *Pipeline) loadReferences() error {
	if p.table == nil {
		table, err := localization.Load(p.cfg.LangDB)
		if err != nil {
			return fmt.Errorf("load localization table: %w", err)
		}
		p.logger.Info("loaded localization table", "path", p.cfg.LangDB)
		p.table = table
	}
	if p.labels == nil {
		labels, err := LoadColumnLabels(p.logger, p.cfg.ColumnLabels, p.cfg.Encoding)
		if err != nil {
			return err
		}
		p.labels = labels
	}
	return nil
}

func (p *Pipeline) readSurvey(path string, lang localization.Language) (*tabular.Dataset, error) {
	ds, err := tabular.ReadCSV(path, tabular.ReadOptions{Encoding: p.cfg.Encoding})
	if err != nil {
		return nil, fmt.Errorf("load %s survey: %w", lang, err)
	}
	p.logger.Info(
		"loaded survey",
		"survey", lang,
		"path", path,
		"rows", ds.Rows(),
		"columns", ds.Width(),
	)
	return ds, nil
}

// LoadAll reads both raw surveys, translates the Polish one and aggregates
// them per condition.
func (p *Pipeline) LoadAll(ctx context.Context) (Loaded, error) {
	_, span := tracer.Start(ctx, "survey.LoadAll")
	defer span.End()

	err := p.loadReferences()
	if err != nil {
		return Loaded{}, err
	}

	originalEN, err := p.readSurvey(p.cfg.InputEN, localization.English)
	if err != nil {
		return Loaded{}, err
	}
	meansEN, err := Means(p.logger, originalEN, p.labels, p.table, localization.English, p.cfg.DecimalPlaces)
	if err != nil {
		return Loaded{}, err
	}

	rawPL, err := p.readSurvey(p.cfg.InputPL, localization.Polish)
	if err != nil {
		return Loaded{}, err
	}
	originalPL := Translate(p.logger, rawPL, p.table)
	meansPL, err := Means(p.logger, originalPL, p.labels, p.table, localization.Polish, p.cfg.DecimalPlaces)
	if err != nil {
		return Loaded{}, err
	}

	return Loaded{
		MeansEN:    meansEN,
		OriginalEN: originalEN,
		MeansPL:    meansPL,
		OriginalPL: originalPL,
	}, nil
}

// RemoveParticipants runs the quality filter on both surveys.
func (p *Pipeline) RemoveParticipants(ctx context.Context, loaded Loaded) (*tabular.Dataset, *tabular.Dataset, error) {
	err := p.loadReferences()
	if err != nil {
		return nil, nil, err
	}
	checks, err := ResolveControls(p.table, p.cfg.Controls)
	if err != nil {
		return nil, nil, err
	}
	ratingLabel, err := p.table.Require(localization.Column, RatingID, localization.English)
	if err != nil {
		return nil, nil, err
	}

	opts := FilterOptions{
		Checks:      checks,
		RatingLabel: ratingLabel,
		MaxRatio:    p.cfg.MaxClickerRatio,
	}

	opts.Language = localization.English
	en, _, err := Filter(ctx, p.logger, loaded.MeansEN, loaded.OriginalEN, opts)
	if err != nil {
		return nil, nil, err
	}
	opts.Language = localization.Polish
	pl, _, err := Filter(ctx, p.logger, loaded.MeansPL, loaded.OriginalPL, opts)
	if err != nil {
		return nil, nil, err
	}

	p.logger.Info("processed english survey", "before", loaded.MeansEN.Rows(), "after", en.Rows())
	p.logger.Info("processed polish survey", "before", loaded.MeansPL.Rows(), "after", pl.Rows())
	return en, pl, nil
}

// CleanDatasets returns the filtered surveys. When reading from the raw
// inputs is disabled the processed csvs of a previous run are loaded
// instead so they can be edited by hand in between.
func (p *Pipeline) CleanDatasets(ctx context.Context) (*tabular.Dataset, *tabular.Dataset, error) {
	ctx, span := tracer.Start(ctx, "survey.CleanDatasets")
	defer span.End()

	var en, pl *tabular.Dataset
	if p.cfg.Enabled.UseCSVFromInput {
		p.logger.Info("loading raw surveys from input", "use_csv_from_input", true)

		loaded, err := p.LoadAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		en, pl, err = p.RemoveParticipants(ctx, loaded)
		if err != nil {
			return nil, nil, err
		}

		index := tabular.WriteOptions{IndexName: ParticipantIndex, IndexStart: 1}
		err = p.writeCSV(p.cfg.ProcessedEN, en, index)
		if err != nil {
			return nil, nil, err
		}
		err = p.writeCSV(p.cfg.ProcessedPL, pl, index)
		if err != nil {
			return nil, nil, err
		}
	} else {
		p.logger.Info("loading processed surveys from output", "use_csv_from_input", false)

		var err error
		opts := tabular.ReadOptions{Encoding: p.cfg.Encoding, IndexColumn: ParticipantIndex}
		en, err = tabular.ReadCSV(p.cfg.ProcessedEN, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("load processed en survey: %w", err)
		}
		pl, err = tabular.ReadCSV(p.cfg.ProcessedPL, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("load processed pl survey: %w", err)
		}
	}

	p.show("english survey", en)
	p.show("polish survey", pl)
	return en, pl, nil
}

// Combine stacks the English survey on top of the Polish one, columns are
// matched by name and cells missing from either side are left empty.
func Combine(en, pl *tabular.Dataset) *tabular.Dataset {
	return tabular.Concat(en, pl)
}

// MeansOnly keeps the language column and one column per distinct
// condition label, in grouping order. Labels missing from `ds` are skipped.
func MeansOnly(ds *tabular.Dataset, labels []string) *tabular.Dataset {
	names := append([]string{LanguageColumn}, distinctSorted(labels)...)
	var columns []tabular.Column
	for _, name := range names {
		i := ds.Index(name)
		if i < 0 {
			continue
		}
		columns = append(columns, ds.Column(i))
	}
	out, _ := tabular.FromColumns(columns...)
	return out
}

// Run executes the whole pipeline.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "survey.Run")
	defer span.End()

	err := p.loadReferences()
	if err != nil {
		return err
	}

	en, pl, err := p.CleanDatasets(ctx)
	if err != nil {
		return err
	}

	combined := Combine(en, pl)
	p.show("combined survey", combined)

	sections, err := Statistics(p.logger, en, pl, p.table, p.cfg.Enabled, p.surveyYear())
	if err != nil {
		return err
	}

	index := tabular.WriteOptions{IndexName: ParticipantIndex, IndexStart: 1}
	err = p.writeCSV(p.cfg.CombinedAll, combined, index)
	if err != nil {
		return err
	}
	err = p.writeCSV(p.cfg.CombinedMeans, MeansOnly(combined, p.labels), index)
	if err != nil {
		return err
	}

	err = WriteStats(p.cfg.Stats, StatsHeader, sections)
	if err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	p.logger.Info("saved stats", "path", p.cfg.Stats, "sections", len(sections))
	return nil
}

func (p *Pipeline) writeCSV(path string, ds *tabular.Dataset, opts tabular.WriteOptions) error {
	err := tabular.WriteCSV(path, ds, opts)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	p.logger.Info("saved csv", "path", path, "rows", ds.Rows(), "columns", ds.Width())
	return nil
}

func (p *Pipeline) show(title string, ds *tabular.Dataset) {
	if !p.cfg.Enabled.DisplayDataframes {
		return
	}
	fmt.Fprintf(p.display, "%s:\n%s\n", title, tabular.Render(ds, ParticipantIndex, 1, p.cfg.DisplayRows))
}

func distinctSorted(values []string) []string {
	set := map[string]struct{}{}
	for _, v := range values {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
