package survey

import (
	"log/slog"
	"researchkit/lib/localization"
	"researchkit/lib/tabular"
	"strings"
)

// RatingID is the identifier of the rating question, its label prefixes
// every rating column header.
const RatingID = "rate_competence"

// Translate replaces every Polish column name and answer known to the table
// with its English label. The rating label is replaced as a substring so
// numbered rating headers keep their suffix, all other headers and all cells
// must match a label exactly. Unknown names and values pass through.
func Translate(logger *slog.Logger, ds *tabular.Dataset, table *localization.Table) *tabular.Dataset {
	columnMap := map[string]string{}
	var ratingPL, ratingEN string
	for _, id := range table.Identifiers(localization.Column) {
		pl, okPL := table.Label(localization.Column, id, localization.Polish)
		en, okEN := table.Label(localization.Column, id, localization.English)
		if !okPL || !okEN {
			logger.Warn("column identifier is missing a label, not translating it", "id", id)
			continue
		}
		if id == RatingID {
			ratingPL, ratingEN = pl, en
			continue
		}
		columnMap[pl] = en
	}

	answerMap := map[string]string{}
	for _, id := range table.Identifiers(localization.Answer) {
		pl, okPL := table.Label(localization.Answer, id, localization.Polish)
		en, okEN := table.Label(localization.Answer, id, localization.English)
		if !okPL || !okEN {
			logger.Warn("answer identifier is missing a label, not translating it", "id", id)
			continue
		}
		// empty cells are missing answers, not a polish label
		if pl == "" {
			continue
		}
		answerMap[pl] = en
	}

	out := ds.MapNames(func(name string) string {
		if ratingPL != "" {
			name = strings.ReplaceAll(name, ratingPL, ratingEN)
		}
		if en, ok := columnMap[name]; ok {
			return en
		}
		return name
	})
	out = out.MapValues(func(cell string) string {
		if en, ok := answerMap[cell]; ok {
			return en
		}
		return cell
	})

	logger.Info("translated polish survey to english", "rows", out.Rows(), "columns", out.Width())
	return out
}
