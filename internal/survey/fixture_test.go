package survey

import (
	"os"
	"path/filepath"
	"researchkit/lib/localization"
	"researchkit/lib/tabular"
	"researchkit/lib/telemetry"
	"testing"
)

var testColumns = map[localization.Language]map[string]string{
	localization.English: {
		"rate_competence": "Rate competence",
		"is_l1":           "Is Polish your L1?",
		"is_l2":           "Is English your L2?",
		"how_often":       "How often",
		"age_begin_eng":   "Began English",
		"birth_year":      "Birth year",
		"what_gender":     "Gender",
		"how_big_city":    "City size",
		"which_uni_year":  "Uni year",
	},
	localization.Polish: {
		"rate_competence": "Oceń kompetencje",
		"is_l1":           "Czy polski jest L1?",
		"is_l2":           "Czy angielski jest L2?",
		"how_often":       "Jak często",
		"age_begin_eng":   "Początek angielskiego",
		"birth_year":      "Rok urodzenia",
		"what_gender":     "Płeć",
		"how_big_city":    "Wielkość miasta",
		"which_uni_year":  "Rok studiów",
	},
}

var testAnswers = map[localization.Language]map[string]string{
	localization.English: {
		"yes":         "yes",
		"no":          "no",
		"often_daily": "daily",
		"female":      "female",
		"male":        "male",
		"big":         "big",
		"small":       "small",
	},
	localization.Polish: {
		"yes":         "tak",
		"no":          "nie",
		"often_daily": "codziennie",
		"female":      "kobieta",
		"male":        "mężczyzna",
		"big":         "duże",
		"small":       "małe",
	},
}

const testLangDB = `{
	"english_columns": {
		"rate_competence": "Rate competence",
		"is_l1": "Is Polish your L1?",
		"is_l2": "Is English your L2?",
		"how_often": "How often",
		"age_begin_eng": "Began English",
		"birth_year": "Birth year",
		"what_gender": "Gender",
		"how_big_city": "City size",
		"which_uni_year": "Uni year"
	},
	"polish_columns": {
		"rate_competence": "Oceń kompetencje",
		"is_l1": "Czy polski jest L1?",
		"is_l2": "Czy angielski jest L2?",
		"how_often": "Jak często",
		"age_begin_eng": "Początek angielskiego",
		"birth_year": "Rok urodzenia",
		"what_gender": "Płeć",
		"how_big_city": "Wielkość miasta",
		"which_uni_year": "Rok studiów"
	},
	"english_answers": {
		"yes": "yes", "no": "no", "often_daily": "daily",
		"female": "female", "male": "male", "big": "big", "small": "small"
	},
	"polish_answers": {
		"yes": "tak", "no": "nie", "often_daily": "codziennie",
		"female": "kobieta", "male": "mężczyzna", "big": "duże", "small": "małe"
	}
}`

const testColumnLabels = `# condition labels, one per rating column
cond_A = how competent is speaker one
cond_A = how competent is speaker two
cond_B = how competent is speaker three
`

// respondent 1 keeps clicking the same answer, respondent 2 is not a
// native polish speaker
const testSurveyEN = `Timestamp,Rate competence 1,Rate competence 2,Rate competence 3,Is Polish your L1?,Is English your L2?,How often,Began English,Birth year,Gender,City size,Uni year
2022/05/01,2,4,6,yes,yes,daily,5,1999,female,big,1
2022/05/01,3,3,3,yes,yes,daily,7,2001,male,small,2
2022/05/02,1,5,2,no,yes,daily,6,2000,female,big,1
2022/05/03,4,2,5,yes,yes,daily,9,2003,female,small,3
`

// respondent 1 does not have english as L2
const testSurveyPL = `Sygnatura czasowa,Oceń kompetencje 1,Oceń kompetencje 2,Oceń kompetencje 3,Czy polski jest L1?,Czy angielski jest L2?,Jak często,Początek angielskiego,Rok urodzenia,Płeć,Wielkość miasta,Rok studiów
2022/05/01,1,2,3,tak,tak,codziennie,8,2000,kobieta,duże,2
2022/05/02,5,5,4,tak,nie,codziennie,4,1998,mężczyzna,małe,1
`

func testTable() *localization.Table {
	return localization.New(testColumns, testAnswers)
}

func mustDataset(t testing.TB, header []string, records ...[]string) *tabular.Dataset {
	ds, err := tabular.FromRecords(header, records)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func writeFile(t testing.TB, path, contents string) {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func readFile(t testing.TB, path string) string {
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(contents)
}

// testConfig lays out every input of a survey run under a temporary
// directory.
func testConfig(t testing.TB) Config {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LangDB = filepath.Join(dir, "input", "lang_db.json")
	cfg.ColumnLabels = filepath.Join(dir, "input", "column_names.txt")
	cfg.InputEN = filepath.Join(dir, "input", "Survey research EN.csv")
	cfg.InputPL = filepath.Join(dir, "input", "Survey research PL.csv")
	cfg.ProcessedEN = filepath.Join(dir, "output", "processed_EN.csv")
	cfg.ProcessedPL = filepath.Join(dir, "output", "processed_PL.csv")
	cfg.CombinedAll = filepath.Join(dir, "output", "combined_all_columns.csv")
	cfg.CombinedMeans = filepath.Join(dir, "output", "combined_means_only.csv")
	cfg.Stats = filepath.Join(dir, "output", "stats.txt")

	writeFile(t, cfg.LangDB, testLangDB)
	writeFile(t, cfg.ColumnLabels, testColumnLabels)
	writeFile(t, cfg.InputEN, testSurveyEN)
	writeFile(t, cfg.InputPL, testSurveyPL)
	return cfg
}

var discard = telemetry.Discard()
