package survey

// Sections toggles which parts of the run are performed, every toggle
// defaults to true.
type Sections struct {
	// when false the processed csvs in the output directory are loaded
	// instead, useful to edit them manually before the statistics are
	// computed
	UseCSVFromInput   bool `json:"use_csv_from_input"`
	DisplayDataframes bool `json:"display_dataframes"`
	ParticipantSize   bool `json:"get_participant_size"`
	BeganEnglish      bool `json:"get_began_english"`
	Age               bool `json:"get_age"`
	Gender            bool `json:"get_gender"`
	City              bool `json:"get_city"`
	UniYear           bool `json:"get_uni_year"`
}

// ControlSpec names a control question and the answer every kept
// respondent must have given, both as localization identifiers.
type ControlSpec struct {
	Column string `json:"column"`
	Answer string `json:"answer"`
}

type Config struct {
	LangDB       string `json:"lang_db"`
	ColumnLabels string `json:"column_names"`

	// WHATWG encoding label of every input file
	Encoding string `json:"encoding"`

	InputEN       string `json:"input_en"`
	InputPL       string `json:"input_pl"`
	ProcessedEN   string `json:"processed_en"`
	ProcessedPL   string `json:"processed_pl"`
	CombinedAll   string `json:"combined_all_columns"`
	CombinedMeans string `json:"combined_means_only"`
	Stats         string `json:"stats"`

	MaxClickerRatio int           `json:"max_clicker_ratio"`
	DecimalPlaces   int           `json:"decimal_places"`
	Controls        []ControlSpec `json:"controls"`

	// ages are computed relative to this year, 0 uses the year of today
	CurrentYear int `json:"current_year"`

	// rows shown when printing dataframes, 0 shows everything
	DisplayRows int `json:"display_rows"`

	Enabled Sections `json:"enabled"`
}

const (
	DefaultMaxClickerRatio = 80
	DefaultDecimalPlaces   = 4
	DefaultCurrentYear     = 2022

	ParticipantIndex = "Participant"
	StatsHeader      = "[all data below has been calculated after the participants were removed]"
)

func DefaultConfig() Config {
	return Config{
		LangDB:       "./input/lang_db.json",
		ColumnLabels: "./input/column_names.txt",
		Encoding:     "utf-8",

		InputEN:       "./input/Survey research EN.csv",
		InputPL:       "./input/Survey research PL.csv",
		ProcessedEN:   "./output/processed_EN.csv",
		ProcessedPL:   "./output/processed_PL.csv",
		CombinedAll:   "./output/combined_all_columns.csv",
		CombinedMeans: "./output/combined_means_only.csv",
		Stats:         "./output/stats.txt",

		MaxClickerRatio: DefaultMaxClickerRatio,
		DecimalPlaces:   DefaultDecimalPlaces,
		CurrentYear:     DefaultCurrentYear,
		Controls: []ControlSpec{
			// polish is L1
			{Column: "is_l1", Answer: "yes"},
			// english is L2
			{Column: "is_l2", Answer: "yes"},
			// english is used daily
			{Column: "how_often", Answer: "often_daily"},
		},
		DisplayRows: 20,

		Enabled: Sections{
			UseCSVFromInput:   true,
			DisplayDataframes: true,
			ParticipantSize:   true,
			BeganEnglish:      true,
			Age:               true,
			Gender:            true,
			City:              true,
			UniYear:           true,
		},
	}
}
