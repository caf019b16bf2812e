package yamlconfig

// rawDoc mirrors the top-level document shape spec.md §6 freezes: `name?`,
// `cycles[]`, `tasks[]`, `data: {available[], generated[]}`,
// `parameters: {name: [values]}`. start_date/end_date are a SPEC_FULL
// addition (see DESIGN.md): an optional workflow-wide fallback window for
// cycles that don't set their own, grounded on original_source's
// ConfigWorkflow carrying those fields.
type rawDoc struct {
	Name       string              `yaml:"name"`
	StartDate  *string             `yaml:"start_date"`
	EndDate    *string             `yaml:"end_date"`
	Parameters map[string][]any    `yaml:"parameters"`
	Tasks      []map[string]rawTask  `yaml:"tasks"`
	Cycles     []map[string]rawCycle `yaml:"cycles"`
	Data       rawDataSection        `yaml:"data"`
}

type rawDataSection struct {
	Available []map[string]rawData `yaml:"available"`
	Generated []map[string]rawData `yaml:"generated"`
}

// rawTask is the body of one `tasks[i]` one-key-map entry:
// `task_name: {plugin, command?, cli_arguments?, parameters?, host?,
// account?, uenv?, nodes?, walltime?, env_source_files?, namelists?, …}`.
type rawTask struct {
	Plugin         string                 `yaml:"plugin"`
	Parameters     []string               `yaml:"parameters"`
	Command        string                 `yaml:"command"`
	CLIArguments   string                 `yaml:"cli_arguments"`
	Host           string                 `yaml:"host"`
	Account        string                 `yaml:"account"`
	Uenv           map[string]string      `yaml:"uenv"`
	Nodes          int                    `yaml:"nodes"`
	Walltime       string                 `yaml:"walltime"`
	CondaEnv       string                 `yaml:"conda_env"`
	EnvSourceFiles []string               `yaml:"env_source_files"`
	ConfigRoot     string                 `yaml:"config_root"`
	Namelists      map[string]rawNamelist `yaml:"namelists"`
}

type rawNamelist struct {
	Path  string                    `yaml:"path"`
	Specs map[string]map[string]any `yaml:"specs"`
}

// rawData is the body of one `data/available[i]` or `data/generated[i]`
// entry: `data_name: {type: file|dir, src, format?, parameters?[]}`.
type rawData struct {
	Type       string   `yaml:"type"`
	Src        string   `yaml:"src"`
	Format     string   `yaml:"format"`
	Parameters []string `yaml:"parameters"`
}

// rawCycle is the body of one `cycles[i]` entry:
// `cycle_name: {start_date, end_date, period?, tasks: [...]}`.
type rawCycle struct {
	StartDate *string                      `yaml:"start_date"`
	EndDate   *string                      `yaml:"end_date"`
	Period    *string                      `yaml:"period"`
	Tasks     []map[string]rawCycleTaskRef `yaml:"tasks"`
}

// rawCycleTaskRef is the body of one cycle's `tasks[i]` one-key-map entry:
// `task_name: {inputs?[], outputs?[], wait_on?[]}`. Each element of
// inputs/outputs/wait_on is either a bare name string or a one-key map
// `name: {lag?, date?, when?, parameters?}` — decoded generically here and
// resolved by parseRefEntry, since the shape varies per element.
type rawCycleTaskRef struct {
	Inputs  []any `yaml:"inputs"`
	Outputs []any `yaml:"outputs"`
	WaitOn  []any `yaml:"wait_on"`
}
