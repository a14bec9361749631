package config

const (
	defaultDataDir            = "~/.local/share/subscore/data"
	defaultReportDir          = "~/.local/share/subscore/reports"
	defaultLogDir             = "~/.local/share/subscore/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMaxWindow          = 5
	defaultAllowNonSequential = true
	defaultMaxGapMs           = 1000
	defaultMaxLineRunes       = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ReportDir: defaultReportDir,
			LogDir:    defaultLogDir,
		},
		Alignment: Alignment{
			MaxWindow:          defaultMaxWindow,
			AllowNonSequential: defaultAllowNonSequential,
		},
		CueMerge: CueMerge{
			MaxGapMs:     defaultMaxGapMs,
			MaxLineRunes: defaultMaxLineRunes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
