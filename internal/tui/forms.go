package tui

import (
	"time"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/tiappxml/internal/config"
)

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel).
				Validate(ValidateLogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat).
				Validate(ValidateLogFormat),
		),
	).WithTheme(GetTheme())
}

func CreateManifestForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("file").
				Title("Manifest File").
				Description("Load this tiapp.xml instead of searching (leave empty to search)").
				Value(&values.ManifestFile).
				Placeholder("./tiapp.xml"),

			huh.NewInput().
				Key("start_dir").
				Title("Search Start Directory").
				Description("Where the upward search begins (leave empty for the working directory)").
				Value(&values.StartDir).
				Placeholder("."),
		),
	).WithTheme(GetTheme())
}

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Output Format").
				Description("How find, info and recent print their results").
				Options(
					huh.NewOption("Text", config.FormatText),
					huh.NewOption("JSON", config.FormatJSON),
					huh.NewOption("YAML", config.FormatYAML),
				).
				Value(&values.OutputFormat).
				Validate(ValidateOutputFormat),
		),
	).WithTheme(GetTheme())
}

func CreateHistoryForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Record History").
				Description("Remember manifests loaded by show and info").
				Value(&values.HistoryEnabled),

			huh.NewInput().
				Key("directory").
				Title("History Directory").
				Description("Directory for the history database").
				Value(&values.HistoryDirectory).
				Placeholder("~/.tiapp/history").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("ttl").
				Title("Entry TTL").
				Description("How long an entry is kept after its last load (e.g., 24h, 720h)").
				Value(&values.HistoryTTL).
				Placeholder("720h").
				Validate(ValidateDuration(time.Minute)),

			huh.NewInput().
				Key("limit").
				Title("List Limit").
				Description("Entries shown by recent (1-1000)").
				Value(&values.HistoryLimit).
				Placeholder("20").
				Validate(ValidateIntRange(1, 1000)),
		),
	).WithTheme(GetTheme())
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "logging":
		return CreateLoggingForm(values)
	case "manifest":
		return CreateManifestForm(values)
	case "output":
		return CreateOutputForm(values)
	case "history":
		return CreateHistoryForm(values)
	default:
		return nil
	}
}
