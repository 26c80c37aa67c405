package config

import (
	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
)

// DefaultEntryPoint is the editor script internal links are routed through.
const DefaultEntryPoint = "sitecake.php"

// normalize case-folds enumerations. Unknown values are configuration errors
// rather than silent fallbacks.
func normalize(cfg *Config) error {
	kind, err := idKindNormalizer.Parse(string(cfg.IDs.Temporary))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid ids.temporary").Build()
	}
	cfg.IDs.Temporary = kind

	level, err := logLevelNormalizer.Parse(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.Parse(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").Build()
	}
	cfg.Logging.Format = format
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Site.Root == "" {
		cfg.Site.Root = "."
	}
	if cfg.Site.EntryPoint == "" {
		cfg.Site.EntryPoint = DefaultEntryPoint
	}
	if cfg.IDs.Temporary == "" {
		cfg.IDs.Temporary = IDKindTime
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
