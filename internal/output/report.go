package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ResolveFormatter looks up a formatter by name or alias, or explains which names exist.
func ResolveFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render formats an estimate in memory, with the assumptions of config when the format prints them.
func Render(est *domain.Estimate, format string, config *domain.Configuration) ([]byte, error) {
	f, err := ResolveFormatter(format)
	if err != nil {
		return nil, err
	}
	return ForConfiguration(f, config).Format(est)
}

// GenerateReport writes the estimate to a timestamped file in dir and returns its path.
func GenerateReport(est *domain.Estimate, format, dir string, config *domain.Configuration) (string, error) {
	f, err := ResolveFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(ForConfiguration(f, config), est, dir, ExtensionFor(f.Name()))
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// SaveTransaction writes a value such as an example transaction form as YAML.
func SaveTransaction(tx any, filename string) error {
	b, err := yaml.Marshal(tx)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
