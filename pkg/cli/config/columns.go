package config

import (
	"os"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// LoadColumnsFromFile loads a column mapping from a YAML file. Columns the
// file leaves out keep their default header names.
func LoadColumnsFromFile(path string) (model.ColumnsConfig, error) {
	if path == "" {
		return model.DefaultColumns(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.ColumnsConfig{}, goerr.Wrap(err, "column mapping file not found",
				goerr.V("path", path))
		}
		return model.ColumnsConfig{}, goerr.Wrap(err, "failed to read column mapping file",
			goerr.V("path", path))
	}

	var cols model.ColumnsConfig
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return model.ColumnsConfig{}, goerr.Wrap(err, "failed to parse YAML column mapping",
			goerr.V("path", path))
	}

	cols = cols.WithDefaults()
	if err := cols.Validate(); err != nil {
		return model.ColumnsConfig{}, goerr.Wrap(err, "invalid column mapping",
			goerr.V("path", path))
	}

	return cols, nil
}
