package messaging

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Templates hold the user-facing notification texts. Message templates take
// the analysis result id as their single %s argument.
type Templates struct {
	UpdatedTitle     string `yaml:"updated_title" json:"updated_title"`
	UpdatedMessage   string `yaml:"updated_message" json:"updated_message"`
	ConfirmedTitle   string `yaml:"confirmed_title" json:"confirmed_title"`
	ConfirmedMessage string `yaml:"confirmed_message" json:"confirmed_message"`
}

func LoadTemplates(path string) (Templates, error) {
	if path == "" {
		return DefaultTemplates(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultTemplates(), err
	}

	var tpl Templates
	if err := yaml.Unmarshal(content, &tpl); err != nil {
		return Templates{}, err
	}

	if tpl.UpdatedTitle == "" || tpl.ConfirmedTitle == "" {
		return Templates{}, errors.New("notification templates incomplete")
	}

	return tpl, nil
}

func DefaultTemplates() Templates {
	return Templates{
		UpdatedTitle:     "Результат анализа обновлен",
		UpdatedMessage:   "Результат анализа №%s был обновлен",
		ConfirmedTitle:   "Результат анализа подтвержден",
		ConfirmedMessage: "Результат анализа №%s был подтвержден врачом",
	}
}
