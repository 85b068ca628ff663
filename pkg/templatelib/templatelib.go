// Package templatelib loads survey template definitions from YAML files
// into the template library. Files define template name, category and
// questions in the template question vocabulary; the mapping to canonical
// survey types happens at instantiation time, not load time.
package templatelib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// Store abstracts template persistence for the loader
type Store interface {
	// UpsertTemplate replaces a template (matched by name and company)
	// and its questions
	UpsertTemplate(template model.SurveyTemplate, questions []model.TemplateQuestion) error
}

// CommentFile is the YAML shape of a binary-comment config
type CommentFile struct {
	Enabled  bool `yaml:"enabled"`
	Required bool `yaml:"required"`
	Min      int  `yaml:"min"`
	Max      int  `yaml:"max"`
}

// QuestionFile is the YAML shape of a template question
type QuestionFile struct {
	Text     string       `yaml:"text"`
	Type     string       `yaml:"type"`
	Options  []string     `yaml:"options"`
	Order    *int         `yaml:"order"`
	Required bool         `yaml:"required"`
	Comment  *CommentFile `yaml:"comment"`
}

// TemplateFile is the YAML shape of one template definition
type TemplateFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Category    string         `yaml:"category"`
	Public      bool           `yaml:"public"`
	Questions   []QuestionFile `yaml:"questions"`
}

// Parse decodes a YAML document holding a list of template definitions
func Parse(data []byte) ([]TemplateFile, error) {
	var templates []TemplateFile
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}

	for i, t := range templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template %d: name is required", i)
		}
		if t.Category == "" {
			return nil, fmt.Errorf("template %q: category is required", t.Name)
		}
		if len(t.Questions) == 0 {
			return nil, fmt.Errorf("template %q: at least one question is required", t.Name)
		}
		for j, q := range t.Questions {
			if q.Text == "" {
				return nil, fmt.Errorf("template %q: question %d: text is required", t.Name, j)
			}
			if q.Type == "" {
				return nil, fmt.Errorf("template %q: question %d: type is required", t.Name, j)
			}
		}
	}

	return templates, nil
}

// Build converts a parsed template into persistence models
func Build(file TemplateFile) (model.SurveyTemplate, []model.TemplateQuestion) {
	template := model.SurveyTemplate{
		ID:          uuid.NewString(),
		Name:        file.Name,
		Description: file.Description,
		Category:    file.Category,
		IsPublic:    file.Public,
	}

	questions := make([]model.TemplateQuestion, 0, len(file.Questions))
	for _, q := range file.Questions {
		tq := model.TemplateQuestion{
			ID:           uuid.NewString(),
			TemplateID:   template.ID,
			Text:         q.Text,
			QuestionType: q.Type,
			Options:      strings.Join(q.Options, "|"),
			OrderIndex:   q.Order,
			Required:     q.Required,
		}
		if q.Comment != nil {
			tq.CommentEnabled = q.Comment.Enabled
			tq.CommentRequired = q.Comment.Required
			tq.CommentMinLen = q.Comment.Min
			tq.CommentMaxLen = q.Comment.Max
		}
		questions = append(questions, tq)
	}

	return template, questions
}

// LoadFile parses one YAML file and upserts its templates
func LoadFile(store Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	templates, err := Parse(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	for _, file := range templates {
		template, questions := Build(file)
		if err := store.UpsertTemplate(template, questions); err != nil {
			return 0, fmt.Errorf("failed to store template %q: %w", file.Name, err)
		}
	}

	return len(templates), nil
}

// LoadDir loads every .yml/.yaml file in a directory, in name order
func LoadDir(store Store, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read template directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yml" || ext == ".yaml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	total := 0
	for _, path := range files {
		n, err := LoadFile(store, path)
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}
