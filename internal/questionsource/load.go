// Package questionsource loads question files from disk or git and imports
// them into the question store.
package questionsource

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/topic"
	"github.com/quizreview/backend/internal/worker"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://question-file.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// File is one parsed question file: a topic and its questions.
type File struct {
	Path      string
	Topic     topic.Topic
	Questions []question.Question
}

type fileTopic struct {
	ID     string `koanf:"id"`
	Name   string `koanf:"name"`
	Domain string `koanf:"domain"`
}

type fileQuestion struct {
	ID            string            `koanf:"id"`
	Prompt        string            `koanf:"prompt"`
	Type          string            `koanf:"type"`
	Options       []question.Option `koanf:"options"`
	CorrectAnswer string            `koanf:"correct_answer"`
	Explanation   string            `koanf:"explanation"`
}

type fileContent struct {
	Topic     fileTopic      `koanf:"topic"`
	Questions []fileQuestion `koanf:"questions"`
}

func isQuestionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadFile reads a YAML or JSON question file, validates it against the
// question file schema and checks every question.
func LoadFile(path string) (*File, error) {
	k := koanf.New(".")
	// JSON is valid YAML, so one parser covers both formats.
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%s: read: %w", path, err)
	}

	if err := validateRaw(k.Raw()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var content fileContent
	if err := k.UnmarshalWithConf("", &content, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}

	t, err := topic.New(content.Topic.ID, content.Topic.Name, content.Topic.Domain)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f := &File{Path: path, Topic: *t}
	for _, fq := range content.Questions {
		q := question.Question{
			ID:            fq.ID,
			Domain:        t.Domain,
			TopicID:       t.ID,
			Prompt:        fq.Prompt,
			Options:       fq.Options,
			CorrectAnswer: fq.CorrectAnswer,
			Type:          question.Type(fq.Type),
			Explanation:   fq.Explanation,
		}
		if err := q.Check(); err != nil {
			return nil, fmt.Errorf("%s: question %q: %w", path, fq.ID, err)
		}
		f.Questions = append(f.Questions, q)
	}
	return f, nil
}

// validateRaw checks decoded YAML against the schema. The schema validator
// only understands JSON shaped values, so the document is re-encoded first.
func validateRaw(raw map[string]any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// loadWorkers bounds how many files LoadDir parses at once.
const loadWorkers = 4

type loaded struct {
	file *File
	err  error
}

// LoadDir loads every question file under dir. Files that fail to load are
// reported together; the files that did load are still returned in path
// order.
func LoadDir(dir string) ([]File, error) {
	var paths []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isQuestionFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, walkErr)
	}

	results := worker.Map(loadWorkers, paths, func(path string) loaded {
		f, err := LoadFile(path)
		return loaded{file: f, err: err}
	})

	var (
		files []File
		errs  []error
	)
	seen := make(map[string]string)
	for i, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		if dupErr := checkDuplicates(seen, paths[i], res.file); dupErr != nil {
			errs = append(errs, dupErr)
			continue
		}
		files = append(files, *res.file)
	}
	return files, errors.Join(errs...)
}

// checkDuplicates rejects a file that redefines a question ID seen earlier
// and records the file's IDs otherwise.
func checkDuplicates(seen map[string]string, path string, f *File) error {
	for _, q := range f.Questions {
		if other, dup := seen[q.ID]; dup {
			return fmt.Errorf("%s: question %q already defined in %s", path, q.ID, other)
		}
	}
	for _, q := range f.Questions {
		seen[q.ID] = path
	}
	return nil
}
