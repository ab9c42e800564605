package currency

import (
	"bufio"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/breadncircus/cryptocoin-tradelib/logger"
	"github.com/breadncircus/cryptocoin-tradelib/models"
)

const defaultFilename = "currency.lst"

// FileStore persists a currency registry as a pipe-delimited text
// file, one currency per line with percent-encoded fields:
//
//	code|name|description|type
type FileStore struct {
	dataDir  string
	filename string
	registry *Registry
}

func NewFileStore(dataDir string, registry *Registry) *FileStore {
	return &FileStore{
		dataDir:  dataDir,
		filename: defaultFilename,
		registry: registry,
	}
}

// SetFilename overrides the default currency.lst file name.
func (s *FileStore) SetFilename(name string) {
	s.filename = name
}

func (s *FileStore) path() string {
	return filepath.Join(s.dataDir, s.filename)
}

// Save writes every registered currency to the store file. The
// destination is overwritten in place; a crash mid-write can leave a
// truncated file.
func (s *FileStore) Save() error {
	f, err := os.Create(s.path())
	if err != nil {
		logger.Get().Errorf("cannot open file to store currencies: %v", err)
		return errors.Wrapf(err, "failed to open %s", s.path())
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, c := range s.registry.Registered() {
		line := strings.Join([]string{
			url.QueryEscape(c.Code),
			url.QueryEscape(c.Name),
			url.QueryEscape(c.Description),
			url.QueryEscape(c.Type.String()),
		}, "|")
		if _, err := w.WriteString(line + "\n"); err != nil {
			logger.Get().Errorf("cannot write currency file: %v", err)
			return errors.Wrapf(err, "failed to write %s", s.path())
		}
	}
	if err := w.Flush(); err != nil {
		logger.Get().Errorf("cannot write currency file: %v", err)
		return errors.Wrapf(err, "failed to write %s", s.path())
	}
	return nil
}

// Load reads the file written by Save and registers every well-formed
// line. Malformed lines are skipped with a warning so a single corrupt
// line does not discard the rest of the file.
func (s *FileStore) Load() error {
	f, err := os.Open(s.path())
	if err != nil {
		logger.Get().Errorf("cannot open file to load currencies: %v", err)
		return errors.Wrapf(err, "failed to open %s", s.path())
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 4 {
			logger.Get().Warnf("skipping malformed currency line %d: %q", lineno, line)
			continue
		}

		decoded := make([]string, len(fields))
		ok := true
		for i, field := range fields {
			d, err := url.QueryUnescape(field)
			if err != nil {
				logger.Get().Warnf("skipping malformed currency line %d: %v", lineno, err)
				ok = false
				break
			}
			decoded[i] = d
		}
		if !ok {
			continue
		}

		s.registry.Register(models.NewCurrency(
			decoded[0], decoded[1], decoded[2],
			models.ParseCurrencyType(decoded[3]),
		))
	}
	if err := scanner.Err(); err != nil {
		logger.Get().Errorf("cannot read currency file: %v", err)
		return errors.Wrapf(err, "failed to read %s", s.path())
	}
	return nil
}
