package crypto

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// MinWordListSize is the smallest dictionary accepted for passphrases.
const MinWordListSize = 50

var ErrInvalidWordList = errors.New("invalid word list")

//go:embed wordlist.yaml
var defaultWordListYAML []byte

type wordListFile struct {
	Words []string `yaml:"words"`
}

var defaultWordList = sync.OnceValue(func() []string {
	words, err := ParseWordList(defaultWordListYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded word list: %v", err))
	}
	return words
})

// DefaultWordList returns the built-in passphrase dictionary. Callers must not
// modify the returned slice.
func DefaultWordList() []string {
	return defaultWordList()
}

// LoadWordList reads a YAML word list from path.
func LoadWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return ParseWordList(data)
}

// ParseWordList decodes a YAML document of the form `words: [...]` and checks
// that it holds at least MinWordListSize distinct, lowercase words.
func ParseWordList(data []byte) ([]string, error) {
	var f wordListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWordList, err)
	}

	if len(f.Words) < MinWordListSize {
		return nil, fmt.Errorf("%w: %d words, need at least %d", ErrInvalidWordList, len(f.Words), MinWordListSize)
	}

	seen := make(map[string]struct{}, len(f.Words))
	for _, w := range f.Words {
		if !isLowerWord(w) {
			return nil, fmt.Errorf("%w: %q is not a lowercase word", ErrInvalidWordList, w)
		}
		if _, dup := seen[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrInvalidWordList, w)
		}
		seen[w] = struct{}{}
	}

	return f.Words, nil
}

func isLowerWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
