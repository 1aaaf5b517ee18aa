package crypto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const passphraseSymbols = "!@#$%^&*"

var passphraseSeparators = []string{"-", "_", ".", " "}

// ErrInvalidRequest is the root of every error caused by a malformed
// generation request. Callers should surface it, not retry.
var ErrInvalidRequest = errors.New("invalid request")

var (
	ErrLengthTooShort     = fmt.Errorf("%w: length must be at least 1", ErrInvalidRequest)
	ErrNoCharacterTypes   = fmt.Errorf("%w: at least one character type must be selected", ErrInvalidRequest)
	ErrLengthInsufficient = fmt.Errorf("%w: length must be at least equal to the number of selected character types", ErrInvalidRequest)
	ErrUnknownMode        = fmt.Errorf("%w: unknown generation mode", ErrInvalidRequest)
	ErrUnknownClass       = fmt.Errorf("%w: unknown character class", ErrInvalidRequest)
	ErrBoundOutOfRange    = fmt.Errorf("%w: random index bound out of range", ErrInvalidRequest)
)

// Mode selects which kind of secret to generate.
type Mode string

const (
	ModeRandom     Mode = "random"
	ModePIN        Mode = "pin"
	ModePassphrase Mode = "passphrase"
)

// ParseMode parses a mode name. The empty string selects ModeRandom.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeRandom:
		return ModeRandom, nil
	case ModePIN:
		return ModePIN, nil
	case ModePassphrase:
		return ModePassphrase, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// GenerationRequest describes one secret to generate. Size is a character
// count for ModeRandom and ModePIN and a word count for ModePassphrase.
// Classes is only consulted for ModeRandom.
type GenerationRequest struct {
	Mode             Mode
	Size             int
	Classes          ClassSet
	RequireEachClass bool
}

// GeneratedSecret is a generated value and the request that produced it.
type GeneratedSecret struct {
	Value   string
	Request GenerationRequest
}

// Generator builds random passwords, PINs and passphrases from an IndexSource.
// It holds no mutable state and is safe for concurrent use when its source is.
type Generator struct {
	src   IndexSource
	words []string
}

// NewGenerator returns a Generator drawing from src and picking passphrase
// words from words. A nil src uses crypto/rand and nil words the default list.
func NewGenerator(src IndexSource, words []string) *Generator {
	if src == nil {
		src = NewCryptoSource()
	}
	if words == nil {
		words = DefaultWordList()
	}
	return &Generator{src: src, words: words}
}

// Generate dispatches req to the builder for its mode.
func (g *Generator) Generate(req GenerationRequest) (GeneratedSecret, error) {
	var (
		value string
		err   error
	)
	switch req.Mode {
	case ModeRandom:
		if req.RequireEachClass {
			value, err = g.RandomPasswordEachClass(req.Size, req.Classes)
		} else {
			value, err = g.RandomPassword(req.Size, req.Classes)
		}
	case ModePIN:
		value, err = g.PIN(req.Size)
	case ModePassphrase:
		value, err = g.Passphrase(req.Size)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if err != nil {
		return GeneratedSecret{}, err
	}
	return GeneratedSecret{Value: value, Request: req}, nil
}

// RandomPassword draws length characters independently from the combined
// alphabet of classes. It does not guarantee every class appears.
func (g *Generator) RandomPassword(length int, classes ClassSet) (string, error) {
	if classes.Len() == 0 {
		return "", ErrNoCharacterTypes
	}
	if length < 1 {
		return "", ErrLengthTooShort
	}
	return g.fill(make([]byte, length), classes.Alphabet())
}

// RandomPasswordEachClass is RandomPassword with at least one character from
// every selected class. The result is shuffled so the guaranteed characters
// do not sit at fixed positions.
func (g *Generator) RandomPasswordEachClass(length int, classes ClassSet) (string, error) {
	required := classes.Classes()
	if len(required) == 0 {
		return "", ErrNoCharacterTypes
	}
	if length < 1 {
		return "", ErrLengthTooShort
	}
	if length < len(required) {
		return "", ErrLengthInsufficient
	}

	result := make([]byte, length)
	for i, c := range required {
		ch, err := g.pick(c.Chars())
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if _, err := g.fill(result[len(required):], classes.Alphabet()); err != nil {
		return "", err
	}

	if err := g.shuffle(result); err != nil {
		return "", err
	}
	return string(result), nil
}

// PIN returns length decimal digits. Leading zeros are allowed.
func (g *Generator) PIN(length int) (string, error) {
	if length < 1 {
		return "", ErrLengthTooShort
	}
	return g.fill(make([]byte, length), numberChars)
}

// Passphrase joins wordCount random words with a random separator, randomly
// capitalizing each word, then optionally appends a number below 100 and a
// symbol. The output length varies with the words picked.
func (g *Generator) Passphrase(wordCount int) (string, error) {
	if wordCount < 1 {
		return "", ErrLengthTooShort
	}

	i, err := g.src.Index(len(passphraseSeparators))
	if err != nil {
		return "", err
	}
	sep := passphraseSeparators[i]

	words := make([]string, wordCount)
	for w := range words {
		i, err := g.src.Index(len(g.words))
		if err != nil {
			return "", err
		}
		word := g.words[i]

		flip, err := g.src.Index(2)
		if err != nil {
			return "", err
		}
		if flip == 0 {
			word = capitalize(word)
		}
		words[w] = word
	}

	var b strings.Builder
	b.WriteString(strings.Join(words, sep))

	addNumber, err := g.src.Index(2)
	if err != nil {
		return "", err
	}
	if addNumber == 0 {
		n, err := g.src.Index(100)
		if err != nil {
			return "", err
		}
		b.WriteString(strconv.Itoa(n))
	}

	addSymbol, err := g.src.Index(3)
	if err != nil {
		return "", err
	}
	if addSymbol == 0 {
		ch, err := g.pick(passphraseSymbols)
		if err != nil {
			return "", err
		}
		b.WriteByte(ch)
	}

	return b.String(), nil
}

// fill sets every byte of dst to a random character from charset.
func (g *Generator) fill(dst []byte, charset string) (string, error) {
	for i := range dst {
		ch, err := g.pick(charset)
		if err != nil {
			return "", err
		}
		dst[i] = ch
	}
	return string(dst), nil
}

// pick returns a random character from charset.
func (g *Generator) pick(charset string) (byte, error) {
	i, err := g.src.Index(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// shuffle performs a Fisher-Yates shuffle with the generator's source.
func (g *Generator) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.src.Index(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
