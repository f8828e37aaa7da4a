package tokenest

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// CountFunc counts tokens in a piece of text. Chunking, reporting and the
// job pipeline all take one, so the counting strategy can be swapped.
type CountFunc func(text string) int

// Counter names accepted by Lookup.
const (
	Heuristic = "heuristic"
	Words     = "words"
	BPE       = "bpe"
)

// ErrUnknownCounter is returned by Lookup for names it does not know.
var ErrUnknownCounter = errors.New("unknown counter")

var counters = map[string]CountFunc{
	Heuristic: EstimateTokens,
	Words:     WordRatio,
	BPE:       CountBPE,
}

// Lookup returns the counter registered under name. An empty name selects
// the heuristic counter.
func Lookup(name string) (CountFunc, error) {
	if name == "" {
		name = Heuristic
	}
	fn, ok := counters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCounter, name)
	}
	return fn, nil
}

// Names lists the registered counters in sorted order.
func Names() []string {
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WordRatio gives a rough count at ~1.33 tokens per whitespace-separated word.
func WordRatio(text string) int {
	if text == "" {
		return 0
	}
	tokens := int(float64(len(strings.Fields(text))) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

type bpeState struct {
	once sync.Once
	load func() (*tiktoken.Tiktoken, error)
	enc  *tiktoken.Tiktoken
	err  error
}

func (b *bpeState) encoding() (*tiktoken.Tiktoken, error) {
	b.once.Do(func() {
		b.enc, b.err = b.load()
	})
	return b.enc, b.err
}

var bpe = &bpeState{load: func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding("cl100k_base")
}}

// BPEAvailable reports whether the cl100k_base encoding could be loaded.
func BPEAvailable() bool {
	_, err := bpe.encoding()
	return err == nil
}

// CountBPE counts cl100k_base tokens. The encoding is loaded on first use;
// if it cannot be loaded, CountBPE falls back to EstimateTokens. Use Resolve
// to learn which counter actually ran.
func CountBPE(text string) int {
	enc, err := bpe.encoding()
	if err != nil {
		return EstimateTokens(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// Resolve is Lookup plus the canonical name of the counter that will run.
// When bpe is requested but its encoding is unavailable, the heuristic is
// returned under its own name.
func Resolve(name string) (string, CountFunc, error) {
	if name == "" {
		name = Heuristic
	}
	name = strings.ToLower(name)
	fn, err := Lookup(name)
	if err != nil {
		return "", nil, err
	}
	if name == BPE && !BPEAvailable() {
		return Heuristic, EstimateTokens, nil
	}
	return name, fn, nil
}

// Signature describes a counting function as seen through reflection.
type Signature struct {
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results"`
}

func (s Signature) String() string {
	return fmt.Sprintf("func %s(%s) %s", s.Name, strings.Join(s.Params, ", "), strings.Join(s.Results, ", "))
}

// Describe reports the name and parameter/result types of fn.
func Describe(fn CountFunc) Signature {
	if fn == nil {
		return Signature{}
	}
	v := reflect.ValueOf(fn)
	t := v.Type()

	sig := Signature{Name: "func"}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		name := f.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		sig.Name = name
	}
	for i := range t.NumIn() {
		sig.Params = append(sig.Params, t.In(i).String())
	}
	for i := range t.NumOut() {
		sig.Results = append(sig.Results, t.Out(i).String())
	}
	return sig
}
