package dataflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow/measure"
	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Relabeler is the labeling capability a value must provide to pass through
// a translator. Relabel applies fn to every label and returns the relabeled
// value, leaving the receiver untouched.
type Relabeler[T any] interface {
	Relabel(fn func(string) string) T
}

// Translations maps vendor names to canonical names.
type Translations map[string]string

func (t Translations) Clone() Translations {
	out := make(Translations, len(t))
	for k, v := range t {
		out[k] = v
	}

	return out
}

// Merge copies the entries of other into the table, overwriting existing
// entries.
func (t Translations) Merge(other Translations) Translations {
	for k, v := range other {
		t[k] = v
	}

	return t
}

// Targets lists the canonical names the table maps onto, sorted.
func (t Translations) Targets() []string {
	seen := NewSet()
	for _, v := range t {
		seen.Add(v)
	}

	return seen.Sorted()
}

// Translator sits between an external source and the rest of a graph. It
// pulls vendor data and relabels it into the canonical vocabulary before
// anything downstream sees it. Raw vendor data precedes canonical checks,
// so the translator carries no validated input slot.
type Translator[T Relabeler[T]] struct {
	info    model.NodeInfo
	src     Source[T]
	table   Translations
	req     Set
	tags    Set
	vocab   Set
	rewrite func(Args) Args
	metric  measure.Metric
	lg      *slog.Logger
}

// NewTranslator creates a disconnected translator over the given table.
// With an injected vocabulary, every target of the table must be canonical.
func NewTranslator[T Relabeler[T]](name string, table Translations, opts ...TranslatorOption[T]) (*Translator[T], error) {
	t := &Translator[T]{
		info:  model.NodeInfo{ID: nextNodeID(name), Name: name, Kind: model.TranslatorKind},
		table: Translations{},
		req:   NewSet(),
		tags:  NewSet(),
		lg:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.UpdateTranslations(table); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Translator[T]) Info() model.NodeInfo {
	return t.info
}

func (t *Translator[T]) Name() string {
	return t.info.Name
}

func (t *Translator[T]) Upstream() []Node {
	if n, ok := t.src.(Node); ok {
		return []Node{n}
	}

	return nil
}

// Connection returns the current upstream source, nil when disconnected.
func (t *Translator[T]) Connection() Source[T] {
	return t.src
}

// SetSource connects the translator to a source in place.
func (t *Translator[T]) SetSource(src Source[T]) *Translator[T] {
	t.src = src

	return t
}

// WithSource returns a copy of the translator connected to the source.
func (t *Translator[T]) WithSource(src Source[T]) *Translator[T] {
	return t.Copy().SetSource(src)
}

// Copy returns a disconnected clone carrying the translation table, the
// tags and the required arguments of the original.
func (t *Translator[T]) Copy() *Translator[T] {
	return &Translator[T]{
		info:    model.NodeInfo{ID: nextNodeID(t.info.Name), Name: t.info.Name, Kind: model.TranslatorKind},
		table:   t.table.Clone(),
		req:     t.req.Clone(),
		tags:    t.tags.Clone(),
		vocab:   t.vocab,
		rewrite: t.rewrite,
		metric:  t.metric,
		lg:      t.lg,
	}
}

func (t *Translator[T]) AddTags(tags ...string) *Translator[T] {
	t.tags.Add(tags...)

	return t
}

func (t *Translator[T]) Tags() Set {
	return t.tags.Clone()
}

// Translations returns a copy of the translation table.
func (t *Translator[T]) Translations() Translations {
	return t.table.Clone()
}

// UpdateTranslations merges new entries into the table. With an injected
// vocabulary, entries mapping onto names outside of it are rejected.
func (t *Translator[T]) UpdateTranslations(table Translations) error {
	if t.vocab != nil {
		for from, to := range table {
			if !t.vocab.Contains(to) {
				return errors.Errorf("%s: translation %q -> %q leaves the vocabulary", t.info.Name, from, to)
			}
		}
	}

	t.table.Merge(table)

	return nil
}

// Translate maps a single name. Names absent from the table pass through
// unchanged.
func (t *Translator[T]) Translate(name string) string {
	if to, ok := t.table[name]; ok {
		return to
	}

	return name
}

// TranslateAll maps every name element wise.
func (t *Translator[T]) TranslateAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = t.Translate(n)
	}

	return out
}

// ReqArgs reports the arguments required by the translator itself and by
// its source.
func (t *Translator[T]) ReqArgs() Set {
	if t.src == nil {
		return t.req.Clone()
	}

	return t.req.Union(t.src.ReqArgs())
}

// Run evaluates the graph ending at this translator.
func (t *Translator[T]) Run(ctx context.Context, args Args) (T, error) {
	var zero T

	if err := runPreflight(t, t.info.Name, t.ReqArgs(), args); err != nil {
		return zero, err
	}

	return t.Request(ctx, args)
}

// Request pulls vendor data from the source and relabels it.
func (t *Translator[T]) Request(ctx context.Context, args Args) (T, error) {
	var zero T

	if t.src == nil {
		return zero, errors.Wrap(ErrNotConnected, t.info.Name)
	}

	if t.rewrite != nil {
		args = t.rewrite(args.Clone())
	}

	start := time.Now()

	data, err := t.src.Request(ctx, args)
	if err != nil {
		return zero, errors.Wrapf(err, "unable to request %s", t.info.Name)
	}

	if t.metric != nil {
		if n, ok := t.src.(Node); ok {
			t.metric.AddTransportDuration(n.Info().ID, time.Since(start))
		}
	}

	startFn := time.Now()
	out := data.Relabel(t.Translate)

	if t.metric != nil {
		t.metric.AddDuration(time.Since(startFn))
	}

	return out, nil
}
