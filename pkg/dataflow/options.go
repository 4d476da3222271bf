package dataflow

import (
	"log/slog"

	"github.com/askiada/go-dataflow/pkg/dataflow/measure"
)

type InputOption[T any] func(in *Input[T])

// InputValidators attaches validators to the input slot.
func InputValidators[T any](vs ...Validator[T]) InputOption[T] {
	return func(in *Input[T]) {
		in.AddValidators(vs...)
	}
}

// InputConcurrency evaluates the validators of the slot concurrently, at
// most concurrent at a time. Values below 2 keep evaluation sequential.
func InputConcurrency[T any](concurrent int) InputOption[T] {
	return func(in *Input[T]) {
		in.concurrent = concurrent
	}
}

func InputLogger[T any](lg *slog.Logger) InputOption[T] {
	return func(in *Input[T]) {
		in.lg = lg
	}
}

type PipeOption[T any] func(p *Pipe[T])

// PipeValidators attaches validators to the input slot of the pipe.
func PipeValidators[T any](vs ...Validator[T]) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.in.AddValidators(vs...)
	}
}

// PipeRequires declares argument names the pipe itself needs.
func PipeRequires[T any](names ...string) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.req.Add(names...)
	}
}

func PipeTags[T any](tags ...string) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.tags.Add(tags...)
	}
}

// PipeDescription overrides the description of the input slot.
func PipeDescription[T any](desc string) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.in.desc = desc
	}
}

// PipeInputConcurrency evaluates the input validators concurrently.
func PipeInputConcurrency[T any](concurrent int) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.in.concurrent = concurrent
	}
}

// PipeArgRewrite alters the arguments a pipe forwards upstream. The rewrite
// receives its own copy of the bag.
func PipeArgRewrite[T any](fn func(Args) Args) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.rewrite = fn
	}
}

// PipeMeasure registers the pipe with a measure and records its pull and
// transform durations.
func PipeMeasure[T any](msr measure.Measure) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.metric = msr.AddMetric(p.info.ID)
	}
}

func PipeLogger[T any](lg *slog.Logger) PipeOption[T] {
	return func(p *Pipe[T]) {
		p.lg = lg
		p.in.lg = lg
	}
}

type TranslatorOption[T Relabeler[T]] func(t *Translator[T])

// TranslatorRequires declares argument names the translator itself needs.
func TranslatorRequires[T Relabeler[T]](names ...string) TranslatorOption[T] {
	return func(t *Translator[T]) {
		t.req.Add(names...)
	}
}

func TranslatorTags[T Relabeler[T]](tags ...string) TranslatorOption[T] {
	return func(t *Translator[T]) {
		t.tags.Add(tags...)
	}
}

// TranslatorVocabulary restricts the translation table to the given
// canonical names.
func TranslatorVocabulary[T Relabeler[T]](names ...string) TranslatorOption[T] {
	return func(t *Translator[T]) {
		t.vocab = NewSet(names...)
	}
}

// TranslatorArgRewrite alters the arguments the translator forwards to its
// source. The rewrite receives its own copy of the bag.
func TranslatorArgRewrite[T Relabeler[T]](fn func(Args) Args) TranslatorOption[T] {
	return func(t *Translator[T]) {
		t.rewrite = fn
	}
}

// TranslatorMeasure registers the translator with a measure.
func TranslatorMeasure[T Relabeler[T]](msr measure.Measure) TranslatorOption[T] {
	return func(t *Translator[T]) {
		t.metric = msr.AddMetric(t.info.ID)
	}
}

func TranslatorLogger[T Relabeler[T]](lg *slog.Logger) TranslatorOption[T] {
	return func(t *Translator[T]) {
		t.lg = lg
	}
}

type ModelOption[T any] func(m *Model[T])

// ModelRequires declares argument names the model itself needs.
func ModelRequires[T any](names ...string) ModelOption[T] {
	return func(m *Model[T]) {
		m.req.Add(names...)
	}
}

func ModelTags[T any](tags ...string) ModelOption[T] {
	return func(m *Model[T]) {
		m.tags.Add(tags...)
	}
}

// ModelValidators attaches validators to one named input slot. Unknown slot
// names are ignored.
func ModelValidators[T any](slot string, vs ...Validator[T]) ModelOption[T] {
	return func(m *Model[T]) {
		if in, ok := m.ins[slot]; ok {
			in.AddValidators(vs...)
		}
	}
}

func ModelLogger[T any](lg *slog.Logger) ModelOption[T] {
	return func(m *Model[T]) {
		m.lg = lg
		for _, in := range m.ins {
			in.lg = lg
		}
	}
}

type CacheOption[T any] func(c *Cache[T])

// CacheName labels the cache node for inspection and drawing.
func CacheName[T any](name string) CacheOption[T] {
	return func(c *Cache[T]) {
		c.info.Name = name
	}
}

func CacheLogger[T any](lg *slog.Logger) CacheOption[T] {
	return func(c *Cache[T]) {
		c.lg = lg
	}
}
