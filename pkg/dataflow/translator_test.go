package dataflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/vocab"
)

func labelsSource(name string, value labels) *dataflow.FuncSource[labels] {
	return dataflow.NewSource(name, func(context.Context, dataflow.Args) (labels, error) {
		return value, nil
	})
}

func TestTranslateSingle(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", dataflow.Translations{"Open": "open"})
	require.NoError(t, err)

	assert.Equal(t, "open", tr.Translate("Open"))
	assert.Equal(t, "unknown_name", tr.Translate("unknown_name"))
}

func TestTranslateAll(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", dataflow.Translations{"a": "x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "b"}, tr.TranslateAll([]string{"a", "b"}))
}

func TestTranslatorRun(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", dataflow.Translations{
		"Open":  "open",
		"Close": "close",
	})
	require.NoError(t, err)
	tr.SetSource(labelsSource("feed", labels{"Open", "Close", "volume"}))

	got, err := tr.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, labels{"open", "close", "volume"}, got)
}

func TestTranslatorRunNotConnected(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", nil)
	require.NoError(t, err)

	_, err = tr.Run(context.Background(), nil)
	assert.ErrorIs(t, err, dataflow.ErrNotConnected)
}

func TestTranslatorVocabulary(t *testing.T) {
	t.Parallel()

	_, err := dataflow.NewTranslator[labels]("vendor", dataflow.Translations{"Foo": "bar"},
		dataflow.TranslatorVocabulary[labels](vocab.Names()...))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaves the vocabulary")

	tr, err := dataflow.NewTranslator[labels]("vendor", dataflow.Translations{"Open": vocab.Open},
		dataflow.TranslatorVocabulary[labels](vocab.Names()...))
	require.NoError(t, err)

	err = tr.UpdateTranslations(dataflow.Translations{"Bad": "nope"})
	require.Error(t, err)
	assert.NotContains(t, tr.Translations(), "Bad")
}

func TestTranslatorWithSourceLeavesReceiver(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", nil)
	require.NoError(t, err)

	wired := tr.WithSource(labelsSource("feed", labels{"a"}))

	assert.Nil(t, tr.Connection())
	assert.NotNil(t, wired.Connection())
	assert.NotEqual(t, tr.Info().ID, wired.Info().ID)
}

func TestTranslatorCopyClonesTable(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", dataflow.Translations{"Open": "open"})
	require.NoError(t, err)

	cp := tr.Copy()
	require.NoError(t, tr.UpdateTranslations(dataflow.Translations{"High": "high"}))

	assert.Contains(t, tr.Translations(), "High")
	assert.NotContains(t, cp.Translations(), "High")
}

func TestTranslationsTargets(t *testing.T) {
	t.Parallel()

	table := dataflow.Translations{"Open": "open", "Adj Open": "open", "Close": "close"}

	assert.Equal(t, []string{"close", "open"}, table.Targets())
}

func TestTranslatorReqArgs(t *testing.T) {
	t.Parallel()

	tr, err := dataflow.NewTranslator[labels]("vendor", nil, dataflow.TranslatorRequires[labels]("ticker"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ticker"}, tr.ReqArgs().Sorted())

	tr.SetSource(dataflow.NewSource("feed", func(context.Context, dataflow.Args) (labels, error) {
		return nil, nil
	}, "period"))
	assert.Equal(t, []string{"period", "ticker"}, tr.ReqArgs().Sorted())
}
