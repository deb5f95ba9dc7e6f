package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/groupgame/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParser_ParseFile(t *testing.T) {
	parser := NewParser()

	t.Run("classifies content", func(t *testing.T) {
		result, err := parser.ParseFile(context.Background(), strings.NewReader(sampleReport))
		require.NoError(t, err)
		assert.Equal(t, []string{"C6"}, result.Texts(model.SectionAbelian))
		assert.Equal(t, []string{"S3"}, result.Texts(model.SectionNonAbelian))
		assert.Equal(t, 10, result.TotalAbelianExamined)
		assert.Equal(t, 4, result.TotalNonAbelianExamined)
	})

	t.Run("normalises byte order mark and carriage returns", func(t *testing.T) {
		input := "\ufeff=== Abelsche Gruppen\rC2\r\nC4\r\n"
		result, err := parser.ParseFile(context.Background(), strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"C2", "C4"}, result.Texts(model.SectionAbelian))
	})

	t.Run("read errors are returned", func(t *testing.T) {
		_, err := parser.ParseFile(context.Background(), failingReader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read report")
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := parser.ParseFile(ctx, strings.NewReader(sampleReport))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: " yaml ", want: FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	doc := Document{Source: "output.txt", Result: Classify(sampleReport)}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, doc))

		var decoded Document
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, doc, decoded)
		assert.Contains(t, buf.String(), `"total_abelian_examined": 10`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatYAML, doc))

		var decoded Document
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, doc, decoded)
		assert.Contains(t, buf.String(), "count_non_abelian_matches: 1")
	})

	t.Run("several documents are written as a list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, doc, doc))

		var decoded []Document
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded, 2)
	})

	t.Run("text is not encoded here", func(t *testing.T) {
		err := Encode(&bytes.Buffer{}, FormatText, doc)
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}
