package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{format: "", wantExt: "txt"},
		{format: "table", wantExt: "txt"},
		{format: "CSV", wantExt: "csv"},
		{format: "json", wantExt: "json"},
		{format: " parquet ", wantExt: "parquet"},
		{format: "summary", wantExt: "txt"},
		{format: "xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, f.Extension())
		})
	}
}

func TestTableFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, BuildHistoryRows(sampleHistory())))

	out := buf.String()
	for _, want := range []string{"Order date", "Volume (L)", "TL003 01/01/2024 10:02:00", "282.74", "┌", "┘"} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top border, header, separator, three rows, bottom border
	assert.Len(t, lines, 7)
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)), "misaligned line %q", line)
	}
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, nil))
	out := buf.String()
	assert.Contains(t, out, "No records")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)))
	}
}

func TestRenderLiveTableWideRunes(t *testing.T) {
	var buf bytes.Buffer
	rows := []LiveRow{{No: 1, TankName: "タンク", Volume: "1.00"}, {No: 2, TankName: "T2", Volume: "10.00"}}
	require.NoError(t, RenderLiveTable(&buf, rows))
	assert.Contains(t, buf.String(), "タンク")
	assert.Contains(t, buf.String(), "Flow rate")
}

func TestCSVFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, BuildHistoryRows(sampleHistory())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, HistoryHeaders, records[0])
	assert.Equal(t, "3", records[1][0])
	assert.Equal(t, "TL003 01/01/2024 10:02:00", records[1][1])
	assert.Equal(t, "226.19", records[1][10])
	assert.Equal(t, "1", records[3][9])
}

func TestJSONFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, BuildHistoryRows(sampleHistory())))

	var decoded []HistoryRow
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "S1", decoded[0].Station)
	assert.Contains(t, buf.String(), `"volume_l"`)

	buf.Reset()
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParquetFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	rows := BuildHistoryRows(sampleHistory())
	require.NoError(t, NewParquetFormatter().Format(&buf, rows))

	data := buf.Bytes()
	assert.Equal(t, "PAR1", string(data[:4]))

	decoded, err := parquet.Read[HistoryRow](bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, rows, decoded)
}

func TestSummaryFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, BuildHistoryRows(sampleHistory())))

	out := buf.String()
	assert.Contains(t, out, "Events:              3")
	// 226.19 + 55.50 + 282.74
	assert.Contains(t, out, "564.43 L")
	assert.Contains(t, out, "TL003 01/01/2024 10:02:00")

	buf.Reset()
	require.NoError(t, NewSummaryFormatter().Format(&buf, nil))
	assert.Contains(t, buf.String(), "Events:              0")
	assert.NotContains(t, buf.String(), "Latest event")
}
