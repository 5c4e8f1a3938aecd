package exporting

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	table := domain.NewTable(
		[]string{"City", "Revenue", "Company Org. Name", "Date"},
		[][]domain.Value{
			{domain.StringValue("Pune"), domain.NumberValue(10.5), domain.StringValue("Acme, Inc"), domain.TimeValue(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))},
			{domain.StringValue("Delhi"), domain.Missing(), domain.StringValue(`Say "hi"`), domain.Missing()},
		},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	expected := "City,Revenue,Company Org. Name,Date\n" +
		"Pune,10.5,\"Acme, Inc\",2024-01-02\n" +
		"Delhi,,\"Say \"\"hi\"\"\",\n"
	assert.Equal(t, expected, buf.String())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, domain.NewTable([]string{"City"}, nil)))

	assert.Equal(t, "City\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disco cheio")
}

func TestWriteCSV_WriterError(t *testing.T) {
	table := domain.NewTable([]string{"City"}, [][]domain.Value{{domain.StringValue("A")}})

	err := WriteCSV(failingWriter{}, table)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	assert.Equal(t, "Leads_2024_filtered_20240506-070809.csv", FileName("Leads 2024.xlsx", at))
	assert.Equal(t, "dataset_filtered_20240506-070809.csv", FileName("", at))
}
