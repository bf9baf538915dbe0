package store

import (
	"bytes"
	"strings"
	"studentrecords/internal/model"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []model.Student{alice, bob}))
	assert.Equal(t, "2\nAlice\n1\n85.000000\nBob\n2\n30.000000\n", buf.String())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []model.Student
		wantErr error
	}{
		{
			name:  "complete file",
			input: "2\nAlice\n1\n85.000000\nBob\n2\n30.000000\n",
			want:  []model.Student{alice, bob},
		},
		{
			name:  "names keep inner spaces",
			input: "1\nMary Jane-Watson  \n12\n72.500000\n",
			want:  []model.Student{{Name: "Mary Jane-Watson", RollNumber: 12, Marks: 72.5}},
		},
		{
			name:  "fewer records than declared",
			input: "3\nAlice\n1\n85.000000\nBob\n2\n",
			want:  []model.Student{alice},
		},
		{
			name:  "garbled roll stops the load",
			input: "2\nAlice\n1\n85.000000\nBob\nxx\n30.000000\n",
			want:  []model.Student{alice},
		},
		{
			name:  "NaN marks stops the load",
			input: "2\nAlice\n1\n85.000000\nBob\n2\nNaN\n",
			want:  []model.Student{alice},
		},
		{
			name:  "extra records beyond count are ignored",
			input: "1\nAlice\n1\n85.000000\nBob\n2\n30.000000\n",
			want:  []model.Student{alice},
		},
		{
			name:  "zero count",
			input: "0\n",
			want:  []model.Student{},
		},
		{
			name:    "non numeric count",
			input:   "many\nAlice\n1\n85.000000\n",
			wantErr: ErrMalformedFile,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrMalformedFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []model.Student{
		alice,
		{Name: "Jean-Luc Picard", RollNumber: 0, Marks: 39.999},
		bob,
	}

	require.NoError(t, SaveFile(fs, "students.txt", records))
	got, err := LoadFile(fs, "students.txt")
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i].Name, got[i].Name)
		assert.Equal(t, records[i].RollNumber, got[i].RollNumber)
		assert.InDelta(t, records[i].Marks, got[i].Marks, 1e-6)
	}
}

func TestSaveFileOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, SaveFile(fs, "students.txt", []model.Student{alice, bob, carol}))
	require.NoError(t, SaveFile(fs, "students.txt", []model.Student{bob}))

	data, err := afero.ReadFile(fs, "students.txt")
	require.NoError(t, err)
	assert.Equal(t, "1\nBob\n2\n30.000000\n", string(data))
}

func TestFileOpenErrors(t *testing.T) {
	_, err := LoadFile(afero.NewMemMapFs(), "missing.txt")
	assert.ErrorIs(t, err, ErrFileOpen)

	err = SaveFile(afero.NewReadOnlyFs(afero.NewMemMapFs()), "students.txt", nil)
	assert.ErrorIs(t, err, ErrFileOpen)
}
