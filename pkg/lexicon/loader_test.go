package lexicon

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordList = `# sample words
buffalo 100
Bungalow 40

riddims
riddims 2
`

func TestReadText(t *testing.T) {
	lex, err := ReadText(strings.NewReader(wordList))
	require.NoError(t, err)

	assert.Equal(t, 3, lex.Len())
	assert.Equal(t, 100, lex.Freq("buffalo"))
	assert.Equal(t, 40, lex.Freq("bungalow"))
	assert.Equal(t, 3, lex.Freq("riddims"))
}

func TestReadTextBadFrequency(t *testing.T) {
	_, err := ReadText(strings.NewReader("word many\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReadTextPunctuationOnlyWord(t *testing.T) {
	_, err := ReadText(strings.NewReader("buffalo 3\n-- 9\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyWord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadText(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/words.txt", []byte(wordList), 0o644))

	lex, err := Load(fs, "/data/words.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	lex, err := ReadText(strings.NewReader(wordList))
	require.NoError(t, err)

	require.NoError(t, Save(fs, "/snap/words.msgpack", lex))

	loaded, err := Load(fs, "/snap/words.msgpack")
	require.NoError(t, err)
	assert.Equal(t, lex.Words(), loaded.Words())
}

func TestLoadSnapshotWrongVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := fs.Create("/bad.msgpack")
	require.NoError(t, err)
	_, err = f.Write([]byte{0x81, 0xa1, 'v', 0x07}) // {"v": 7}
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Load(fs, "/bad.msgpack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version 7")
}

func TestLoadUnknownFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/words.csv", []byte("a,1"), 0o644))

	_, err := Load(fs, "/words.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.txt")
	assert.Error(t, err)
}
