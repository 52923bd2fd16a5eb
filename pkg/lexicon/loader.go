package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = 1

// ErrUnknownFormat is returned for files that are neither word lists nor
// snapshots.
var ErrUnknownFormat = errors.New("lexicon: unknown file format")

// Entry is one word and its frequency.
type Entry struct {
	Word string `msgpack:"w"`
	Freq int    `msgpack:"f"`
}

// Snapshot is the msgpack form of a lexicon.
type Snapshot struct {
	Version int     `msgpack:"v"`
	Words   []Entry `msgpack:"ws"`
}

// Load reads a lexicon from path. Files ending in .txt are word lists,
// files ending in .msgpack are snapshots written by Save.
func Load(fs afero.Fs, path string) (*Lexicon, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon %s: %w", path, err)
	}
	defer f.Close()

	var lex *Lexicon
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		lex, err = ReadText(f)
	case ".msgpack":
		lex, err = ReadSnapshot(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load lexicon %s: %w", path, err)
	}

	log.Debugf("Loaded %d words from %s", lex.Len(), path)
	return lex, nil
}

// ReadText parses a word list: one word per line with an optional integer
// frequency after it. Blank lines and lines starting with # are ignored.
// Words without a frequency count as 1.
func ReadText(r io.Reader) (*Lexicon, error) {
	lex := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		freq := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid frequency %q: %w", lineNo, fields[1], err)
			}
			freq = n
		}
		if err := lex.Add(fields[0], freq); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}

// ReadSnapshot decodes a msgpack snapshot.
func ReadSnapshot(r io.Reader) (*Lexicon, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	lex := New()
	for _, e := range snap.Words {
		if err := lex.Add(e.Word, e.Freq); err != nil {
			log.Warnf("Skipping snapshot entry %q: %v", e.Word, err)
		}
	}
	return lex, nil
}

// Save writes lex to path as a msgpack snapshot.
func Save(fs afero.Fs, path string, lex *Lexicon) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap := Snapshot{Version: SnapshotVersion, Words: lex.Words()}
	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
