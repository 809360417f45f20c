// Package session persists calculator variables between REPL runs as a
// msgpack document.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/bigint"
)

const schemaVersion uint16 = 1

// ErrSchema is returned when a session file was written by an incompatible
// version.
var ErrSchema = errors.New("session: unsupported schema version")

// File is the on-disk layout. Values are stored in decimal so a session
// saved on a 64-bit host loads on a 32-bit one.
type File struct {
	Schema  uint16            `msgpack:"schema"`
	SavedAt time.Time         `msgpack:"saved_at"`
	Vars    map[string]string `msgpack:"vars"`
}

// Save writes vars to path atomically: the document is encoded into a
// temporary file in the same directory, then renamed over path.
func Save(path string, vars map[string]*bigint.Int) (err error) {
	doc := File{
		Schema:  schemaVersion,
		SavedAt: time.Now().UTC(),
		Vars:    make(map[string]string, len(vars)),
	}
	for name, v := range vars {
		doc.Vars[name] = v.String()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&doc); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load reads the variables stored at path. A missing file is not an
// error: it yields an empty map and found == false.
func Load(path string) (vars map[string]*bigint.Int, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*bigint.Int{}, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var doc File
	if err := msgpack.NewDecoder(f).Decode(&doc); err != nil {
		return nil, true, fmt.Errorf("decode session %s: %w", path, err)
	}
	if doc.Schema != schemaVersion {
		return nil, true, fmt.Errorf("%w: %d", ErrSchema, doc.Schema)
	}

	vars = make(map[string]*bigint.Int, len(doc.Vars))
	for name, text := range doc.Vars {
		v, err := bigint.Parse(text)
		if err != nil {
			return nil, true, fmt.Errorf("session variable %s: %w", name, err)
		}
		vars[name] = v
	}
	return vars, true, nil
}
