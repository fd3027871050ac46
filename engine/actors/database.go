package actors

import (
	"os"
	"path/filepath"

	"humandns/engine/library"
)

// Open returns the flat file holding db for the given mind, if it exists.
func Open(mind, db string) (*os.File, bool) {
	if err := os.MkdirAll(directory(mind), 0755); err != nil {
		library.LogCLI(err.Error(), 1)
		return nil, false
	}
	file, err := os.Open(directory(mind) + db + ".dat")
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		library.LogCLI(err.Error(), 1)
		return nil, false
	}
	return file, true
}

// Write replaces the flat file for db. The data goes to a temp file in the
// same directory which is then renamed over the old one.
func Write(mind, db string, b []byte) error {
	if err := os.MkdirAll(directory(mind), 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(directory(mind), db+"-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err = f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filepath.Join(directory(mind), db+".dat"))
}

func directory(mind string) string {
	dir := MakeOrGetConfig().GetString("rootDir")
	dir = dir + MakeOrGetConfig().GetString("flatFileDir")
	dir = dir + mind + "/"
	return dir
}
