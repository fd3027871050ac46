package names

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"humandns/engine/actors"
)

func TestPersistence(t *testing.T) {
	conf := viper.New()
	conf.Set("rootDir", t.TempDir()+"/")
	conf.Set("flatFileDir", "data/")
	actors.SetConfig(conf)
	t.Cleanup(func() { actors.SetConfig(nil) })

	empty := New()
	require.NoError(t, empty.RestoreFromDisk())
	require.Zero(t, empty.Len())

	r := New()
	_, err := r.Register(alice, key(0x01))
	require.NoError(t, err)
	_, err = r.Register(bob, key(0x02))
	require.NoError(t, err)
	require.NoError(t, r.PersistToDisk())

	m, ok, err := ReadFromDisk()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, r.Mapped(), m)

	restored := New()
	require.NoError(t, restored.RestoreFromDisk())
	require.Equal(t, alice, restored.Resolve(key(0x01)))
	require.Equal(t, bob, restored.Resolve(key(0x02)))
}

func TestReadFromDisk_EmptyFile(t *testing.T) {
	conf := viper.New()
	conf.Set("rootDir", t.TempDir()+"/")
	conf.Set("flatFileDir", "data/")
	actors.SetConfig(conf)
	t.Cleanup(func() { actors.SetConfig(nil) })

	require.NoError(t, actors.Write(mind, "current", nil))
	m, ok, err := ReadFromDisk()
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, m)

	require.NoError(t, actors.Write(mind, "current", []byte("{")))
	_, _, err = ReadFromDisk()
	require.Error(t, err)
}
