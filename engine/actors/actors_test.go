package actors

import (
	"io"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T) *viper.Viper {
	t.Helper()
	conf := viper.New()
	conf.Set("rootDir", t.TempDir()+"/")
	InitConfig(conf)
	SetConfig(conf)
	t.Cleanup(func() { SetConfig(nil) })
	return conf
}

func TestInitConfig_Defaults(t *testing.T) {
	conf := setupConfig(t)
	require.Equal(t, "data/", conf.GetString("flatFileDir"))
	require.Equal(t, KindStateChangeRequest, conf.GetInt("requestKind"))
	require.False(t, conf.GetBool("renameOverwrites"))
	require.NotEmpty(t, conf.GetStringSlice("relays"))
	require.FileExists(t, conf.GetString("rootDir")+"config.yaml")
}

func TestDatabase_WriteOpen(t *testing.T) {
	setupConfig(t)

	_, ok := Open("names", "current")
	require.False(t, ok)

	require.NoError(t, Write("names", "current", []byte(`{"a":"b"}`)))
	require.NoError(t, Write("names", "current", []byte(`{"c":"d"}`)))

	f, ok := Open("names", "current")
	require.True(t, ok)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, `{"c":"d"}`, string(b))
}

func TestWallet(t *testing.T) {
	setupConfig(t)

	w, err := NewWallet()
	require.NoError(t, err)
	require.Len(t, w.Account, 64)

	expected, err := nostr.GetPublicKey(w.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, expected, w.Account)

	first := MyWallet()
	require.Len(t, first.PrivateKey, 64)
	restored, ok := getWalletFromDisk()
	require.True(t, ok)
	require.Equal(t, first, restored)
}
