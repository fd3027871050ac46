package actors

import (
	"os"

	"github.com/spf13/viper"
	"humandns/engine/library"
)

// Event kinds used by the engine.
const (
	KindStateChangeRequest = 640400
	KindRegister           = 640401
	KindEditUsername       = 640402
)

// Op tag values carried by state change requests.
const (
	OpRegister = "humandns.names.register"
	OpRename   = "humandns.names.rename"
)

// InitConfig sets up our Viper config object
func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
	config.SetDefault("rootDir", homeDir+"/humandns/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		library.LogCLI(err.Error(), 4)
	}
	config.SetDefault("flatFileDir", "data/")
	config.SetDefault("logLevel", 4)
	config.SetDefault("doNotPublish", false)
	config.SetDefault("requestKind", KindStateChangeRequest)
	// when true, renaming onto a name that is already registered replaces its owner instead of failing.
	config.SetDefault("renameOverwrites", false)
	config.SetDefault("relays", []string{"wss://nostr.688.org", "wss://nos.lol"})
	// Create our working directory and config file if not exist
	initRootDir(config)
	touch(config.GetString("rootDir") + "config.yaml")
	err = config.WriteConfig()
	if err != nil {
		library.LogCLI(err.Error(), 1)
	}
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.MkdirAll(conf.GetString("rootDir"), 0755)
		if err != nil {
			library.LogCLI(err, 0)
		}
	}
}

func touch(name string) {
	f, err := os.OpenFile(name, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		library.LogCLI(err, 1)
		return
	}
	f.Close()
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}

// LogCLI drops messages above the configured logLevel and hands the rest to library.LogCLI.
func LogCLI(message interface{}, level int) {
	if conf != nil && level > conf.GetInt("logLevel") {
		return
	}
	library.LogCLI(message, level)
}
