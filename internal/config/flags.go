package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is used by the history commands when no --db is given
const DefaultDatabasePath = "geoping.db"

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"count":          "probe_count",
	"packet-timeout": "packet_timeout",
	"margin":         "command_margin",
	"concurrency":    "concurrency",
	"command":        "probe_command",
	"lang":           "language",
	"db":             "db",
	"report-dir":     "report_dir",
	"port":           "port",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("probe_count", 3)
	v.SetDefault("packet_timeout", 2*time.Second)
	v.SetDefault("command_margin", 5*time.Second)
	v.SetDefault("concurrency", 4)
	v.SetDefault("probe_command", "ping")
	v.SetDefault("language", "en")
	v.SetDefault("db", "")
	v.SetDefault("report_dir", "")
	v.SetDefault("port", 8080)
}

// BindFlags registers the configuration flags on fs and binds them into v
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.Int("count", 3, "Packets sent to each target")
	fs.Duration("packet-timeout", 2*time.Second, "Timeout for each individual packet")
	fs.Duration("margin", 5*time.Second, "Extra time allowed for the whole probe command")
	fs.Int("concurrency", 4, "Targets probed at the same time (1 probes sequentially)")
	fs.String("command", "ping", "Probe command, split with shell quoting rules")
	fs.String("lang", "en", "Report language (en, ru)")
	fs.String("db", "", "SQLite database recording completed runs")
	fs.String("report-dir", "", "Directory receiving a summary and latency chart")
	fs.Int("port", 8080, "Web server port")

	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return errors.Wrapf(err, "binding flag %s", flagName)
		}
	}
	return nil
}

// Load assembles a Config from defaults, the optional config file, GEOPING_*
// environment variables and bound flags, in increasing precedence.
func Load(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	v.SetEnvPrefix("geoping")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding configuration")
	}

	if v.IsSet("targets") {
		cfg.Targets = numbered(cfg.Targets)
	} else {
		cfg.Targets = DefaultCatalog()
	}

	return cfg, nil
}
