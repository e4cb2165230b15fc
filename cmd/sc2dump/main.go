// Command sc2dump prints a JSON summary of SC2 city save files.
//
//	sc2dump [flags] FILE...
//
// Every flag can also be set in a config file (--config) or through an
// SC2DUMP_ environment variable, e.g. SC2DUMP_LOG_LEVEL=debug.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/seiflotfy/sc2"
	"github.com/seiflotfy/sc2/cache"
)

type summary struct {
	Path       string           `json:"path"`
	Name       string           `json:"name"`
	Mayor      string           `json:"mayor"`
	Statistics map[string]int32 `json:"statistics,omitempty"`
	Zones      map[string]int   `json:"zones,omitempty"`
	Signs      map[int]string   `json:"signs,omitempty"`
	Segments   []string         `json:"segments"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sc2dump: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	_ = godotenv.Load(".env")

	v, paths, err := loadConfig(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("usage: sc2dump [flags] FILE...")
	}

	log, err := newLogger(v)
	if err != nil {
		return err
	}
	cm, err := textCharmap(v.GetString("charset"))
	if err != nil {
		return err
	}

	if v.GetBool("validate") {
		return validateFiles(paths, stdout)
	}

	opts := []sc2.Option{sc2.WithLogger(log), sc2.WithCharmap(cm)}
	if v.GetBool("coarse-maps") {
		opts = append(opts, sc2.WithCoarseMaps())
	}
	cities, err := decodeAll(v, paths, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	for i, city := range cities {
		log.WithField("path", paths[i]).Info("decoded")
		if v.GetBool("dump") {
			spew.Fdump(os.Stderr, city.MiscValues())
		}
		if err := enc.Encode(summarize(paths[i], city, v.GetBool("quick"))); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(args []string) (*viper.Viper, []string, error) {
	fs := pflag.NewFlagSet("sc2dump", pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.Bool("quick", false, "read only the city name, statistics and mayor")
	fs.Bool("validate", false, "only check the container header of each file")
	fs.Bool("dump", false, "dump the raw MISC values to stderr")
	fs.Bool("coarse-maps", false, "accept simulation maps stored at 64x64 or 32x32")
	fs.Int("workers", runtime.NumCPU(), "files decoded in parallel")
	fs.Int("cache-size", 64, "decoded cities kept in memory, 0 disables the cache")
	fs.String("charset", "windows-1252", "text encoding of names: windows-1252 or macintosh")
	fs.String("log-level", "warning", "log level")
	fs.String("log-file", "", "write logs to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("SC2DUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, fs.Args(), nil
}

func newLogger(v *viper.Viper) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	if path := v.GetString("log-file"); path != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	return log, nil
}

func textCharmap(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(name) {
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "macintosh", "macroman":
		return charmap.Macintosh, nil
	}
	return nil, fmt.Errorf("unknown charset %q", name)
}

func validateFiles(paths []string, stdout io.Writer) error {
	failed := 0
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = sc2.Validate(f)
		f.Close()
		if err != nil {
			failed++
			fmt.Fprintf(stdout, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(stdout, "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files are not valid", failed, len(paths))
	}
	return nil
}

// decodeAll decodes paths in parallel, through the city cache unless it is
// disabled. A file named twice is usually served from the cache the second
// time; two workers that miss at once both decode it.
func decodeAll(v *viper.Viper, paths []string, opts []sc2.Option) ([]*sc2.City, error) {
	workers := v.GetInt("workers")
	quick := v.GetBool("quick")
	size := v.GetInt("cache-size")
	if size <= 0 {
		if quick {
			opts = append(opts, sc2.WithQuick())
		}
		return sc2.DecodeFiles(context.Background(), paths, workers, opts...)
	}

	c, err := cache.New(size, opts...)
	if err != nil {
		return nil, err
	}
	cities := make([]*sc2.City, len(paths))
	var group errgroup.Group
	group.SetLimit(max(workers, 1))
	for i, path := range paths {
		group.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			decode := c.Decode
			if quick {
				decode = c.DecodeQuick
			}
			city, err := decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			cities[i] = city
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return cities, nil
}

func summarize(path string, city *sc2.City, quick bool) summary {
	s := summary{
		Path:     path,
		Name:     city.Name(),
		Mayor:    city.MayorName(),
		Segments: city.Segments(),
	}
	for _, stat := range sc2.Statistics() {
		if val, ok := city.Statistic(stat); ok {
			if s.Statistics == nil {
				s.Statistics = make(map[string]int32)
			}
			s.Statistics[stat.String()] = val
		}
	}
	for i, text := range city.Signs() {
		if text == "" {
			continue
		}
		if s.Signs == nil {
			s.Signs = make(map[int]string)
		}
		s.Signs[i+1] = text
	}
	if !quick {
		s.Zones = make(map[string]int)
		for zone, n := range city.ZoneCounts() {
			s.Zones[zone.String()] = n
		}
	}
	return s
}
