//
// root.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/p2p"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any
// sub-commands.
var rootCmd = &cobra.Command{
	Use:   "yao",
	Short: "Two-party secure function evaluation with garbled circuits",
	Long: `Yao runs the garbler or the evaluator of a two-party garbled
circuit computation. The parties exchange their messages over TCP or
through a shared directory.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		jww.ERROR.Printf("yao: %s", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLog)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.yao/yao.yaml)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.IntP("workers", "w", 0, "Garbling workers (default is #CPUs)")
	flags.StringP("circuit", "c", "",
		"Circuit definition YAML file (default is millionaire)")
	flags.StringP("addr", "a", "localhost:8080", "Garbler TCP address")
	flags.StringP("dir", "d", "",
		"Exchange messages through the directory instead of TCP")
	flags.Duration("timeout", 5*time.Minute, "Protocol timeout")
	flags.String("log", "", "Log file (default is stdout)")

	for _, name := range []string{
		"verbose", "workers", "circuit", "addr", "dir", "timeout", "log",
	} {
		err := viper.BindPFlag(name, flags.Lookup(name))
		handleBindingError(err, name)
	}
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// initConfig reads in the config file and ENV variables if set. A
// missing default config file is not an error.
func initConfig() {
	explicit := cfgFile != ""
	if !explicit {
		home, err := homedir.Dir()
		if err != nil {
			jww.ERROR.Println(err)
			os.Exit(1)
		}
		cfgFile = filepath.Join(home, ".yao", "yao.yaml")
	}

	viper.SetEnvPrefix("yao")
	viper.AutomaticEnv()

	if _, err := os.Stat(cfgFile); err != nil {
		if explicit {
			jww.FATAL.Panicf("Invalid config file (%s): %s", cfgFile, err)
		}
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		jww.FATAL.Panicf("Unable to read config file (%s): %s",
			cfgFile, err)
	}
}

// initLog initializes logging thresholds.
func initLog() {
	if viper.GetBool("verbose") {
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetStdoutThreshold(jww.LevelDebug)
	} else {
		jww.SetLogThreshold(jww.LevelWarn)
		jww.SetStdoutThreshold(jww.LevelWarn)
	}
	if path := viper.GetString("log"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			jww.WARN.Printf("Invalid log path %s: %s", path, err)
		} else {
			jww.SetLogOutput(f)
		}
	}
}

func newConfig() *env.Config {
	return &env.Config{
		Workers: viper.GetInt("workers"),
		Verbose: viper.GetBool("verbose"),
	}
}

func loadDefinition() (*circuit.Definition, error) {
	file := viper.GetString("circuit")
	if file == "" {
		return circuit.Millionaire, nil
	}
	return circuit.LoadDefinition(file)
}

// exchangeDir returns the directory exchange or nil if the peers use
// TCP.
func exchangeDir() (*p2p.Dir, error) {
	path := viper.GetString("dir")
	if path == "" {
		return nil, nil
	}
	return p2p.NewDir(path)
}

func timeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(),
		viper.GetDuration("timeout"))
}
