// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log = logrus.WithField("component", "jsonldctl")

	cfgFile            string
	flagBase           string
	flagProcessingMode string
	flagOrdered        bool
	flagAllowUndefined bool
)

var rootCmd = &cobra.Command{
	Use:   "jsonldctl",
	Short: "Expand and compact JSON-LD documents",
	Long: `jsonldctl runs the JSON-LD 1.1 Expansion and Compaction algorithms
against a document and prints the result.

Flags can also be set via environment variables prefixed JSONLDCTL_
(e.g. JSONLDCTL_BASE) or a jsonldctl.yaml config file.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./jsonldctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBase, "base", "", "base IRI used to resolve relative references")
	rootCmd.PersistentFlags().StringVar(&flagProcessingMode, "processing-mode", "json-ld-1.1", "json-ld-1.0 or json-ld-1.1")
	rootCmd.PersistentFlags().BoolVar(&flagOrdered, "ordered", false, "visit map keys in lexicographic order")
	rootCmd.PersistentFlags().BoolVar(&flagAllowUndefined, "allow-undefined-terms", false, "record the allow-undefined-terms policy (expansion drops undefined terms either way)")

	_ = viper.BindPFlag("base", rootCmd.PersistentFlags().Lookup("base"))
	_ = viper.BindPFlag("processing-mode", rootCmd.PersistentFlags().Lookup("processing-mode"))
	_ = viper.BindPFlag("ordered", rootCmd.PersistentFlags().Lookup("ordered"))
	_ = viper.BindPFlag("allow-undefined-terms", rootCmd.PersistentFlags().Lookup("allow-undefined-terms"))

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(compactCmd)
}

func initConfig() {
	viper.SetEnvPrefix("JSONLDCTL")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jsonldctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.WithError(err).Warn("failed to read config file")
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
