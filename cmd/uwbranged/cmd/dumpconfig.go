/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/uwb-go/dw1000/ranging"
)

var dumpConfigFileFlag string

func init() {
	RootCmd.AddCommand(dumpConfigCmd)
	dumpConfigCmd.Flags().StringVarP(&dumpConfigFileFlag, "config", "c", "", "path to a YAML config file to load before dumping, defaults to built-in defaults")
}

var dumpConfigCmd = &cobra.Command{
	Use:   "dump-config",
	Short: "Print the effective configuration as YAML",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()

		cfg := ranging.DefaultConfig()
		if dumpConfigFileFlag != "" {
			loaded, err := ranging.ReadConfig(dumpConfigFileFlag)
			if err != nil {
				log.Fatal(err)
			}
			cfg = loaded
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(out))
	},
}
