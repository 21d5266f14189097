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

	"github.com/spf13/cobra"

	"github.com/jsonldcore/jsonld"
)

var compactCmd = &cobra.Command{
	Use:   "compact [document] [context]",
	Short: "Compact a JSON-LD document against a context",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompact,
}

func runCompact(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	proc := jsonld.NewProcessor(opts)

	input, err := loadArg(opts, args[0])
	if err != nil {
		return err
	}
	context, err := loadArg(opts, args[1])
	if err != nil {
		return err
	}

	compacted, err := proc.Compact(input, context)
	if err != nil {
		return err
	}

	out, err := jsonld.MarshalCompact(compacted)
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
