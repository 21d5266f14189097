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
	"github.com/spf13/viper"

	"github.com/jsonldcore/jsonld"
)

// buildOptions translates the viper-resolved flag/env/config layering into
// a jsonld.Options, the library's own configuration surface.
func buildOptions() *jsonld.Options {
	opts := jsonld.DefaultOptions()

	opts.BaseIRI = viper.GetString("base")
	opts.Ordered = viper.GetBool("ordered")
	opts.Policy.AllowUndefinedTerms = viper.GetBool("allow-undefined-terms")

	if viper.GetString("processing-mode") == string(jsonld.ProcessingMode1_0) {
		opts.ProcessingMode = jsonld.ProcessingMode1_0
	} else {
		opts.ProcessingMode = jsonld.ProcessingMode1_1
	}

	opts.Warnings = jsonld.NewLogWarningSink(log)

	return opts
}

// loadArg decodes path (a file path or http(s) URL) via the default
// document loader and returns its parsed JSON.
func loadArg(opts *jsonld.Options, path string) (interface{}, error) {
	rd, err := opts.Loader.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return rd.Document, nil
}
