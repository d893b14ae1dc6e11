// Copyright 2025 dsaini64
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
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func contextWithLogLevel(t *testing.T, level string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetup(t *testing.T) {
	t.Run("accepts valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO", "Debug"} {
			err := setup(contextWithLogLevel(t, level))
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		err := setup(contextWithLogLevel(t, "verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestAIConfig(t *testing.T) {
	t.Run("host applies to both services", func(t *testing.T) {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("ai-host", "http://ollama:11434/v1", "")
		set.String("embedding-model", "embeddinggemma", "")
		set.String("classifier-model", "qwen2.5:3b", "")
		set.Bool("no-classifier", false, "")
		c := cli.NewContext(cli.NewApp(), set, nil)

		config := aiConfig(c)
		assert.Equal(t, "http://ollama:11434/v1", config.EmbeddingHost)
		assert.Equal(t, "http://ollama:11434/v1", config.ClassifierHost)
		assert.True(t, config.ClassifierEnabled())
	})

	t.Run("no-classifier disables the LLM", func(t *testing.T) {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("ai-host", "http://ollama:11434/v1", "")
		set.String("embedding-model", "embeddinggemma", "")
		set.String("classifier-model", "qwen2.5:3b", "")
		set.Bool("no-classifier", true, "")
		c := cli.NewContext(cli.NewApp(), set, nil)

		config := aiConfig(c)
		assert.False(t, config.ClassifierEnabled())
	})
}

func TestFlagDefaults(t *testing.T) {
	t.Run("db flag", func(t *testing.T) {
		assert.Equal(t, "regulations.db", dbFlag.Value)
		assert.Contains(t, dbFlag.EnvVars, "REGULATIONS_DB")
	})

	t.Run("snapshot flag", func(t *testing.T) {
		assert.Equal(t, "regulations.index", snapshotFlag.Value)
	})

	t.Run("ai host flag", func(t *testing.T) {
		var hostFlag *cli.StringFlag
		for _, f := range aiFlags {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "ai-host" {
				hostFlag = sf
				break
			}
		}
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
		assert.Contains(t, hostFlag.EnvVars, "REGULATIONS_AI_HOST")
	})
}
