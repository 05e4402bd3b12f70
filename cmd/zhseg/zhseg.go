// Copyright 2022 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2022 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/czcorpus/zhseg"
	"github.com/czcorpus/zhseg/cnf"
	"github.com/czcorpus/zhseg/dat"
	"github.com/czcorpus/zhseg/db"
	"github.com/czcorpus/zhseg/db/factory"
	"github.com/czcorpus/zhseg/fs"
	"github.com/czcorpus/zhseg/library"
)

const modelPathEnv = "ZHSEG_MODEL_PATH"

var (
	version   string
	build     string
	gitCommit string
)

func resolveModelPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(modelPathEnv); env != "" {
		return env
	}
	log.Fatal().Msgf("no model path given (use -model or %s)", modelPathEnv)
	return ""
}

func formatSegments(words []zhseg.Segment) string {
	var sb strings.Builder
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.Text)
		sb.WriteByte('/')
		sb.WriteString(w.Tag)
	}
	return sb.String()
}

func runCut(modelPath, userDict string, puncAdjust bool) {
	segmenter, err := zhseg.Load(modelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load model")
	}
	if fs.IsFile(userDict) {
		f, err := os.Open(userDict)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open user dictionary")
		}
		d, err := dat.LoadSetTxt(f, true)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load user dictionary")
		}
		segmenter.AddPostProcessor(zhseg.NewPostProcessor(d, "uw"))
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		pre := segmenter.Preprocess(scanner.Text())
		words, err := segmenter.Cut(pre)
		if err != nil {
			log.Error().Err(err).Msg("failed to segment line")
			continue
		}
		if puncAdjust {
			words = zhseg.PuncAdjust(words)
		}
		fmt.Println(formatSegments(words))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to read input")
	}
}

func runExtract(confPath string, appendData bool) {
	conf, err := cnf.LoadConf(confPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	t0 := time.Now()
	statusChan, err := library.ExtractData(context.Background(), conf, appendData)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start extraction")
	}
	var failed bool
	for status := range statusChan {
		if status.Error != nil {
			failed = true
			log.Error().Err(status.Error).Str("file", status.File).Msg("extraction error")

		} else {
			log.Info().
				Str("file", status.File).
				Int("lines", status.ProcessedLines).
				Msg("extraction progress")
		}
	}
	if failed {
		log.Fatal().Msg("extraction finished with errors")
	}
	log.Info().Dur("time", time.Since(t0)).Msg("extraction finished")
}

func runFreq(confPath, token string) {
	conf, err := cnf.LoadConf(confPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	database, err := factory.OpenDB(&conf.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open frequency database")
	}
	defer database.Close()
	rows, err := db.QueryTokenFreq(database, conf.Corpus, token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to query frequency")
	}
	for _, row := range rows {
		fmt.Printf("%s\t%s\t%d\t%01.3f\n", row.Token, row.Tag, row.Count, row.ARF)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Println("\n+--------------------------------------------------------------+")
		fmt.Println("|  zhseg - a Chinese lexical analyzer and segment frequency    |")
		fmt.Println("|          extraction tool                                     |")
		fmt.Printf("|                       version %s                          |\n", version)
		fmt.Println("|          (c) Institute of the Czech National Corpus          |")
		fmt.Println("+--------------------------------------------------------------+")
		fmt.Println("\nUsage:")
		fmt.Println("zhseg cut [-model path] [-user user.txt] [-punc]\n\t(segment stdin line by line)")
		fmt.Println("zhseg create config.json\n\t(run an export configured in config.json, add data to a new database)")
		fmt.Println("zhseg append config.json\n\t(run an export configured in config.json, add data to an existing database)")
		fmt.Println("zhseg freq config.json token\n\t(look up stored frequencies of a token)")
		fmt.Println("zhseg template\n\t(create a half empty sample config and write it to stdout)")
		fmt.Println("zhseg version\n\tshow detailed version information")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cutCommand := flag.NewFlagSet("cut", flag.ExitOnError)
	cutModel := cutCommand.String("model", "", "model directory (defaults to $"+modelPathEnv+")")
	cutUser := cutCommand.String("user", "user.txt", "optional user dictionary")
	cutPunc := cutCommand.Bool("punc", false, "retag single punctuation segments as whitespace")

	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	switch flag.Arg(0) {
	case "cut":
		cutCommand.Parse(os.Args[2:])
		runCut(resolveModelPath(*cutModel), *cutUser, *cutPunc)
	case "create":
		runExtract(flag.Arg(1), false)
	case "append":
		runExtract(flag.Arg(1), true)
	case "freq":
		runFreq(flag.Arg(1), flag.Arg(2))
	case "template":
		tpl, err := cnf.DumpTemplate()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to dump a new config")
		}
		fmt.Println(tpl)
	case "version":
		fmt.Printf("zhseg %s\nbuild date: %s\nlast commit: %s\n", version, build, gitCommit)
	default:
		log.Fatal().Msgf("unknown command '%s'", flag.Arg(0))
	}
}
