package main

import (
	"os"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/gcastellov/some-bdd/bdd"
	"github.com/gcastellov/some-bdd/config"
	"github.com/gcastellov/some-bdd/logger"
	"github.com/gcastellov/some-bdd/stats"
)

const suiteName = "kraken-api"

func main() {
	defer logger.Sync()

	conf, err := config.FromArgs(os.Args[1:])
	if err != nil {
		logger.Get().Fatalf("invalid arguments: %v", err)
	}

	suite, err := bdd.NewSuite(conf)
	if err != nil {
		logger.Get().Fatalf("failed to initialize api clients: %v", err)
	}

	opts := godog.Options{
		Format: "pretty",
		Paths:  []string{"features"},
		Output: colors.Colored(os.Stdout),
		Strict: true,
	}

	var collector *stats.Collector
	if conf.OutputFile != "" {
		collector = stats.NewCollector()
		godog.Format("stats", "Collects run statistics per feature, scenario and step.", collector.FormatterFunc)
		opts.Format = "stats"
	}

	status := godog.TestSuite{
		Name:                suiteName,
		ScenarioInitializer: suite.InitializeScenario,
		Options:             &opts,
	}.Run()

	if collector == nil {
		os.Exit(status)
	}

	run := collector.Stats()
	run.Print(os.Stdout)
	if err = run.WriteFile(conf.OutputFile); err != nil {
		logger.Get().Errorf("failed to write result file: %v", err)
	}
	if run.Failed() || status != 0 {
		os.Exit(1)
	}
	os.Exit(0)
}
