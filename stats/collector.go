package stats

import (
	"io"
	"strings"
	"sync"

	"github.com/cucumber/godog/formatters"
	messages "github.com/cucumber/messages-go/v16"
)

// Collector is a godog formatter that records per-step outcomes and turns
// them into RunStats once the suite finishes. Register it with godog.Format
// and select it through Options.Format.
type Collector struct {
	mu sync.Mutex

	features  []*FeatureStats
	byURI     map[string]*FeatureStats
	scenarios map[string]*ScenarioStats
	steps     map[string]*StepStats
	keywords  map[string]string

	done bool
}

func NewCollector() *Collector {
	return &Collector{
		byURI:     make(map[string]*FeatureStats),
		scenarios: make(map[string]*ScenarioStats),
		steps:     make(map[string]*StepStats),
		keywords:  make(map[string]string),
	}
}

// FormatterFunc adapts the collector to godog's formatter registry.
func (c *Collector) FormatterFunc(suite string, out io.Writer) formatters.Formatter {
	return c
}

func (c *Collector) TestRunStarted() {}

func (c *Collector) Feature(doc *messages.GherkinDocument, uri string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	feature := &FeatureStats{Name: doc.Feature.Name}
	c.features = append(c.features, feature)
	c.byURI[uri] = feature

	for _, child := range doc.Feature.Children {
		switch {
		case child.Background != nil:
			c.indexKeywords(child.Background.Steps)
		case child.Scenario != nil:
			c.indexKeywords(child.Scenario.Steps)
		case child.Rule != nil:
			for _, rc := range child.Rule.Children {
				if rc.Background != nil {
					c.indexKeywords(rc.Background.Steps)
				}
				if rc.Scenario != nil {
					c.indexKeywords(rc.Scenario.Steps)
				}
			}
		}
	}
}

func (c *Collector) indexKeywords(steps []*messages.Step) {
	for _, step := range steps {
		c.keywords[step.Id] = strings.TrimSpace(step.Keyword)
	}
}

func (c *Collector) Pickle(p *messages.Pickle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	feature, ok := c.byURI[p.Uri]
	if !ok {
		return
	}
	scenario := &ScenarioStats{Name: p.Name}
	feature.Scenarios = append(feature.Scenarios, scenario)
	c.scenarios[p.Id] = scenario
}

func (c *Collector) Defined(p *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scenario, ok := c.scenarios[p.Id]
	if !ok {
		return
	}
	stats := &StepStats{Name: step.Text, Keyword: c.keywordOf(step)}
	scenario.Steps = append(scenario.Steps, stats)
	c.steps[p.Id+"/"+step.Id] = stats
}

func (c *Collector) keywordOf(step *messages.PickleStep) string {
	for _, id := range step.AstNodeIds {
		if kw, ok := c.keywords[id]; ok {
			return kw
		}
	}
	return ""
}

func (c *Collector) Passed(p *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	c.setStepResult(p, step, ResultPassed)
}

func (c *Collector) Failed(p *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition, err error) {
	c.setStepResult(p, step, ResultFailed)
}

func (c *Collector) Skipped(p *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	c.setStepResult(p, step, ResultSkipped)
}

func (c *Collector) Undefined(p *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	c.setStepResult(p, step, ResultSkipped)
}

func (c *Collector) Pending(p *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	c.setStepResult(p, step, ResultSkipped)
}

func (c *Collector) setStepResult(p *messages.Pickle, step *messages.PickleStep, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stats, ok := c.steps[p.Id+"/"+step.Id]; ok {
		stats.Result = result
	}
}

func (c *Collector) Summary() {
	c.finalize()
}

func (c *Collector) finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return
	}
	for _, f := range c.features {
		for _, sc := range f.Scenarios {
			sc.Result = sc.DeriveResult()
		}
	}
	c.done = true
}

// Stats snapshots the collected outcome. Safe to call once the run finished.
func (c *Collector) Stats() *RunStats {
	c.finalize()

	c.mu.Lock()
	defer c.mu.Unlock()
	return NewRunStats(c.features)
}
