package bdd

import (
	"context"

	"github.com/antonholmquist/jason"
	"github.com/cucumber/godog"

	"github.com/gcastellov/some-bdd/api/private"
	"github.com/gcastellov/some-bdd/api/public"
	"github.com/gcastellov/some-bdd/config"
	"github.com/gcastellov/some-bdd/models"
)

// Suite holds the per-scenario state shared between steps: which API surface
// the scenario targets and the outcome of the last call.
type Suite struct {
	publicApi  public.PublicClient
	privateApi private.PrivateClient

	authenticated bool
	lastResponse  *models.ApiResponse
	lastContent   *jason.Object
}

func NewSuite(conf *config.Config) (*Suite, error) {
	publicApi, err := public.NewClient(conf.ApiHost)
	if err != nil {
		return nil, err
	}
	privateApi, err := private.NewClient(conf.ApiHost, conf.ApiKey, conf.SecretKey, conf.Otp)
	if err != nil {
		return nil, err
	}
	return &Suite{
		publicApi:  publicApi,
		privateApi: privateApi,
	}, nil
}

func (s *Suite) InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	ctx.Step(`^request is not authenticated$`, s.requestIsNotAuthenticated)
	ctx.Step(`^request is authenticated$`, s.requestIsAuthenticated)
	ctx.Step(`^system time is requested$`, s.systemTimeIsRequested)
	ctx.Step(`^asset pair information is requested for (.+) and (.+)$`, s.assetPairInformationIsRequested)
	ctx.Step(`^all current open orders are requested$`, s.allCurrentOpenOrdersAreRequested)
	ctx.Step(`^gets successful response as json$`, s.getsSuccessfulResponseAsJson)
	ctx.Step(`^response contains error list as empty$`, s.responseContainsErrorListAsEmpty)
	ctx.Step(`^response contains order list as empty$`, s.responseContainsOrderListAsEmpty)
	ctx.Step(`^response only contains asset pair information (.+)$`, s.responseOnlyContainsAssetPairInformation)
	ctx.Step(`^asset pair information for (.+) and (.+) as (.+) is as expected$`, s.assetPairInformationIsAsExpected)
}

func (s *Suite) reset() {
	s.authenticated = false
	s.lastResponse = nil
	s.lastContent = nil
}
