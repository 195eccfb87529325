package bdd

import (
	"fmt"

	"github.com/antonholmquist/jason"
	"github.com/pkg/errors"

	"github.com/gcastellov/some-bdd/logger"
)

const expectedContentType = "application/json; charset=utf-8"

// Property lists encode the expected shape of one asset pair entry.
var (
	expectedStringProperties = []string{
		"altname",
		"wsname",
		"aclass_base",
		"base",
		"aclass_quote",
		"quote",
		"lot",
		"fee_volume_currency",
		"ordermin",
	}
	expectedNumericProperties = []string{
		"pair_decimals",
		"lot_decimals",
		"lot_multiplier",
		"margin_call",
		"margin_stop",
	}
	expectedArrayProperties = []string{
		"leverage_buy",
		"leverage_sell",
		"fees",
		"fees_maker",
	}
)

func (s *Suite) requestIsNotAuthenticated() error {
	s.authenticated = false
	return nil
}

func (s *Suite) requestIsAuthenticated() error {
	s.authenticated = true
	return nil
}

func (s *Suite) systemTimeIsRequested() error {
	res, err := s.publicApi.Get("Time", nil)
	if err != nil {
		logger.Get().Warnf("time request failed: %v", err)
		return nil
	}
	s.lastResponse = res
	return nil
}

func (s *Suite) assetPairInformationIsRequested(first string, second string) error {
	pair := first + second
	res, err := s.publicApi.Get("AssetPairs", map[string]string{"pair": pair})
	if err != nil {
		logger.Get().Warnf("asset pairs request failed: %v", err)
		return nil
	}
	s.lastResponse = res
	return nil
}

func (s *Suite) allCurrentOpenOrdersAreRequested() error {
	if !s.authenticated {
		return errors.New("open orders require an authenticated request")
	}
	res, err := s.privateApi.Post("OpenOrders", nil)
	if err != nil {
		logger.Get().Warnf("open orders request failed: %v", err)
		return nil
	}
	s.lastResponse = res
	return nil
}

func (s *Suite) getsSuccessfulResponseAsJson() error {
	if s.lastResponse == nil {
		return errors.New("no response received")
	}
	if s.lastResponse.ContentType == "" {
		return errors.New("response does not contain header Content-Type")
	}
	if s.lastResponse.ContentType != expectedContentType {
		return errors.Errorf("Content-Type is %q, expected %q", s.lastResponse.ContentType, expectedContentType)
	}

	content, err := jason.NewObjectFromBytes(s.lastResponse.Body)
	if err != nil {
		return errors.Wrap(err, "impossible to get content as json")
	}
	s.lastContent = content
	return nil
}

func (s *Suite) responseContainsErrorListAsEmpty() error {
	if s.lastContent == nil {
		return errors.New("no json content available")
	}
	errorList, err := s.lastContent.GetValueArray("error")
	if err != nil {
		return errors.Wrap(err, "impossible to get error property as array")
	}
	if len(errorList) != 0 {
		return errors.Errorf("error property contains %d entries, expected none", len(errorList))
	}
	return nil
}

func (s *Suite) responseContainsOrderListAsEmpty() error {
	if s.lastContent == nil {
		return errors.New("no json content available")
	}
	open, err := s.lastContent.GetObject("result", "open")
	if err != nil {
		return errors.Wrap(err, "impossible to get open orders object")
	}
	if count := len(open.Map()); count != 0 {
		return errors.Errorf("open orders list contains %d entries, expected none", count)
	}
	return nil
}

func (s *Suite) responseOnlyContainsAssetPairInformation(pairId string) error {
	if s.lastContent == nil {
		return errors.New("no json content available")
	}
	result, err := s.lastContent.GetObject("result")
	if err != nil {
		return errors.Wrap(err, "impossible to get result object from response")
	}
	if _, err = result.GetValue(pairId); err != nil {
		return errors.Errorf("impossible to get property '%s'", pairId)
	}
	if count := len(result.Map()); count != 1 {
		return errors.Errorf("result contains %d properties, expected only '%s'", count, pairId)
	}
	return nil
}

func (s *Suite) assetPairInformationIsAsExpected(first string, second string, pairId string) error {
	if s.lastContent == nil {
		return errors.New("no json content available")
	}
	pair, err := s.lastContent.GetObject("result", pairId)
	if err != nil {
		return errors.Wrapf(err, "impossible to get asset pair '%s'", pairId)
	}

	expectedProperties := make([]string, 0,
		len(expectedStringProperties)+len(expectedNumericProperties)+len(expectedArrayProperties))
	expectedProperties = append(expectedProperties, expectedStringProperties...)
	expectedProperties = append(expectedProperties, expectedNumericProperties...)
	expectedProperties = append(expectedProperties, expectedArrayProperties...)

	for _, property := range expectedProperties {
		if _, err = pair.GetValue(property); err != nil {
			return errors.Errorf("missing property %s", property)
		}
	}
	for _, property := range expectedStringProperties {
		if _, err = pair.GetString(property); err != nil {
			return errors.Errorf("property %s value is not string type", property)
		}
	}
	for _, property := range expectedNumericProperties {
		if _, err = pair.GetFloat64(property); err != nil {
			return errors.Errorf("property %s value is not numeric type", property)
		}
	}
	for _, property := range expectedArrayProperties {
		if _, err = pair.GetValueArray(property); err != nil {
			return errors.Errorf("property %s value is not array type", property)
		}
	}

	altname, _ := pair.GetString("altname")
	if expected := first + second; altname != expected {
		return errors.Errorf("altname is %q, expected %q", altname, expected)
	}
	wsname, _ := pair.GetString("wsname")
	if expected := fmt.Sprintf("%s/%s", first, second); wsname != expected {
		return errors.Errorf("wsname is %q, expected %q", wsname, expected)
	}
	return nil
}
