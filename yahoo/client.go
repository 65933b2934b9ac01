// Package yahoo implements the market-data boundary on top of the public
// Yahoo Finance JSON endpoints, with an in-memory TTL cache in front so a
// run touching the same ticker twice only pays for one round trip.
package yahoo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/etnz/brokerage"
)

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// quoteSummaryModules are the quoteSummary modules carrying every metric the
// enrichment pipeline reads.
const quoteSummaryModules = "summaryProfile,summaryDetail,defaultKeyStatistics,financialData,quoteType,price"

// Client fetches per-security fundamentals and dividend history. It
// implements brokerage.MarketData.
type Client struct {
	http  *http.Client
	base  string
	cache *cache.Cache
	log   zerolog.Logger
}

// New returns a client against the given base URL (DefaultBaseURL when
// empty) whose responses are cached in memory for ttl.
func New(baseURL string, ttl time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:  new(http.Client),
		base:  baseURL,
		cache: cache.New(ttl, 2*ttl),
		log:   log,
	}
}

// Fundamentals fetches the quoteSummary modules for ticker and maps them
// into the metrics bag. An unknown ticker yields an empty Fundamentals and
// no error; only transport and decoding failures are returned as errors.
func (c *Client) Fundamentals(ticker string) (brokerage.Fundamentals, error) {
	key := "fundamentals:" + ticker
	if hit, ok := c.cache.Get(key); ok {
		return hit.(brokerage.Fundamentals), nil
	}

	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s", c.base, url.PathEscape(ticker), quoteSummaryModules)
	var doc any
	found, err := c.getJSON(addr, &doc)
	if err != nil {
		return brokerage.Fundamentals{}, fmt.Errorf("cannot fetch fundamentals for %q: %w", ticker, err)
	}

	var f brokerage.Fundamentals
	if found {
		f = mapFundamentals(doc)
	}
	c.cache.Set(key, f, cache.DefaultExpiration)
	return f, nil
}

func mapFundamentals(doc any) brokerage.Fundamentals {
	const root = "$.quoteSummary.result[0]"
	f := brokerage.Fundamentals{
		Sector:             jpString(doc, root+".summaryProfile.sector"),
		Category:           jpString(doc, root+".summaryProfile.category"),
		Industry:           jpString(doc, root+".summaryProfile.industry"),
		Beta:               jpDecimal(doc, root+".summaryDetail.beta.raw"),
		DividendYield:      jpDecimal(doc, root+".summaryDetail.dividendYield.raw"),
		QuoteType:          jpString(doc, root+".quoteType.quoteType"),
		ShortName:          jpString(doc, root+".quoteType.shortName"),
		RecommendationKey:  jpString(doc, root+".financialData.recommendationKey"),
		RecommendationMean: jpDecimal(doc, root+".financialData.recommendationMean.raw"),
		TargetMeanPrice:    jpDecimal(doc, root+".financialData.targetMeanPrice.raw"),
		RegularMarketPrice: jpDecimal(doc, root+".price.regularMarketPrice.raw"),
		Bid:                jpDecimal(doc, root+".summaryDetail.bid.raw"),
		Ask:                jpDecimal(doc, root+".summaryDetail.ask.raw"),
	}
	if ts, ok := jpFloat(doc, root+".summaryDetail.exDividendDate.raw"); ok {
		f.ExDividendDate = time.Unix(int64(ts), 0).UTC()
	}
	return f
}

// DividendHistory fetches one year of dividend events from the chart
// endpoint, oldest first. An unknown ticker or a ticker that pays no
// dividend yields an empty history and no error.
func (c *Client) DividendHistory(ticker string) ([]brokerage.DividendPayment, error) {
	key := "dividends:" + ticker
	if hit, ok := c.cache.Get(key); ok {
		return hit.([]brokerage.DividendPayment), nil
	}

	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d&events=div", c.base, url.PathEscape(ticker))
	var doc any
	found, err := c.getJSON(addr, &doc)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch dividend history for %q: %w", ticker, err)
	}

	var payments []brokerage.DividendPayment
	if found {
		payments = mapDividends(doc)
	}
	c.cache.Set(key, payments, cache.DefaultExpiration)
	return payments, nil
}

func mapDividends(doc any) []brokerage.DividendPayment {
	jval, err := jsonpath.Get("$.chart.result[0].events.dividends", doc)
	if err != nil {
		// no dividends key at all, the security pays none
		return nil
	}
	events, ok := jval.(map[string]any)
	if !ok {
		return nil
	}
	payments := make([]brokerage.DividendPayment, 0, len(events))
	for _, ev := range events {
		entry, ok := ev.(map[string]any)
		if !ok {
			continue
		}
		amount, aok := entry["amount"].(float64)
		ts, tok := entry["date"].(float64)
		if !aok || !tok {
			continue
		}
		payments = append(payments, brokerage.DividendPayment{
			Date:   time.Unix(int64(ts), 0).UTC(),
			Amount: decimal.NewFromFloat(amount),
		})
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })
	return payments
}

// getJSON performs an HTTP GET and unmarshals the JSON response into data.
// A 404 is not an error: it reports found=false so callers can degrade to
// an empty result for unknown tickers.
func (c *Client) getJSON(addr string, data any) (found bool, err error) {
	resp, err := c.http.Get(addr)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	c.log.Debug().Str("url", addr).Str("status", resp.Status).Msg("market data fetch")
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return false, err
	}
	return true, json.Unmarshal(buf.Bytes(), data)
}

// jpString extracts a string at path, tolerating the jsonpath habit of
// wrapping a single answer in a list of one. Any miss yields "".
func jpString(doc any, path string) string {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	return s
}

// jpFloat extracts a float64 at path with the same list-of-one unwrap.
func jpFloat(doc any, path string) (float64, bool) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, false
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	return val, ok
}

// jpDecimal extracts an optional numeric metric at path, nil when absent.
func jpDecimal(doc any, path string) *decimal.Decimal {
	val, ok := jpFloat(doc, path)
	if !ok {
		return nil
	}
	d := decimal.NewFromFloat(val)
	return &d
}
