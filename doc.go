// Package brokerage turns a brokerage account export into analysis-ready
// artifacts.
//
// The package covers two pipelines. The first flattens the export's
// transaction history into a normalized, chronologically ordered ledger
// where every activity kind, trades, option activity, income and cash
// movements alike, shares one uniform row schema. The second takes the
// export's open positions and enriches them with per-security market data
// (profile, beta, dividend yield and history) before rolling them up into
// market-value-weighted group summaries.
//
// All monetary math is exact decimal arithmetic; floats only appear at the
// boundary with external JSON feeds.
package brokerage
