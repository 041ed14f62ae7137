// Package alpha implements a personal investment tracker driven by AI
// research. It is local-first: every collection is a plain JSON file, and the
// only network dependency is the research gateway.
//
// The core functionalities include:
//   - Portfolio Ledger: simulated positions with weighted-average cost
//     accounting, a cash balance settled synchronously with every trade, an
//     append-only trade log and a daily total-asset history.
//   - Watchlist: stocks under research observation, each carrying the last
//     structured research report, a price quote and an attention category.
//     Watchlist prices flow one way onto matching positions.
//   - Market Sentiment: a cached whole-market dashboard snapshot with a
//     four-hour freshness window and graceful degradation.
//   - Topics and Favorites: tracked thematic keywords and frozen snapshots
//     of reports worth keeping.
//   - Trading Journal: notes and tasks with per-entry AI coaching and an
//     aggregate reflection summary.
//
// This package serves as the foundational logic for the `alf` command-line
// tool; the research and renderer packages supply the gateway and the
// markdown reports.
package alpha
