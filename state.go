package alpha

import (
	"context"
	"fmt"
	"time"

	"github.com/alphatrack/alpha/research"
)

// ReportingCurrency labels aggregate portfolio figures. Per-market figures
// are summed scalar-wise, so the label is presentational.
const ReportingCurrency = "CNY"

// State is the application aggregate: every collection loaded from the
// store, wired to the research gateway. Each mutating operation persists the
// collections it touched before returning, so a crash between commands never
// loses an acknowledged change.
type State struct {
	store Store
	ai    research.Researcher
	lang  research.Language

	ledger    *Ledger
	watchlist *Watchlist
	topics    *Topics
	journal   *Journal
	history   *AssetHistory
	market    *MarketSnapshot
}

// Open loads all collections from the store. On the first command of a new
// day it also records the day's opening total-asset figure, then pushes the
// latest watchlist quotes onto the positions.
func Open(store Store, ai research.Researcher) (*State, error) {
	s := &State{store: store, ai: ai, lang: research.Chinese}

	var lang string
	var entries []*Entry
	var topics []*Topic
	var favorites []Favorite
	var notes []*Note
	var summary *SummaryRecord
	var positions []*Position
	var trades []Trade
	var points []AssetPoint
	var market *MarketSnapshot
	cash := DefaultStartingCash

	for _, step := range []struct {
		key string
		v   any
	}{
		{KeyLang, &lang},
		{KeyStocks, &entries},
		{KeyTopics, &topics},
		{KeyFavorites, &favorites},
		{KeyNotes, &notes},
		{KeyReflection, &summary},
		{KeyPortfolio, &positions},
		{KeyTrades, &trades},
		{KeyCash, &cash},
		{KeyHistory, &points},
		{KeyMarket, &market},
	} {
		if err := s.store.Load(step.key, step.v); err != nil {
			return nil, fmt.Errorf("loading %s: %w", step.key, err)
		}
	}

	s.lang = research.ParseLanguage(lang)
	s.ledger = RestoreLedger(positions, trades, cash, ReportingCurrency)
	s.watchlist = NewWatchlist(entries)
	s.topics = NewTopics(topics, favorites)
	s.journal = NewJournal(notes, summary)
	s.history = NewAssetHistory(points)
	s.market = market

	if s.history.Record(Today(), s.ledger.TotalAssets().Amount()) {
		if err := s.save(KeyHistory, s.history.Points()); err != nil {
			return nil, err
		}
	}
	s.syncPrices()
	return s, nil
}

// Ledger exposes the portfolio for read-only queries.
func (s *State) Ledger() *Ledger { return s.ledger }

// Watchlist exposes the watched stocks for read-only queries.
func (s *State) Watchlist() *Watchlist { return s.watchlist }

// Topics exposes the tracked topics for read-only queries.
func (s *State) Topics() *Topics { return s.topics }

// Journal exposes the trading diary for read-only queries.
func (s *State) Journal() *Journal { return s.journal }

// History exposes the total-asset series for read-only queries.
func (s *State) History() *AssetHistory { return s.history }

// Lang returns the research output language.
func (s *State) Lang() research.Language { return s.lang }

// SetLang switches the research output language.
func (s *State) SetLang(l research.Language) error {
	s.lang = l
	return s.save(KeyLang, string(l))
}

// SetPolicy selects the trade input policy for this run. The policy is not
// persisted.
func (s *State) SetPolicy(p TradePolicy) { s.ledger.SetPolicy(p) }

func (s *State) save(key string, v any) error {
	if err := s.store.Save(key, v); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// syncPrices pushes watchlist quotes onto matching positions. Watchlist to
// ledger only; the ledger never writes back.
func (s *State) syncPrices() bool {
	return s.ledger.SyncFromWatchlist(s.watchlist.Snapshot()) > 0
}

func (s *State) savePortfolio() error {
	if err := s.save(KeyPortfolio, s.ledger.Positions()); err != nil {
		return err
	}
	if err := s.save(KeyTrades, s.ledger.Trades()); err != nil {
		return err
	}
	return s.save(KeyCash, s.ledger.Cash())
}

// AddStock inserts the stock as a pending watchlist entry, runs research on
// it, and applies the result. If the research fails the pending entry is
// rolled back and the watchlist is exactly as before.
func (s *State) AddStock(ctx context.Context, name string) (*Entry, error) {
	e, err := s.watchlist.Add(name)
	if err != nil {
		return nil, err
	}
	analysis, err := s.ai.StockAnalysis(ctx, e.Name, s.lang)
	if err != nil {
		s.watchlist.Remove(e.Name)
		return nil, fmt.Errorf("researching %q: %w", e.Name, err)
	}
	s.watchlist.Resolve(e.Name, analysis)
	s.syncPrices()
	if err := s.save(KeyStocks, s.watchlist.Raw()); err != nil {
		return nil, err
	}
	return e, s.savePortfolio()
}

// RefreshStock re-runs research on one watched stock. On failure the entry
// keeps its previous data and is marked failed.
func (s *State) RefreshStock(ctx context.Context, name string) (*Entry, error) {
	e := s.watchlist.Find(name)
	if e == nil {
		return nil, fmt.Errorf("%q is not on the watchlist", name)
	}
	analysis, err := s.ai.StockAnalysis(ctx, e.Name, s.lang)
	if err != nil {
		s.watchlist.MarkFailed(e.Name)
		if serr := s.save(KeyStocks, s.watchlist.Raw()); serr != nil {
			return nil, serr
		}
		return nil, fmt.Errorf("researching %q: %w", e.Name, err)
	}
	s.watchlist.Resolve(e.Name, analysis)
	s.syncPrices()
	if err := s.save(KeyStocks, s.watchlist.Raw()); err != nil {
		return nil, err
	}
	return e, s.savePortfolio()
}

// RefreshAllStocks re-runs research on every watched stock concurrently and
// waits for all of them. Failures are per-stock: each failed entry keeps its
// previous data, the rest are updated. It returns the names that failed.
func (s *State) RefreshAllStocks(ctx context.Context) (failed []string, err error) {
	entries := s.watchlist.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	results := research.SettleAll(ctx, names, func(ctx context.Context, name string) (*research.StockAnalysis, error) {
		return s.ai.StockAnalysis(ctx, name, s.lang)
	})
	for _, r := range results {
		if r.Err != nil {
			s.watchlist.MarkFailed(names[r.Index])
			failed = append(failed, names[r.Index])
			continue
		}
		s.watchlist.Resolve(names[r.Index], r.Value)
	}
	s.syncPrices()
	if err := s.save(KeyStocks, s.watchlist.Raw()); err != nil {
		return failed, err
	}
	return failed, s.savePortfolio()
}

// RefreshPortfolio re-runs research on every open position concurrently and
// applies the returned market prices, whether or not the stock is still
// watched. Matching watchlist entries pick up the fresh report too. Failures
// are per-position: a failed one keeps its last price. It returns the names
// that failed.
func (s *State) RefreshPortfolio(ctx context.Context) (failed []string, err error) {
	positions := s.ledger.Positions()
	names := make([]string, len(positions))
	for i, p := range positions {
		names[i] = p.Name
	}
	results := research.SettleAll(ctx, names, func(ctx context.Context, name string) (*research.StockAnalysis, error) {
		return s.ai.StockAnalysis(ctx, name, s.lang)
	})
	quotes := make([]Quote, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, names[r.Index])
			continue
		}
		quotes = append(quotes, Quote{Name: names[r.Index], Price: r.Value.Price})
		if e := s.watchlist.FindMatch(names[r.Index]); e != nil {
			s.watchlist.Resolve(e.Name, r.Value)
		}
	}
	s.ledger.SyncFromWatchlist(quotes)
	if err := s.save(KeyStocks, s.watchlist.Raw()); err != nil {
		return failed, err
	}
	return failed, s.savePortfolio()
}

// RemoveStock drops the stock from the watchlist. Positions are untouched.
func (s *State) RemoveStock(name string) error {
	if !s.watchlist.Remove(name) {
		return fmt.Errorf("%q is not on the watchlist", name)
	}
	return s.save(KeyStocks, s.watchlist.Raw())
}

// SetCategory reclassifies a watched stock.
func (s *State) SetCategory(name string, c Category) error {
	if err := s.watchlist.SetCategory(name, c); err != nil {
		return err
	}
	return s.save(KeyStocks, s.watchlist.Raw())
}

// MarketSentiment returns the market sentiment report, fetching a fresh one
// when the cached snapshot is missing or older than four hours, or when
// force is set. When the fetch fails it falls back to the stale snapshot if
// one exists, otherwise installs and returns the neutral placeholder; the
// fallback lives in memory only and is never persisted.
func (s *State) MarketSentiment(ctx context.Context, force bool) (research.MarketSentiment, time.Time, error) {
	now := time.Now()
	if !force && !s.market.Stale(now) {
		return s.market.Sentiment, s.market.FetchedAt, nil
	}
	sentiment, err := s.ai.MarketSentiment(ctx, s.lang)
	if err != nil {
		if s.market == nil {
			// Installed in memory only, with a zero fetch time so it is
			// already stale and the next call retries.
			s.market = &MarketSnapshot{Sentiment: NeutralSentiment()}
		}
		return s.market.Sentiment, s.market.FetchedAt, err
	}
	s.market = &MarketSnapshot{Sentiment: *sentiment, FetchedAt: now}
	return s.market.Sentiment, now, s.save(KeyMarket, s.market)
}

// TrackTopic inserts the keyword as a pending topic, researches it, and
// applies the report. A failed research rolls the insertion back.
func (s *State) TrackTopic(ctx context.Context, keyword string) (*Topic, error) {
	t, err := s.topics.Track(keyword)
	if err != nil {
		return nil, err
	}
	analysis, err := s.ai.TopicAnalysis(ctx, t.Keyword, s.lang)
	if err != nil {
		s.topics.Delete(t.Keyword)
		return nil, fmt.Errorf("analyzing topic %q: %w", t.Keyword, err)
	}
	s.topics.Resolve(t.Keyword, analysis)
	return t, s.save(KeyTopics, s.topics.Raw())
}

// RefreshAllTopics re-researches every tracked topic concurrently and waits
// for all of them. Failed topics keep their previous report. It returns the
// keywords that failed.
func (s *State) RefreshAllTopics(ctx context.Context) (failed []string, err error) {
	topics := s.topics.All()
	keywords := make([]string, len(topics))
	for i, t := range topics {
		keywords[i] = t.Keyword
	}
	results := research.SettleAll(ctx, keywords, func(ctx context.Context, keyword string) (*research.TopicAnalysis, error) {
		return s.ai.TopicAnalysis(ctx, keyword, s.lang)
	})
	for _, r := range results {
		if r.Err != nil {
			s.topics.MarkFailed(keywords[r.Index])
			failed = append(failed, keywords[r.Index])
			continue
		}
		s.topics.Resolve(keywords[r.Index], r.Value)
	}
	return failed, s.save(KeyTopics, s.topics.Raw())
}

// DeleteTopic drops a tracked keyword. Favorites saved from it stay.
func (s *State) DeleteTopic(keyword string) error {
	if !s.topics.Delete(keyword) {
		return fmt.Errorf("topic %q is not tracked", keyword)
	}
	return s.save(KeyTopics, s.topics.Raw())
}

// ToggleFavorite pins or unpins the tracked topic's current report. It
// reports whether the topic is pinned after the call.
func (s *State) ToggleFavorite(keyword string) (bool, error) {
	t := s.topics.Find(keyword)
	if t == nil {
		return false, fmt.Errorf("topic %q is not tracked", keyword)
	}
	pinned := s.topics.ToggleFavorite(t)
	return pinned, s.save(KeyFavorites, s.topics.RawFavorites())
}

// RemoveFavorite unpins a favorite by id.
func (s *State) RemoveFavorite(id string) error {
	if !s.topics.RemoveFavorite(id) {
		return fmt.Errorf("unknown favorite %q", id)
	}
	return s.save(KeyFavorites, s.topics.RawFavorites())
}

// AddNote appends a journal entry.
func (s *State) AddNote(content string, kind NoteKind) (*Note, error) {
	n, err := s.journal.Add(content, kind)
	if err != nil {
		return nil, err
	}
	return n, s.save(KeyNotes, s.journal.Raw())
}

// EditNote replaces the content of a journal entry.
func (s *State) EditNote(id, content string) error {
	if err := s.journal.Edit(id, content); err != nil {
		return err
	}
	return s.save(KeyNotes, s.journal.Raw())
}

// ToggleDone flips a task's completion flag.
func (s *State) ToggleDone(id string) error {
	if err := s.journal.ToggleDone(id); err != nil {
		return err
	}
	return s.save(KeyNotes, s.journal.Raw())
}

// DeleteNote removes a journal entry.
func (s *State) DeleteNote(id string) error {
	if !s.journal.Delete(id) {
		return fmt.Errorf("unknown note %q", id)
	}
	return s.save(KeyNotes, s.journal.Raw())
}

// AnalyzeNote asks the research gateway for a root-cause and prevention
// coaching of one journal entry and attaches the result to it.
func (s *State) AnalyzeNote(ctx context.Context, id string) (*research.ReflectionAnalysis, error) {
	n := s.journal.Find(id)
	if n == nil {
		return nil, fmt.Errorf("unknown note %q", id)
	}
	analysis, err := s.ai.ReflectionAnalysis(ctx, n.Content, s.lang)
	if err != nil {
		return nil, fmt.Errorf("analyzing note: %w", err)
	}
	if err := s.journal.Attach(id, analysis); err != nil {
		return nil, err
	}
	return analysis, s.save(KeyNotes, s.journal.Raw())
}

// Reflect summarizes all eligible journal entries into one coaching report,
// stores it, and appends it to the journal as an ai_summary entry.
func (s *State) Reflect(ctx context.Context) (*SummaryRecord, error) {
	eligible := s.journal.Reflectable()
	if len(eligible) == 0 {
		return nil, fmt.Errorf("no journal entries to reflect on")
	}
	contents := make([]string, len(eligible))
	for i, n := range eligible {
		contents[i] = n.Content
	}
	summary, err := s.ai.ReflectionSummary(ctx, contents, s.lang)
	if err != nil {
		return nil, fmt.Errorf("summarizing journal: %w", err)
	}
	rec := s.journal.SetSummary(*summary)
	if err := s.save(KeyReflection, rec); err != nil {
		return nil, err
	}
	return rec, s.save(KeyNotes, s.journal.Raw())
}

// OpenPosition opens a simulated position, debits its cost from cash, tags
// the stock as a holding on the watchlist and records the day's total-asset
// figure if it has not been recorded yet. It then researches the stock and
// applies the returned report and market price; a gateway failure never
// fails the trade, the position just keeps its entry price.
func (s *State) OpenPosition(ctx context.Context, name, code string, market Market, entryPrice float64, quantity float64) (*Position, error) {
	pos, err := s.ledger.OpenPosition(name, code, market, M(entryPrice, market.Currency()), Q(quantity))
	if err != nil {
		return nil, err
	}
	entry := s.watchlist.EnsureHolding(pos.Name, pos.Code, pos.Market, entryPrice)
	if analysis, err := s.ai.StockAnalysis(ctx, entry.Name, s.lang); err == nil {
		s.watchlist.Resolve(entry.Name, analysis)
		s.syncPrices()
	} else {
		s.watchlist.MarkFailed(entry.Name)
	}
	if err := s.save(KeyStocks, s.watchlist.Raw()); err != nil {
		return nil, err
	}
	if s.history.Record(Today(), s.ledger.TotalAssets().Amount()) {
		if err := s.save(KeyHistory, s.history.Points()); err != nil {
			return nil, err
		}
	}
	return pos, s.savePortfolio()
}

// Trade buys or sells against an existing position and settles cash in the
// same call.
func (s *State) Trade(positionID string, side TradeSide, quantity, price float64) (*Trade, error) {
	trade, err := s.ledger.ExecuteTrade(positionID, side, Q(quantity), M(price, ""))
	if err != nil {
		return nil, err
	}
	return trade, s.savePortfolio()
}

// FindPosition resolves a position by id or by exact name.
func (s *State) FindPosition(ref string) *Position {
	if p := s.ledger.Position(ref); p != nil {
		return p
	}
	for _, p := range s.ledger.Positions() {
		if p.Name == ref {
			return p
		}
	}
	return nil
}
