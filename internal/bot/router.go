package bot

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"dira-chat-backend/internal/types"
)

// Filters is the listings query derived from one message.
type Filters struct {
	City     string
	Zone     string
	MinPrice *int
	MaxPrice *int
	Rooms    *int
	Floor    *int
	Limit    int
}

// Listing is a raw apartment record as returned by the search backend.
type Listing struct {
	Zone    string
	City    string
	Address string
	Price   *int
	Floor   *int
	Rooms   *int
	Size    *int
}

// Searcher is the listings backend.
type Searcher interface {
	Search(ctx context.Context, f Filters) ([]Listing, error)
}

// Responder answers messages that carry a real-estate keyword but no
// usable filter.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

// SessionStore keeps per-token session records. Lock serializes message
// handling for one token; slot filling depends on strict per-session
// message ordering.
type SessionStore interface {
	Get(token string) Session
	Put(token string, s Session)
	IntroShown(token string) bool
	MarkIntroShown(token string)
	Lock(token string) func()
}

var (
	hebrewRe   = regexp.MustCompile(`[\x{05D0}-\x{05FF}]`)
	latinRe    = regexp.MustCompile(`[a-zA-Z]`)
	interestRe = regexp.MustCompile(`מעוניי(?:ן|נת)\s+בדירה\s*(\d+)`)
)

// Router resolves one inbound message into response items, mutating the
// session as a side effect. The session store is read once at entry and
// written once at exit.
type Router struct {
	store       SessionStore
	extractor   *Extractor
	search      Searcher
	responder   Responder
	searchLimit int
	log         *slog.Logger
}

func NewRouter(store SessionStore, ex *Extractor, search Searcher, responder Responder, searchLimit int, log *slog.Logger) *Router {
	if searchLimit <= 0 {
		searchLimit = 5
	}
	if log == nil {
		log = slog.Default()
	}
	return &Router{store: store, extractor: ex, search: search, responder: responder, searchLimit: searchLimit, log: log}
}

// Route handles one message for the given session token.
func (r *Router) Route(ctx context.Context, token, message string) []types.ResponseItem {
	msg := strings.TrimSpace(message)

	// Latin-script input short-circuits before any session access.
	if !hebrewRe.MatchString(msg) && latinRe.MatchString(msg) {
		return []types.ResponseItem{types.TextMessage{Text: MsgHebrewOnly}}
	}

	unlock := r.store.Lock(token)
	defer unlock()

	sess := r.store.Get(token)
	if sess.State < StateIdle || sess.State > StateAwaitingFeedback {
		// Malformed record; treat as a fresh idle session.
		r.log.Warn("resetting inconsistent session state", "token", token, "state", int(sess.State))
		sess = Session{}
	}

	items, next := r.dispatch(ctx, token, msg, sess)
	r.store.Put(token, next)
	return items
}

func (r *Router) dispatch(ctx context.Context, token, msg string, sess Session) ([]types.ResponseItem, Session) {
	if sess.State != StateIdle {
		return advance(sess, msg)
	}

	if m := interestRe.FindStringSubmatch(msg); m != nil {
		sess = Session{State: StateAwaitingPhone, ApartmentNumber: m[1]}
		return []types.ResponseItem{
			types.TextMessage{Text: fmt.Sprintf(msgInterestAckFmt, m[1])},
			types.TextMessage{Text: msgAskPhone},
		}, sess
	}

	// A bare yes/no right after a listing reply is feedback on the search:
	// yes closes the conversation, no opens the budget-gathering chain.
	if sess.SearchShown {
		switch msg {
		case tokenYes:
			return []types.ResponseItem{
				types.TextMessage{Text: msgFeedbackThanks},
				types.NewRestartPrompt(msgRestart),
			}, Session{}
		case tokenNo:
			return []types.ResponseItem{types.TextMessage{Text: msgAskBudget}},
				Session{State: StateAwaitingBudget}
		}
	}

	p := r.extractor.Extract(msg)

	if p.Unrelated && !p.Casual && !r.store.IntroShown(token) {
		r.store.MarkIntroShown(token)
		return []types.ResponseItem{types.TextMessage{Text: msgIntro}}, sess
	}
	if p.Unrelated {
		return []types.ResponseItem{types.TextMessage{Text: msgRedirect}}, sess
	}
	if p.Casual {
		return []types.ResponseItem{types.TextMessage{Text: msgCasual}}, sess
	}

	if p.HasSearchFilter() {
		return r.runSearch(ctx, p, sess)
	}

	if r.responder == nil {
		return []types.ResponseItem{types.TextMessage{Text: msgApology}}, sess
	}
	reply, err := r.responder.Respond(ctx, msg)
	if err != nil {
		r.log.Error("fallback responder failed", "err", err)
		return []types.ResponseItem{types.TextMessage{Text: msgApology}}, sess
	}
	return []types.ResponseItem{types.TextMessage{Text: reply}}, sess
}

func (r *Router) runSearch(ctx context.Context, p Params, sess Session) ([]types.ResponseItem, Session) {
	if r.search == nil {
		r.log.Error("search requested but no listings backend is configured")
		return []types.ResponseItem{types.TextMessage{Text: msgApology}}, sess
	}
	f := Filters{
		City:     p.City,
		Zone:     p.Zone,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Rooms:    p.Rooms,
		Floor:    p.Floor,
		Limit:    r.searchLimit,
	}
	if p.Limit != nil && *p.Limit > 0 {
		f.Limit = *p.Limit
	}

	listings, err := r.search.Search(ctx, f)
	if err != nil {
		r.log.Error("listings search failed", "err", err)
		return []types.ResponseItem{types.TextMessage{Text: msgApology}}, sess
	}
	if len(listings) == 0 {
		return []types.ResponseItem{types.TextMessage{Text: msgSearchEmpty}}, sess
	}

	items := make([]types.ResponseItem, 0, 2*len(listings)+2)
	items = append(items, types.TextMessage{Text: fmt.Sprintf(msgSearchHeaderFmt, len(listings))})
	for i, l := range listings {
		items = append(items,
			types.TextMessage{Text: fmt.Sprintf(msgListingTagFmt, i+1)},
			types.ApartmentCard{
				Zone:    l.Zone,
				City:    l.City,
				Address: l.Address,
				Price:   l.Price,
				Floor:   l.Floor,
				Rooms:   l.Rooms,
				Size:    l.Size,
			},
		)
	}
	items = append(items, types.TextMessage{Text: msgSearchClosing})
	sess.SearchShown = true
	return items, sess
}
