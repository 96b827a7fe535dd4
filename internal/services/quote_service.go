package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

// ErrThrottled means too many quote requests were sent recently.
var ErrThrottled = errors.New("too many requests")

const maxMessageLen = 2000

// QuoteNotifier tells the store about new quote requests.
type QuoteNotifier interface {
	// Allow reports whether another request may be accepted now.
	Allow() bool
	QuoteRequested(ctx context.Context, q domain.Quote, lines []domain.QuoteItem) error
}

type QuoteService struct {
	Quotes   *repos.QuoteRepo
	SellList *SellListService
	Notify   QuoteNotifier
}

func NewQuoteService(quotes *repos.QuoteRepo, sell *SellListService, notify QuoteNotifier) *QuoteService {
	return &QuoteService{Quotes: quotes, SellList: sell, Notify: notify}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (in ContactInput) validate() (ContactInput, error) {
	var ok bool
	if in.Name, ok = validate.Name(in.Name, 100); !ok {
		return in, invalid("name", "required, at most 100 characters")
	}
	if in.Email, ok = validate.Email(in.Email); !ok {
		return in, invalid("email", "a valid email address is required")
	}
	if in.Phone, ok = validate.Phone(in.Phone); !ok {
		return in, invalid("phone", "invalid phone number")
	}
	if utf8.RuneCountInString(in.Message) > maxMessageLen {
		return in, invalid("message", "message is too long")
	}
	return in, nil
}

// Submit stores a quote request with the visitor's sell list attached and
// notifies the store. The sell list is cleared once the quote is stored.
func (s *QuoteService) Submit(ctx context.Context, sid string, in ContactInput) (domain.Quote, error) {
	in, err := in.validate()
	if err != nil {
		return domain.Quote{}, err
	}
	if s.Notify != nil && !s.Notify.Allow() {
		return domain.Quote{}, ErrThrottled
	}

	view := SellListView{}
	if sid != "" {
		if view, err = s.SellList.View(ctx, sid); err != nil {
			return domain.Quote{}, err
		}
	}
	if len(view.Items) == 0 && in.Message == "" {
		return domain.Quote{}, invalid("message", "add a message or items to your sell list")
	}

	q := domain.Quote{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		Total:     view.Total,
		Status:    domain.QuoteNew,
		CreatedAt: repos.Now(),
	}
	lines := lo.Map(view.Items, func(e domain.SellListEntry, _ int) domain.QuoteItem {
		return domain.QuoteItem{QuoteID: q.ID, ItemID: e.ItemID, Name: e.Name, Condition: e.Condition, Qty: e.Qty, Price: e.Price}
	})
	if err := s.Quotes.Create(ctx, q, lines); err != nil {
		return domain.Quote{}, err
	}
	if len(lines) > 0 {
		if err := s.SellList.Clear(ctx, sid); err != nil {
			applog.Error(nil, "quote.selllist.clear.fail", err, map[string]any{"quote_id": q.ID})
		}
	}

	if s.Notify != nil {
		// the quote is stored; a mail failure is only logged
		if err := s.Notify.QuoteRequested(ctx, q, lines); err != nil {
			applog.Error(nil, "quote.notify.fail", err, map[string]any{"quote_id": q.ID})
		}
	}
	return q, nil
}

func (s *QuoteService) List(ctx context.Context, limit int) ([]domain.Quote, error) {
	return s.Quotes.List(ctx, limit)
}

type QuoteDetail struct {
	domain.Quote
	Items []domain.QuoteItem `json:"items"`
}

func (s *QuoteService) Get(ctx context.Context, id string) (QuoteDetail, error) {
	q, lines, err := s.Quotes.Get(ctx, id)
	if err != nil {
		return QuoteDetail{}, err
	}
	return QuoteDetail{Quote: q, Items: lines}, nil
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id, status string) error {
	if !lo.Contains([]string{domain.QuoteNew, domain.QuoteContacted, domain.QuoteClosed}, status) {
		return invalid("status", "must be new, contacted or closed")
	}
	return s.Quotes.UpdateStatus(ctx, id, status)
}
